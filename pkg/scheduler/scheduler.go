// Package scheduler runs the daily donation-reminder job.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"BloodLink/domain"
	"BloodLink/entities"
	"BloodLink/pkg/eligibility"
)

type (
	// DonationSource yields approved donations whose approval date falls in
	// a window.
	DonationSource interface {
		GetApprovedInWindow(ctx context.Context, from, to time.Time) ([]*entities.Donation, error)
	}

	Dispatcher interface {
		Notify(ctx context.Context, req domain.NotifyRequest) (map[string]bool, error)
	}

	// ReminderScheduler notifies donors whose donation interval has just
	// elapsed. It assumes at most one run per day; re-running within the
	// same day can re-notify the same donors.
	ReminderScheduler struct {
		donations DonationSource
		notifier  Dispatcher
		now       func() time.Time
		interval  time.Duration
	}
)

func NewReminderScheduler(donations DonationSource, notifier Dispatcher, now func() time.Time) *ReminderScheduler {
	if now == nil {
		now = time.Now
	}
	return &ReminderScheduler{
		donations: donations,
		notifier:  notifier,
		now:       now,
		interval:  24 * time.Hour,
	}
}

// Run executes the reminder check once per interval until the context is
// cancelled.
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Info("donation reminder scheduler started")
	for {
		select {
		case <-ctx.Done():
			log.Info("donation reminder scheduler stopped")
			return
		case <-ticker.C:
			if err := s.CheckDonationReminders(ctx); err != nil {
				log.Errorf("donation reminder run failed: %v", err)
			}
		}
	}
}

// CheckDonationReminders selects donations approved in the 24-hour window
// ending the full donation interval ago and reminds each donor that they
// are eligible again.
func (s *ReminderScheduler) CheckDonationReminders(ctx context.Context) error {
	now := s.now()
	to := now.AddDate(0, 0, -eligibility.DonationIntervalDays)
	from := to.AddDate(0, 0, -1)

	donations, err := s.donations.GetApprovedInWindow(ctx, from, to)
	if err != nil {
		return err
	}

	for _, donation := range donations {
		_, err := s.notifier.Notify(ctx, domain.NotifyRequest{
			UserID:  donation.DonorID.String(),
			Title:   "You Can Donate Again",
			Message: fmt.Sprintf("It has been %d days since your last donation. You are eligible to donate blood again!", eligibility.DonationIntervalDays),
			Type:    domain.NotificationDonationReminder,
		})
		if err != nil {
			log.Errorf("send donation reminder to donor %s: %v", donation.DonorID, err)
			continue
		}
		log.Infof("sent donation reminder to donor %s", donation.DonorID)
	}

	return nil
}

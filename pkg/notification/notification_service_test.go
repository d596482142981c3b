package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
)

type fakeNotificationRepo struct {
	rows      []*entities.Notification
	createErr error
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *entities.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.rows = append(r.rows, notification)
	return nil
}

func (r *fakeNotificationRepo) MarkSent(_ context.Context, id string, at time.Time) error {
	for _, row := range r.rows {
		if row.ID.String() == id {
			row.IsSent = true
			row.SentAt = &at
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id string) (*entities.Notification, error) {
	for _, row := range r.rows {
		if row.ID.String() == id {
			return row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID string, _, _ int) ([]*entities.Notification, int64, error) {
	var result []*entities.Notification
	for _, row := range r.rows {
		if row.UserID.String() == userID {
			result = append(result, row)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeNotificationRepo) UnreadCount(_ context.Context, userID string) (int64, error) {
	var count int64
	for _, row := range r.rows {
		if row.UserID.String() == userID && row.DeliveryMethod == entities.ChannelSystem && !row.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id string) error {
	for _, row := range r.rows {
		if row.ID.String() == id {
			row.IsRead = true
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	for _, row := range r.rows {
		if row.UserID.String() == userID {
			row.IsRead = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) byChannel(channel string) []*entities.Notification {
	var result []*entities.Notification
	for _, row := range r.rows {
		if row.DeliveryMethod == channel {
			result = append(result, row)
		}
	}
	return result
}

type fakeUsers struct {
	users map[string]*entities.User
}

func (f *fakeUsers) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) SendMail(toEmail, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, toEmail)
	return nil
}

type fakeSMS struct {
	sent []string
	err  error
}

func (s *fakeSMS) SendSMS(to, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.sent = append(s.sent, to)
	return "msg-001", nil
}

type notifyFixture struct {
	service NotificationService
	repo    *fakeNotificationRepo
	mailer  *fakeMailer
	sms     *fakeSMS
	user    *entities.User
}

func newNotifyFixture(t *testing.T, user *entities.User) *notifyFixture {
	t.Helper()

	repo := &fakeNotificationRepo{}
	mailer := &fakeMailer{}
	sms := &fakeSMS{}
	users := &fakeUsers{users: map[string]*entities.User{user.ID.String(): user}}

	return &notifyFixture{
		service: NewNotificationService(repo, users, mailer, sms),
		repo:    repo,
		mailer:  mailer,
		sms:     sms,
		user:    user,
	}
}

func donorUser(emailPrefs, smsPrefs bool) *entities.User {
	return &entities.User{
		ID:          uuid.New(),
		Email:       "donor@example.com",
		Role:        entities.RoleDonor,
		PhoneNumber: "9876543210",
		DonorProfile: &entities.DonorProfile{
			EmailNotifications: emailPrefs,
			SMSNotifications:   smsPrefs,
		},
	}
}

func TestNotifyAlwaysPersistsSystemRecord(t *testing.T) {
	f := newNotifyFixture(t, donorUser(false, false))

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Donation Request Approved",
		Message: "Your request was approved.",
		Type:    domain.NotificationDonationApproved,
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])

	system := f.repo.byChannel(entities.ChannelSystem)
	require.Len(t, system, 1)
	assert.True(t, system[0].IsSent)
	require.NotNil(t, system[0].SentAt)
	assert.Equal(t, f.user.ID, system[0].UserID)
}

func TestNotifyDerivedChannels(t *testing.T) {
	f := newNotifyFixture(t, donorUser(true, true))

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Urgent Blood Request",
		Message: "O+ blood needed.",
		Type:    domain.NotificationBloodRequest,
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])
	assert.True(t, results[entities.ChannelEmail])
	assert.True(t, results[entities.ChannelSMS])
	assert.Len(t, f.mailer.sent, 1)
	assert.Len(t, f.sms.sent, 1)
	assert.Len(t, f.repo.rows, 3)
}

func TestNotifyRespectsOptOuts(t *testing.T) {
	f := newNotifyFixture(t, donorUser(false, false))

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Reminder",
		Message: "You can donate again.",
		Type:    domain.NotificationDonationReminder,
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])
	assert.NotContains(t, results, entities.ChannelEmail)
	assert.NotContains(t, results, entities.ChannelSMS)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.sms.sent)
}

func TestNotifyExplicitChannels(t *testing.T) {
	// An explicit channel list overrides preference derivation but never
	// removes the system record.
	f := newNotifyFixture(t, donorUser(false, false))

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:   f.user.ID.String(),
		Title:    "Donation Cancelled",
		Message:  "Your request was cancelled.",
		Type:     domain.NotificationDonationCancelled,
		Channels: []string{entities.ChannelSystem, entities.ChannelEmail},
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])
	assert.True(t, results[entities.ChannelEmail])
	assert.Len(t, f.mailer.sent, 1)
	assert.Empty(t, f.sms.sent)
	require.Len(t, f.repo.byChannel(entities.ChannelSystem), 1)
}

func TestNotifyEmailFailureDoesNotPropagate(t *testing.T) {
	f := newNotifyFixture(t, donorUser(true, false))
	f.mailer.err = errors.New("smtp connection refused")

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Donation Request Approved",
		Message: "Approved.",
		Type:    domain.NotificationDonationApproved,
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])
	assert.False(t, results[entities.ChannelEmail])

	// The email row is persisted unsent for the audit trail.
	emailRows := f.repo.byChannel(entities.ChannelEmail)
	require.Len(t, emailRows, 1)
	assert.False(t, emailRows[0].IsSent)
}

func TestNotifySMSFailureDoesNotPropagate(t *testing.T) {
	f := newNotifyFixture(t, donorUser(false, true))
	f.sms.err = errors.New("gateway timeout")

	results, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Urgent Blood Request",
		Message: "B- needed.",
		Type:    domain.NotificationBloodRequest,
	})

	require.NoError(t, err)
	assert.True(t, results[entities.ChannelSystem])
	assert.False(t, results[entities.ChannelSMS])
}

func TestNotifySystemPersistFailure(t *testing.T) {
	f := newNotifyFixture(t, donorUser(true, true))
	f.repo.createErr = errors.New("connection lost")

	_, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "x",
		Message: "y",
		Type:    domain.NotificationDonationApproved,
	})

	assert.Error(t, err)
	assert.Empty(t, f.mailer.sent)
	assert.Empty(t, f.sms.sent)
}

func TestNotifyUnknownUser(t *testing.T) {
	f := newNotifyFixture(t, donorUser(true, true))

	_, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID: uuid.NewString(),
		Title:  "x",
		Type:   domain.NotificationDonationApproved,
	})

	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestMarkReadOwnership(t *testing.T) {
	f := newNotifyFixture(t, donorUser(false, false))

	_, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Reminder",
		Message: "z",
		Type:    domain.NotificationDonationReminder,
	})
	require.NoError(t, err)
	require.Len(t, f.repo.rows, 1)
	notificationID := f.repo.rows[0].ID.String()

	err = f.service.MarkRead(context.Background(), notificationID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)
	assert.False(t, f.repo.rows[0].IsRead)

	err = f.service.MarkRead(context.Background(), notificationID, f.user.ID.String())
	require.NoError(t, err)
	assert.True(t, f.repo.rows[0].IsRead)
}

func TestUnreadCountOnlySystemChannel(t *testing.T) {
	f := newNotifyFixture(t, donorUser(true, true))

	_, err := f.service.Notify(context.Background(), domain.NotifyRequest{
		UserID:  f.user.ID.String(),
		Title:   "Urgent Blood Request",
		Message: "AB+ needed.",
		Type:    domain.NotificationBloodRequest,
	})
	require.NoError(t, err)
	require.Len(t, f.repo.rows, 3)

	count, err := f.service.UnreadCount(context.Background(), f.user.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

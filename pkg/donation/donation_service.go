package donation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
	"BloodLink/pkg/eligibility"
	"BloodLink/pkg/notification"
	"BloodLink/pkg/user"
)

type (
	DonationService interface {
		Submit(ctx context.Context, req domain.CreateDonationRequest, donorUserID string) (*domain.Donation, error)
		Approve(ctx context.Context, donationID, hospitalUserID string) error
		Reject(ctx context.Context, donationID, hospitalUserID string) error
		Cancel(ctx context.Context, donationID, donorUserID string) error
		Complete(ctx context.Context, donationID, hospitalUserID string) error

		GetDonationByID(ctx context.Context, donationID, actorUserID string) (*domain.Donation, error)
		GetDonorDonations(ctx context.Context, donorUserID string, page, limit int) ([]*domain.Donation, int64, error)
		GetHospitalDonations(ctx context.Context, hospitalUserID, status string, page, limit int) ([]*domain.Donation, int64, error)
		ListAllDonations(ctx context.Context, status string, page, limit int) ([]*domain.Donation, int64, error)
		GetDonorStatistics(ctx context.Context, donorUserID string) (*domain.DonorDonationStatistics, error)
		GetHospitalStatistics(ctx context.Context, hospitalUserID string) (*domain.HospitalDonationStatistics, error)

		BroadcastBloodRequest(ctx context.Context, req domain.BroadcastBloodRequest, hospitalUserID string) (*domain.BroadcastResult, error)
	}

	donationService struct {
		donationRepository  DonationRepository
		userRepository      user.UserRepository
		notificationService notification.NotificationService
	}
)

func NewDonationService(donationRepository DonationRepository, userRepository user.UserRepository, notificationService notification.NotificationService) DonationService {
	return &donationService{
		donationRepository:  donationRepository,
		userRepository:      userRepository,
		notificationService: notificationService,
	}
}

// Submit creates a pending donation after checking the donor's current
// eligibility and that the hospital serves the donor's pincode area.
func (s *donationService) Submit(ctx context.Context, req domain.CreateDonationRequest, donorUserID string) (*domain.Donation, error) {
	if req.Units < domain.MinDonationUnits || req.Units > domain.MaxDonationUnits {
		return nil, domain.ErrInvalidUnits
	}

	profile, err := s.userRepository.GetDonorProfileByUserID(ctx, donorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonorProfileNotFound
		}
		return nil, err
	}

	if eligible, _ := eligibility.Evaluate(profile, time.Now()); !eligible {
		return nil, domain.ErrDonorNotEligible
	}

	hospital, err := s.userRepository.GetHospitalProfileByID(ctx, req.HospitalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, err
	}

	if hospital.Pincode != profile.Pincode {
		return nil, domain.ErrHospitalPincodeMismatch
	}

	donorUUID, err := uuid.Parse(donorUserID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	donation := &entities.Donation{
		ID:          uuid.New(),
		DonorID:     donorUUID,
		HospitalID:  hospital.ID,
		BloodGroup:  profile.BloodGroup,
		Units:       req.Units,
		Status:      entities.DonationStatusPending,
		RequestDate: time.Now(),
		Notes:       req.Notes,
	}

	if err := s.donationRepository.CreateDonation(ctx, donation); err != nil {
		return nil, err
	}

	s.notify(ctx, hospital.UserID.String(), domain.NotifyRequest{
		Title:             "New Donation Request",
		Message:           fmt.Sprintf("%s has requested to donate %d unit(s) of %s blood.", profile.Name, donation.Units, donation.BloodGroup),
		Type:              domain.NotificationDonationRequested,
		RelatedEntityType: "donation",
		RelatedEntityID:   donation.ID.String(),
	})

	result := toDonationResponse(donation)
	result.HospitalName = hospital.Name
	result.DonorName = profile.Name
	return result, nil
}

// Approve transitions pending to approved. The repository applies the
// timestamp, the donor's last donation date and the inventory credit
// atomically; the donor notification goes out after the transition lands.
func (s *donationService) Approve(ctx context.Context, donationID, hospitalUserID string) error {
	donation, hospital, err := s.getOwnedDonation(ctx, donationID, hospitalUserID)
	if err != nil {
		return err
	}

	if donation.Status != entities.DonationStatusPending {
		return domain.ErrDonationConflict
	}

	if err := s.donationRepository.Approve(ctx, donation, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, donation.DonorID.String(), domain.NotifyRequest{
		Title:             "Donation Request Approved",
		Message:           fmt.Sprintf("Your blood donation request has been approved by %s. Thank you for saving lives!", hospital.Name),
		Type:              domain.NotificationDonationApproved,
		RelatedEntityType: "donation",
		RelatedEntityID:   donation.ID.String(),
	})

	return nil
}

func (s *donationService) Reject(ctx context.Context, donationID, hospitalUserID string) error {
	donation, hospital, err := s.getOwnedDonation(ctx, donationID, hospitalUserID)
	if err != nil {
		return err
	}

	if donation.Status != entities.DonationStatusPending {
		return domain.ErrDonationConflict
	}

	if err := s.donationRepository.Reject(ctx, donation.ID, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, donation.DonorID.String(), domain.NotifyRequest{
		Title:             "Donation Request Rejected",
		Message:           fmt.Sprintf("Your donation request to %s has been rejected.", hospital.Name),
		Type:              domain.NotificationDonationRejected,
		RelatedEntityType: "donation",
		RelatedEntityID:   donation.ID.String(),
	})

	return nil
}

// Cancel is donor-initiated and only valid while the request is pending.
func (s *donationService) Cancel(ctx context.Context, donationID, donorUserID string) error {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrDonationNotFound
		}
		return err
	}

	if donation.DonorID.String() != donorUserID {
		return domain.ErrUnauthorizedDonationAccess
	}

	if donation.Status != entities.DonationStatusPending {
		return domain.ErrDonationConflict
	}

	if err := s.donationRepository.Cancel(ctx, donation.ID, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, donation.DonorID.String(), domain.NotifyRequest{
		Title:             "Donation Cancelled",
		Message:           fmt.Sprintf("Your donation request of %s has been cancelled.", donation.RequestDate.Format("2006-01-02")),
		Type:              domain.NotificationDonationCancelled,
		Channels:          []string{entities.ChannelSystem, entities.ChannelEmail},
		RelatedEntityType: "donation",
		RelatedEntityID:   donation.ID.String(),
	})

	return nil
}

// Complete transitions approved to completed and refreshes the donor's last
// donation date. Units stay where the approval put them.
func (s *donationService) Complete(ctx context.Context, donationID, hospitalUserID string) error {
	donation, hospital, err := s.getOwnedDonation(ctx, donationID, hospitalUserID)
	if err != nil {
		return err
	}

	if donation.Status != entities.DonationStatusApproved {
		return domain.ErrDonationConflict
	}

	if err := s.donationRepository.Complete(ctx, donation, time.Now()); err != nil {
		return err
	}

	s.notify(ctx, donation.DonorID.String(), domain.NotifyRequest{
		Title:             "Donation Completed",
		Message:           fmt.Sprintf("Your donation at %s has been marked as completed. Thank you for your contribution!", hospital.Name),
		Type:              domain.NotificationDonationCompleted,
		RelatedEntityType: "donation",
		RelatedEntityID:   donation.ID.String(),
	})

	return nil
}

func (s *donationService) GetDonationByID(ctx context.Context, donationID, actorUserID string) (*domain.Donation, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonationNotFound
		}
		return nil, err
	}

	allowed := donation.DonorID.String() == actorUserID
	if !allowed && donation.Hospital != nil {
		allowed = donation.Hospital.UserID.String() == actorUserID
	}
	if !allowed {
		return nil, domain.ErrUnauthorizedDonationAccess
	}

	return enrichDonationResponse(donation), nil
}

func (s *donationService) GetDonorDonations(ctx context.Context, donorUserID string, page, limit int) ([]*domain.Donation, int64, error) {
	donations, count, err := s.donationRepository.GetDonorDonations(ctx, donorUserID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, enrichDonationResponse(d))
	}
	return result, count, nil
}

func (s *donationService) GetHospitalDonations(ctx context.Context, hospitalUserID, status string, page, limit int) ([]*domain.Donation, int64, error) {
	hospital, err := s.userRepository.GetHospitalProfileByUserID(ctx, hospitalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrHospitalNotFound
		}
		return nil, 0, err
	}

	donations, count, err := s.donationRepository.GetHospitalDonations(ctx, hospital.ID.String(), status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, enrichDonationResponse(d))
	}
	return result, count, nil
}

// ListAllDonations is the admin-only listing across all hospitals.
func (s *donationService) ListAllDonations(ctx context.Context, status string, page, limit int) ([]*domain.Donation, int64, error) {
	donations, count, err := s.donationRepository.GetAllDonations(ctx, status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.Donation, 0, len(donations))
	for _, d := range donations {
		result = append(result, enrichDonationResponse(d))
	}
	return result, count, nil
}

func (s *donationService) GetDonorStatistics(ctx context.Context, donorUserID string) (*domain.DonorDonationStatistics, error) {
	return s.donationRepository.GetDonorStatistics(ctx, donorUserID)
}

func (s *donationService) GetHospitalStatistics(ctx context.Context, hospitalUserID string) (*domain.HospitalDonationStatistics, error) {
	hospital, err := s.userRepository.GetHospitalProfileByUserID(ctx, hospitalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, err
	}
	return s.donationRepository.GetHospitalStatistics(ctx, hospital.ID.String())
}

// BroadcastBloodRequest alerts every currently eligible donor of the
// requested blood group. No donation rows are created; donors respond by
// submitting their own requests.
func (s *donationService) BroadcastBloodRequest(ctx context.Context, req domain.BroadcastBloodRequest, hospitalUserID string) (*domain.BroadcastResult, error) {
	if req.Units < domain.MinBroadcastUnits || req.Units > domain.MaxBroadcastUnits {
		return nil, domain.ErrInvalidUnits
	}
	if !entities.IsValidBloodGroup(req.BloodGroup) {
		return nil, domain.ErrInvalidBloodGroup
	}

	hospital, err := s.userRepository.GetHospitalProfileByUserID(ctx, hospitalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrHospitalNotFound
		}
		return nil, err
	}

	donors, err := s.userRepository.GetDonorsByBloodGroup(ctx, req.BloodGroup)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("URGENT: %s needs %d units of %s blood. Please contact %s or check your account for details.",
		hospital.Name, req.Units, req.BloodGroup, hospital.Phone)

	result := &domain.BroadcastResult{}
	for _, donor := range donors {
		if donor.DonorProfile == nil {
			continue
		}
		if eligible, _ := eligibility.Evaluate(donor.DonorProfile, time.Now()); !eligible {
			continue
		}

		results, err := s.notificationService.Notify(ctx, domain.NotifyRequest{
			UserID:            donor.ID.String(),
			Title:             "Urgent Blood Request",
			Message:           message,
			Type:              domain.NotificationBloodRequest,
			Channels:          []string{entities.ChannelSystem, entities.ChannelSMS},
			RelatedEntityType: "hospital",
			RelatedEntityID:   hospital.ID.String(),
		})
		if err != nil {
			result.FailedDonors++
			continue
		}
		if sent, asked := results[entities.ChannelSMS]; asked && !sent {
			result.FailedDonors++
			continue
		}
		result.NotifiedDonors++
	}

	return result, nil
}

func (s *donationService) getOwnedDonation(ctx context.Context, donationID, hospitalUserID string) (*entities.Donation, *entities.HospitalProfile, error) {
	donation, err := s.donationRepository.GetDonationByID(ctx, donationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrDonationNotFound
		}
		return nil, nil, err
	}

	hospital, err := s.userRepository.GetHospitalProfileByUserID(ctx, hospitalUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, domain.ErrHospitalNotFound
		}
		return nil, nil, err
	}

	if donation.HospitalID != hospital.ID {
		return nil, nil, domain.ErrUnauthorizedDonationAccess
	}

	return donation, hospital, nil
}

// notify delivers a lifecycle event after its transition has been persisted.
// Delivery problems are logged, never surfaced to the transition's caller.
func (s *donationService) notify(ctx context.Context, userID string, req domain.NotifyRequest) {
	req.UserID = userID
	if _, err := s.notificationService.Notify(ctx, req); err != nil {
		log.Errorf("notify user %s about %s: %v", userID, req.Type, err)
	}
}

func toDonationResponse(d *entities.Donation) *domain.Donation {
	return &domain.Donation{
		ID:               d.ID.String(),
		DonorID:          d.DonorID.String(),
		HospitalID:       d.HospitalID.String(),
		BloodGroup:       d.BloodGroup,
		Units:            d.Units,
		Status:           d.Status,
		RequestDate:      d.RequestDate,
		ApprovalDate:     d.ApprovalDate,
		RejectionDate:    d.RejectionDate,
		CompletionDate:   d.CompletionDate,
		CancellationDate: d.CancellationDate,
		Notes:            d.Notes,
	}
}

func enrichDonationResponse(d *entities.Donation) *domain.Donation {
	result := toDonationResponse(d)
	if d.Hospital != nil {
		result.HospitalName = d.Hospital.Name
	}
	if d.Donor != nil && d.Donor.DonorProfile != nil {
		result.DonorName = d.Donor.DonorProfile.Name
	}
	return result
}

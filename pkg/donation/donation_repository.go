package donation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"BloodLink/domain"
	"BloodLink/entities"
)

type (
	DonationRepository interface {
		CreateDonation(ctx context.Context, donation *entities.Donation) error
		GetDonationByID(ctx context.Context, id string) (*entities.Donation, error)
		GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error)
		GetHospitalDonations(ctx context.Context, hospitalID, status string, page, limit int) ([]*entities.Donation, int64, error)
		GetAllDonations(ctx context.Context, status string, page, limit int) ([]*entities.Donation, int64, error)

		Approve(ctx context.Context, donation *entities.Donation, approvedAt time.Time) error
		Reject(ctx context.Context, donationID uuid.UUID, rejectedAt time.Time) error
		Cancel(ctx context.Context, donationID uuid.UUID, cancelledAt time.Time) error
		Complete(ctx context.Context, donation *entities.Donation, completedAt time.Time) error

		GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonorDonationStatistics, error)
		GetHospitalStatistics(ctx context.Context, hospitalID string) (*domain.HospitalDonationStatistics, error)
		GetApprovedInWindow(ctx context.Context, from, to time.Time) ([]*entities.Donation, error)
	}

	donationRepository struct {
		db *gorm.DB
	}
)

func NewDonationRepository(db *gorm.DB) DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) CreateDonation(ctx context.Context, donation *entities.Donation) error {
	return r.db.WithContext(ctx).Create(donation).Error
}

func (r *donationRepository) GetDonationByID(ctx context.Context, id string) (*entities.Donation, error) {
	var donation entities.Donation
	if err := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Donor.DonorProfile").
		Preload("Hospital").
		Where("id = ?", id).
		First(&donation).Error; err != nil {
		return nil, err
	}
	return &donation, nil
}

func (r *donationRepository) GetDonorDonations(ctx context.Context, donorID string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload("Hospital").
		Where("donor_id = ?", donorID).
		Order("request_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

func (r *donationRepository) GetHospitalDonations(ctx context.Context, hospitalID, status string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Donation{}).Where("hospital_id = ?", hospitalID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	list := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Donor.DonorProfile").
		Where("hospital_id = ?", hospitalID)
	if status != "" {
		list = list.Where("status = ?", status)
	}

	if err := list.
		Order("request_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

// GetAllDonations is the admin view across every hospital, optionally
// filtered by status.
func (r *donationRepository) GetAllDonations(ctx context.Context, status string, page, limit int) ([]*entities.Donation, int64, error) {
	var donations []*entities.Donation
	var count int64
	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Model(&entities.Donation{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	list := r.db.WithContext(ctx).
		Preload("Donor").
		Preload("Donor.DonorProfile").
		Preload("Hospital")
	if status != "" {
		list = list.Where("status = ?", status)
	}

	if err := list.
		Order("request_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&donations).Error; err != nil {
		return nil, 0, err
	}

	return donations, count, nil
}

// Approve flips pending to approved and applies the coupled side effects in
// one transaction: approval timestamp, donor last donation date, inventory
// credit. The status flip is conditional so a raced second approve surfaces
// as a conflict instead of a double credit.
func (r *donationRepository) Approve(ctx context.Context, donation *entities.Donation, approvedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Donation{}).
			Where("id = ? AND status = ?", donation.ID, entities.DonationStatusPending).
			Updates(map[string]interface{}{
				"status":        entities.DonationStatusApproved,
				"approval_date": approvedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrDonationConflict
		}

		if err := tx.Model(&entities.DonorProfile{}).
			Where("user_id = ?", donation.DonorID).
			Update("last_donation_date", approvedAt).Error; err != nil {
			return err
		}

		entry := entities.BloodInventory{
			ID:          uuid.New(),
			HospitalID:  donation.HospitalID,
			BloodGroup:  donation.BloodGroup,
			Units:       donation.Units,
			LastUpdated: approvedAt,
		}
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hospital_id"}, {Name: "blood_group"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"units":        gorm.Expr("blood_inventories.units + ?", donation.Units),
				"last_updated": approvedAt,
			}),
		}).Create(&entry).Error
	})
}

func (r *donationRepository) Reject(ctx context.Context, donationID uuid.UUID, rejectedAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", donationID, entities.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":         entities.DonationStatusRejected,
			"rejection_date": rejectedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDonationConflict
	}
	return nil
}

func (r *donationRepository) Cancel(ctx context.Context, donationID uuid.UUID, cancelledAt time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("id = ? AND status = ?", donationID, entities.DonationStatusPending).
		Updates(map[string]interface{}{
			"status":            entities.DonationStatusCancelled,
			"cancellation_date": cancelledAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrDonationConflict
	}
	return nil
}

// Complete flips approved to completed and refreshes the donor's last
// donation date. Inventory is untouched here: units were credited at
// approval time.
func (r *donationRepository) Complete(ctx context.Context, donation *entities.Donation, completedAt time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Donation{}).
			Where("id = ? AND status = ?", donation.ID, entities.DonationStatusApproved).
			Updates(map[string]interface{}{
				"status":          entities.DonationStatusCompleted,
				"completion_date": completedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrDonationConflict
		}

		return tx.Model(&entities.DonorProfile{}).
			Where("user_id = ?", donation.DonorID).
			Update("last_donation_date", completedAt).Error
	})
}

func (r *donationRepository) GetDonorStatistics(ctx context.Context, donorID string) (*domain.DonorDonationStatistics, error) {
	stats := &domain.DonorDonationStatistics{}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ?", donorID).
		Count(&stats.TotalDonations).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, entities.DonationStatusCompleted).
		Count(&stats.CompletedDonations).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("donor_id = ? AND status = ?", donorID, entities.DonationStatusPending).
		Count(&stats.PendingDonations).Error; err != nil {
		return nil, err
	}

	var result struct {
		TotalUnits int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("COALESCE(SUM(units), 0) as total_units").
		Where("donor_id = ? AND status = ?", donorID, entities.DonationStatusCompleted).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	stats.TotalUnits = result.TotalUnits
	stats.LivesSaved = result.TotalUnits * 3

	return stats, nil
}

func (r *donationRepository) GetHospitalStatistics(ctx context.Context, hospitalID string) (*domain.HospitalDonationStatistics, error) {
	stats := &domain.HospitalDonationStatistics{}

	var totals struct {
		TotalDonations int64
		TotalUnits     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("COUNT(*) as total_donations, COALESCE(SUM(units), 0) as total_units").
		Where("hospital_id = ? AND status IN ?", hospitalID, []string{entities.DonationStatusApproved, entities.DonationStatusCompleted}).
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.TotalDonations = totals.TotalDonations
	stats.TotalUnits = totals.TotalUnits

	monthStart := time.Now().AddDate(0, -1, 0)
	var month struct {
		MonthDonations int64
		MonthUnits     int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Select("COUNT(*) as month_donations, COALESCE(SUM(units), 0) as month_units").
		Where("hospital_id = ? AND status IN ? AND request_date >= ?", hospitalID,
			[]string{entities.DonationStatusApproved, entities.DonationStatusCompleted}, monthStart).
		Scan(&month).Error; err != nil {
		return nil, err
	}
	stats.MonthDonations = month.MonthDonations
	stats.MonthUnits = month.MonthUnits

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("hospital_id = ? AND status = ?", hospitalID, entities.DonationStatusPending).
		Count(&stats.PendingDonations).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Model(&entities.Donation{}).
		Where("hospital_id = ? AND status = ?", hospitalID, entities.DonationStatusCompleted).
		Count(&stats.CompletedDonations).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *donationRepository) GetApprovedInWindow(ctx context.Context, from, to time.Time) ([]*entities.Donation, error) {
	var donations []*entities.Donation
	if err := r.db.WithContext(ctx).
		Where("status = ? AND approval_date > ? AND approval_date <= ?", entities.DonationStatusApproved, from, to).
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

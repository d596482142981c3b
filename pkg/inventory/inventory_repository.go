package inventory

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
	InventoryRepository interface {
		GetHospitalInventory(ctx context.Context, hospitalID string) ([]*entities.BloodInventory, error)
		GetAllInventory(ctx context.Context) ([]*entities.BloodInventory, error)
		EnsureEntries(ctx context.Context, hospitalID string) error
		Credit(ctx context.Context, hospitalID, bloodGroup string, units int) error
		Debit(ctx context.Context, hospitalID, bloodGroup string, units int) error
		Adjust(ctx context.Context, inventoryID, actorID uuid.UUID, direction string, units int, reason string) (*entities.BloodInventory, error)
		ListAdjustments(ctx context.Context, inventoryID string) ([]*entities.InventoryAdjustment, error)
	}

	inventoryRepository struct {
		db *gorm.DB
	}
)

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) GetHospitalInventory(ctx context.Context, hospitalID string) ([]*entities.BloodInventory, error) {
	var entries []*entities.BloodInventory
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("blood_group ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *inventoryRepository) GetAllInventory(ctx context.Context) ([]*entities.BloodInventory, error) {
	var entries []*entities.BloodInventory
	if err := r.db.WithContext(ctx).
		Preload("Hospital").
		Order("hospital_id ASC, blood_group ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureEntries inserts zero-unit rows for any of the canonical blood groups
// the hospital is missing. Existing rows are left untouched.
func (r *inventoryRepository) EnsureEntries(ctx context.Context, hospitalID string) error {
	hospitalUUID, err := uuid.Parse(hospitalID)
	if err != nil {
		return domain.ErrParseUUID
	}

	now := time.Now()
	entries := make([]*entities.BloodInventory, 0, len(entities.BloodGroups))
	for _, bg := range entities.BloodGroups {
		entries = append(entries, &entities.BloodInventory{
			ID:          uuid.New(),
			HospitalID:  hospitalUUID,
			BloodGroup:  bg,
			Units:       0,
			LastUpdated: now,
		})
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hospital_id"}, {Name: "blood_group"}},
			DoNothing: true,
		}).
		Create(&entries).Error
}

// Credit adds units to the matching entry with a single atomic update,
// creating the entry first if the hospital has never stocked this group.
func (r *inventoryRepository) Credit(ctx context.Context, hospitalID, bloodGroup string, units int) error {
	hospitalUUID, err := uuid.Parse(hospitalID)
	if err != nil {
		return domain.ErrParseUUID
	}

	now := time.Now()
	entry := entities.BloodInventory{
		ID:          uuid.New(),
		HospitalID:  hospitalUUID,
		BloodGroup:  bloodGroup,
		Units:       units,
		LastUpdated: now,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "hospital_id"}, {Name: "blood_group"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"units":        gorm.Expr("blood_inventories.units + ?", units),
				"last_updated": now,
			}),
		}).
		Create(&entry).Error
}

// Debit subtracts units only when the balance covers them; the guard is part
// of the update statement so concurrent debits cannot drive the count
// negative.
func (r *inventoryRepository) Debit(ctx context.Context, hospitalID, bloodGroup string, units int) error {
	result := r.db.WithContext(ctx).
		Model(&entities.BloodInventory{}).
		Where("hospital_id = ? AND blood_group = ? AND units >= ?", hospitalID, bloodGroup, units).
		UpdateColumns(map[string]interface{}{
			"units":        gorm.Expr("units - ?", units),
			"last_updated": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Adjust applies a manual correction and appends the audit row in the same
// transaction so the ledger can never disagree with the balance.
func (r *inventoryRepository) Adjust(ctx context.Context, inventoryID, actorID uuid.UUID, direction string, units int, reason string) (*entities.BloodInventory, error) {
	var entry entities.BloodInventory

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		update := tx.Model(&entities.BloodInventory{}).Where("id = ?", inventoryID)

		switch direction {
		case entities.AdjustmentAdd:
			update = update.UpdateColumns(map[string]interface{}{
				"units":        gorm.Expr("units + ?", units),
				"last_updated": time.Now(),
			})
		case entities.AdjustmentDeduct:
			update = update.Where("units >= ?", units).UpdateColumns(map[string]interface{}{
				"units":        gorm.Expr("units - ?", units),
				"last_updated": time.Now(),
			})
		default:
			return domain.ErrInvalidAdjustment
		}

		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			if direction == entities.AdjustmentDeduct {
				// Distinguish a missing row from an insufficient balance.
				var exists int64
				if err := tx.Model(&entities.BloodInventory{}).Where("id = ?", inventoryID).Count(&exists).Error; err != nil {
					return err
				}
				if exists > 0 {
					return domain.ErrInsufficientStock
				}
			}
			return domain.ErrInventoryNotFound
		}

		adjustment := &entities.InventoryAdjustment{
			ID:          uuid.New(),
			InventoryID: inventoryID,
			ActorID:     actorID,
			Direction:   direction,
			Units:       units,
			Reason:      reason,
		}
		if err := tx.Create(adjustment).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", inventoryID).First(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *inventoryRepository) ListAdjustments(ctx context.Context, inventoryID string) ([]*entities.InventoryAdjustment, error) {
	var adjustments []*entities.InventoryAdjustment
	if err := r.db.WithContext(ctx).
		Where("inventory_id = ?", inventoryID).
		Order("created_at DESC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

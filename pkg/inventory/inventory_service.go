package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
)

type (
	InventoryService interface {
		GetHospitalInventory(ctx context.Context, hospitalID string) ([]*domain.InventoryEntry, error)
		GetAllInventory(ctx context.Context) ([]*domain.InventoryEntry, error)
		Credit(ctx context.Context, hospitalID, bloodGroup string, units int) error
		Debit(ctx context.Context, hospitalID, bloodGroup string, units int) error
		Adjust(ctx context.Context, req domain.AdjustInventoryRequest, actorID string) (*domain.InventoryEntry, error)
		ListAdjustments(ctx context.Context, inventoryID string) ([]*domain.InventoryAdjustmentEntry, error)
	}

	inventoryService struct {
		inventoryRepository InventoryRepository
	}
)

func NewInventoryService(inventoryRepository InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepository: inventoryRepository}
}

// GetHospitalInventory returns one entry per canonical blood group,
// backfilling zero-unit rows for any group the hospital is missing.
func (s *inventoryService) GetHospitalInventory(ctx context.Context, hospitalID string) ([]*domain.InventoryEntry, error) {
	if err := s.inventoryRepository.EnsureEntries(ctx, hospitalID); err != nil {
		return nil, err
	}

	entries, err := s.inventoryRepository.GetHospitalInventory(ctx, hospitalID)
	if err != nil {
		return nil, err
	}

	byGroup := make(map[string]*entities.BloodInventory, len(entries))
	for _, entry := range entries {
		byGroup[entry.BloodGroup] = entry
	}

	result := make([]*domain.InventoryEntry, 0, len(entities.BloodGroups))
	for _, bg := range entities.BloodGroups {
		entry, ok := byGroup[bg]
		if !ok {
			// EnsureEntries ran above; a miss here means the row landed
			// after our read. Present it as zero.
			result = append(result, &domain.InventoryEntry{
				HospitalID: hospitalID,
				BloodGroup: bg,
			})
			continue
		}
		result = append(result, toInventoryEntry(entry))
	}

	return result, nil
}

func (s *inventoryService) GetAllInventory(ctx context.Context) ([]*domain.InventoryEntry, error) {
	entries, err := s.inventoryRepository.GetAllInventory(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.InventoryEntry, 0, len(entries))
	for _, entry := range entries {
		result = append(result, toInventoryEntry(entry))
	}
	return result, nil
}

func (s *inventoryService) Credit(ctx context.Context, hospitalID, bloodGroup string, units int) error {
	if units <= 0 {
		return domain.ErrNegativeAdjustment
	}
	if !entities.IsValidBloodGroup(bloodGroup) {
		return domain.ErrInvalidBloodGroup
	}
	return s.inventoryRepository.Credit(ctx, hospitalID, bloodGroup, units)
}

func (s *inventoryService) Debit(ctx context.Context, hospitalID, bloodGroup string, units int) error {
	if units <= 0 {
		return domain.ErrNegativeAdjustment
	}
	if !entities.IsValidBloodGroup(bloodGroup) {
		return domain.ErrInvalidBloodGroup
	}
	return s.inventoryRepository.Debit(ctx, hospitalID, bloodGroup, units)
}

func (s *inventoryService) Adjust(ctx context.Context, req domain.AdjustInventoryRequest, actorID string) (*domain.InventoryEntry, error) {
	if req.Units <= 0 {
		return nil, domain.ErrNegativeAdjustment
	}
	if req.Direction != entities.AdjustmentAdd && req.Direction != entities.AdjustmentDeduct {
		return nil, domain.ErrInvalidAdjustment
	}

	inventoryUUID, err := uuid.Parse(req.InventoryID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	entry, err := s.inventoryRepository.Adjust(ctx, inventoryUUID, actorUUID, req.Direction, req.Units, req.Reason)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInventoryNotFound
		}
		return nil, err
	}

	return toInventoryEntry(entry), nil
}

func (s *inventoryService) ListAdjustments(ctx context.Context, inventoryID string) ([]*domain.InventoryAdjustmentEntry, error) {
	adjustments, err := s.inventoryRepository.ListAdjustments(ctx, inventoryID)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.InventoryAdjustmentEntry, 0, len(adjustments))
	for _, adj := range adjustments {
		result = append(result, &domain.InventoryAdjustmentEntry{
			ID:          adj.ID.String(),
			InventoryID: adj.InventoryID.String(),
			ActorID:     adj.ActorID.String(),
			Direction:   adj.Direction,
			Units:       adj.Units,
			Reason:      adj.Reason,
			CreatedAt:   adj.CreatedAt,
		})
	}
	return result, nil
}

func toInventoryEntry(entry *entities.BloodInventory) *domain.InventoryEntry {
	return &domain.InventoryEntry{
		ID:          entry.ID.String(),
		HospitalID:  entry.HospitalID.String(),
		BloodGroup:  entry.BloodGroup,
		Units:       entry.Units,
		LastUpdated: entry.LastUpdated,
	}
}

package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
)

type stockKey struct {
	hospitalID string
	bloodGroup string
}

// fakeInventoryRepo mirrors the repository's conditional-update semantics in
// memory: debits below zero are refused, credits upsert.
type fakeInventoryRepo struct {
	mu          sync.Mutex
	byKey       map[stockKey]*entities.BloodInventory
	byID        map[string]*entities.BloodInventory
	adjustments []*entities.InventoryAdjustment
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{
		byKey: make(map[stockKey]*entities.BloodInventory),
		byID:  make(map[string]*entities.BloodInventory),
	}
}

func (r *fakeInventoryRepo) GetHospitalInventory(_ context.Context, hospitalID string) ([]*entities.BloodInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var entries []*entities.BloodInventory
	for key, entry := range r.byKey {
		if key.hospitalID == hospitalID {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func (r *fakeInventoryRepo) GetAllInventory(_ context.Context) ([]*entities.BloodInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := make([]*entities.BloodInventory, 0, len(r.byKey))
	for _, entry := range r.byKey {
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *fakeInventoryRepo) EnsureEntries(_ context.Context, hospitalID string) error {
	hospitalUUID, err := uuid.Parse(hospitalID)
	if err != nil {
		return domain.ErrParseUUID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bg := range entities.BloodGroups {
		key := stockKey{hospitalID: hospitalID, bloodGroup: bg}
		if _, ok := r.byKey[key]; ok {
			continue
		}
		entry := &entities.BloodInventory{
			ID:         uuid.New(),
			HospitalID: hospitalUUID,
			BloodGroup: bg,
		}
		r.byKey[key] = entry
		r.byID[entry.ID.String()] = entry
	}
	return nil
}

func (r *fakeInventoryRepo) Credit(_ context.Context, hospitalID, bloodGroup string, units int) error {
	hospitalUUID, err := uuid.Parse(hospitalID)
	if err != nil {
		return domain.ErrParseUUID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey{hospitalID: hospitalID, bloodGroup: bloodGroup}
	entry, ok := r.byKey[key]
	if !ok {
		entry = &entities.BloodInventory{
			ID:         uuid.New(),
			HospitalID: hospitalUUID,
			BloodGroup: bloodGroup,
		}
		r.byKey[key] = entry
		r.byID[entry.ID.String()] = entry
	}
	entry.Units += units
	return nil
}

func (r *fakeInventoryRepo) Debit(_ context.Context, hospitalID, bloodGroup string, units int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := stockKey{hospitalID: hospitalID, bloodGroup: bloodGroup}
	entry, ok := r.byKey[key]
	if !ok || entry.Units < units {
		return domain.ErrInsufficientStock
	}
	entry.Units -= units
	return nil
}

func (r *fakeInventoryRepo) Adjust(_ context.Context, inventoryID, actorID uuid.UUID, direction string, units int, reason string) (*entities.BloodInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.byID[inventoryID.String()]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	switch direction {
	case entities.AdjustmentAdd:
		entry.Units += units
	case entities.AdjustmentDeduct:
		if entry.Units < units {
			return nil, domain.ErrInsufficientStock
		}
		entry.Units -= units
	default:
		return nil, domain.ErrInvalidAdjustment
	}

	r.adjustments = append(r.adjustments, &entities.InventoryAdjustment{
		ID:          uuid.New(),
		InventoryID: inventoryID,
		ActorID:     actorID,
		Direction:   direction,
		Units:       units,
		Reason:      reason,
	})
	return entry, nil
}

func (r *fakeInventoryRepo) ListAdjustments(_ context.Context, inventoryID string) ([]*entities.InventoryAdjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*entities.InventoryAdjustment
	for _, adj := range r.adjustments {
		if adj.InventoryID.String() == inventoryID {
			result = append(result, adj)
		}
	}
	return result, nil
}

func TestGetHospitalInventoryBackfillsAllGroups(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()

	entries, err := service.GetHospitalInventory(context.Background(), hospitalID)

	require.NoError(t, err)
	require.Len(t, entries, len(entities.BloodGroups))

	groups := make(map[string]int, len(entries))
	for _, entry := range entries {
		groups[entry.BloodGroup] = entry.Units
	}
	for _, bg := range entities.BloodGroups {
		units, ok := groups[bg]
		assert.True(t, ok, "missing group %s", bg)
		assert.Equal(t, 0, units)
	}
}

func TestCreditAndDebit(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()

	require.NoError(t, service.Credit(context.Background(), hospitalID, "O+", 5))
	require.NoError(t, service.Debit(context.Background(), hospitalID, "O+", 3))

	entries, err := repo.GetHospitalInventory(context.Background(), hospitalID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Units)
}

func TestDebitInsufficientStockLeavesBalance(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()

	require.NoError(t, service.Credit(context.Background(), hospitalID, "A-", 2))

	err := service.Debit(context.Background(), hospitalID, "A-", 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	entries, err := repo.GetHospitalInventory(context.Background(), hospitalID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Units)
}

func TestCreditValidation(t *testing.T) {
	service := NewInventoryService(newFakeInventoryRepo())
	hospitalID := uuid.NewString()

	assert.ErrorIs(t, service.Credit(context.Background(), hospitalID, "O+", 0), domain.ErrNegativeAdjustment)
	assert.ErrorIs(t, service.Credit(context.Background(), hospitalID, "O+", -2), domain.ErrNegativeAdjustment)
	assert.ErrorIs(t, service.Credit(context.Background(), hospitalID, "Z+", 1), domain.ErrInvalidBloodGroup)
}

func TestConcurrentCredits(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()

	const workers = 20
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_ = service.Credit(context.Background(), hospitalID, "B+", 1)
		}()
	}
	wg.Wait()

	entries, err := repo.GetHospitalInventory(context.Background(), hospitalID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, workers, entries[0].Units)
}

func TestAdjustRecordsAudit(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()
	actorID := uuid.NewString()

	require.NoError(t, repo.EnsureEntries(context.Background(), hospitalID))
	entries, err := repo.GetHospitalInventory(context.Background(), hospitalID)
	require.NoError(t, err)
	target := entries[0]

	updated, err := service.Adjust(context.Background(), domain.AdjustInventoryRequest{
		InventoryID: target.ID.String(),
		Direction:   entities.AdjustmentAdd,
		Units:       4,
		Reason:      "stock audit correction",
	}, actorID)

	require.NoError(t, err)
	assert.Equal(t, 4, updated.Units)

	adjustments, err := service.ListAdjustments(context.Background(), target.ID.String())
	require.NoError(t, err)
	require.Len(t, adjustments, 1)
	assert.Equal(t, entities.AdjustmentAdd, adjustments[0].Direction)
	assert.Equal(t, 4, adjustments[0].Units)
	assert.Equal(t, "stock audit correction", adjustments[0].Reason)
	assert.Equal(t, actorID, adjustments[0].ActorID)
}

func TestAdjustDeductBelowZero(t *testing.T) {
	repo := newFakeInventoryRepo()
	service := NewInventoryService(repo)
	hospitalID := uuid.NewString()
	actorID := uuid.NewString()

	require.NoError(t, repo.EnsureEntries(context.Background(), hospitalID))
	entries, err := repo.GetHospitalInventory(context.Background(), hospitalID)
	require.NoError(t, err)
	target := entries[0]

	_, err = service.Adjust(context.Background(), domain.AdjustInventoryRequest{
		InventoryID: target.ID.String(),
		Direction:   entities.AdjustmentDeduct,
		Units:       1,
		Reason:      "expired units",
	}, actorID)

	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, repo.adjustments)
}

func TestAdjustUnknownInventory(t *testing.T) {
	service := NewInventoryService(newFakeInventoryRepo())

	_, err := service.Adjust(context.Background(), domain.AdjustInventoryRequest{
		InventoryID: uuid.NewString(),
		Direction:   entities.AdjustmentAdd,
		Units:       1,
		Reason:      "found extra units",
	}, uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrInventoryNotFound)
}

func TestAdjustValidation(t *testing.T) {
	service := NewInventoryService(newFakeInventoryRepo())
	actorID := uuid.NewString()

	_, err := service.Adjust(context.Background(), domain.AdjustInventoryRequest{
		InventoryID: uuid.NewString(),
		Direction:   "transfer",
		Units:       1,
		Reason:      "x",
	}, actorID)
	assert.ErrorIs(t, err, domain.ErrInvalidAdjustment)

	_, err = service.Adjust(context.Background(), domain.AdjustInventoryRequest{
		InventoryID: uuid.NewString(),
		Direction:   entities.AdjustmentAdd,
		Units:       0,
		Reason:      "x",
	}, actorID)
	assert.ErrorIs(t, err, domain.ErrNegativeAdjustment)
}

package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
	"BloodLink/pkg/jwt"
)

type fakeUserRepo struct {
	usersByID     map[string]*entities.User
	usersByEmail  map[string]*entities.User
	donorProfiles map[string]*entities.DonorProfile
	hospitals     []*entities.HospitalProfile
	deleted       []string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		usersByID:     make(map[string]*entities.User),
		usersByEmail:  make(map[string]*entities.User),
		donorProfiles: make(map[string]*entities.DonorProfile),
	}
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) error {
	r.usersByID[user.ID.String()] = user
	r.usersByEmail[user.Email] = user
	if user.DonorProfile != nil {
		r.donorProfiles[user.ID.String()] = user.DonorProfile
	}
	if user.HospitalProfile != nil {
		r.hospitals = append(r.hospitals, user.HospitalProfile)
	}
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	user, ok := r.usersByEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := r.usersByID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) DeleteUser(_ context.Context, id string) error {
	r.deleted = append(r.deleted, id)
	delete(r.usersByID, id)
	return nil
}

func (r *fakeUserRepo) CountAdmins(_ context.Context) (int64, error) {
	var count int64
	for _, user := range r.usersByID {
		if user.Role == entities.RoleAdmin {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) GetDonorProfileByUserID(_ context.Context, userID string) (*entities.DonorProfile, error) {
	profile, ok := r.donorProfiles[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return profile, nil
}

func (r *fakeUserRepo) UpdateDonorProfile(_ context.Context, _ *entities.DonorProfile) error {
	return nil
}

func (r *fakeUserRepo) GetDonorsByBloodGroup(_ context.Context, _ string) ([]*entities.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) ListDonors(_ context.Context, _, _ int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

func (r *fakeUserRepo) GetHospitalProfileByUserID(_ context.Context, userID string) (*entities.HospitalProfile, error) {
	for _, hospital := range r.hospitals {
		if hospital.UserID.String() == userID {
			return hospital, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetHospitalProfileByID(_ context.Context, id string) (*entities.HospitalProfile, error) {
	for _, hospital := range r.hospitals {
		if hospital.ID.String() == id {
			return hospital, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetHospitalsByPincode(_ context.Context, pincode string) ([]*entities.HospitalProfile, error) {
	var result []*entities.HospitalProfile
	for _, hospital := range r.hospitals {
		if hospital.Pincode == pincode {
			result = append(result, hospital)
		}
	}
	return result, nil
}

func (r *fakeUserRepo) UpdateHospitalProfile(_ context.Context, _ *entities.HospitalProfile) error {
	return nil
}

func (r *fakeUserRepo) ListHospitals(_ context.Context, _, _ int) ([]*entities.User, int64, error) {
	return nil, 0, nil
}

type fakeInventoryRepo struct {
	ensured []string
}

func (r *fakeInventoryRepo) GetHospitalInventory(_ context.Context, _ string) ([]*entities.BloodInventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) GetAllInventory(_ context.Context) ([]*entities.BloodInventory, error) {
	return nil, nil
}

func (r *fakeInventoryRepo) EnsureEntries(_ context.Context, hospitalID string) error {
	r.ensured = append(r.ensured, hospitalID)
	return nil
}

func (r *fakeInventoryRepo) Credit(_ context.Context, _, _ string, _ int) error { return nil }

func (r *fakeInventoryRepo) Debit(_ context.Context, _, _ string, _ int) error { return nil }

func (r *fakeInventoryRepo) Adjust(_ context.Context, _, _ uuid.UUID, _ string, _ int, _ string) (*entities.BloodInventory, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeInventoryRepo) ListAdjustments(_ context.Context, _ string) ([]*entities.InventoryAdjustment, error) {
	return nil, nil
}

func newTestService(repo *fakeUserRepo, inv *fakeInventoryRepo) UserService {
	return NewUserService(repo, inv, jwt.NewJWTService("test-secret"))
}

func addHospital(repo *fakeUserRepo, name, pincode string) *entities.HospitalProfile {
	hospital := &entities.HospitalProfile{
		ID:      uuid.New(),
		UserID:  uuid.New(),
		Name:    name,
		Phone:   "080-0000",
		Pincode: pincode,
	}
	repo.hospitals = append(repo.hospitals, hospital)
	return hospital
}

func TestListNearbyHospitals(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeInventoryRepo{})

	donorID := uuid.New()
	repo.donorProfiles[donorID.String()] = &entities.DonorProfile{
		UserID:  donorID,
		Pincode: "560001",
	}

	local := addHospital(repo, "City Hospital", "560001")
	alsoLocal := addHospital(repo, "Lakeside Clinic", "560001")
	addHospital(repo, "Far Away Hospital", "110001")

	hospitals, err := service.ListNearbyHospitals(context.Background(), donorID.String())

	require.NoError(t, err)
	require.Len(t, hospitals, 2)

	ids := []string{hospitals[0].ID, hospitals[1].ID}
	assert.Contains(t, ids, local.ID.String())
	assert.Contains(t, ids, alsoLocal.ID.String())
	for _, h := range hospitals {
		assert.Equal(t, "560001", h.Pincode)
	}
}

func TestListNearbyHospitalsNoProfile(t *testing.T) {
	service := newTestService(newFakeUserRepo(), &fakeInventoryRepo{})

	_, err := service.ListNearbyHospitals(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, domain.ErrDonorProfileNotFound)
}

func TestRegisterHospitalSeedsInventory(t *testing.T) {
	repo := newFakeUserRepo()
	inv := &fakeInventoryRepo{}
	service := newTestService(repo, inv)

	hospital, err := service.RegisterHospital(context.Background(), domain.RegisterHospitalRequest{
		Email:         "hospital@example.com",
		Password:      "supersecret",
		Name:          "City Hospital",
		LicenseNumber: "LIC-42",
		Address:       "1 Main St",
		Pincode:       "560001",
	})

	require.NoError(t, err)
	require.Len(t, repo.hospitals, 1)
	require.Len(t, inv.ensured, 1)
	assert.Equal(t, repo.hospitals[0].ID.String(), inv.ensured[0])
	assert.Equal(t, "560001", hospital.Pincode)
}

func TestDeleteLastAdmin(t *testing.T) {
	repo := newFakeUserRepo()
	service := newTestService(repo, &fakeInventoryRepo{})

	admin := &entities.User{ID: uuid.New(), Email: "admin@example.com", Role: entities.RoleAdmin}
	require.NoError(t, repo.CreateUser(context.Background(), admin))

	err := service.DeleteUser(context.Background(), admin.ID.String())
	assert.ErrorIs(t, err, domain.ErrCannotDeleteLastAdmin)
	assert.Empty(t, repo.deleted)

	second := &entities.User{ID: uuid.New(), Email: "admin2@example.com", Role: entities.RoleAdmin}
	require.NoError(t, repo.CreateUser(context.Background(), second))

	err = service.DeleteUser(context.Background(), admin.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []string{admin.ID.String()}, repo.deleted)
}

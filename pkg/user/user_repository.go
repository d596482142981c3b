package user

import (
	"context"

	"gorm.io/gorm"

	"BloodLink/entities"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		DeleteUser(ctx context.Context, id string) error
		CountAdmins(ctx context.Context) (int64, error)

		GetDonorProfileByUserID(ctx context.Context, userID string) (*entities.DonorProfile, error)
		UpdateDonorProfile(ctx context.Context, profile *entities.DonorProfile) error
		GetDonorsByBloodGroup(ctx context.Context, bloodGroup string) ([]*entities.User, error)
		ListDonors(ctx context.Context, page, limit int) ([]*entities.User, int64, error)

		GetHospitalProfileByUserID(ctx context.Context, userID string) (*entities.HospitalProfile, error)
		GetHospitalProfileByID(ctx context.Context, id string) (*entities.HospitalProfile, error)
		GetHospitalsByPincode(ctx context.Context, pincode string) ([]*entities.HospitalProfile, error)
		UpdateHospitalProfile(ctx context.Context, profile *entities.HospitalProfile) error
		ListHospitals(ctx context.Context, page, limit int) ([]*entities.User, int64, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("DonorProfile").
		Preload("HospitalProfile").
		Where("email = ?", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("DonorProfile").
		Preload("HospitalProfile").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{}).Error
}

func (r *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("role = ?", entities.RoleAdmin).
		Count(&count).Error
	return count, err
}

func (r *userRepository) GetDonorProfileByUserID(ctx context.Context, userID string) (*entities.DonorProfile, error) {
	var profile entities.DonorProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) UpdateDonorProfile(ctx context.Context, profile *entities.DonorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *userRepository) GetDonorsByBloodGroup(ctx context.Context, bloodGroup string) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Preload("DonorProfile").
		Joins("JOIN donor_profiles ON donor_profiles.user_id = users.id").
		Where("users.role = ? AND donor_profiles.blood_group = ?", entities.RoleDonor, bloodGroup).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) ListDonors(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	return r.listByRole(ctx, entities.RoleDonor, "DonorProfile", page, limit)
}

func (r *userRepository) ListHospitals(ctx context.Context, page, limit int) ([]*entities.User, int64, error) {
	return r.listByRole(ctx, entities.RoleHospital, "HospitalProfile", page, limit)
}

func (r *userRepository) listByRole(ctx context.Context, role, preload string, page, limit int) ([]*entities.User, int64, error) {
	var users []*entities.User
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("role = ?", role).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Preload(preload).
		Where("role = ?", role).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, count, nil
}

func (r *userRepository) GetHospitalProfileByUserID(ctx context.Context, userID string) (*entities.HospitalProfile, error) {
	var profile entities.HospitalProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetHospitalProfileByID(ctx context.Context, id string) (*entities.HospitalProfile, error) {
	var profile entities.HospitalProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *userRepository) GetHospitalsByPincode(ctx context.Context, pincode string) ([]*entities.HospitalProfile, error) {
	var hospitals []*entities.HospitalProfile
	if err := r.db.WithContext(ctx).
		Where("pincode = ?", pincode).
		Order("name ASC").
		Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *userRepository) UpdateHospitalProfile(ctx context.Context, profile *entities.HospitalProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

package user

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"BloodLink/domain"
	"BloodLink/entities"
	"BloodLink/pkg/eligibility"
	"BloodLink/pkg/inventory"
	"BloodLink/pkg/jwt"
)

type (
	UserService interface {
		RegisterDonor(ctx context.Context, req domain.RegisterDonorRequest) (*domain.DonorResponse, error)
		RegisterHospital(ctx context.Context, req domain.RegisterHospitalRequest) (*domain.HospitalResponse, error)
		CreateAdmin(ctx context.Context, email, password string) (*domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*entities.User, error)
		CheckEligibility(ctx context.Context, userID string) (bool, string, error)
		UpdateDonorProfile(ctx context.Context, req domain.UpdateDonorProfileRequest, userID string) (*domain.DonorResponse, error)
		UpdateHospitalProfile(ctx context.Context, req domain.UpdateHospitalProfileRequest, userID string) (*domain.HospitalResponse, error)
		ListNearbyHospitals(ctx context.Context, donorUserID string) ([]*domain.NearbyHospital, error)
		ListDonors(ctx context.Context, page, limit int) ([]*domain.DonorResponse, int64, error)
		ListHospitals(ctx context.Context, page, limit int) ([]*domain.HospitalResponse, int64, error)
		DeleteUser(ctx context.Context, userID string) error
	}

	userService struct {
		userRepository      UserRepository
		inventoryRepository inventory.InventoryRepository
		jwtService          jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, inventoryRepository inventory.InventoryRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository:      userRepository,
		inventoryRepository: inventoryRepository,
		jwtService:          jwtService,
	}
}

func (s *userService) RegisterDonor(ctx context.Context, req domain.RegisterDonorRequest) (*domain.DonorResponse, error) {
	if !entities.IsValidBloodGroup(req.BloodGroup) {
		return nil, domain.ErrInvalidBloodGroup
	}

	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := uuid.New()
	user := &entities.User{
		ID:          userID,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        entities.RoleDonor,
		PhoneNumber: req.PhoneNumber,
		DonorProfile: &entities.DonorProfile{
			ID:         uuid.New(),
			UserID:     userID,
			Name:       req.Name,
			Age:        req.Age,
			Gender:     req.Gender,
			BloodGroup: req.BloodGroup,
			Weight:     req.Weight,
			Phone:      req.PhoneNumber,
			Address:    req.Address,
			Pincode:    req.Pincode,

			EmailNotifications: true,
			DonationReminders:  true,
			EligibilityAlerts:  true,
		},
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.toDonorResponse(user, user.DonorProfile), nil
}

func (s *userService) RegisterHospital(ctx context.Context, req domain.RegisterHospitalRequest) (*domain.HospitalResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	userID := uuid.New()
	hospitalID := uuid.New()
	user := &entities.User{
		ID:          userID,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        entities.RoleHospital,
		PhoneNumber: req.PhoneNumber,
		HospitalProfile: &entities.HospitalProfile{
			ID:            hospitalID,
			UserID:        userID,
			Name:          req.Name,
			LicenseNumber: req.LicenseNumber,
			Phone:         req.PhoneNumber,
			Address:       req.Address,
			Pincode:       req.Pincode,
		},
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	// Seed the full inventory up front; readers still self-heal missing rows.
	if err := s.inventoryRepository.EnsureEntries(ctx, hospitalID.String()); err != nil {
		return nil, err
	}

	return s.toHospitalResponse(user, user.HospitalProfile), nil
}

func (s *userService) CreateAdmin(ctx context.Context, email, password string) (*domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Role:     entities.RoleAdmin,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return &domain.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  user.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	if err != nil {
		return nil, err
	}

	return &domain.LoginResponse{Token: token, Role: user.Role}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) CheckEligibility(ctx context.Context, userID string) (bool, string, error) {
	profile, err := s.userRepository.GetDonorProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", domain.ErrDonorProfileNotFound
		}
		return false, "", err
	}

	eligible, reason := eligibility.Evaluate(profile, time.Now())
	return eligible, reason, nil
}

func (s *userService) UpdateDonorProfile(ctx context.Context, req domain.UpdateDonorProfileRequest, userID string) (*domain.DonorResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if user.DonorProfile == nil {
		return nil, domain.ErrDonorProfileNotFound
	}

	profile := user.DonorProfile
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Age != 0 {
		profile.Age = req.Age
	}
	if req.Weight != 0 {
		profile.Weight = req.Weight
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Pincode != "" {
		profile.Pincode = req.Pincode
	}
	if req.EmailNotifications != nil {
		profile.EmailNotifications = *req.EmailNotifications
	}
	if req.SMSNotifications != nil {
		profile.SMSNotifications = *req.SMSNotifications
	}
	if req.DonationReminders != nil {
		profile.DonationReminders = *req.DonationReminders
	}
	if req.EligibilityAlerts != nil {
		profile.EligibilityAlerts = *req.EligibilityAlerts
	}

	if err := s.userRepository.UpdateDonorProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.toDonorResponse(user, profile), nil
}

func (s *userService) UpdateHospitalProfile(ctx context.Context, req domain.UpdateHospitalProfileRequest, userID string) (*domain.HospitalResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if user.HospitalProfile == nil {
		return nil, domain.ErrHospitalNotFound
	}

	profile := user.HospitalProfile
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.Phone != "" {
		profile.Phone = req.Phone
	}
	if req.Address != "" {
		profile.Address = req.Address
	}
	if req.Pincode != "" {
		profile.Pincode = req.Pincode
	}

	if err := s.userRepository.UpdateHospitalProfile(ctx, profile); err != nil {
		return nil, err
	}

	return s.toHospitalResponse(user, profile), nil
}

// ListNearbyHospitals returns the hospitals a donor can request a donation
// at, which is exactly the set sharing the donor's pincode.
func (s *userService) ListNearbyHospitals(ctx context.Context, donorUserID string) ([]*domain.NearbyHospital, error) {
	profile, err := s.userRepository.GetDonorProfileByUserID(ctx, donorUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDonorProfileNotFound
		}
		return nil, err
	}

	hospitals, err := s.userRepository.GetHospitalsByPincode(ctx, profile.Pincode)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.NearbyHospital, 0, len(hospitals))
	for _, hospital := range hospitals {
		result = append(result, &domain.NearbyHospital{
			ID:      hospital.ID.String(),
			Name:    hospital.Name,
			Phone:   hospital.Phone,
			Address: hospital.Address,
			Pincode: hospital.Pincode,
		})
	}
	return result, nil
}

func (s *userService) ListDonors(ctx context.Context, page, limit int) ([]*domain.DonorResponse, int64, error) {
	users, count, err := s.userRepository.ListDonors(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.DonorResponse, 0, len(users))
	for _, user := range users {
		if user.DonorProfile == nil {
			continue
		}
		result = append(result, s.toDonorResponse(user, user.DonorProfile))
	}
	return result, count, nil
}

func (s *userService) ListHospitals(ctx context.Context, page, limit int) ([]*domain.HospitalResponse, int64, error) {
	users, count, err := s.userRepository.ListHospitals(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.HospitalResponse, 0, len(users))
	for _, user := range users {
		if user.HospitalProfile == nil {
			continue
		}
		result = append(result, s.toHospitalResponse(user, user.HospitalProfile))
	}
	return result, count, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if user.IsAdmin() {
		admins, err := s.userRepository.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return domain.ErrCannotDeleteLastAdmin
		}
	}

	return s.userRepository.DeleteUser(ctx, userID)
}

func (s *userService) toDonorResponse(user *entities.User, profile *entities.DonorProfile) *domain.DonorResponse {
	eligible, reason := eligibility.Evaluate(profile, time.Now())
	return &domain.DonorResponse{
		UserResponse: domain.UserResponse{
			ID:          user.ID.String(),
			Email:       user.Email,
			Role:        user.Role,
			PhoneNumber: user.PhoneNumber,
		},
		Name:             profile.Name,
		Age:              profile.Age,
		Gender:           profile.Gender,
		BloodGroup:       profile.BloodGroup,
		Weight:           profile.Weight,
		Address:          profile.Address,
		Pincode:          profile.Pincode,
		LastDonationDate: profile.LastDonationDate,
		Eligible:         eligible,
		EligibilityNote:  reason,
	}
}

func (s *userService) toHospitalResponse(user *entities.User, profile *entities.HospitalProfile) *domain.HospitalResponse {
	return &domain.HospitalResponse{
		UserResponse: domain.UserResponse{
			ID:          user.ID.String(),
			Email:       user.Email,
			Role:        user.Role,
			PhoneNumber: user.PhoneNumber,
		},
		Name:          profile.Name,
		LicenseNumber: profile.LicenseNumber,
		Address:       profile.Address,
		Pincode:       profile.Pincode,
	}
}

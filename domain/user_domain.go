package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister         = "user registered successfully"
	MessageSuccessLogin            = "login successful"
	MessageSuccessGetMe            = "user retrieved successfully"
	MessageSuccessUpdateProfile    = "profile updated successfully"
	MessageSuccessDeleteUser       = "user deleted successfully"
	MessageSuccessGetUsers         = "users retrieved successfully"
	MessageSuccessGetHospitals     = "hospitals retrieved successfully"
	MessageSuccessCheckEligibility = "eligibility checked successfully"

	MessageFailedRegister      = "failed to register user"
	MessageFailedLogin         = "failed to login"
	MessageFailedGetMe         = "failed to retrieve user"
	MessageFailedUpdateProfile = "failed to update profile"
	MessageFailedDeleteUser    = "failed to delete user"
	MessageFailedGetUsers      = "failed to retrieve users"
	MessageFailedGetHospitals  = "failed to retrieve hospitals"

	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrUserNotFound          = errors.New("user not found")
	ErrDonorProfileNotFound  = errors.New("donor profile not found")
	ErrHospitalNotFound      = errors.New("hospital profile not found")
	ErrInvalidBloodGroup     = errors.New("invalid blood group")
	ErrCannotDeleteLastAdmin = errors.New("cannot delete the last admin account")
)

type (
	RegisterDonorRequest struct {
		Email       string  `json:"email" validate:"required,email"`
		Password    string  `json:"password" validate:"required,min=8"`
		PhoneNumber string  `json:"phone_number" validate:"omitempty,min=10,max=15"`
		Name        string  `json:"name" validate:"required"`
		Age         int     `json:"age" validate:"required,min=1,max=120"`
		Gender      string  `json:"gender" validate:"required,oneof=male female other"`
		BloodGroup  string  `json:"blood_group" validate:"required"`
		Weight      float64 `json:"weight" validate:"required,gt=0"`
		Address     string  `json:"address" validate:"required"`
		Pincode     string  `json:"pincode" validate:"required,len=6"`
	}

	RegisterHospitalRequest struct {
		Email         string `json:"email" validate:"required,email"`
		Password      string `json:"password" validate:"required,min=8"`
		PhoneNumber   string `json:"phone_number" validate:"omitempty,min=10,max=15"`
		Name          string `json:"name" validate:"required"`
		LicenseNumber string `json:"license_number" validate:"required"`
		Address       string `json:"address" validate:"required"`
		Pincode       string `json:"pincode" validate:"required,len=6"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	UpdateDonorProfileRequest struct {
		Name    string  `json:"name" validate:"omitempty"`
		Age     int     `json:"age" validate:"omitempty,min=1,max=120"`
		Weight  float64 `json:"weight" validate:"omitempty,gt=0"`
		Phone   string  `json:"phone" validate:"omitempty,min=10,max=15"`
		Address string  `json:"address" validate:"omitempty"`
		Pincode string  `json:"pincode" validate:"omitempty,len=6"`

		EmailNotifications *bool `json:"email_notifications" validate:"omitempty"`
		SMSNotifications   *bool `json:"sms_notifications" validate:"omitempty"`
		DonationReminders  *bool `json:"donation_reminders" validate:"omitempty"`
		EligibilityAlerts  *bool `json:"eligibility_alerts" validate:"omitempty"`
	}

	UpdateHospitalProfileRequest struct {
		Name    string `json:"name" validate:"omitempty"`
		Phone   string `json:"phone" validate:"omitempty,min=10,max=15"`
		Address string `json:"address" validate:"omitempty"`
		Pincode string `json:"pincode" validate:"omitempty,len=6"`
	}

	UserResponse struct {
		ID          string `json:"id"`
		Email       string `json:"email"`
		Role        string `json:"role"`
		PhoneNumber string `json:"phone_number,omitempty"`
	}

	DonorResponse struct {
		UserResponse
		Name             string     `json:"name"`
		Age              int        `json:"age"`
		Gender           string     `json:"gender"`
		BloodGroup       string     `json:"blood_group"`
		Weight           float64    `json:"weight"`
		Address          string     `json:"address"`
		Pincode          string     `json:"pincode"`
		LastDonationDate *time.Time `json:"last_donation_date,omitempty"`
		Eligible         bool       `json:"eligible"`
		EligibilityNote  string     `json:"eligibility_note"`
	}

	HospitalResponse struct {
		UserResponse
		Name          string `json:"name"`
		LicenseNumber string `json:"license_number"`
		Address       string `json:"address"`
		Pincode       string `json:"pincode"`
	}

	// NearbyHospital is the donor-facing view of a hospital they can submit
	// a donation request to. ID is the hospital profile id expected by
	// CreateDonationRequest.
	NearbyHospital struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
		Pincode string `json:"pincode"`
	}
)

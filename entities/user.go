package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleDonor    = "donor"
	RoleHospital = "hospital"
	RoleAdmin    = "admin"
)

type User struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email         string    `gorm:"uniqueIndex" json:"email"`
	Password      string    `json:"-"`
	Role          string    `json:"role"` // donor, hospital, admin
	PhoneNumber   string    `json:"phone_number,omitempty"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`

	DonorProfile    *DonorProfile    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"donor_profile,omitempty"`
	HospitalProfile *HospitalProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"hospital_profile,omitempty"`
	Notifications   []*Notification  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Donations       []*Donation      `gorm:"foreignKey:DonorID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type DonorProfile struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name             string     `json:"name"`
	Age              int        `json:"age"`
	Gender           string     `json:"gender"`
	BloodGroup       string     `json:"blood_group"`
	Weight           float64    `json:"weight"` // kg
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	Pincode          string     `json:"pincode"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty"`

	// Notification preferences
	EmailNotifications bool `gorm:"default:true" json:"email_notifications"`
	SMSNotifications   bool `gorm:"default:false" json:"sms_notifications"`
	DonationReminders  bool `gorm:"default:true" json:"donation_reminders"`
	EligibilityAlerts  bool `gorm:"default:true" json:"eligibility_alerts"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

type HospitalProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex" json:"user_id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"license_number"`
	Phone         string    `json:"phone"`
	Address       string    `json:"address"`
	Pincode       string    `json:"pincode"`

	User           *User             `gorm:"foreignKey:UserID" json:"-"`
	BloodInventory []*BloodInventory `gorm:"foreignKey:HospitalID;constraint:OnDelete:CASCADE" json:"-"`
	Donations      []*Donation       `gorm:"foreignKey:HospitalID;constraint:OnDelete:CASCADE" json:"-"`
	Timestamp
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	DonationStatusPending   = "pending"
	DonationStatusApproved  = "approved"
	DonationStatusRejected  = "rejected"
	DonationStatusCompleted = "completed"
	DonationStatusCancelled = "cancelled"
)

type Donation struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	DonorID    uuid.UUID `gorm:"type:uuid;index" json:"donor_id"`
	HospitalID uuid.UUID `gorm:"type:uuid;index" json:"hospital_id"`
	BloodGroup string    `json:"blood_group"`
	Units      int       `gorm:"default:1" json:"units"`
	Status     string    `gorm:"default:pending" json:"status"` // pending, approved, rejected, completed, cancelled

	RequestDate      time.Time  `json:"request_date"`
	ApprovalDate     *time.Time `json:"approval_date,omitempty"`
	RejectionDate    *time.Time `json:"rejection_date,omitempty"`
	CompletionDate   *time.Time `json:"completion_date,omitempty"`
	CancellationDate *time.Time `json:"cancellation_date,omitempty"`
	Notes            string     `json:"notes,omitempty"`

	Donor    *User            `gorm:"foreignKey:DonorID" json:"donor,omitempty"`
	Hospital *HospitalProfile `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Timestamp
}

type BloodInventory struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	HospitalID  uuid.UUID `gorm:"type:uuid;uniqueIndex:unique_blood_inventory" json:"hospital_id"`
	BloodGroup  string    `gorm:"uniqueIndex:unique_blood_inventory" json:"blood_group"`
	Units       int       `gorm:"default:0" json:"units"`
	LastUpdated time.Time `json:"last_updated"`

	Hospital *HospitalProfile `gorm:"foreignKey:HospitalID" json:"-"`
	Timestamp
}

const (
	AdjustmentAdd    = "add"
	AdjustmentDeduct = "deduct"
)

// InventoryAdjustment is an append-only audit record of every manual stock
// correction made outside the donation flow.
type InventoryAdjustment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	InventoryID uuid.UUID `gorm:"type:uuid;index" json:"inventory_id"`
	ActorID     uuid.UUID `gorm:"type:uuid" json:"actor_id"`
	Direction   string    `json:"direction"` // add, deduct
	Units       int       `json:"units"`
	Reason      string    `json:"reason"`

	Inventory *BloodInventory `gorm:"foreignKey:InventoryID" json:"-"`
	Timestamp
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChannelSystem = "system"
	ChannelEmail  = "email"
	ChannelSMS    = "sms"
)

// Notification is one row per logical event per delivery channel.
type Notification struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;index" json:"user_id"`
	Title          string    `gorm:"default:Notification" json:"title"`
	Message        string    `json:"message"`
	Type           string    `json:"notification_type"`           // donation_approved, donation_rejected, ...
	DeliveryMethod string    `gorm:"default:system" json:"delivery_method"` // system, email, sms
	IsSent         bool      `gorm:"default:false" json:"is_sent"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	SentAt         *time.Time `json:"sent_at,omitempty"`

	RelatedEntityType string     `json:"related_entity_type,omitempty"` // donation, hospital, user
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid" json:"related_entity_id,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
	Timestamp
}

package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetNotifications = "notifications retrieved successfully"
	MessageSuccessMarkRead         = "notification marked as read"
	MessageSuccessSendTestSMS      = "test SMS sent"

	MessageFailedGetNotifications = "failed to retrieve notifications"
	MessageFailedMarkRead         = "failed to mark notification as read"
	MessageFailedSendTestSMS      = "failed to send test SMS"

	ErrNotificationNotFound = errors.New("notification not found")
)

// Notification types used across the lifecycle and scheduler.
const (
	NotificationDonationRequested = "donation_requested"
	NotificationDonationApproved  = "donation_approved"
	NotificationDonationRejected  = "donation_rejected"
	NotificationDonationCompleted = "donation_completed"
	NotificationDonationCancelled = "donation_cancelled"
	NotificationBloodRequest      = "blood_request"
	NotificationDonationReminder  = "donation_reminder"
)

type (
	NotifyRequest struct {
		UserID  string `json:"user_id" validate:"required,uuid"`
		Title   string `json:"title" validate:"required"`
		Message string `json:"message" validate:"required"`
		Type    string `json:"type" validate:"required"`

		// Channels overrides preference-based derivation when non-empty.
		Channels []string `json:"channels" validate:"omitempty,dive,oneof=system email sms"`

		RelatedEntityType string `json:"related_entity_type" validate:"omitempty"`
		RelatedEntityID   string `json:"related_entity_id" validate:"omitempty,uuid"`
	}

	NotificationResponse struct {
		ID             string     `json:"id"`
		Title          string     `json:"title"`
		Message        string     `json:"message"`
		Type           string     `json:"notification_type"`
		DeliveryMethod string     `json:"delivery_method"`
		IsSent         bool       `json:"is_sent"`
		IsRead         bool       `json:"is_read"`
		CreatedAt      time.Time  `json:"created_at"`
		SentAt         *time.Time `json:"sent_at,omitempty"`
	}

	TestSMSRequest struct {
		PhoneNumber string `json:"phone_number" validate:"required,min=10,max=15"`
		Message     string `json:"message" validate:"required"`
	}
)

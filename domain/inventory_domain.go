package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetInventory     = "blood inventory retrieved successfully"
	MessageSuccessAdjustInventory  = "blood inventory adjusted successfully"
	MessageSuccessGetAdjustments   = "inventory adjustments retrieved successfully"

	MessageFailedGetInventory    = "failed to retrieve blood inventory"
	MessageFailedAdjustInventory = "failed to adjust blood inventory"
	MessageFailedGetAdjustments  = "failed to retrieve inventory adjustments"

	ErrInventoryNotFound  = errors.New("inventory entry not found")
	ErrInsufficientStock  = errors.New("cannot deduct more units than available in stock")
	ErrInvalidAdjustment  = errors.New("invalid adjustment direction")
	ErrNegativeAdjustment = errors.New("adjustment units must be positive")
)

type (
	AdjustInventoryRequest struct {
		InventoryID string `json:"inventory_id" validate:"required,uuid"`
		Direction   string `json:"direction" validate:"required,oneof=add deduct"`
		Units       int    `json:"units" validate:"required,min=1"`
		Reason      string `json:"reason" validate:"required"`
	}

	InventoryEntry struct {
		ID          string    `json:"id"`
		HospitalID  string    `json:"hospital_id"`
		BloodGroup  string    `json:"blood_group"`
		Units       int       `json:"units"`
		LastUpdated time.Time `json:"last_updated"`
	}

	InventoryAdjustmentEntry struct {
		ID          string    `json:"id"`
		InventoryID string    `json:"inventory_id"`
		ActorID     string    `json:"actor_id"`
		Direction   string    `json:"direction"`
		Units       int       `json:"units"`
		Reason      string    `json:"reason"`
		CreatedAt   time.Time `json:"created_at"`
	}
)

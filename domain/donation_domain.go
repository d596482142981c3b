package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreateDonation   = "donation request submitted successfully"
	MessageSuccessGetDonations     = "donations retrieved successfully"
	MessageSuccessApproveDonation  = "donation request approved successfully"
	MessageSuccessRejectDonation   = "donation request rejected"
	MessageSuccessCompleteDonation = "donation marked as completed"
	MessageSuccessCancelDonation   = "donation request cancelled"
	MessageSuccessBroadcastRequest = "blood request broadcast sent"

	MessageFailedCreateDonation   = "failed to submit donation request"
	MessageFailedGetDonations     = "failed to retrieve donations"
	MessageFailedApproveDonation  = "failed to approve donation"
	MessageFailedRejectDonation   = "failed to reject donation"
	MessageFailedCompleteDonation = "failed to complete donation"
	MessageFailedCancelDonation   = "failed to cancel donation"
	MessageFailedBroadcastRequest = "failed to broadcast blood request"

	ErrDonationNotFound           = errors.New("donation not found")
	ErrUnauthorizedDonationAccess = errors.New("unauthorized access to donation")
	ErrDonationConflict           = errors.New("donation has already been processed")
	ErrDonorNotEligible           = errors.New("donor is not eligible to donate")
	ErrHospitalPincodeMismatch    = errors.New("hospital is outside the donor's pincode area")
	ErrInvalidUnits               = errors.New("invalid number of units")
)

const (
	// Donor-initiated requests carry at most two units per draw.
	MinDonationUnits = 1
	MaxDonationUnits = 2

	// Hospital broadcasts may ask for a larger pool.
	MinBroadcastUnits = 1
	MaxBroadcastUnits = 10
)

type (
	CreateDonationRequest struct {
		HospitalID string `json:"hospital_id" validate:"required,uuid"`
		Units      int    `json:"units" validate:"required,min=1,max=2"`
		Notes      string `json:"notes" validate:"omitempty"`
	}

	BroadcastBloodRequest struct {
		BloodGroup string `json:"blood_group" validate:"required"`
		Units      int    `json:"units" validate:"required,min=1,max=10"`
	}

	BroadcastResult struct {
		NotifiedDonors int `json:"notified_donors"`
		FailedDonors   int `json:"failed_donors"`
	}

	Donation struct {
		ID               string     `json:"id"`
		DonorID          string     `json:"donor_id"`
		DonorName        string     `json:"donor_name,omitempty"`
		HospitalID       string     `json:"hospital_id"`
		HospitalName     string     `json:"hospital_name,omitempty"`
		BloodGroup       string     `json:"blood_group"`
		Units            int        `json:"units"`
		Status           string     `json:"status"`
		RequestDate      time.Time  `json:"request_date"`
		ApprovalDate     *time.Time `json:"approval_date,omitempty"`
		RejectionDate    *time.Time `json:"rejection_date,omitempty"`
		CompletionDate   *time.Time `json:"completion_date,omitempty"`
		CancellationDate *time.Time `json:"cancellation_date,omitempty"`
		Notes            string     `json:"notes,omitempty"`
	}

	DonorDonationStatistics struct {
		TotalDonations     int64 `json:"total_donations"`
		CompletedDonations int64 `json:"completed_donations"`
		PendingDonations   int64 `json:"pending_donations"`
		TotalUnits         int64 `json:"total_units"`
		LivesSaved         int64 `json:"lives_saved"`
	}

	HospitalDonationStatistics struct {
		TotalDonations     int64 `json:"total_donations"`
		TotalUnits         int64 `json:"total_units"`
		MonthDonations     int64 `json:"month_donations"`
		MonthUnits         int64 `json:"month_units"`
		PendingDonations   int64 `json:"pending_donations"`
		CompletedDonations int64 `json:"completed_donations"`
	}
)

package eligibility

import (
	"fmt"
	"time"

	"BloodLink/entities"
)

const (
	MinAge = 18
	MinWeightKg = 50.0
	// DonationIntervalDays is the required spacing between two donations.
	DonationIntervalDays = 180
)

// Evaluate applies the donor fitness rules in order; the first failing rule
// determines the reason. It is a pure function of the profile and the clock.
func Evaluate(profile *entities.DonorProfile, now time.Time) (bool, string) {
	if profile.Age < MinAge {
		return false, "Age must be at least 18 years"
	}

	if profile.Weight < MinWeightKg {
		return false, "Weight must be at least 50 kg"
	}

	if profile.LastDonationDate != nil {
		daysSince := int(now.Sub(*profile.LastDonationDate).Hours() / 24)
		if daysSince < DonationIntervalDays {
			remaining := DonationIntervalDays - daysSince
			return false, fmt.Sprintf("You must wait %d more days before donating again", remaining)
		}
	}

	return true, "You are eligible to donate blood"
}

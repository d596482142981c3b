package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BloodGroups is the canonical set of ABO/Rh combinations tracked per hospital.
var BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

func IsValidBloodGroup(bloodGroup string) bool {
	for _, bg := range BloodGroups {
		if bg == bloodGroup {
			return true
		}
	}
	return false
}

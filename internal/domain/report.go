package domain

import (
	"encoding/json"
	"time"
)

type ReportType string

const (
	ReportTypeSingle     ReportType = "single"
	ReportTypeComparison ReportType = "comparison"
)

func (t ReportType) Valid() bool {
	return t == ReportTypeSingle || t == ReportTypeComparison
}

type UnlockType string

const (
	UnlockTypeSingle     UnlockType = "single_unlock"
	UnlockTypeComparison UnlockType = "comparison_unlock"
)

// UnlockTypeFor derives the stored unlock type from the report type.
func UnlockTypeFor(t ReportType) UnlockType {
	if t == ReportTypeComparison {
		return UnlockTypeComparison
	}
	return UnlockTypeSingle
}

// UnlockCost is the credit price of one report unlock. Comparison reports
// cost the same as single reports; see DESIGN.md for the open question on
// a future price split.
const UnlockCost = 1

// VehicleReport records that a (user, registration, report type) tuple has
// been unlocked. Unique per that key; re-unlocking updates, never
// duplicates.
type VehicleReport struct {
	ID                     int64           `json:"id"`
	UserID                 string          `json:"user_id"`
	RegistrationNumber     string          `json:"registration_number"`
	ReportType             ReportType      `json:"report_type"`
	ComparisonRegistration *string         `json:"comparison_registration,omitempty"`
	CreditsUsed            int             `json:"credits_used"`
	UnlockedAt             *time.Time      `json:"unlocked_at,omitempty"`
	UnlockType             UnlockType      `json:"unlock_type"`
	ReportData             json.RawMessage `json:"report_data,omitempty"`
}

// AccessStatus is the read used to gate the report UI. It is not a
// security boundary by itself.
type AccessStatus struct {
	HasAccess   bool       `json:"hasAccess"`
	IsLoggedIn  bool       `json:"isLoggedIn"`
	UnlockedAt  *time.Time `json:"unlockedAt,omitempty"`
	CreditsUsed int        `json:"creditsUsed,omitempty"`
}

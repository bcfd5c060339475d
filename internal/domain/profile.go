package domain

import "time"

// Identity is the authenticated user resolved from the external auth
// provider's session. It is never persisted as-is; the profile row is.
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Profile holds the per-user credit balance. The credits column is only
// ever mutated inside a ledger transaction, never directly.
type Profile struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Credits   int       `json:"credits"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

// DefaultFullName is used when the auth provider supplies no display name.
const DefaultFullName = "Bilio-användare"

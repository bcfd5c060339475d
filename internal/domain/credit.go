package domain

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeUsage    TransactionType = "usage"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeBonus    TransactionType = "bonus"
)

// CreditTransaction is an append-only audit row. Amount is signed:
// positive for purchase/bonus, negative for usage. For any user the sum
// of amounts must equal the profile's credits balance.
type CreditTransaction struct {
	ID          int64           `json:"id"`
	UserID      string          `json:"user_id"`
	Type        TransactionType `json:"type"`
	Amount      int             `json:"amount"`
	Description string          `json:"description"`
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedOn   time.Time       `json:"created_at"`
}

// CreditPackage is read-only reference data for the purchase flow.
// PriceSEK is in minor units (öre).
type CreditPackage struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Credits     int    `json:"credits"`
	PriceSEK    int64  `json:"price_sek"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active"`
}

type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusCompleted PurchaseStatus = "completed"
	PurchaseStatusExpired   PurchaseStatus = "expired"
)

// Purchase tracks a checkout session from creation to fulfillment. The
// checkout session id is unique so webhook fulfillment stays idempotent.
type Purchase struct {
	ID                int64          `json:"id"`
	UserID            string         `json:"user_id"`
	PackageID         int64          `json:"package_id"`
	CheckoutSessionID string         `json:"checkout_session_id"`
	Status            PurchaseStatus `json:"status"`
	CreatedOn         time.Time      `json:"created_on"`
	CompletedOn       *time.Time     `json:"completed_on,omitempty"`
}

// InsufficientCreditsError is the business rejection from UseCredits. It
// carries both amounts so the caller can present a top-up prompt.
type InsufficientCreditsError struct {
	Current  int
	Required int
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: have %d, need %d", e.Current, e.Required)
}

// LedgerError is a domain failure reported by the atomic ledger operation
// itself, as opposed to a transport-level failure reaching the store.
type LedgerError struct {
	Reason string
}

func (e *LedgerError) Error() string {
	return "ledger rejected operation: " + e.Reason
}

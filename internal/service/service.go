package service

import (
	"context"
	"encoding/json"
	"fmt"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/score"
)

// InvalidArgumentError is a request validation failure with a stable field
// reference for the client.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

type CreditService interface {
	// GetBalance returns the user's profile, lazily creating it with zero
	// credits on first read.
	GetBalance(ctx context.Context, ident domain.Identity) (*domain.Profile, error)
	AddDemoCredits(ctx context.Context, ident domain.Identity, amount int) (newBalance int, err error)
	UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (remaining int, err error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error)
	ListPackages(ctx context.Context) ([]domain.CreditPackage, error)
}

// UnlockResult is the outcome of an unlock attempt. AlreadyUnlocked means
// no credit was spent on this call.
type UnlockResult struct {
	AlreadyUnlocked  bool
	RemainingCredits int
	CreditsUsed      int
}

type ReportService interface {
	CheckAccess(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.AccessStatus, error)
	Unlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType, comparisonRegistration string) (*UnlockResult, error)
}

// VehicleDataClient is the external lookup collaborator, injected so
// handlers and tests can substitute it.
type VehicleDataClient interface {
	Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error)
	LookupByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error)
}

type VehicleService interface {
	Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error)
	HealthScore(ctx context.Context, registrationNumber string) (*score.Result, error)
}

type PaymentService interface {
	CreateCheckout(ctx context.Context, ident domain.Identity, packageID int64) (checkoutURL string, err error)
	HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error
}

type EmailService interface {
	SendPurchaseReceipt(ctx context.Context, toEmail, toName string, pkg *domain.CreditPackage, newBalance int) error
}

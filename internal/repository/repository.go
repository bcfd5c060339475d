package repository

import (
	"context"
	"time"

	"bilio-backend/internal/domain"
)

type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
	Create(ctx context.Context, profile *domain.Profile) error
}

// LedgerRepository is the atomic credit-accounting collaborator. AddCredits
// and UseCredits must execute balance update and audit insert as a single
// transaction, serialized per user.
type LedgerRepository interface {
	AddCredits(ctx context.Context, userID string, amount int, txType domain.TransactionType, description, referenceID string) (newBalance int, err error)
	UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (remaining int, err error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error)
}

type ReportRepository interface {
	GetUnlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.VehicleReport, error)
	UpsertUnlock(ctx context.Context, report *domain.VehicleReport) error
}

type PackageRepository interface {
	ListActive(ctx context.Context) ([]domain.CreditPackage, error)
	GetByID(ctx context.Context, id int64) (*domain.CreditPackage, error)
}

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *domain.Purchase) error
	GetBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error)
	// MarkCompleted flips a pending purchase to completed. Returns false
	// when the session was already completed, keeping webhook fulfillment
	// idempotent.
	MarkCompleted(ctx context.Context, sessionID string) (bool, error)
	ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

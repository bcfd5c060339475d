package postgres

import (
	"context"
	"database/sql"
	"time"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

type purchaseRepository struct {
	db *sql.DB
}

func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *domain.Purchase) error {
	query := `INSERT INTO purchases (user_id, package_id, checkout_session_id, status, created_on)
	          VALUES ($1, $2, $3, $4, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		purchase.UserID, purchase.PackageID, purchase.CheckoutSessionID, purchase.Status).
		Scan(&purchase.ID, &purchase.CreatedOn)
	return mapError(err)
}

func (r *purchaseRepository) GetBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error) {
	query := `SELECT id, user_id, package_id, checkout_session_id, status, created_on, completed_on
	          FROM purchases WHERE checkout_session_id = $1`
	var p domain.Purchase
	err := r.db.QueryRowContext(ctx, query, sessionID).
		Scan(&p.ID, &p.UserID, &p.PackageID, &p.CheckoutSessionID, &p.Status, &p.CreatedOn, &p.CompletedOn)
	if err != nil {
		return nil, mapError(err)
	}
	return &p, nil
}

// MarkCompleted only transitions pending rows, so replayed webhook events
// report false and skip re-crediting.
func (r *purchaseRepository) MarkCompleted(ctx context.Context, sessionID string) (bool, error) {
	query := `UPDATE purchases SET status = $2, completed_on = NOW()
	          WHERE checkout_session_id = $1 AND status = $3`
	result, err := r.db.ExecContext(ctx, query, sessionID, domain.PurchaseStatusCompleted, domain.PurchaseStatusPending)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *purchaseRepository) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	query := `UPDATE purchases SET status = $1
	          WHERE status = $2 AND created_on < $3`
	cutoff := time.Now().Add(-olderThan)
	result, err := r.db.ExecContext(ctx, query, domain.PurchaseStatusExpired, domain.PurchaseStatusPending, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

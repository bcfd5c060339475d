package postgres

import (
	"context"
	"database/sql"
	"errors"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

type ledgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// AddCredits increments the balance and appends the audit row in one
// transaction. Amount must already be validated positive by the caller.
func (r *ledgerRepository) AddCredits(ctx context.Context, userID string, amount int, txType domain.TransactionType, description, referenceID string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newBalance int
	query := `UPDATE profiles SET credits = credits + $2, updated_on = NOW()
	          WHERE user_id = $1 RETURNING credits`
	err = tx.QueryRowContext(ctx, query, userID, amount).Scan(&newBalance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &domain.LedgerError{Reason: "no profile for user"}
	}
	if err != nil {
		return 0, err
	}

	insert := `INSERT INTO credit_transactions (user_id, type, amount, description, reference_id, created_on)
	           VALUES ($1, $2, $3, $4, $5, NOW())`
	if _, err := tx.ExecContext(ctx, insert, userID, txType, amount, description, referenceID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// UseCredits deducts amount if and only if the balance covers it. The row
// lock serializes concurrent spenders on the same profile, so the balance
// check and the deduction cannot interleave.
func (r *ledgerRepository) UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var current int
	err = tx.QueryRowContext(ctx, `SELECT credits FROM profiles WHERE user_id = $1 FOR UPDATE`, userID).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		// No profile means no credits were ever granted.
		return 0, &domain.InsufficientCreditsError{Current: 0, Required: amount}
	}
	if err != nil {
		return 0, err
	}

	if current < amount {
		return 0, &domain.InsufficientCreditsError{Current: current, Required: amount}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE profiles SET credits = credits - $2, updated_on = NOW() WHERE user_id = $1`, userID, amount); err != nil {
		return 0, err
	}

	insert := `INSERT INTO credit_transactions (user_id, type, amount, description, reference_id, created_on)
	           VALUES ($1, $2, $3, $4, $5, NOW())`
	if _, err := tx.ExecContext(ctx, insert, userID, domain.TransactionTypeUsage, -amount, description, referenceID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return current - amount, nil
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error) {
	query := `SELECT id, user_id, type, amount, COALESCE(description, ''), COALESCE(reference_id, ''), created_on
	          FROM credit_transactions WHERE user_id = $1
	          ORDER BY created_on DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.CreditTransaction
	for rows.Next() {
		var t domain.CreditTransaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Type, &t.Amount, &t.Description, &t.ReferenceID, &t.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int
	countQuery := `SELECT count(*) FROM credit_transactions WHERE user_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}

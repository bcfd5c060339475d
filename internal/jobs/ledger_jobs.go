package jobs

import (
	"context"
	"time"

	"bilio-backend/internal/logger"
)

const (
	jobTimeout         = 5 * time.Minute
	stalePurchaseAfter = 24 * time.Hour
)

// AuditLedger checks every profile balance against the sum of its
// transaction amounts and reports drift. It never repairs; drift means a
// bug or a fulfillment failure that needs a human.
func (jr *JobRunner) AuditLedger() {
	jr.runWithRecovery("AuditLedger", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		query := `
			SELECT p.user_id, p.credits, COALESCE(SUM(t.amount), 0) AS tx_sum
			FROM profiles p
			LEFT JOIN credit_transactions t ON t.user_id = p.user_id
			GROUP BY p.user_id, p.credits
			HAVING p.credits <> COALESCE(SUM(t.amount), 0)`

		rows, err := jr.db.QueryContext(ctx, query)
		if err != nil {
			logger.Error("ledger audit query failed", "error", err)
			return
		}
		defer rows.Close()

		mismatches := 0
		for rows.Next() {
			var userID string
			var balance, txSum int
			if err := rows.Scan(&userID, &balance, &txSum); err != nil {
				logger.Error("ledger audit scan failed", "error", err)
				return
			}
			mismatches++
			logger.Error("ledger drift detected",
				"user_id", userID, "balance", balance, "transaction_sum", txSum)
		}
		if err := rows.Err(); err != nil {
			logger.Error("ledger audit iteration failed", "error", err)
			return
		}

		if mismatches == 0 {
			logger.Info("ledger audit clean")
		} else {
			logger.Warn("ledger audit found drift", "mismatched_users", mismatches)
		}
	})
}

// ExpireStalePurchases marks checkout sessions that never completed as
// expired so they stop matching webhook fulfillment.
func (jr *JobRunner) ExpireStalePurchases() {
	jr.runWithRecovery("ExpireStalePurchases", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		expired, err := jr.store.PurchaseRepository.ExpireStale(ctx, stalePurchaseAfter)
		if err != nil {
			logger.Error("expiring stale purchases failed", "error", err)
			return
		}
		if expired > 0 {
			logger.Info("expired stale purchases", "count", expired)
		}
	})
}

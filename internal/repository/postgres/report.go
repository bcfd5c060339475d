package postgres

import (
	"context"
	"database/sql"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

type reportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) repository.ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetUnlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.VehicleReport, error) {
	query := `SELECT id, user_id, registration_number, report_type, comparison_registration,
	                 credits_used, unlocked_at, COALESCE(unlock_type, ''), report_data
	          FROM vehicle_reports
	          WHERE user_id = $1 AND registration_number = $2 AND report_type = $3`
	var rep domain.VehicleReport
	err := r.db.QueryRowContext(ctx, query, userID, registrationNumber, reportType).
		Scan(&rep.ID, &rep.UserID, &rep.RegistrationNumber, &rep.ReportType, &rep.ComparisonRegistration,
			&rep.CreditsUsed, &rep.UnlockedAt, &rep.UnlockType, &rep.ReportData)
	if err != nil {
		return nil, mapError(err)
	}
	return &rep, nil
}

// UpsertUnlock inserts the unlock record, or refreshes a stale row for the
// same (user, registration, report type) key. The unique constraint on
// that key is what makes repeated unlocks update instead of duplicate.
func (r *reportRepository) UpsertUnlock(ctx context.Context, report *domain.VehicleReport) error {
	query := `INSERT INTO vehicle_reports
	            (user_id, registration_number, report_type, comparison_registration,
	             credits_used, unlocked_at, unlock_type, report_data)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (user_id, registration_number, report_type) DO UPDATE
	            SET comparison_registration = EXCLUDED.comparison_registration,
	                credits_used = EXCLUDED.credits_used,
	                unlocked_at = EXCLUDED.unlocked_at,
	                unlock_type = EXCLUDED.unlock_type
	          RETURNING id`
	var reportData any
	if report.ReportData != nil {
		reportData = []byte(report.ReportData)
	}
	err := r.db.QueryRowContext(ctx, query,
		report.UserID, report.RegistrationNumber, report.ReportType, report.ComparisonRegistration,
		report.CreditsUsed, report.UnlockedAt, report.UnlockType, reportData).
		Scan(&report.ID)
	return mapError(err)
}

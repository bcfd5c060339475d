package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"bilio-backend/internal/domain"
)

func TestReportRepository_GetUnlock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReportRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		unlockedAt := time.Now()
		mock.ExpectQuery("SELECT id, user_id, registration_number").
			WithArgs("user-1", "ABC123", "single").
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "user_id", "registration_number", "report_type", "comparison_registration",
				"credits_used", "unlocked_at", "unlock_type", "report_data",
			}).AddRow(1, "user-1", "ABC123", "single", nil, 1, unlockedAt, "single_unlock", nil))

		rep, err := repo.GetUnlock(ctx, "user-1", "ABC123", domain.ReportTypeSingle)
		assert.NoError(t, err)
		assert.Equal(t, 1, rep.CreditsUsed)
		assert.NotNil(t, rep.UnlockedAt)
		assert.Equal(t, domain.UnlockTypeSingle, rep.UnlockType)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, registration_number").
			WithArgs("user-1", "XYZ789", "single").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetUnlock(ctx, "user-1", "XYZ789", domain.ReportTypeSingle)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestReportRepository_UpsertUnlock(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewReportRepository(db)
	ctx := context.Background()

	t.Run("Insert", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("INSERT INTO vehicle_reports").
			WithArgs("user-1", "ABC123", "single", nil, 1, now, "single_unlock", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		report := &domain.VehicleReport{
			UserID:             "user-1",
			RegistrationNumber: "ABC123",
			ReportType:         domain.ReportTypeSingle,
			CreditsUsed:        1,
			UnlockedAt:         &now,
			UnlockType:         domain.UnlockTypeSingle,
		}
		err := repo.UpsertUnlock(ctx, report)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), report.ID)
	})

	t.Run("ComparisonCarriesSecondRegistration", func(t *testing.T) {
		now := time.Now()
		cmp := "XYZ789"
		mock.ExpectQuery("INSERT INTO vehicle_reports").
			WithArgs("user-1", "ABC123", "comparison", &cmp, 1, now, "comparison_unlock", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(8))

		report := &domain.VehicleReport{
			UserID:                 "user-1",
			RegistrationNumber:     "ABC123",
			ReportType:             domain.ReportTypeComparison,
			ComparisonRegistration: &cmp,
			CreditsUsed:            1,
			UnlockedAt:             &now,
			UnlockType:             domain.UnlockTypeComparison,
		}
		err := repo.UpsertUnlock(ctx, report)
		assert.NoError(t, err)
	})
}

package postgres

import (
	"database/sql"
	"errors"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ProfileRepository
	repository.LedgerRepository
	repository.ReportRepository
	repository.PackageRepository
	repository.PurchaseRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ProfileRepository:  NewProfileRepository(db),
		LedgerRepository:   NewLedgerRepository(db),
		ReportRepository:   NewReportRepository(db),
		PackageRepository:  NewPackageRepository(db),
		PurchaseRepository: NewPurchaseRepository(db),
	}
}

const uniqueViolationCode = "23505"

// mapError translates driver-level errors to domain errors so services
// stay decoupled from database/sql and lib/pq.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return domain.ErrAlreadyExists
	}
	return err
}

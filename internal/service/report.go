package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/logger"
	"bilio-backend/internal/repository"
	"bilio-backend/internal/vehicledata"
)

type reportService struct {
	reportRepo repository.ReportRepository
	ledgerRepo repository.LedgerRepository
}

func NewReportService(reportRepo repository.ReportRepository, ledgerRepo repository.LedgerRepository) ReportService {
	return &reportService{reportRepo: reportRepo, ledgerRepo: ledgerRepo}
}

func (s *reportService) CheckAccess(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.AccessStatus, error) {
	regNr := vehicledata.NormalizeRegistration(registrationNumber)
	rec, err := s.reportRepo.GetUnlock(ctx, userID, regNr, reportType)
	if errors.Is(err, domain.ErrNotFound) {
		return &domain.AccessStatus{HasAccess: false, IsLoggedIn: true}, nil
	}
	if err != nil {
		return nil, err
	}
	if rec.UnlockedAt == nil {
		return &domain.AccessStatus{HasAccess: false, IsLoggedIn: true}, nil
	}
	return &domain.AccessStatus{
		HasAccess:   true,
		IsLoggedIn:  true,
		UnlockedAt:  rec.UnlockedAt,
		CreditsUsed: rec.CreditsUsed,
	}, nil
}

// Unlock spends exactly one credit the first time a (user, registration,
// report type) key is unlocked. Repeat calls for an unlocked key return
// success without touching the ledger.
func (s *reportService) Unlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType, comparisonRegistration string) (*UnlockResult, error) {
	if registrationNumber == "" {
		return nil, &InvalidArgumentError{Field: "registration_number", Reason: "must not be empty"}
	}
	if !reportType.Valid() {
		return nil, &InvalidArgumentError{Field: "report_type", Reason: "must be single or comparison"}
	}
	regNr := vehicledata.NormalizeRegistration(registrationNumber)

	rec, err := s.reportRepo.GetUnlock(ctx, userID, regNr, reportType)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	if rec != nil && rec.UnlockedAt != nil {
		return &UnlockResult{AlreadyUnlocked: true, CreditsUsed: rec.CreditsUsed}, nil
	}

	description := fmt.Sprintf("Upplåsning av rapport för %s", regNr)
	remaining, err := s.ledgerRepo.UseCredits(ctx, userID, domain.UnlockCost, description, regNr)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	report := &domain.VehicleReport{
		UserID:             userID,
		RegistrationNumber: regNr,
		ReportType:         reportType,
		CreditsUsed:        domain.UnlockCost,
		UnlockedAt:         &now,
		UnlockType:         domain.UnlockTypeFor(reportType),
	}
	if reportType == domain.ReportTypeComparison && comparisonRegistration != "" {
		cmp := vehicledata.NormalizeRegistration(comparisonRegistration)
		report.ComparisonRegistration = &cmp
	}

	if err := s.reportRepo.UpsertUnlock(ctx, report); err != nil {
		// The credit is already spent and stays spent; there is no
		// distributed transaction across ledger and report store. The
		// caller still gets success and the nightly audit surfaces drift.
		logger.ErrorContext(ctx, "unlock record write failed after credit spend",
			"user_id", userID,
			"registration_number", regNr,
			"report_type", reportType,
			"error", err)
	}

	return &UnlockResult{RemainingCredits: remaining, CreditsUsed: domain.UnlockCost}, nil
}

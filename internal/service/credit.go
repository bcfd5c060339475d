package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/repository"
)

var ErrDemoTopupDisabled = errors.New("demo top-up is disabled")

const (
	DefaultTransactionPageSize = 20
	MaxTransactionPageSize     = 100
)

type creditService struct {
	profileRepo      repository.ProfileRepository
	ledgerRepo       repository.LedgerRepository
	packageRepo      repository.PackageRepository
	demoTopupEnabled bool
}

func NewCreditService(profileRepo repository.ProfileRepository, ledgerRepo repository.LedgerRepository, packageRepo repository.PackageRepository, demoTopupEnabled bool) CreditService {
	return &creditService{
		profileRepo:      profileRepo,
		ledgerRepo:       ledgerRepo,
		packageRepo:      packageRepo,
		demoTopupEnabled: demoTopupEnabled,
	}
}

func (s *creditService) GetBalance(ctx context.Context, ident domain.Identity) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, ident.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	fullName := ident.Name
	if fullName == "" {
		fullName = domain.DefaultFullName
	}
	profile = &domain.Profile{
		UserID:   ident.UserID,
		Email:    ident.Email,
		FullName: fullName,
		Credits:  0,
	}
	if cerr := s.profileRepo.Create(ctx, profile); cerr != nil {
		// Two concurrent first reads race on the user_id uniqueness
		// constraint; the loser re-reads the winner's row.
		if errors.Is(cerr, domain.ErrAlreadyExists) {
			return s.profileRepo.GetByUserID(ctx, ident.UserID)
		}
		return nil, cerr
	}
	return profile, nil
}

func (s *creditService) AddDemoCredits(ctx context.Context, ident domain.Identity, amount int) (int, error) {
	if !s.demoTopupEnabled {
		return 0, ErrDemoTopupDisabled
	}
	if amount <= 0 {
		return 0, &InvalidArgumentError{Field: "amount", Reason: "must be a positive number"}
	}

	// The demo path must work for brand-new users too, so make sure the
	// profile row exists before crediting.
	if _, err := s.GetBalance(ctx, ident); err != nil {
		return 0, err
	}

	description := fmt.Sprintf("Demo-köp av %d krediter", amount)
	referenceID := fmt.Sprintf("demo_%d", time.Now().Unix())
	return s.ledgerRepo.AddCredits(ctx, ident.UserID, amount, domain.TransactionTypePurchase, description, referenceID)
}

func (s *creditService) UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (int, error) {
	if amount <= 0 {
		return 0, &InvalidArgumentError{Field: "amount", Reason: "must be a positive number"}
	}
	if description == "" {
		return 0, &InvalidArgumentError{Field: "description", Reason: "must not be empty"}
	}
	if referenceID == "" {
		referenceID = ulid.Make().String()
	}
	return s.ledgerRepo.UseCredits(ctx, userID, amount, description, referenceID)
}

func (s *creditService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error) {
	if limit <= 0 {
		limit = DefaultTransactionPageSize
	}
	if limit > MaxTransactionPageSize {
		limit = MaxTransactionPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.ledgerRepo.ListTransactions(ctx, userID, limit, offset)
}

func (s *creditService) ListPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	return s.packageRepo.ListActive(ctx)
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"bilio-backend/internal/domain"
)

func TestCreditService_GetBalance(t *testing.T) {
	ctx := context.Background()
	ident := domain.Identity{UserID: "user-1", Email: "anna@example.com", Name: "Anna Svensson"}

	t.Run("ExistingProfile", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewCreditService(profileRepo, new(MockLedgerRepo), new(MockPackageRepo), true)

		profileRepo.On("GetByUserID", ctx, "user-1").
			Return(&domain.Profile{UserID: "user-1", Credits: 5}, nil)

		profile, err := svc.GetBalance(ctx, ident)
		assert.NoError(t, err)
		assert.Equal(t, 5, profile.Credits)
		profileRepo.AssertExpectations(t)
	})

	t.Run("FirstReadCreatesProfileWithZeroCredits", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewCreditService(profileRepo, new(MockLedgerRepo), new(MockPackageRepo), true)

		profileRepo.On("GetByUserID", ctx, "user-1").Return(nil, domain.ErrNotFound)
		profileRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.UserID == "user-1" && p.Credits == 0 && p.FullName == "Anna Svensson"
		})).Return(nil)

		profile, err := svc.GetBalance(ctx, ident)
		assert.NoError(t, err)
		assert.Equal(t, 0, profile.Credits)
		profileRepo.AssertExpectations(t)
	})

	t.Run("MissingNameFallsBackToDefault", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewCreditService(profileRepo, new(MockLedgerRepo), new(MockPackageRepo), true)

		profileRepo.On("GetByUserID", ctx, "user-2").Return(nil, domain.ErrNotFound)
		profileRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Profile) bool {
			return p.FullName == domain.DefaultFullName
		})).Return(nil)

		_, err := svc.GetBalance(ctx, domain.Identity{UserID: "user-2"})
		assert.NoError(t, err)
		profileRepo.AssertExpectations(t)
	})

	t.Run("CreateRaceRereadsWinner", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		svc := NewCreditService(profileRepo, new(MockLedgerRepo), new(MockPackageRepo), true)

		profileRepo.On("GetByUserID", ctx, "user-1").Return(nil, domain.ErrNotFound).Once()
		profileRepo.On("Create", ctx, mock.Anything).Return(domain.ErrAlreadyExists)
		profileRepo.On("GetByUserID", ctx, "user-1").
			Return(&domain.Profile{UserID: "user-1", Credits: 0}, nil).Once()

		profile, err := svc.GetBalance(ctx, ident)
		assert.NoError(t, err)
		assert.Equal(t, "user-1", profile.UserID)
		profileRepo.AssertExpectations(t)
	})
}

func TestCreditService_AddDemoCredits(t *testing.T) {
	ctx := context.Background()
	ident := domain.Identity{UserID: "user-1", Email: "anna@example.com"}

	t.Run("Success", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(profileRepo, ledgerRepo, new(MockPackageRepo), true)

		profileRepo.On("GetByUserID", ctx, "user-1").
			Return(&domain.Profile{UserID: "user-1", Credits: 0}, nil)
		ledgerRepo.On("AddCredits", ctx, "user-1", 5, domain.TransactionTypePurchase,
			"Demo-köp av 5 krediter", mock.AnythingOfType("string")).Return(5, nil)

		newBalance, err := svc.AddDemoCredits(ctx, ident, 5)
		assert.NoError(t, err)
		assert.Equal(t, 5, newBalance)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("DisabledByConfig", func(t *testing.T) {
		svc := NewCreditService(new(MockProfileRepo), new(MockLedgerRepo), new(MockPackageRepo), false)

		_, err := svc.AddDemoCredits(ctx, ident, 5)
		assert.ErrorIs(t, err, ErrDemoTopupDisabled)
	})

	t.Run("RejectsNonPositiveAmount", func(t *testing.T) {
		svc := NewCreditService(new(MockProfileRepo), new(MockLedgerRepo), new(MockPackageRepo), true)

		for _, amount := range []int{0, -1, -100} {
			_, err := svc.AddDemoCredits(ctx, ident, amount)
			var invalidArg *InvalidArgumentError
			assert.ErrorAs(t, err, &invalidArg)
			assert.Equal(t, "amount", invalidArg.Field)
		}
	})
}

func TestCreditService_UseCredits(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(new(MockProfileRepo), ledgerRepo, new(MockPackageRepo), true)

		ledgerRepo.On("UseCredits", ctx, "user-1", 1, "Upplåsning", "ref-1").Return(4, nil)

		remaining, err := svc.UseCredits(ctx, "user-1", 1, "Upplåsning", "ref-1")
		assert.NoError(t, err)
		assert.Equal(t, 4, remaining)
	})

	t.Run("GeneratesReferenceIDWhenEmpty", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(new(MockProfileRepo), ledgerRepo, new(MockPackageRepo), true)

		ledgerRepo.On("UseCredits", ctx, "user-1", 1, "Upplåsning", mock.MatchedBy(func(ref string) bool {
			return ref != ""
		})).Return(4, nil)

		_, err := svc.UseCredits(ctx, "user-1", 1, "Upplåsning", "")
		assert.NoError(t, err)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("RejectsEmptyDescription", func(t *testing.T) {
		svc := NewCreditService(new(MockProfileRepo), new(MockLedgerRepo), new(MockPackageRepo), true)

		_, err := svc.UseCredits(ctx, "user-1", 1, "", "ref")
		var invalidArg *InvalidArgumentError
		assert.ErrorAs(t, err, &invalidArg)
		assert.Equal(t, "description", invalidArg.Field)
	})

	t.Run("PropagatesInsufficientCredits", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(new(MockProfileRepo), ledgerRepo, new(MockPackageRepo), true)

		ledgerRepo.On("UseCredits", ctx, "user-1", 1, "Upplåsning", "ref").
			Return(0, &domain.InsufficientCreditsError{Current: 0, Required: 1})

		_, err := svc.UseCredits(ctx, "user-1", 1, "Upplåsning", "ref")
		var insufficient *domain.InsufficientCreditsError
		assert.ErrorAs(t, err, &insufficient)
	})
}

func TestCreditService_ListTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("ClampsPageSize", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(new(MockProfileRepo), ledgerRepo, new(MockPackageRepo), true)

		ledgerRepo.On("ListTransactions", ctx, "user-1", DefaultTransactionPageSize, 0).
			Return([]domain.CreditTransaction{}, 0, nil).Once()
		ledgerRepo.On("ListTransactions", ctx, "user-1", MaxTransactionPageSize, 0).
			Return([]domain.CreditTransaction{}, 0, nil).Once()

		_, _, err := svc.ListTransactions(ctx, "user-1", 0, -5)
		assert.NoError(t, err)
		_, _, err = svc.ListTransactions(ctx, "user-1", 500, 0)
		assert.NoError(t, err)
		ledgerRepo.AssertExpectations(t)
	})

	t.Run("PropagatesRepositoryError", func(t *testing.T) {
		ledgerRepo := new(MockLedgerRepo)
		svc := NewCreditService(new(MockProfileRepo), ledgerRepo, new(MockPackageRepo), true)

		ledgerRepo.On("ListTransactions", ctx, "user-1", 20, 0).
			Return([]domain.CreditTransaction{}, 0, errors.New("db down"))

		_, _, err := svc.ListTransactions(ctx, "user-1", 20, 0)
		assert.Error(t, err)
	})
}

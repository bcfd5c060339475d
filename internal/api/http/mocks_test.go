package http

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"bilio-backend/internal/domain"
	"bilio-backend/internal/score"
	"bilio-backend/internal/service"
)

// MockCreditService
type MockCreditService struct {
	mock.Mock
}

func (m *MockCreditService) GetBalance(ctx context.Context, ident domain.Identity) (*domain.Profile, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockCreditService) AddDemoCredits(ctx context.Context, ident domain.Identity, amount int) (int, error) {
	args := m.Called(ctx, ident, amount)
	return args.Int(0), args.Error(1)
}
func (m *MockCreditService) UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (int, error) {
	args := m.Called(ctx, userID, amount, description, referenceID)
	return args.Int(0), args.Error(1)
}
func (m *MockCreditService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.CreditTransaction), args.Int(1), args.Error(2)
}
func (m *MockCreditService) ListPackages(ctx context.Context) ([]domain.CreditPackage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CreditPackage), args.Error(1)
}

// MockReportService
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) CheckAccess(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.AccessStatus, error) {
	args := m.Called(ctx, userID, registrationNumber, reportType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccessStatus), args.Error(1)
}
func (m *MockReportService) Unlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType, comparisonRegistration string) (*service.UnlockResult, error) {
	args := m.Called(ctx, userID, registrationNumber, reportType, comparisonRegistration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UnlockResult), args.Error(1)
}

// MockVehicleService
type MockVehicleService struct {
	mock.Mock
}

func (m *MockVehicleService) Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error) {
	args := m.Called(ctx, lookupType, country, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
func (m *MockVehicleService) HealthScore(ctx context.Context, registrationNumber string) (*score.Result, error) {
	args := m.Called(ctx, registrationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*score.Result), args.Error(1)
}

// MockPaymentService
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) CreateCheckout(ctx context.Context, ident domain.Identity, packageID int64) (string, error) {
	args := m.Called(ctx, ident, packageID)
	return args.String(0), args.Error(1)
}
func (m *MockPaymentService) HandleWebhookEvent(ctx context.Context, payload []byte, signatureHeader string) error {
	args := m.Called(ctx, payload, signatureHeader)
	return args.Error(0)
}

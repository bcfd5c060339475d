package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"bilio-backend/internal/domain"
)

// MockProfileRepo
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}
func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

// MockLedgerRepo
type MockLedgerRepo struct {
	mock.Mock
}

func (m *MockLedgerRepo) AddCredits(ctx context.Context, userID string, amount int, txType domain.TransactionType, description, referenceID string) (int, error) {
	args := m.Called(ctx, userID, amount, txType, description, referenceID)
	return args.Int(0), args.Error(1)
}
func (m *MockLedgerRepo) UseCredits(ctx context.Context, userID string, amount int, description, referenceID string) (int, error) {
	args := m.Called(ctx, userID, amount, description, referenceID)
	return args.Int(0), args.Error(1)
}
func (m *MockLedgerRepo) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]domain.CreditTransaction, int, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.CreditTransaction), args.Int(1), args.Error(2)
}

// MockReportRepo
type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) GetUnlock(ctx context.Context, userID, registrationNumber string, reportType domain.ReportType) (*domain.VehicleReport, error) {
	args := m.Called(ctx, userID, registrationNumber, reportType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VehicleReport), args.Error(1)
}
func (m *MockReportRepo) UpsertUnlock(ctx context.Context, report *domain.VehicleReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

// MockPackageRepo
type MockPackageRepo struct {
	mock.Mock
}

func (m *MockPackageRepo) ListActive(ctx context.Context) ([]domain.CreditPackage, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.CreditPackage), args.Error(1)
}
func (m *MockPackageRepo) GetByID(ctx context.Context, id int64) (*domain.CreditPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditPackage), args.Error(1)
}

// MockPurchaseRepo
type MockPurchaseRepo struct {
	mock.Mock
}

func (m *MockPurchaseRepo) Create(ctx context.Context, purchase *domain.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}
func (m *MockPurchaseRepo) GetBySessionID(ctx context.Context, sessionID string) (*domain.Purchase, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Purchase), args.Error(1)
}
func (m *MockPurchaseRepo) MarkCompleted(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}
func (m *MockPurchaseRepo) ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockVehicleClient
type MockVehicleClient struct {
	mock.Mock
}

func (m *MockVehicleClient) Lookup(ctx context.Context, lookupType, country, id string) (json.RawMessage, error) {
	args := m.Called(ctx, lookupType, country, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
func (m *MockVehicleClient) LookupByRegistration(ctx context.Context, registrationNumber string) (*domain.Vehicle, error) {
	args := m.Called(ctx, registrationNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

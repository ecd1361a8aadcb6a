package portfolio

import (
	"context"

	"github.com/google/uuid"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockWalletRepository is a mock implementation of WalletRepository for testing
type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) List(ctx context.Context) ([]*domain.Wallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Wallet), args.Error(1)
}

// MockAssetRepository is a mock implementation of AssetRepository for testing
type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}

func (m *MockAssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Asset), args.Error(1)
}

func (m *MockAssetRepository) UpdatePrice(ctx context.Context, asset *domain.Asset, entry domain.PriceHistoryEntry) error {
	args := m.Called(ctx, asset, entry)
	return args.Error(0)
}

// MockFiatCurrencyRepository is a mock implementation of FiatCurrencyRepository for testing
type MockFiatCurrencyRepository struct {
	mock.Mock
}

func (m *MockFiatCurrencyRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.FiatCurrency, error) {
	args := m.Called(ctx, symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiatCurrency), args.Error(1)
}

func (m *MockFiatCurrencyRepository) Create(ctx context.Context, fiat *domain.FiatCurrency) error {
	args := m.Called(ctx, fiat)
	return args.Error(0)
}

func (m *MockFiatCurrencyRepository) List(ctx context.Context) ([]*domain.FiatCurrency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FiatCurrency), args.Error(1)
}

// MockMovementRepository is a mock implementation of MovementRepository for testing
type MockMovementRepository struct {
	mock.Mock
}

func (m *MockMovementRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Movement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Movement), args.Error(1)
}

func (m *MockMovementRepository) CreateBatch(ctx context.Context, movements []domain.Movement) error {
	args := m.Called(ctx, movements)
	return args.Error(0)
}

func (m *MockMovementRepository) Update(ctx context.Context, movement domain.Movement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockMovementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMovementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

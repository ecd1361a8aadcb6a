package portfolio

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/balance"
)

// Snapshot is the in-memory state every read-side calculation runs over
type Snapshot struct {
	Wallets []*domain.Wallet
	Assets  []*domain.Asset
	Fiats   []*domain.FiatCurrency
	Ledger  *domain.Ledger
}

// Report is the portfolio-wide view
type Report struct {
	Wallets      []WalletDetail
	Summary      Summary
	Distribution []GainShare
}

// PortfolioService handles portfolio queries
type PortfolioService struct {
	WalletRepo   domain.WalletRepository
	AssetRepo    domain.AssetRepository
	FiatRepo     domain.FiatCurrencyRepository
	MovementRepo domain.MovementRepository
}

// NewPortfolioService creates a new PortfolioService instance
func NewPortfolioService(
	walletRepo domain.WalletRepository,
	assetRepo domain.AssetRepository,
	fiatRepo domain.FiatCurrencyRepository,
	movementRepo domain.MovementRepository,
) *PortfolioService {
	return &PortfolioService{
		WalletRepo:   walletRepo,
		AssetRepo:    assetRepo,
		FiatRepo:     fiatRepo,
		MovementRepo: movementRepo,
	}
}

// Snapshot fetches wallets, assets, fiat currencies and movements.
// Prices may change between fetches; the result is not point-in-time consistent.
func (s *PortfolioService) Snapshot(ctx context.Context) (*Snapshot, error) {
	wallets, err := s.WalletRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	assets, err := s.AssetRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	fiats, err := s.FiatRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiat currencies: %w", err)
	}
	movements, err := s.MovementRepo.List(ctx, domain.MovementFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	return &Snapshot{
		Wallets: wallets,
		Assets:  assets,
		Fiats:   fiats,
		Ledger:  domain.NewLedger(movements),
	}, nil
}

// GetPortfolio calculates the portfolio report
// Logic:
//   - Wallets: detail per wallet, dropping wallets without any remaining asset
//   - Summary: totals across the kept wallets; sold value across all wallets
//   - Distribution: gains per asset ranked largest first
func (s *PortfolioService) GetPortfolio(ctx context.Context) (*Report, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	details := WalletDetails(snap.Ledger, snap.Wallets, snap.Assets, snap.Fiats)
	return &Report{
		Wallets:      details,
		Summary:      Summarize(snap.Ledger, details, snap.Wallets),
		Distribution: GainDistribution(details),
	}, nil
}

// GetWalletDetail calculates the detail of a single wallet
func (s *PortfolioService) GetWalletDetail(ctx context.Context, walletID uuid.UUID) (*WalletDetail, error) {
	wallet, err := s.WalletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	wd := BuildWalletDetail(snap.Ledger, wallet, snap.Assets, snap.Fiats)
	return &wd, nil
}

// GetBalance returns the available quantity of an asset in a wallet.
// Unknown wallets or assets simply have no movements and yield zero.
func (s *PortfolioService) GetBalance(ctx context.Context, walletID, assetID uuid.UUID) (decimal.Decimal, error) {
	movements, err := s.MovementRepo.List(ctx, domain.MovementFilter{WalletID: &walletID, AssetID: &assetID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to list movements: %w", err)
	}
	return balance.Available(domain.NewLedger(movements), walletID, assetID, decimal.Zero), nil
}

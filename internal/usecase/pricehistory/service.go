package pricehistory

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// PriceHistoryService handles asset price updates and lookups
type PriceHistoryService struct {
	AssetRepo domain.AssetRepository
	Logger    logrus.FieldLogger
	Now       func() time.Time
}

// NewPriceHistoryService creates a new PriceHistoryService instance
func NewPriceHistoryService(assetRepo domain.AssetRepository, logger logrus.FieldLogger) *PriceHistoryService {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &PriceHistoryService{
		AssetRepo: assetRepo,
		Logger:    logger,
		Now:       time.Now,
	}
}

// UpdatePrice sets an asset's current price
// Logic: the previous price and its timestamp are appended to the history first,
// even when the price is unchanged. Both writes go through one repository call.
// Returns the updated asset
func (s *PriceHistoryService) UpdatePrice(ctx context.Context, assetID uuid.UUID, price decimal.Decimal) (*domain.Asset, error) {
	if price.IsNegative() {
		return nil, domain.ErrNegativeAmount
	}

	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	previous := asset.CurrentPrice
	entry := asset.SetPrice(price, s.Now().UTC())
	if err := s.AssetRepo.UpdatePrice(ctx, asset, entry); err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"asset":    asset.Symbol,
		"previous": previous.String(),
		"price":    price.String(),
	}).Info("asset price updated")
	return asset, nil
}

// PriceAt returns the price recorded for an asset on the given calendar day
func (s *PriceHistoryService) PriceAt(ctx context.Context, assetID uuid.UUID, day time.Time) (*domain.PriceHistoryEntry, error) {
	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	entry, ok := asset.PriceAt(day)
	if !ok {
		return nil, fmt.Errorf("no %s price recorded on %s: %w", asset.Symbol, day.UTC().Format("2006-01-02"), domain.ErrNotFound)
	}
	return &entry, nil
}

// Performance returns the percent change between the price recorded on day and the
// current price. ok is false when no usable price was recorded on that day.
func (s *PriceHistoryService) Performance(ctx context.Context, assetID uuid.UUID, day time.Time) (pct decimal.Decimal, ok bool, err error) {
	asset, err := s.AssetRepo.GetByID(ctx, assetID)
	if err != nil {
		return decimal.Zero, false, err
	}
	pct, ok = asset.PerformanceSince(day)
	return pct, ok, nil
}

package seeder

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// Fixed UUIDs for reference currencies
var (
	FIAT_USD = uuid.MustParse("00000000-0000-0000-0000-000000000001")
)

// ReferenceSeeder ensures the reference fiat currencies exist
type ReferenceSeeder struct {
	repo   domain.FiatCurrencyRepository
	logger logrus.FieldLogger
}

// NewReferenceSeeder creates a new ReferenceSeeder instance
func NewReferenceSeeder(repo domain.FiatCurrencyRepository, logger logrus.FieldLogger) *ReferenceSeeder {
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}
	return &ReferenceSeeder{
		repo:   repo,
		logger: logger,
	}
}

// ReferenceCurrencies returns the fiat currencies every installation starts with
func ReferenceCurrencies() []*domain.FiatCurrency {
	return []*domain.FiatCurrency{
		{
			ID:         FIAT_USD,
			Name:       "US Dollar",
			Symbol:     "USD",
			PriceInUSD: decimal.NewFromInt(1),
		},
	}
}

// Seed creates each reference currency whose symbol is not stored yet.
// Existing rows are left untouched, including their rate.
func (s *ReferenceSeeder) Seed(ctx context.Context) error {
	for _, fiat := range ReferenceCurrencies() {
		_, err := s.repo.GetBySymbol(ctx, fiat.Symbol)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := fiat.Validate(); err != nil {
			return err
		}
		if err := s.repo.Create(ctx, fiat); err != nil {
			return err
		}
		s.logger.WithField("symbol", fiat.Symbol).Info("seeded fiat currency")
	}

	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// fiatCurrencyRepository implements domain.FiatCurrencyRepository
type fiatCurrencyRepository struct {
	db *DB
}

// NewFiatCurrencyRepository creates a new fiat currency repository
func NewFiatCurrencyRepository(db *DB) domain.FiatCurrencyRepository {
	return &fiatCurrencyRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFiat(s rowScanner) (*domain.FiatCurrency, error) {
	var fiat domain.FiatCurrency
	var priceStr string
	if err := s.Scan(&fiat.ID, &fiat.Name, &fiat.Symbol, &priceStr); err != nil {
		return nil, err
	}
	price, err := parseDecimal(priceStr, "price_in_usd")
	if err != nil {
		return nil, err
	}
	fiat.PriceInUSD = price
	return &fiat, nil
}

// GetBySymbol retrieves a fiat currency by its symbol, ignoring case
func (r *fiatCurrencyRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.FiatCurrency, error) {
	query := `
		SELECT id, name, symbol, price_in_usd
		FROM fiat_currencies
		WHERE lower(symbol) = lower($1)
	`

	fiat, err := scanFiat(r.db.QueryRowContext(ctx, query, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("fiat currency %q: %w", symbol, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get fiat currency by symbol: %w", err)
	}

	return fiat, nil
}

// Create creates a new fiat currency
func (r *fiatCurrencyRepository) Create(ctx context.Context, fiat *domain.FiatCurrency) error {
	if err := fiat.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO fiat_currencies (id, name, symbol, price_in_usd)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, fiat.ID, fiat.Name, fiat.Symbol, fiat.PriceInUSD.String())
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("fiat symbol %q: %w", fiat.Symbol, domain.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create fiat currency: %w", err)
	}

	return nil
}

// List retrieves every fiat currency in creation order
func (r *fiatCurrencyRepository) List(ctx context.Context) ([]*domain.FiatCurrency, error) {
	query := `
		SELECT id, name, symbol, price_in_usd
		FROM fiat_currencies
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list fiat currencies: %w", err)
	}
	defer rows.Close()

	var fiats []*domain.FiatCurrency
	for rows.Next() {
		fiat, err := scanFiat(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fiat currency: %w", err)
		}
		fiats = append(fiats, fiat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fiat currencies: %w", err)
	}

	return fiats, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// assetRepository implements domain.AssetRepository
type assetRepository struct {
	db *DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *DB) domain.AssetRepository {
	return &assetRepository{db: db}
}

func scanAsset(s rowScanner) (*domain.Asset, error) {
	var asset domain.Asset
	var priceStr string
	if err := s.Scan(&asset.ID, &asset.Name, &asset.Symbol, &priceStr, &asset.LastUpdated); err != nil {
		return nil, err
	}
	price, err := parseDecimal(priceStr, "current_price")
	if err != nil {
		return nil, err
	}
	asset.CurrentPrice = price
	asset.LastUpdated = asset.LastUpdated.UTC()
	return &asset, nil
}

// GetByID retrieves an asset with its price history in recording order
func (r *assetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Asset, error) {
	query := `
		SELECT id, name, symbol, current_price, last_updated
		FROM assets
		WHERE id = $1
	`

	asset, err := scanAsset(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get asset by ID: %w", err)
	}

	historyQuery := `
		SELECT id, asset_id, price, date
		FROM price_history
		WHERE asset_id = $1
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, historyQuery, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry domain.PriceHistoryEntry
		var priceStr string
		if err := rows.Scan(&entry.ID, &entry.AssetID, &priceStr, &entry.Date); err != nil {
			return nil, fmt.Errorf("failed to scan price history entry: %w", err)
		}
		if entry.Price, err = parseDecimal(priceStr, "price"); err != nil {
			return nil, err
		}
		entry.Date = entry.Date.UTC()
		asset.PriceHistory = append(asset.PriceHistory, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price history: %w", err)
	}

	return asset, nil
}

// Create creates a new asset. Any price history already on the asset is ignored.
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO assets (id, name, symbol, current_price, last_updated)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		asset.ID,
		asset.Name,
		asset.Symbol,
		asset.CurrentPrice.String(),
		asset.LastUpdated,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("asset symbol %q: %w", asset.Symbol, domain.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create asset: %w", err)
	}

	return nil
}

// List retrieves every asset ordered by symbol, without price history
func (r *assetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	query := `
		SELECT id, name, symbol, current_price, last_updated
		FROM assets
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	var assets []*domain.Asset
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, asset)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}

// UpdatePrice stores the new current price and appends the history entry in one
// database transaction
func (r *assetRepository) UpdatePrice(ctx context.Context, asset *domain.Asset, entry domain.PriceHistoryEntry) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	insertHistoryQuery := `
		INSERT INTO price_history (id, asset_id, price, date)
		VALUES ($1, $2, $3, $4)
	`

	if _, err := dbTx.ExecContext(ctx, insertHistoryQuery, entry.ID, asset.ID, entry.Price.String(), entry.Date); err != nil {
		return fmt.Errorf("failed to insert price history entry: %w", err)
	}

	updateQuery := `
		UPDATE assets
		SET current_price = $2, last_updated = $3
		WHERE id = $1
	`

	result, err := dbTx.ExecContext(ctx, updateQuery, asset.ID, asset.CurrentPrice.String(), asset.LastUpdated)
	if err != nil {
		return fmt.Errorf("failed to update asset price: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("asset %s: %w", asset.ID, domain.ErrNotFound)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

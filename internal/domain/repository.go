package domain

import (
	"context"

	"github.com/google/uuid"
)

// WalletRepository defines the interface for wallet persistence operations
type WalletRepository interface {
	// GetByID retrieves a wallet by its ID
	GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error)

	// Create creates a new wallet
	Create(ctx context.Context, wallet *Wallet) error

	// List retrieves every wallet ordered by symbol
	List(ctx context.Context) ([]*Wallet, error)
}

// AssetRepository defines the interface for asset persistence operations
type AssetRepository interface {
	// GetByID retrieves an asset with its price history
	GetByID(ctx context.Context, id uuid.UUID) (*Asset, error)

	// Create creates a new asset
	Create(ctx context.Context, asset *Asset) error

	// List retrieves every asset ordered by symbol, without price history
	List(ctx context.Context) ([]*Asset, error)

	// UpdatePrice stores the asset's new price and appends the history entry
	// in a single transaction
	UpdatePrice(ctx context.Context, asset *Asset, entry PriceHistoryEntry) error
}

// FiatCurrencyRepository defines the interface for fiat currency persistence operations
type FiatCurrencyRepository interface {
	// GetBySymbol retrieves a fiat currency by its symbol
	GetBySymbol(ctx context.Context, symbol string) (*FiatCurrency, error)

	// Create creates a new fiat currency
	Create(ctx context.Context, fiat *FiatCurrency) error

	// List retrieves every fiat currency in creation order
	List(ctx context.Context) ([]*FiatCurrency, error)
}

// MovementFilter narrows a movement listing. Nil fields match everything.
// WalletID matches either side of a transfer; AssetID matches either side of a swap.
type MovementFilter struct {
	WalletID *uuid.UUID
	AssetID  *uuid.UUID
	Kind     MovementKind
}

// MovementRepository defines the interface for movement persistence operations
type MovementRepository interface {
	// GetByID retrieves a movement by its ID
	GetByID(ctx context.Context, id uuid.UUID) (Movement, error)

	// CreateBatch inserts all movements atomically, in order
	CreateBatch(ctx context.Context, movements []Movement) error

	// Update overwrites every field of an existing movement
	Update(ctx context.Context, movement Movement) error

	// Delete removes a movement permanently
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves movements ordered by date, then insertion
	List(ctx context.Context, filter MovementFilter) ([]Movement, error)
}

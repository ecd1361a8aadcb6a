package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// walletRepository implements domain.WalletRepository
type walletRepository struct {
	db *DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *DB) domain.WalletRepository {
	return &walletRepository{db: db}
}

// GetByID retrieves a wallet by its ID
func (r *walletRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wallet, error) {
	query := `
		SELECT id, name, symbol
		FROM wallets
		WHERE id = $1
	`

	var wallet domain.Wallet
	err := r.db.QueryRowContext(ctx, query, id).Scan(&wallet.ID, &wallet.Name, &wallet.Symbol)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("wallet %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get wallet by ID: %w", err)
	}

	return &wallet, nil
}

// Create creates a new wallet
func (r *walletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	if err := wallet.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO wallets (id, name, symbol)
		VALUES ($1, $2, $3)
	`

	_, err := r.db.ExecContext(ctx, query, wallet.ID, wallet.Name, wallet.Symbol)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("wallet symbol %q: %w", wallet.Symbol, domain.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create wallet: %w", err)
	}

	return nil
}

// List retrieves every wallet ordered by symbol
func (r *walletRepository) List(ctx context.Context) ([]*domain.Wallet, error) {
	query := `
		SELECT id, name, symbol
		FROM wallets
		ORDER BY symbol
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*domain.Wallet
	for rows.Next() {
		var wallet domain.Wallet
		if err := rows.Scan(&wallet.ID, &wallet.Name, &wallet.Symbol); err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, &wallet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}

	return wallets, nil
}

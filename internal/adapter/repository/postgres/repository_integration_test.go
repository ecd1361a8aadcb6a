//go:build integration

package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

var testDB *DB

// TestMain connects to the database named by DB_CONN_STR and applies migrations
func TestMain(m *testing.M) {
	connStr := os.Getenv("DB_CONN_STR")
	if connStr == "" {
		connStr = "host=localhost port=5432 user=postgres password=postgres dbname=cryptoledger_test sslmode=disable"
	}

	var err error
	testDB, err = NewDB(connStr)
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	if err := testDB.Migrate(); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	code := m.Run()
	testDB.Close()
	os.Exit(code)
}

// suffix keeps symbols unique across runs against the same database
func suffix() string {
	return uuid.NewString()[:6]
}

func TestWalletRepository_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewWalletRepository(testDB)

	wallet, err := domain.NewWallet("Binance", "B"+suffix())
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, wallet))

	got, err := repo.GetByID(ctx, wallet.ID)
	require.NoError(t, err)
	assert.Equal(t, wallet.Symbol, got.Symbol)

	dup := &domain.Wallet{ID: uuid.New(), Name: "Copy", Symbol: wallet.Symbol}
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrDuplicateEntry)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssetRepository_UpdatePrice_Integration(t *testing.T) {
	ctx := context.Background()
	repo := NewAssetRepository(testDB)

	start := time.Date(2024, 5, 6, 12, 0, 0, 0, time.UTC)
	asset, err := domain.NewAsset("Bitcoin", "X"+suffix(), decimal.NewFromInt(60000), start)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, asset))

	entry := asset.SetPrice(decimal.NewFromInt(63000), start.Add(24*time.Hour))
	require.NoError(t, repo.UpdatePrice(ctx, asset, entry))

	got, err := repo.GetByID(ctx, asset.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentPrice.Equal(decimal.NewFromInt(63000)))
	require.Len(t, got.PriceHistory, 1)
	assert.True(t, got.PriceHistory[0].Price.Equal(decimal.NewFromInt(60000)))
	assert.True(t, got.PriceHistory[0].Date.Equal(start))
}

func TestMovementRepository_Integration(t *testing.T) {
	ctx := context.Background()
	wallets := NewWalletRepository(testDB)
	assets := NewAssetRepository(testDB)
	repo := NewMovementRepository(testDB)

	source, _ := domain.NewWallet("Source", "S"+suffix())
	dest, _ := domain.NewWallet("Dest", "D"+suffix())
	require.NoError(t, wallets.Create(ctx, source))
	require.NoError(t, wallets.Create(ctx, dest))
	asset, _ := domain.NewAsset("Ether", "E"+suffix(), decimal.NewFromInt(3000), time.Now())
	require.NoError(t, assets.Create(ctx, asset))

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	deposit := &domain.Deposit{ExternalFlow: domain.ExternalFlow{
		ID: uuid.New(), Date: day, WalletID: source.ID, AssetID: asset.ID,
		Quantity: decimal.RequireFromString("1.23456789"), UnitPriceUSD: decimal.NewFromInt(3000),
		Value: domain.USDOnly{Amount: decimal.RequireFromString("3703.70367")},
	}}
	transfer := &domain.Transfer{
		ID: uuid.New(), Date: day.AddDate(0, 0, 1), AssetID: asset.ID, SourceWalletID: source.ID, DestWalletID: dest.ID,
		QuantitySent: decimal.NewFromInt(1), QuantityReceived: decimal.RequireFromString("0.999"),
	}

	t.Run("CreateBatch rolls back on failure", func(t *testing.T) {
		broken := &domain.Withdrawal{ExternalFlow: domain.ExternalFlow{
			ID: uuid.New(), Date: day, WalletID: uuid.New(), AssetID: asset.ID,
			Quantity: decimal.NewFromInt(1), Value: domain.USDOnly{Amount: decimal.Zero},
		}}
		require.Error(t, repo.CreateBatch(ctx, []domain.Movement{deposit, broken}))

		_, err := repo.GetByID(ctx, deposit.ID)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("CreateBatch and List", func(t *testing.T) {
		require.NoError(t, repo.CreateBatch(ctx, []domain.Movement{deposit, transfer}))

		got, err := repo.List(ctx, domain.MovementFilter{WalletID: &dest.ID})
		require.NoError(t, err)
		require.Len(t, got, 1, "the destination side of a transfer matches the wallet filter")
		assert.Equal(t, transfer.ID, got[0].MovementID())

		got, err = repo.List(ctx, domain.MovementFilter{AssetID: &asset.ID})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "1.23456789", got[0].(*domain.Deposit).Quantity.String())
	})

	t.Run("Update and Delete", func(t *testing.T) {
		edited := *transfer
		edited.QuantityReceived = decimal.RequireFromString("0.5")
		require.NoError(t, repo.Update(ctx, &edited))

		got, err := repo.GetByID(ctx, transfer.ID)
		require.NoError(t, err)
		assert.Equal(t, "0.5", got.(*domain.Transfer).Fee().String())

		require.NoError(t, repo.Delete(ctx, transfer.ID))
		assert.ErrorIs(t, repo.Delete(ctx, transfer.ID), domain.ErrNotFound)
	})
}

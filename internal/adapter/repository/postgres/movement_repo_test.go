package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

func TestListQuery_NoFilter(t *testing.T) {
	query, args := listQuery(domain.MovementFilter{})

	assert.NotContains(t, query, "WHERE")
	assert.Contains(t, query, "ORDER BY date, seq")
	assert.Empty(t, args)
}

func TestListQuery_AllFilters(t *testing.T) {
	walletID, assetID := uuid.New(), uuid.New()

	query, args := listQuery(domain.MovementFilter{WalletID: &walletID, AssetID: &assetID, Kind: domain.KindSwap})

	assert.Contains(t, query, "(wallet_id = $1 OR dest_wallet_id = $1)")
	assert.Contains(t, query, "(asset_id = $2 OR dest_asset_id = $2)")
	assert.Contains(t, query, "kind = $3")
	assert.Equal(t, []any{walletID, assetID, "SWAP"}, args)
}

func TestMovementRow_DepositWithAltFiat(t *testing.T) {
	fiatID := uuid.New()
	deposit := &domain.Deposit{ExternalFlow: domain.ExternalFlow{
		ID:           uuid.New(),
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		WalletID:     uuid.New(),
		AssetID:      uuid.New(),
		Quantity:     decimal.RequireFromString("1.23456789"),
		UnitPriceUSD: decimal.RequireFromString("45000"),
		Value: domain.USDAndAltFiat{
			USD:        decimal.RequireFromString("55555.55"),
			FiatID:     fiatID,
			FiatAmount: decimal.RequireFromString("51000"),
		},
	}}

	row, err := toRow(deposit)
	require.NoError(t, err)

	args := row.args()
	assert.Equal(t, "DEPOSIT", args[1])
	assert.Nil(t, args[4], "dest_wallet_id stays NULL")
	assert.Equal(t, "1.23456789", args[7])
	assert.Equal(t, "55555.55", args[11])
	assert.Equal(t, fiatID, args[12])

	back, err := row.toMovement()
	require.NoError(t, err)
	got := back.(*domain.Deposit)
	alt, ok := got.Value.(domain.USDAndAltFiat)
	require.True(t, ok)
	assert.Equal(t, fiatID, alt.FiatID)
	assert.Equal(t, "51000", alt.FiatAmount.String())
	assert.Equal(t, "1.23456789", got.Quantity.String())
}

func TestMovementRow_WithdrawalUSDOnly(t *testing.T) {
	withdrawal := &domain.Withdrawal{ExternalFlow: domain.ExternalFlow{
		ID:       uuid.New(),
		Date:     time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC),
		Quantity: decimal.NewFromInt(1),
		Value:    domain.USDOnly{Amount: decimal.NewFromInt(100)},
	}}

	row, err := toRow(withdrawal)
	require.NoError(t, err)
	assert.Nil(t, row.args()[12])
	assert.Nil(t, row.args()[13])

	back, err := row.toMovement()
	require.NoError(t, err)
	assert.IsType(t, &domain.Withdrawal{}, back)
	assert.IsType(t, domain.USDOnly{}, back.(*domain.Withdrawal).Value)
}

func TestMovementRow_TransferAndSwap(t *testing.T) {
	transfer := &domain.Transfer{
		ID:               uuid.New(),
		Date:             time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		AssetID:          uuid.New(),
		SourceWalletID:   uuid.New(),
		DestWalletID:     uuid.New(),
		QuantitySent:     decimal.NewFromInt(1),
		QuantityReceived: decimal.RequireFromString("0.9995"),
	}
	row, err := toRow(transfer)
	require.NoError(t, err)
	back, err := row.toMovement()
	require.NoError(t, err)
	gotTransfer := back.(*domain.Transfer)
	assert.Equal(t, transfer.DestWalletID, gotTransfer.DestWalletID)
	assert.Equal(t, "0.0005", gotTransfer.Fee().String())

	swap := &domain.Swap{
		ID:                 uuid.New(),
		Date:               time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		WalletID:           uuid.New(),
		SourceAssetID:      uuid.New(),
		DestAssetID:        uuid.New(),
		QuantitySent:       decimal.RequireFromString("0.1"),
		QuantityReceived:   decimal.NewFromInt(2),
		UnitPriceSourceUSD: decimal.NewFromInt(60000),
		UnitPriceDestUSD:   decimal.NewFromInt(3000),
	}
	row, err = toRow(swap)
	require.NoError(t, err)
	assert.Equal(t, swap.SourceAssetID, row.AssetID)
	back, err = row.toMovement()
	require.NoError(t, err)
	gotSwap := back.(*domain.Swap)
	assert.Equal(t, swap.DestAssetID, gotSwap.DestAssetID)
	assert.Equal(t, "6000", gotSwap.SoldValueUSD().String())
}

func TestMovementRow_UnknownKind(t *testing.T) {
	_, err := movementRow{Kind: "AIRDROP"}.toMovement()
	assert.Error(t, err)
}

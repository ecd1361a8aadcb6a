package importer

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/balance"
)

type table struct {
	header []string
	rows   [][]string
}

func (t table) Header() []string { return t.header }
func (t table) Rows() [][]string { return t.rows }

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type fixture struct {
	bin, ldg *domain.Wallet
	btc, eth *domain.Asset
	eur      *domain.FiatCurrency
	catalog  *Catalog
}

func newFixture() fixture {
	f := fixture{
		bin: &domain.Wallet{ID: uuid.New(), Name: "Binance", Symbol: "BIN"},
		ldg: &domain.Wallet{ID: uuid.New(), Name: "Ledger", Symbol: "LDG"},
		btc: &domain.Asset{ID: uuid.New(), Name: "Bitcoin", Symbol: "BTC", CurrentPrice: dec("50000")},
		eth: &domain.Asset{ID: uuid.New(), Name: "Ether", Symbol: "ETH", CurrentPrice: dec("3000")},
		eur: &domain.FiatCurrency{ID: uuid.New(), Name: "Euro", Symbol: "EUR", PriceInUSD: dec("0.9")},
	}
	f.catalog = NewCatalog([]*domain.Wallet{f.bin, f.ldg}, []*domain.Asset{f.btc, f.eth}, []*domain.FiatCurrency{f.eur})
	return f
}

// held returns a ledger in which wallet holds qty of asset
func held(wallet *domain.Wallet, asset *domain.Asset, qty string) *domain.Ledger {
	return domain.NewLedger([]domain.Movement{&domain.Deposit{ExternalFlow: domain.ExternalFlow{
		ID: uuid.New(), Date: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), WalletID: wallet.ID, AssetID: asset.ID,
		Quantity: dec(qty), Value: domain.USDOnly{Amount: decimal.Zero},
	}}})
}

var depositHeader = []string{"Fecha", "ID_Cartera", "Cripto", "Cripto adquirido", "USD Invertido", "Costo Cripto / USD", "FIAT Invertido", "FIAT_Simbolo"}

func rowError(t *testing.T, err error) *domain.RowError {
	t.Helper()
	var rowErr *domain.RowError
	require.True(t, errors.As(err, &rowErr), "expected a *RowError, got %v", err)
	return rowErr
}

func TestValidateHeaders_ListsEveryMissingColumn(t *testing.T) {
	_, err := ValidateHeaders([]string{"Fecha", "Cripto", "cripto adquirido"}, RequiredColumns(domain.KindDeposit))

	var missing *domain.MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"ID_Cartera", "Cripto adquirido", "USD Invertido", "Costo Cripto / USD"}, missing.Columns)
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}

func TestValidateHeaders_OrderIrrelevant(t *testing.T) {
	header := []string{"precio de compra", "Monto Adquirido", "Cripto final", "Monto Descontado", "Cripto origen", "ID_Cartera", "Fecha", "precio de venta"}
	index, err := ValidateHeaders(header, RequiredColumns(domain.KindSwap))
	require.NoError(t, err)
	assert.Equal(t, 6, index["Fecha"])
}

func TestParse_HeaderFailureReadsNoRows(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}
	movements, err := p.Parse(domain.KindTransfer, table{header: []string{"Fecha"}, rows: [][]string{{"not a date"}}})

	assert.Nil(t, movements)
	assert.ErrorIs(t, err, domain.ErrMissingColumns)
}

func TestParse_UnknownKind(t *testing.T) {
	_, err := (&Parser{}).Parse(domain.MovementKind("AIRDROP"), table{})
	assert.Error(t, err)
}

func TestParse_Deposit(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}
	src := table{header: depositHeader, rows: [][]string{
		{"15/03/2024", "bin", "Btc", "1.23456789", "55555.55", "45000", "", ""},
		{"16/03/2024", "LDG", "ETH", "2", "5000", "2500", "4600", "eur"},
	}}

	movements, err := p.Parse(domain.KindDeposit, src)

	require.NoError(t, err)
	require.Len(t, movements, 2)

	first := movements[0].(*domain.Deposit)
	assert.Equal(t, f.bin.ID, first.WalletID, "wallet symbols match case-insensitively")
	assert.Equal(t, f.btc.ID, first.AssetID)
	assert.Equal(t, "1.23456789", first.Quantity.String(), "no binary-float drift")
	assert.True(t, first.Date.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)))
	usd, ok := first.Value.(domain.USDOnly)
	require.True(t, ok)
	assert.Equal(t, "55555.55", usd.Amount.String())

	second := movements[1].(*domain.Deposit)
	alt, ok := second.Value.(domain.USDAndAltFiat)
	require.True(t, ok)
	assert.Equal(t, f.eur.ID, alt.FiatID)
	assert.Equal(t, "4600", alt.FiatAmount.String())
	unit, ok := second.AltUnitPrice()
	assert.True(t, ok)
	assert.Equal(t, "2300", unit.String())
}

func TestParse_DepositAddsExactQuantity(t *testing.T) {
	f := newFixture()
	ledger := held(f.bin, f.btc, "0.1")
	p := &Parser{Catalog: f.catalog, Ledger: ledger}

	movements, err := p.Parse(domain.KindDeposit, table{header: depositHeader, rows: [][]string{
		{"15/03/2024", "BIN", "BTC", "0.2", "1", "5", "", ""},
	}})
	require.NoError(t, err)

	before := balance.Available(ledger, f.bin.ID, f.btc.ID, decimal.Zero)
	ledger.Append(movements...)
	after := balance.Available(ledger, f.bin.ID, f.btc.ID, decimal.Zero)
	assert.True(t, after.Sub(before).Equal(dec("0.2")))
}

func TestParse_DepositIncompleteFiat(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}

	for _, cells := range [][]string{
		{"15/03/2024", "BIN", "BTC", "1", "100", "100", "90", ""},
		{"15/03/2024", "BIN", "BTC", "1", "100", "100", "", "EUR"},
	} {
		_, err := p.Parse(domain.KindDeposit, table{header: depositHeader, rows: [][]string{cells}})
		assert.ErrorIs(t, err, domain.ErrIncompleteFiat)
		assert.Equal(t, 2, rowError(t, err).Row)
	}
}

func TestParse_DepositWithoutOptionalColumns(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}
	header := []string{"Fecha", "ID_Cartera", "Cripto", "Cripto adquirido", "USD Invertido", "Costo Cripto / USD"}

	movements, err := p.Parse(domain.KindDeposit, table{header: header, rows: [][]string{
		{"01/01/2024", "BIN", "BTC", "1", "40000", "40000"},
	}})

	require.NoError(t, err)
	assert.IsType(t, domain.USDOnly{}, movements[0].(*domain.Deposit).Value)
}

func TestParse_RowErrors(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}
	valid := []string{"15/03/2024", "BIN", "BTC", "1", "100", "100", "", ""}

	tests := []struct {
		name  string
		cells []string
		kind  error
		check func(t *testing.T, e *domain.RowError)
	}{
		{
			name:  "Invalid date pattern",
			cells: []string{"2024-03-15", "BIN", "BTC", "1", "100", "100", "", ""},
			kind:  domain.ErrInvalidDate,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "2024-03-15", e.Value) },
		},
		{
			name:  "Date with time component",
			cells: []string{"15/03/2024 10:00", "BIN", "BTC", "1", "100", "100", "", ""},
			kind:  domain.ErrInvalidDate,
		},
		{
			name:  "Comma decimal separator",
			cells: []string{"15/03/2024", "BIN", "BTC", "1,5", "100", "100", "", ""},
			kind:  domain.ErrInvalidNumber,
			check: func(t *testing.T, e *domain.RowError) {
				assert.Equal(t, "Cripto adquirido", e.Field)
				assert.Equal(t, "1,5", e.Value)
			},
		},
		{
			name:  "Negative quantity",
			cells: []string{"15/03/2024", "BIN", "BTC", "-1", "100", "100", "", ""},
			kind:  domain.ErrInvalidNumber,
		},
		{
			name:  "Exponent notation",
			cells: []string{"15/03/2024", "BIN", "BTC", "1e-50000000", "100", "100", "", ""},
			kind:  domain.ErrInvalidNumber,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "1e-50000000", e.Value) },
		},
		{
			name:  "Empty required cell",
			cells: []string{"15/03/2024", "BIN", "BTC", "1", "", "100", "", ""},
			kind:  domain.ErrMissingData,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "USD Invertido", e.Field) },
		},
		{
			name:  "Short row",
			cells: []string{"15/03/2024", "BIN"},
			kind:  domain.ErrMissingData,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "Cripto", e.Field) },
		},
		{
			name:  "Unknown wallet",
			cells: []string{"15/03/2024", "KRK", "BTC", "1", "100", "100", "", ""},
			kind:  domain.ErrWalletNotFound,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "KRK", e.Symbol) },
		},
		{
			name:  "Unknown asset",
			cells: []string{"15/03/2024", "BIN", "DOGE", "1", "100", "100", "", ""},
			kind:  domain.ErrAssetNotFound,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "DOGE", e.Symbol) },
		},
		{
			name:  "Unknown fiat",
			cells: []string{"15/03/2024", "BIN", "BTC", "1", "100", "100", "90", "ARS"},
			kind:  domain.ErrFiatNotFound,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "ARS", e.Symbol) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movements, err := p.Parse(domain.KindDeposit, table{header: depositHeader, rows: [][]string{valid, tt.cells, valid}})

			assert.Nil(t, movements, "no partial result on failure")
			assert.ErrorIs(t, err, tt.kind)
			e := rowError(t, err)
			assert.Equal(t, 3, e.Row, "second data row is reported as row 3")
			if tt.check != nil {
				tt.check(t, e)
			}
		})
	}
}

func TestParse_SkipsBlankRowsButKeepsNumbering(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog}

	_, err := p.Parse(domain.KindDeposit, table{header: depositHeader, rows: [][]string{
		{"", "", "", "", "", "", "", ""},
		{"15/03/2024", "XXX", "BTC", "1", "1", "1", "", ""},
	}})

	assert.Equal(t, 3, rowError(t, err).Row)
}

var withdrawalHeader = []string{"Fecha", "Cripto", "ID_Cartera", "Crypto Salido", "Precio USD Venta", "USD Total Salido", "FIAT Recibido", "FIAT_Simbolo"}

func TestParse_Withdrawal(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1.5")}

	movements, err := p.Parse(domain.KindWithdrawal, table{header: withdrawalHeader, rows: [][]string{
		{"20/03/2024", "BTC", "BIN", "0.5", "46000", "23000", "21000", "EUR"},
	}})

	require.NoError(t, err)
	w := movements[0].(*domain.Withdrawal)
	assert.Equal(t, "0.5", w.Quantity.String())
	assert.Equal(t, "46000", w.UnitPriceUSD.String())
	assert.Equal(t, "23000", w.TotalValueUSD().String())
	assert.Equal(t, "21000", w.FiatValue().String())
}

func TestParse_WithdrawalInsufficientFunds(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1.5")}

	_, err := p.Parse(domain.KindWithdrawal, table{header: withdrawalHeader, rows: [][]string{
		{"20/03/2024", "BTC", "BIN", "1.50000001", "46000", "69000", "", ""},
	}})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	e := rowError(t, err)
	assert.Equal(t, "BTC", e.Symbol)
	assert.Equal(t, "1.50000001", e.Requested.String())
	assert.Equal(t, "1.5", e.Available.String())
}

var transferHeader = []string{"Fecha", "Cripto", "ID_Cartera_Origen", "ID_Cartera_Destino", "Monto Envio", "Monto recibido", "Comision"}

func TestParse_Transfer(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}

	movements, err := p.Parse(domain.KindTransfer, table{header: transferHeader, rows: [][]string{
		{"01/04/2024", "BTC", "BIN", "LDG", "1", "0.9995", "0.0005"},
	}})

	require.NoError(t, err)
	tx := movements[0].(*domain.Transfer)
	assert.Equal(t, f.bin.ID, tx.SourceWalletID)
	assert.Equal(t, f.ldg.ID, tx.DestWalletID)
	assert.True(t, tx.QuantityReceived.LessThanOrEqual(tx.QuantitySent))
	assert.Equal(t, "0.0005", tx.Fee().String())
}

func TestParse_TransferRejections(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}

	tests := []struct {
		name  string
		cells []string
		kind  error
		check func(t *testing.T, e *domain.RowError)
	}{
		{
			name:  "Same wallet",
			cells: []string{"01/04/2024", "BTC", "BIN", "bin", "0.1", "0.1", ""},
			kind:  domain.ErrSameWallet,
		},
		{
			name:  "Received more than sent",
			cells: []string{"01/04/2024", "BTC", "BIN", "LDG", "0.1", "0.2", ""},
			kind:  domain.ErrInvalidReceivedAmount,
			check: func(t *testing.T, e *domain.RowError) {
				assert.Equal(t, "0.1", e.Sent.String())
				assert.Equal(t, "0.2", e.Received.String())
			},
		},
		{
			name:  "Sent more than available",
			cells: []string{"01/04/2024", "BTC", "BIN", "LDG", "1.25", "1.2", ""},
			kind:  domain.ErrInsufficientFunds,
			check: func(t *testing.T, e *domain.RowError) {
				assert.Equal(t, "1.25", e.Requested.String())
				assert.Equal(t, "1", e.Available.String())
			},
		},
		{
			name:  "Malformed fee",
			cells: []string{"01/04/2024", "BTC", "BIN", "LDG", "0.1", "0.1", "abc"},
			kind:  domain.ErrInvalidNumber,
			check: func(t *testing.T, e *domain.RowError) { assert.Equal(t, "Comision", e.Field) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.Parse(domain.KindTransfer, table{header: transferHeader, rows: [][]string{tt.cells}})
			assert.ErrorIs(t, err, tt.kind)
			e := rowError(t, err)
			assert.Equal(t, 2, e.Row)
			if tt.check != nil {
				tt.check(t, e)
			}
		})
	}
}

var swapHeader = []string{"Fecha", "ID_Cartera", "Cripto origen", "Monto Descontado", "Cripto final", "Monto Adquirido", "precio de venta", "precio de compra"}

func TestParse_Swap(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}

	movements, err := p.Parse(domain.KindSwap, table{header: swapHeader, rows: [][]string{
		{"02/04/2024", "BIN", "BTC", "0.1", "ETH", "2", "60000", "3000"},
	}})

	require.NoError(t, err)
	s := movements[0].(*domain.Swap)
	assert.Equal(t, f.btc.ID, s.SourceAssetID)
	assert.Equal(t, f.eth.ID, s.DestAssetID)
	assert.Equal(t, "60000", s.UnitPriceSourceUSD.String())
	assert.Equal(t, "3000", s.UnitPriceDestUSD.String())
}

func TestParse_SwapSameAsset(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}

	_, err := p.Parse(domain.KindSwap, table{header: swapHeader, rows: [][]string{
		{"02/04/2024", "BIN", "BTC", "0.1", "btc", "0.1", "60000", "60000"},
	}})

	assert.ErrorIs(t, err, domain.ErrSameAsset)
	e := rowError(t, err)
	assert.Equal(t, 2, e.Row)
	assert.Equal(t, "BTC", e.Symbol)
}

func TestParse_SwapInsufficientFunds(t *testing.T) {
	f := newFixture()
	p := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}

	_, err := p.Parse(domain.KindSwap, table{header: swapHeader, rows: [][]string{
		{"02/04/2024", "BIN", "ETH", "1", "BTC", "0.05", "3000", "60000"},
	}})

	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	assert.True(t, rowError(t, err).Available.IsZero())
}

func TestParse_RunningBalanceAcrossRows(t *testing.T) {
	f := newFixture()
	rows := [][]string{
		{"01/04/2024", "BTC", "BIN", "0.6", "50000", "30000", "", ""},
		{"02/04/2024", "BTC", "BIN", "0.6", "50000", "30000", "", ""},
	}

	snapshotOnly := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1")}
	movements, err := snapshotOnly.Parse(domain.KindWithdrawal, table{header: withdrawalHeader, rows: rows})
	require.NoError(t, err, "pre-batch checks let both rows draw on the same balance")
	assert.Len(t, movements, 2)

	running := &Parser{Catalog: f.catalog, Ledger: held(f.bin, f.btc, "1"), RunningBalance: true}
	_, err = running.Parse(domain.KindWithdrawal, table{header: withdrawalHeader, rows: rows})
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	e := rowError(t, err)
	assert.Equal(t, 3, e.Row)
	assert.Equal(t, "0.4", e.Available.String())

	assert.Len(t, running.Ledger.Movements(), 1, "the caller's snapshot is never modified")
}

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"1.23456789", "1.23456789", true},
		{" 42 ", "42", true},
		{"0.000000000000000001", "0.000000000000000001", true},
		{"1,5", "", false},
		{"1 000", "", false},
		{"abc", "", false},
		{"", "", false},
		{"1e5", "", false},
		{"2E3", "", false},
		{"1e-50000000", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDecimal(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got.String())
			}
		})
	}
}

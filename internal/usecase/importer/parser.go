package importer

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/balance"
)

// Source is a decoded spreadsheet: header names and rows of string cells, in file order
type Source interface {
	Header() []string
	Rows() [][]string
}

// Parser turns tabular rows into validated movements.
// Funds checks run against Ledger, the movements stored before the batch. With
// RunningBalance set, each accepted row is also counted for the rows after it;
// otherwise every row is checked against the pre-batch balance only.
type Parser struct {
	Catalog        *Catalog
	Ledger         *domain.Ledger
	RunningBalance bool
}

// batch is the state of one Parse call
type batch struct {
	catalog *Catalog
	ledger  *domain.Ledger
}

// Parse validates the header, then parses rows strictly in file order.
// The first failing row aborts the whole file and nothing is returned.
// Fully blank rows are skipped.
func (p *Parser) Parse(kind domain.MovementKind, src Source) ([]domain.Movement, error) {
	required := RequiredColumns(kind)
	if required == nil {
		return nil, fmt.Errorf("unsupported movement kind: %q", kind)
	}
	columns, err := ValidateHeaders(src.Header(), required)
	if err != nil {
		return nil, err
	}

	catalog := p.Catalog
	if catalog == nil {
		catalog = NewCatalog(nil, nil, nil)
	}
	var prior []domain.Movement
	if p.Ledger != nil {
		prior = p.Ledger.Movements()
	}
	// Own copy so running totals never leak into the caller's snapshot.
	b := &batch{catalog: catalog, ledger: domain.NewLedger(prior)}

	parse := map[domain.MovementKind]func(*row) (domain.Movement, error){
		domain.KindDeposit:    b.deposit,
		domain.KindWithdrawal: b.withdrawal,
		domain.KindTransfer:   b.transfer,
		domain.KindSwap:       b.swap,
	}[kind]

	rows := src.Rows()
	movements := make([]domain.Movement, 0, len(rows))
	for i, cells := range rows {
		r := &row{num: i + 2, cells: cells, columns: columns}
		if r.blank() {
			continue
		}
		m, err := parse(r)
		if err != nil {
			return nil, err
		}
		if p.RunningBalance {
			b.ledger.Append(m)
		}
		movements = append(movements, m)
	}
	return movements, nil
}

func (b *batch) ensureFunds(r *row, walletID uuid.UUID, asset *domain.Asset, requested decimal.Decimal) error {
	available := balance.Available(b.ledger, walletID, asset.ID, decimal.Zero)
	if requested.GreaterThan(available) {
		e := r.fail(domain.ErrInsufficientFunds)
		e.Symbol = asset.Symbol
		e.Requested = requested
		e.Available = available
		return e
	}
	return nil
}

func (b *batch) flow(r *row, quantityCol, unitCol, totalCol, fiatCol string) (domain.ExternalFlow, *domain.Asset, error) {
	var f domain.ExternalFlow
	date, err := r.date()
	if err != nil {
		return f, nil, err
	}
	wallet, err := r.wallet(b.catalog, ColWallet)
	if err != nil {
		return f, nil, err
	}
	asset, err := r.asset(b.catalog, ColAsset)
	if err != nil {
		return f, nil, err
	}
	quantity, err := r.quantity(quantityCol)
	if err != nil {
		return f, nil, err
	}
	unit, err := r.quantity(unitCol)
	if err != nil {
		return f, nil, err
	}
	total, err := r.quantity(totalCol)
	if err != nil {
		return f, nil, err
	}
	value, err := r.value(b.catalog, total, fiatCol)
	if err != nil {
		return f, nil, err
	}
	return domain.ExternalFlow{
		ID:           uuid.New(),
		Date:         date,
		WalletID:     wallet.ID,
		AssetID:      asset.ID,
		Quantity:     quantity,
		UnitPriceUSD: unit,
		Value:        value,
	}, asset, nil
}

func (b *batch) deposit(r *row) (domain.Movement, error) {
	f, _, err := b.flow(r, ColDepositQuantity, ColDepositUnitUSD, ColDepositTotalUSD, ColDepositFiatTotal)
	if err != nil {
		return nil, err
	}
	return &domain.Deposit{ExternalFlow: f}, nil
}

func (b *batch) withdrawal(r *row) (domain.Movement, error) {
	f, asset, err := b.flow(r, ColWithdrawalQuantity, ColWithdrawalUnitUSD, ColWithdrawalTotalUSD, ColWithdrawalFiatTotal)
	if err != nil {
		return nil, err
	}
	if err := b.ensureFunds(r, f.WalletID, asset, f.Quantity); err != nil {
		return nil, err
	}
	return &domain.Withdrawal{ExternalFlow: f}, nil
}

// transfer checks, in order: same wallet, received above sent, then funds
func (b *batch) transfer(r *row) (domain.Movement, error) {
	date, err := r.date()
	if err != nil {
		return nil, err
	}
	asset, err := r.asset(b.catalog, ColAsset)
	if err != nil {
		return nil, err
	}
	source, err := r.wallet(b.catalog, ColTransferSource)
	if err != nil {
		return nil, err
	}
	dest, err := r.wallet(b.catalog, ColTransferDest)
	if err != nil {
		return nil, err
	}
	sent, err := r.quantity(ColTransferSent)
	if err != nil {
		return nil, err
	}
	received, err := r.quantity(ColTransferReceived)
	if err != nil {
		return nil, err
	}
	// The fee is always sent - received; a stated fee is only checked for format.
	if raw := r.cell(ColTransferFee); raw != "" {
		if _, err := r.number(ColTransferFee, raw); err != nil {
			return nil, err
		}
	}

	if source.ID == dest.ID {
		return nil, r.fail(domain.ErrSameWallet)
	}
	if received.GreaterThan(sent) {
		e := r.fail(domain.ErrInvalidReceivedAmount)
		e.Sent = sent
		e.Received = received
		return nil, e
	}
	if err := b.ensureFunds(r, source.ID, asset, sent); err != nil {
		return nil, err
	}

	return &domain.Transfer{
		ID:               uuid.New(),
		Date:             date,
		AssetID:          asset.ID,
		SourceWalletID:   source.ID,
		DestWalletID:     dest.ID,
		QuantitySent:     sent,
		QuantityReceived: received,
	}, nil
}

func (b *batch) swap(r *row) (domain.Movement, error) {
	date, err := r.date()
	if err != nil {
		return nil, err
	}
	wallet, err := r.wallet(b.catalog, ColWallet)
	if err != nil {
		return nil, err
	}
	source, err := r.asset(b.catalog, ColSwapSourceAsset)
	if err != nil {
		return nil, err
	}
	sent, err := r.quantity(ColSwapSent)
	if err != nil {
		return nil, err
	}
	dest, err := r.asset(b.catalog, ColSwapDestAsset)
	if err != nil {
		return nil, err
	}
	received, err := r.quantity(ColSwapReceived)
	if err != nil {
		return nil, err
	}
	sourcePrice, err := r.quantity(ColSwapSourcePrice)
	if err != nil {
		return nil, err
	}
	destPrice, err := r.quantity(ColSwapDestPrice)
	if err != nil {
		return nil, err
	}

	if source.ID == dest.ID {
		e := r.fail(domain.ErrSameAsset)
		e.Symbol = source.Symbol
		return nil, e
	}
	if err := b.ensureFunds(r, wallet.ID, source, sent); err != nil {
		return nil, err
	}

	return &domain.Swap{
		ID:                 uuid.New(),
		Date:               date,
		WalletID:           wallet.ID,
		SourceAssetID:      source.ID,
		DestAssetID:        dest.ID,
		QuantitySent:       sent,
		QuantityReceived:   received,
		UnitPriceSourceUSD: sourcePrice,
		UnitPriceDestUSD:   destPrice,
	}, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// movementRepository implements domain.MovementRepository
type movementRepository struct {
	db *DB
}

// NewMovementRepository creates a new movement repository
func NewMovementRepository(db *DB) domain.MovementRepository {
	return &movementRepository{db: db}
}

const movementColumns = `id, kind, date, wallet_id, dest_wallet_id, asset_id, dest_asset_id,
		quantity, quantity_received, unit_price_usd, unit_price_dest_usd, total_usd, fiat_id, fiat_amount`

// movementRow is the flat table layout shared by every movement kind
type movementRow struct {
	ID               uuid.UUID
	Kind             domain.MovementKind
	Date             time.Time
	WalletID         uuid.UUID
	DestWalletID     *uuid.UUID
	AssetID          uuid.UUID
	DestAssetID      *uuid.UUID
	Quantity         decimal.Decimal
	QuantityReceived *decimal.Decimal
	UnitPriceUSD     *decimal.Decimal
	UnitPriceDestUSD *decimal.Decimal
	TotalUSD         *decimal.Decimal
	FiatID           *uuid.UUID
	FiatAmount       *decimal.Decimal
}

func toRow(m domain.Movement) (movementRow, error) {
	switch v := m.(type) {
	case *domain.Deposit:
		return flowRow(v.MovementID(), v.Kind(), &v.ExternalFlow), nil
	case *domain.Withdrawal:
		return flowRow(v.MovementID(), v.Kind(), &v.ExternalFlow), nil
	case *domain.Transfer:
		return movementRow{
			ID:               v.ID,
			Kind:             domain.KindTransfer,
			Date:             v.Date,
			WalletID:         v.SourceWalletID,
			DestWalletID:     &v.DestWalletID,
			AssetID:          v.AssetID,
			Quantity:         v.QuantitySent,
			QuantityReceived: &v.QuantityReceived,
		}, nil
	case *domain.Swap:
		return movementRow{
			ID:               v.ID,
			Kind:             domain.KindSwap,
			Date:             v.Date,
			WalletID:         v.WalletID,
			AssetID:          v.SourceAssetID,
			DestAssetID:      &v.DestAssetID,
			Quantity:         v.QuantitySent,
			QuantityReceived: &v.QuantityReceived,
			UnitPriceUSD:     &v.UnitPriceSourceUSD,
			UnitPriceDestUSD: &v.UnitPriceDestUSD,
		}, nil
	}
	return movementRow{}, fmt.Errorf("unsupported movement type %T", m)
}

func flowRow(id uuid.UUID, kind domain.MovementKind, f *domain.ExternalFlow) movementRow {
	total := f.TotalValueUSD()
	row := movementRow{
		ID:           id,
		Kind:         kind,
		Date:         f.Date,
		WalletID:     f.WalletID,
		AssetID:      f.AssetID,
		Quantity:     f.Quantity,
		UnitPriceUSD: &f.UnitPriceUSD,
		TotalUSD:     &total,
	}
	if alt, ok := f.Value.(domain.USDAndAltFiat); ok {
		fiatID, amount := alt.FiatID, alt.FiatAmount
		row.FiatID = &fiatID
		row.FiatAmount = &amount
	}
	return row
}

func (r movementRow) toMovement() (domain.Movement, error) {
	orZero := func(d *decimal.Decimal) decimal.Decimal {
		if d == nil {
			return decimal.Zero
		}
		return *d
	}

	switch r.Kind {
	case domain.KindDeposit, domain.KindWithdrawal:
		var value domain.MovementValue = domain.USDOnly{Amount: orZero(r.TotalUSD)}
		if r.FiatID != nil {
			value = domain.USDAndAltFiat{USD: orZero(r.TotalUSD), FiatID: *r.FiatID, FiatAmount: orZero(r.FiatAmount)}
		}
		flow := domain.ExternalFlow{
			ID:           r.ID,
			Date:         r.Date,
			WalletID:     r.WalletID,
			AssetID:      r.AssetID,
			Quantity:     r.Quantity,
			UnitPriceUSD: orZero(r.UnitPriceUSD),
			Value:        value,
		}
		if r.Kind == domain.KindDeposit {
			return &domain.Deposit{ExternalFlow: flow}, nil
		}
		return &domain.Withdrawal{ExternalFlow: flow}, nil
	case domain.KindTransfer:
		if r.DestWalletID == nil {
			return nil, fmt.Errorf("transfer %s has no destination wallet", r.ID)
		}
		return &domain.Transfer{
			ID:               r.ID,
			Date:             r.Date,
			AssetID:          r.AssetID,
			SourceWalletID:   r.WalletID,
			DestWalletID:     *r.DestWalletID,
			QuantitySent:     r.Quantity,
			QuantityReceived: orZero(r.QuantityReceived),
		}, nil
	case domain.KindSwap:
		if r.DestAssetID == nil {
			return nil, fmt.Errorf("swap %s has no destination asset", r.ID)
		}
		return &domain.Swap{
			ID:                 r.ID,
			Date:               r.Date,
			WalletID:           r.WalletID,
			SourceAssetID:      r.AssetID,
			DestAssetID:        *r.DestAssetID,
			QuantitySent:       r.Quantity,
			QuantityReceived:   orZero(r.QuantityReceived),
			UnitPriceSourceUSD: orZero(r.UnitPriceUSD),
			UnitPriceDestUSD:   orZero(r.UnitPriceDestUSD),
		}, nil
	}
	return nil, fmt.Errorf("unknown movement kind %q", r.Kind)
}

// args returns the column values in movementColumns order
func (r movementRow) args() []any {
	return []any{
		r.ID,
		string(r.Kind),
		r.Date,
		r.WalletID,
		nullUUID(r.DestWalletID),
		r.AssetID,
		nullUUID(r.DestAssetID),
		r.Quantity.String(),
		nullDecimal(r.QuantityReceived),
		nullDecimal(r.UnitPriceUSD),
		nullDecimal(r.UnitPriceDestUSD),
		nullDecimal(r.TotalUSD),
		nullUUID(r.FiatID),
		nullDecimal(r.FiatAmount),
	}
}

func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func scanMovement(s rowScanner) (domain.Movement, error) {
	var r movementRow
	var kind, quantity string
	var destWallet, destAsset, fiatID sql.NullString
	var received, unitPrice, unitPriceDest, total, fiatAmount sql.NullString

	if err := s.Scan(&r.ID, &kind, &r.Date, &r.WalletID, &destWallet, &r.AssetID, &destAsset,
		&quantity, &received, &unitPrice, &unitPriceDest, &total, &fiatID, &fiatAmount); err != nil {
		return nil, err
	}
	r.Kind = domain.MovementKind(kind)
	r.Date = r.Date.UTC()

	var err error
	if r.Quantity, err = parseDecimal(quantity, "quantity"); err != nil {
		return nil, err
	}
	for _, c := range []struct {
		raw    sql.NullString
		dst    **decimal.Decimal
		column string
	}{
		{received, &r.QuantityReceived, "quantity_received"},
		{unitPrice, &r.UnitPriceUSD, "unit_price_usd"},
		{unitPriceDest, &r.UnitPriceDestUSD, "unit_price_dest_usd"},
		{total, &r.TotalUSD, "total_usd"},
		{fiatAmount, &r.FiatAmount, "fiat_amount"},
	} {
		if !c.raw.Valid {
			continue
		}
		d, err := parseNullDecimal(c.raw, c.column)
		if err != nil {
			return nil, err
		}
		*c.dst = &d
	}
	for _, c := range []struct {
		raw    sql.NullString
		dst    **uuid.UUID
		column string
	}{
		{destWallet, &r.DestWalletID, "dest_wallet_id"},
		{destAsset, &r.DestAssetID, "dest_asset_id"},
		{fiatID, &r.FiatID, "fiat_id"},
	} {
		if !c.raw.Valid {
			continue
		}
		id, err := uuid.Parse(c.raw.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", c.column, err)
		}
		*c.dst = &id
	}

	return r.toMovement()
}

// GetByID retrieves a movement by its ID
func (r *movementRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`

	m, err := scanMovement(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movement %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movement by ID: %w", err)
	}
	return m, nil
}

// CreateBatch inserts all movements in one database transaction, in order.
// Any failure rolls back the whole batch.
func (r *movementRepository) CreateBatch(ctx context.Context, movements []domain.Movement) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `INSERT INTO movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`)
	if err != nil {
		return fmt.Errorf("failed to prepare movement insert: %w", err)
	}
	defer stmt.Close()

	for i, m := range movements {
		row, err := toRow(m)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, row.args()...); err != nil {
			return fmt.Errorf("failed to insert movement %d: %w", i+1, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Update overwrites every column of an existing movement
func (r *movementRepository) Update(ctx context.Context, movement domain.Movement) error {
	row, err := toRow(movement)
	if err != nil {
		return err
	}

	query := `
		UPDATE movements
		SET kind = $2, date = $3, wallet_id = $4, dest_wallet_id = $5, asset_id = $6, dest_asset_id = $7,
			quantity = $8, quantity_received = $9, unit_price_usd = $10, unit_price_dest_usd = $11,
			total_usd = $12, fiat_id = $13, fiat_amount = $14
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, row.args()...)
	if err != nil {
		return fmt.Errorf("failed to update movement: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("movement %s: %w", row.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes a movement permanently
func (r *movementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete movement: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("movement %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// List retrieves movements matching the filter, ordered by date, then insertion
func (r *movementRepository) List(ctx context.Context, filter domain.MovementFilter) ([]domain.Movement, error) {
	query, args := listQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list movements: %w", err)
	}
	defer rows.Close()

	var movements []domain.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement: %w", err)
		}
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movements: %w", err)
	}

	return movements, nil
}

// listQuery builds the filtered SELECT. A wallet filter matches either side of a
// transfer and an asset filter matches either side of a swap.
func listQuery(filter domain.MovementFilter) (string, []any) {
	var where []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.WalletID != nil {
		p := next(*filter.WalletID)
		where = append(where, fmt.Sprintf("(wallet_id = %s OR dest_wallet_id = %s)", p, p))
	}
	if filter.AssetID != nil {
		p := next(*filter.AssetID)
		where = append(where, fmt.Sprintf("(asset_id = %s OR dest_asset_id = %s)", p, p))
	}
	if filter.Kind != "" {
		where = append(where, "kind = "+next(string(filter.Kind)))
	}

	query := `SELECT ` + movementColumns + ` FROM movements`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	return query + ` ORDER BY date, seq`, args
}

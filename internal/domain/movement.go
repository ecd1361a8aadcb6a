package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementKind identifies one of the four value-moving events
type MovementKind string

const (
	KindDeposit    MovementKind = "DEPOSIT"
	KindWithdrawal MovementKind = "WITHDRAWAL"
	KindTransfer   MovementKind = "TRANSFER"
	KindSwap       MovementKind = "SWAP"
)

// ParseMovementKind parses a kind name, case-sensitively.
func ParseMovementKind(s string) (MovementKind, error) {
	switch k := MovementKind(s); k {
	case KindDeposit, KindWithdrawal, KindTransfer, KindSwap:
		return k, nil
	}
	return "", errors.New("unknown movement kind: " + s)
}

var (
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrMissingValue   = errors.New("movement value is required")
	ErrMissingDate    = errors.New("movement date is required")
)

// Movement is the closed set {*Deposit, *Withdrawal, *Transfer, *Swap}.
// A movement is identified by its ID; its other fields may be overwritten in place.
type Movement interface {
	MovementID() uuid.UUID
	Kind() MovementKind
	When() time.Time
	// Legs lists the (wallet, asset) quantities this movement adds or removes.
	Legs() []Leg
	Validate() error
	isMovement()
}

// LegKind classifies how a leg affects a position.
type LegKind int

const (
	LegDeposit LegKind = iota
	LegWithdrawal
	LegTransferIn
	LegTransferOut
	LegSwapIn
	LegSwapOut
)

// Inbound reports whether the leg increases the position.
func (k LegKind) Inbound() bool {
	return k == LegDeposit || k == LegTransferIn || k == LegSwapIn
}

// Leg is the effect of one movement on one (wallet, asset) position.
type Leg struct {
	Kind     LegKind
	WalletID uuid.UUID
	AssetID  uuid.UUID
	Quantity decimal.Decimal
	Movement Movement
}

// Signed returns the quantity with the sign of its effect on the balance.
func (l Leg) Signed() decimal.Decimal {
	if l.Kind.Inbound() {
		return l.Quantity
	}
	return l.Quantity.Neg()
}

// ExternalFlow holds the fields shared by deposits and withdrawals.
type ExternalFlow struct {
	ID           uuid.UUID
	Date         time.Time
	WalletID     uuid.UUID
	AssetID      uuid.UUID
	Quantity     decimal.Decimal
	UnitPriceUSD decimal.Decimal
	Value        MovementValue
}

// TotalValueUSD returns the USD value of the flow.
func (f *ExternalFlow) TotalValueUSD() decimal.Decimal {
	if f.Value == nil {
		return decimal.Zero
	}
	return f.Value.USDAmount()
}

// FiatValue returns the alternate fiat total when one was recorded, else the USD total.
func (f *ExternalFlow) FiatValue() decimal.Decimal {
	if alt, ok := f.Value.(USDAndAltFiat); ok {
		return alt.FiatAmount
	}
	return f.TotalValueUSD()
}

// AltUnitPrice returns the alternate fiat price per unit, or false when the flow is
// USD only. A zero quantity yields a zero price.
func (f *ExternalFlow) AltUnitPrice() (decimal.Decimal, bool) {
	alt, ok := f.Value.(USDAndAltFiat)
	if !ok {
		return decimal.Zero, false
	}
	if f.Quantity.IsZero() {
		return decimal.Zero, true
	}
	return alt.FiatAmount.Div(f.Quantity), true
}

func (f *ExternalFlow) validate() error {
	if f.Date.IsZero() {
		return ErrMissingDate
	}
	if f.Value == nil {
		return ErrMissingValue
	}
	if f.Quantity.IsNegative() || f.UnitPriceUSD.IsNegative() {
		return ErrNegativeAmount
	}
	return f.Value.validate()
}

// Deposit increases an asset's balance in a wallet via external acquisition.
type Deposit struct {
	ExternalFlow
}

func (d *Deposit) MovementID() uuid.UUID { return d.ID }
func (d *Deposit) Kind() MovementKind    { return KindDeposit }
func (d *Deposit) When() time.Time       { return d.Date }
func (d *Deposit) Validate() error       { return d.validate() }
func (d *Deposit) isMovement()           {}

func (d *Deposit) Legs() []Leg {
	return []Leg{{Kind: LegDeposit, WalletID: d.WalletID, AssetID: d.AssetID, Quantity: d.Quantity, Movement: d}}
}

// Withdrawal decreases an asset's balance in a wallet via external disposal.
type Withdrawal struct {
	ExternalFlow
}

func (w *Withdrawal) MovementID() uuid.UUID { return w.ID }
func (w *Withdrawal) Kind() MovementKind    { return KindWithdrawal }
func (w *Withdrawal) When() time.Time       { return w.Date }
func (w *Withdrawal) Validate() error       { return w.validate() }
func (w *Withdrawal) isMovement()           {}

func (w *Withdrawal) Legs() []Leg {
	return []Leg{{Kind: LegWithdrawal, WalletID: w.WalletID, AssetID: w.AssetID, Quantity: w.Quantity, Movement: w}}
}

// Transfer moves an asset between two wallets, net of a fee.
type Transfer struct {
	ID               uuid.UUID
	Date             time.Time
	AssetID          uuid.UUID
	SourceWalletID   uuid.UUID
	DestWalletID     uuid.UUID
	QuantitySent     decimal.Decimal
	QuantityReceived decimal.Decimal
}

func (t *Transfer) MovementID() uuid.UUID { return t.ID }
func (t *Transfer) Kind() MovementKind    { return KindTransfer }
func (t *Transfer) When() time.Time       { return t.Date }
func (t *Transfer) isMovement()           {}

// Fee is the quantity lost in transit.
func (t *Transfer) Fee() decimal.Decimal {
	return t.QuantitySent.Sub(t.QuantityReceived)
}

func (t *Transfer) Legs() []Leg {
	return []Leg{
		{Kind: LegTransferOut, WalletID: t.SourceWalletID, AssetID: t.AssetID, Quantity: t.QuantitySent, Movement: t},
		{Kind: LegTransferIn, WalletID: t.DestWalletID, AssetID: t.AssetID, Quantity: t.QuantityReceived, Movement: t},
	}
}

// Validate ensures the transfer adheres to domain rules
func (t *Transfer) Validate() error {
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if t.QuantitySent.IsNegative() || t.QuantityReceived.IsNegative() {
		return ErrNegativeAmount
	}
	if t.SourceWalletID == t.DestWalletID {
		return ErrSameWallet
	}
	if t.QuantityReceived.GreaterThan(t.QuantitySent) {
		return ErrInvalidReceivedAmount
	}
	return nil
}

// Swap exchanges one asset for another within one wallet.
type Swap struct {
	ID                 uuid.UUID
	Date               time.Time
	WalletID           uuid.UUID
	SourceAssetID      uuid.UUID
	DestAssetID        uuid.UUID
	QuantitySent       decimal.Decimal
	QuantityReceived   decimal.Decimal
	UnitPriceSourceUSD decimal.Decimal
	UnitPriceDestUSD   decimal.Decimal
}

func (s *Swap) MovementID() uuid.UUID { return s.ID }
func (s *Swap) Kind() MovementKind    { return KindSwap }
func (s *Swap) When() time.Time       { return s.Date }
func (s *Swap) isMovement()           {}

// SoldValueUSD is the USD value given up on the source side.
func (s *Swap) SoldValueUSD() decimal.Decimal {
	return s.QuantitySent.Mul(s.UnitPriceSourceUSD)
}

func (s *Swap) Legs() []Leg {
	return []Leg{
		{Kind: LegSwapOut, WalletID: s.WalletID, AssetID: s.SourceAssetID, Quantity: s.QuantitySent, Movement: s},
		{Kind: LegSwapIn, WalletID: s.WalletID, AssetID: s.DestAssetID, Quantity: s.QuantityReceived, Movement: s},
	}
}

// Validate ensures the swap adheres to domain rules
func (s *Swap) Validate() error {
	if s.Date.IsZero() {
		return ErrMissingDate
	}
	if s.QuantitySent.IsNegative() || s.QuantityReceived.IsNegative() ||
		s.UnitPriceSourceUSD.IsNegative() || s.UnitPriceDestUSD.IsNegative() {
		return ErrNegativeAmount
	}
	if s.SourceAssetID == s.DestAssetID {
		return ErrSameAsset
	}
	return nil
}

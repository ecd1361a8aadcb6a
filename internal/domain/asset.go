package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	MaxAssetNameLength   = 30
	MaxAssetSymbolLength = 10
)

// Asset represents a tradable cryptocurrency unit and its current USD price.
// PriceHistory is ordered oldest first.
type Asset struct {
	ID           uuid.UUID
	Name         string
	Symbol       string
	CurrentPrice decimal.Decimal
	LastUpdated  time.Time
	PriceHistory []PriceHistoryEntry
}

// NewAsset builds a validated asset priced at price as of at.
func NewAsset(name, symbol string, price decimal.Decimal, at time.Time) (*Asset, error) {
	a := &Asset{
		ID:           uuid.New(),
		Name:         name,
		Symbol:       symbol,
		CurrentPrice: price,
		LastUpdated:  at,
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// Validate ensures the asset adheres to domain rules
func (a *Asset) Validate() error {
	if err := validateLabel(a.Name, a.Symbol, MaxAssetNameLength, MaxAssetSymbolLength); err != nil {
		return err
	}
	if a.CurrentPrice.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// SetPrice snapshots the previous price and timestamp into the history and then
// overwrites them. The snapshot is taken on every call, even when price is unchanged.
// It returns the recorded entry.
func (a *Asset) SetPrice(price decimal.Decimal, at time.Time) PriceHistoryEntry {
	entry := PriceHistoryEntry{
		ID:      uuid.New(),
		AssetID: a.ID,
		Price:   a.CurrentPrice,
		Date:    a.LastUpdated,
	}
	a.PriceHistory = append(a.PriceHistory, entry)
	a.CurrentPrice = price
	a.LastUpdated = at
	return entry
}

// PriceAt returns the first history entry recorded on the same calendar day as day.
func (a *Asset) PriceAt(day time.Time) (PriceHistoryEntry, bool) {
	for _, entry := range a.PriceHistory {
		if SameDay(entry.Date, day) {
			return entry, true
		}
	}
	return PriceHistoryEntry{}, false
}

// PerformanceSince returns the percent change from the price recorded on day to the
// current price. ok is false when there is no entry for that day or its price is zero.
func (a *Asset) PerformanceSince(day time.Time) (pct decimal.Decimal, ok bool) {
	entry, found := a.PriceAt(day)
	if !found || entry.Price.IsZero() {
		return decimal.Zero, false
	}
	return a.CurrentPrice.Sub(entry.Price).Div(entry.Price).Mul(hundred), true
}

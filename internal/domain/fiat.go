package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FiatCurrency is a government-issued currency used as an alternate valuation unit.
// PriceInUSD is the multiplier applied to a USD value to express it in this currency.
type FiatCurrency struct {
	ID         uuid.UUID
	Name       string
	Symbol     string
	PriceInUSD decimal.Decimal
}

// Validate ensures the fiat currency adheres to domain rules
func (f *FiatCurrency) Validate() error {
	if err := validateLabel(f.Name, f.Symbol, MaxAssetNameLength, MaxAssetSymbolLength); err != nil {
		return err
	}
	if f.PriceInUSD.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementValue is the valuation attached to a deposit or withdrawal:
// either USDOnly or USDAndAltFiat.
type MovementValue interface {
	USDAmount() decimal.Decimal
	validate() error
}

// USDOnly values a flow in USD alone.
type USDOnly struct {
	Amount decimal.Decimal
}

func (v USDOnly) USDAmount() decimal.Decimal { return v.Amount }

func (v USDOnly) validate() error {
	if v.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// USDAndAltFiat values a flow in USD and in an alternate fiat currency.
type USDAndAltFiat struct {
	USD        decimal.Decimal
	FiatID     uuid.UUID
	FiatAmount decimal.Decimal
}

func (v USDAndAltFiat) USDAmount() decimal.Decimal { return v.USD }

func (v USDAndAltFiat) validate() error {
	if v.USD.IsNegative() || v.FiatAmount.IsNegative() {
		return ErrNegativeAmount
	}
	if v.FiatID == uuid.Nil {
		return ErrFiatNotFound
	}
	return nil
}

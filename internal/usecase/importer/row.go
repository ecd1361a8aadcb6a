package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// DateLayout is the only accepted date format: dd/mm/yyyy, no time component.
const DateLayout = "02/01/2006"

// row gives typed, row-scoped access to one data row
type row struct {
	num     int // 1-based, counting the header row
	cells   []string
	columns map[string]int
}

func (r *row) cell(column string) string {
	i, ok := r.columns[column]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r *row) blank() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func (r *row) fail(kind error) *domain.RowError {
	return &domain.RowError{Kind: kind, Row: r.num}
}

func (r *row) required(column string) (string, error) {
	v := r.cell(column)
	if v == "" {
		e := r.fail(domain.ErrMissingData)
		e.Field = column
		return "", e
	}
	return v, nil
}

// ParseDecimal parses a locale-invariant decimal: '.' is the only decimal
// separator, and neither digit grouping nor exponent notation is accepted.
func ParseDecimal(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, ", _eE") {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// ParseDate parses a dd/mm/yyyy date as midnight UTC
func ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// quantity parses a required non-negative decimal
func (r *row) quantity(column string) (decimal.Decimal, error) {
	raw, err := r.required(column)
	if err != nil {
		return decimal.Zero, err
	}
	return r.number(column, raw)
}

func (r *row) number(column, raw string) (decimal.Decimal, error) {
	d, ok := ParseDecimal(raw)
	if !ok || d.IsNegative() {
		e := r.fail(domain.ErrInvalidNumber)
		e.Field = column
		e.Value = raw
		return decimal.Zero, e
	}
	return d, nil
}

func (r *row) date() (time.Time, error) {
	raw, err := r.required(ColDate)
	if err != nil {
		return time.Time{}, err
	}
	t, ok := ParseDate(raw)
	if !ok {
		e := r.fail(domain.ErrInvalidDate)
		e.Value = raw
		return time.Time{}, e
	}
	return t, nil
}

func (r *row) wallet(c *Catalog, column string) (*domain.Wallet, error) {
	symbol, err := r.required(column)
	if err != nil {
		return nil, err
	}
	w, ok := c.Wallet(symbol)
	if !ok {
		e := r.fail(domain.ErrWalletNotFound)
		e.Symbol = symbol
		return nil, e
	}
	return w, nil
}

func (r *row) asset(c *Catalog, column string) (*domain.Asset, error) {
	symbol, err := r.required(column)
	if err != nil {
		return nil, err
	}
	a, ok := c.Asset(symbol)
	if !ok {
		e := r.fail(domain.ErrAssetNotFound)
		e.Symbol = symbol
		return nil, e
	}
	return a, nil
}

// value builds the tagged movement value. The alternate fiat is used only when both
// the amount and the symbol are given; exactly one of them is an error.
func (r *row) value(c *Catalog, usd decimal.Decimal, amountColumn string) (domain.MovementValue, error) {
	rawAmount := r.cell(amountColumn)
	symbol := r.cell(ColFiatSymbol)

	switch {
	case rawAmount == "" && symbol == "":
		return domain.USDOnly{Amount: usd}, nil
	case rawAmount == "" || symbol == "":
		return nil, r.fail(domain.ErrIncompleteFiat)
	}

	amount, err := r.number(amountColumn, rawAmount)
	if err != nil {
		return nil, err
	}
	fiat, ok := c.Fiat(symbol)
	if !ok {
		e := r.fail(domain.ErrFiatNotFound)
		e.Symbol = symbol
		return nil, e
	}
	return domain.USDAndAltFiat{USD: usd, FiatID: fiat.ID, FiatAmount: amount}, nil
}

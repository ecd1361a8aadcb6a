package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Import error kinds. A *RowError wraps exactly one of these.
var (
	ErrMissingData           = errors.New("missing data")
	ErrInvalidDate           = errors.New("invalid date")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrWalletNotFound        = errors.New("wallet not found")
	ErrAssetNotFound         = errors.New("asset not found")
	ErrFiatNotFound          = errors.New("fiat currency not found")
	ErrIncompleteFiat        = errors.New("incomplete fiat value")
	ErrSameWallet            = errors.New("source and destination wallet must differ")
	ErrSameAsset             = errors.New("source and destination asset must differ")
	ErrInvalidReceivedAmount = errors.New("received amount exceeds sent amount")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrMissingColumns        = errors.New("missing required columns")
)

// RowError reports why a data row was rejected. Row is 1-based and counts the
// header, so the first data row is row 2. Only the fields relevant to Kind are set.
type RowError struct {
	Kind      error
	Row       int
	Field     string
	Value     string
	Symbol    string
	Requested decimal.Decimal
	Available decimal.Decimal
	Sent      decimal.Decimal
	Received  decimal.Decimal
}

func (e *RowError) Error() string {
	var detail string
	switch e.Kind {
	case ErrMissingData:
		detail = fmt.Sprintf("column %q is empty", e.Field)
	case ErrInvalidDate:
		detail = fmt.Sprintf("%q is not a dd/mm/yyyy date", e.Value)
	case ErrInvalidNumber:
		detail = fmt.Sprintf("column %q: %q is not a valid number", e.Field, e.Value)
	case ErrWalletNotFound, ErrAssetNotFound, ErrFiatNotFound:
		detail = fmt.Sprintf("symbol %q", e.Symbol)
	case ErrIncompleteFiat:
		detail = "fiat amount and fiat symbol must be given together"
	case ErrSameAsset:
		detail = fmt.Sprintf("asset %q", e.Symbol)
	case ErrInvalidReceivedAmount:
		detail = fmt.Sprintf("sent %s, received %s", e.Sent, e.Received)
	case ErrInsufficientFunds:
		detail = fmt.Sprintf("%s requested %s, available %s", e.Symbol, e.Requested, e.Available)
	}
	if detail == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Kind)
	}
	return fmt.Sprintf("row %d: %v: %s", e.Row, e.Kind, detail)
}

func (e *RowError) Unwrap() error { return e.Kind }

// MissingColumnsError lists every required column absent from a header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumns, strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Unwrap() error { return ErrMissingColumns }

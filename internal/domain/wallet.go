package domain

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxWalletNameLength   = 20
	MaxWalletSymbolLength = 10
)

var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrEmptySymbol    = errors.New("symbol cannot be empty")
	ErrNameTooLong    = errors.New("name exceeds maximum length")
	ErrSymbolTooLong  = errors.New("symbol exceeds maximum length")
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Wallet represents a named holding location for assets.
// Symbol is the unique lookup key used by imports.
type Wallet struct {
	ID     uuid.UUID
	Name   string
	Symbol string
}

// NewWallet builds a validated wallet with a fresh ID.
func NewWallet(name, symbol string) (*Wallet, error) {
	w := &Wallet{ID: uuid.New(), Name: name, Symbol: symbol}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate ensures the wallet adheres to domain rules.
// Over-long names are rejected; they are never truncated.
func (w *Wallet) Validate() error {
	return validateLabel(w.Name, w.Symbol, MaxWalletNameLength, MaxWalletSymbolLength)
}

func validateLabel(name, symbol string, maxName, maxSymbol int) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(symbol) == "" {
		return ErrEmptySymbol
	}
	if utf8.RuneCountInString(name) > maxName {
		return ErrNameTooLong
	}
	if utf8.RuneCountInString(symbol) > maxSymbol {
		return ErrSymbolTooLong
	}
	return nil
}

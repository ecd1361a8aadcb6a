package importer

import (
	"strings"

	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// Catalog is a symbol-indexed snapshot of wallets, assets and fiat currencies,
// taken once before a batch starts. Lookups are case-insensitive exact matches.
type Catalog struct {
	wallets map[string]*domain.Wallet
	assets  map[string]*domain.Asset
	fiats   map[string]*domain.FiatCurrency
}

// NewCatalog indexes the given entities by symbol. On duplicate symbols the first wins.
func NewCatalog(wallets []*domain.Wallet, assets []*domain.Asset, fiats []*domain.FiatCurrency) *Catalog {
	c := &Catalog{
		wallets: make(map[string]*domain.Wallet, len(wallets)),
		assets:  make(map[string]*domain.Asset, len(assets)),
		fiats:   make(map[string]*domain.FiatCurrency, len(fiats)),
	}
	for _, w := range wallets {
		if w != nil {
			putFirst(c.wallets, w.Symbol, w)
		}
	}
	for _, a := range assets {
		if a != nil {
			putFirst(c.assets, a.Symbol, a)
		}
	}
	for _, f := range fiats {
		if f != nil {
			putFirst(c.fiats, f.Symbol, f)
		}
	}
	return c
}

func putFirst[T any](m map[string]T, symbol string, v T) {
	key := symbolKey(symbol)
	if _, ok := m[key]; !ok {
		m[key] = v
	}
}

func symbolKey(symbol string) string {
	return strings.ToLower(strings.TrimSpace(symbol))
}

// Wallet looks up a wallet by symbol
func (c *Catalog) Wallet(symbol string) (*domain.Wallet, bool) {
	w, ok := c.wallets[symbolKey(symbol)]
	return w, ok
}

// Asset looks up an asset by symbol
func (c *Catalog) Asset(symbol string) (*domain.Asset, bool) {
	a, ok := c.assets[symbolKey(symbol)]
	return a, ok
}

// Fiat looks up a fiat currency by symbol
func (c *Catalog) Fiat(symbol string) (*domain.FiatCurrency, bool) {
	f, ok := c.fiats[symbolKey(symbol)]
	return f, ok
}

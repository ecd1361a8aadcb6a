package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PriceHistoryEntry is a snapshot of an asset's previous price, written just before
// the price is overwritten. Entries are append-only.
type PriceHistoryEntry struct {
	ID      uuid.UUID
	AssetID uuid.UUID
	Price   decimal.Decimal
	Date    time.Time
}

var hundred = decimal.NewFromInt(100)

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

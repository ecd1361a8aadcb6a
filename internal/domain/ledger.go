package domain

import (
	"github.com/google/uuid"
)

// Position identifies the holding of one asset in one wallet.
type Position struct {
	WalletID uuid.UUID
	AssetID  uuid.UUID
}

// Ledger is an in-memory snapshot of movements indexed by position.
// Movements refer to wallets and assets by ID only; the ledger holds no
// references back from wallets or assets.
type Ledger struct {
	movements  []Movement
	byPosition map[Position][]Leg
	byWallet   map[uuid.UUID][]uuid.UUID // asset IDs in first-seen order
}

// NewLedger indexes the given movements.
func NewLedger(movements []Movement) *Ledger {
	l := &Ledger{
		movements:  make([]Movement, 0, len(movements)),
		byPosition: make(map[Position][]Leg),
		byWallet:   make(map[uuid.UUID][]uuid.UUID),
	}
	l.Append(movements...)
	return l
}

// Append adds movements to the snapshot.
func (l *Ledger) Append(movements ...Movement) {
	for _, m := range movements {
		if m == nil {
			continue
		}
		l.movements = append(l.movements, m)
		for _, leg := range m.Legs() {
			pos := Position{WalletID: leg.WalletID, AssetID: leg.AssetID}
			if _, seen := l.byPosition[pos]; !seen {
				l.byWallet[leg.WalletID] = append(l.byWallet[leg.WalletID], leg.AssetID)
			}
			l.byPosition[pos] = append(l.byPosition[pos], leg)
		}
	}
}

// Movements returns every movement in insertion order.
func (l *Ledger) Movements() []Movement {
	return l.movements
}

// Legs returns the legs affecting the asset in the wallet.
func (l *Ledger) Legs(walletID, assetID uuid.UUID) []Leg {
	return l.byPosition[Position{WalletID: walletID, AssetID: assetID}]
}

// WalletAssets returns the IDs of every asset with at least one leg in the wallet.
func (l *Ledger) WalletAssets(walletID uuid.UUID) []uuid.UUID {
	return l.byWallet[walletID]
}

// WalletLegs returns every leg touching the wallet, grouped by asset.
func (l *Ledger) WalletLegs(walletID uuid.UUID) []Leg {
	var legs []Leg
	for _, assetID := range l.byWallet[walletID] {
		legs = append(legs, l.Legs(walletID, assetID)...)
	}
	return legs
}

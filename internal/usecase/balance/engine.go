package balance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
)

// Available calculates the net quantity of an asset held in a wallet
// Logic:
//
//	deposits + transfers in (received) + swaps in (received) + addBack
//	- (withdrawals + transfers out (sent) + swaps out (sent))
//
// addBack lets the editor of an existing movement restore that movement's own
// prior contribution before checking funds for its new values.
// The result is never clamped: a negative balance is returned as-is.
func Available(ledger *domain.Ledger, walletID, assetID uuid.UUID, addBack decimal.Decimal) decimal.Decimal {
	total := addBack
	if ledger == nil {
		return total
	}
	for _, leg := range ledger.Legs(walletID, assetID) {
		total = total.Add(leg.Signed())
	}
	return total
}

// Contribution returns the signed effect of a single movement on a position.
func Contribution(m domain.Movement, walletID, assetID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	if m == nil {
		return total
	}
	for _, leg := range m.Legs() {
		if leg.WalletID == walletID && leg.AssetID == assetID {
			total = total.Add(leg.Signed())
		}
	}
	return total
}

// AddBack returns the quantity to pass to Available when re-checking funds for an
// edited movement, cancelling the movement's stored contribution.
func AddBack(m domain.Movement, walletID, assetID uuid.UUID) decimal.Decimal {
	return Contribution(m, walletID, assetID).Neg()
}

// Outflow returns the position a movement draws funds from and the quantity drawn.
// Deposits draw nothing and report ok == false.
func Outflow(m domain.Movement) (pos domain.Position, quantity decimal.Decimal, ok bool) {
	switch v := m.(type) {
	case *domain.Withdrawal:
		return domain.Position{WalletID: v.WalletID, AssetID: v.AssetID}, v.Quantity, true
	case *domain.Transfer:
		return domain.Position{WalletID: v.SourceWalletID, AssetID: v.AssetID}, v.QuantitySent, true
	case *domain.Swap:
		return domain.Position{WalletID: v.WalletID, AssetID: v.SourceAssetID}, v.QuantitySent, true
	}
	return domain.Position{}, decimal.Zero, false
}

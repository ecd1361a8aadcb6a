package valuation

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/balance"
)

var hundred = decimal.NewFromInt(100)

// AssetDetail is the valuation of one asset held in one wallet
type AssetDetail struct {
	Asset            *domain.Asset
	TotalAcquired    decimal.Decimal // deposits + swaps in
	TotalSold        decimal.Decimal // withdrawals + swaps out
	NetTransferred   decimal.Decimal // transfers in - transfers out
	CurrentBalance   decimal.Decimal
	InvestedUSD      decimal.Decimal // deposits only, never reduced by sales
	InvestedFIAT     decimal.Decimal
	CurrentValueUSD  decimal.Decimal
	CurrentValueFIAT decimal.Decimal
	Gain             decimal.Decimal // CurrentValueFIAT - InvestedFIAT
	GainPercent      decimal.Decimal
}

// FiatRate returns the USD multiplier of the first available fiat currency.
// With no fiat currency configured values stay in USD.
func FiatRate(fiats []*domain.FiatCurrency) decimal.Decimal {
	for _, f := range fiats {
		if f != nil {
			return f.PriceInUSD
		}
	}
	return decimal.NewFromInt(1)
}

// Percent returns part/whole*100, or zero when whole is zero
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}

// Detail calculates the valuation of an asset in a wallet.
// Unresolved references contribute zero; Detail never fails.
func Detail(ledger *domain.Ledger, walletID uuid.UUID, asset *domain.Asset, fiats []*domain.FiatCurrency) AssetDetail {
	d := AssetDetail{Asset: asset}
	if asset == nil || ledger == nil {
		return d
	}

	for _, leg := range ledger.Legs(walletID, asset.ID) {
		switch leg.Kind {
		case domain.LegDeposit:
			d.TotalAcquired = d.TotalAcquired.Add(leg.Quantity)
			if dep, ok := leg.Movement.(*domain.Deposit); ok {
				d.InvestedUSD = d.InvestedUSD.Add(dep.TotalValueUSD())
				d.InvestedFIAT = d.InvestedFIAT.Add(dep.FiatValue())
			}
		case domain.LegSwapIn:
			d.TotalAcquired = d.TotalAcquired.Add(leg.Quantity)
		case domain.LegWithdrawal, domain.LegSwapOut:
			d.TotalSold = d.TotalSold.Add(leg.Quantity)
		case domain.LegTransferIn:
			d.NetTransferred = d.NetTransferred.Add(leg.Quantity)
		case domain.LegTransferOut:
			d.NetTransferred = d.NetTransferred.Sub(leg.Quantity)
		}
	}

	d.CurrentBalance = balance.Available(ledger, walletID, asset.ID, decimal.Zero)
	d.CurrentValueUSD = d.CurrentBalance.Mul(asset.CurrentPrice)
	d.CurrentValueFIAT = d.CurrentValueUSD.Mul(FiatRate(fiats))
	d.Gain = d.CurrentValueFIAT.Sub(d.InvestedFIAT)
	d.GainPercent = Percent(d.Gain, d.InvestedFIAT)
	return d
}

// WalletAssets calculates the details of every catalog asset the wallet has touched.
// Assets whose balance is exactly zero are left out. Order follows the catalog.
func WalletAssets(ledger *domain.Ledger, walletID uuid.UUID, assets []*domain.Asset, fiats []*domain.FiatCurrency) []AssetDetail {
	if ledger == nil {
		return nil
	}
	touched := make(map[uuid.UUID]bool)
	for _, id := range ledger.WalletAssets(walletID) {
		touched[id] = true
	}

	details := make([]AssetDetail, 0, len(touched))
	for _, asset := range assets {
		if asset == nil || !touched[asset.ID] {
			continue
		}
		d := Detail(ledger, walletID, asset, fiats)
		if d.CurrentBalance.IsZero() {
			continue
		}
		details = append(details, d)
	}
	return details
}

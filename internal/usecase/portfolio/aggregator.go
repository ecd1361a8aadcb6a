package portfolio

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/valuation"
)

// WalletDetail rolls up the asset details of one wallet
type WalletDetail struct {
	Wallet            *domain.Wallet
	Assets            []valuation.AssetDetail
	TotalCurrentValue decimal.Decimal // sum of CurrentValueUSD
	TotalInvested     decimal.Decimal // sum of InvestedFIAT
	TotalGain         decimal.Decimal
	GainPercent       decimal.Decimal
}

// Summary holds the portfolio-wide totals
type Summary struct {
	TotalInvestedUSD     decimal.Decimal
	TotalCurrentValueUSD decimal.Decimal
	TotalSoldUSD         decimal.Decimal
	TotalGain            decimal.Decimal
	GainPercent          decimal.Decimal
}

// GainShare is one asset's share of the portfolio gain magnitude
type GainShare struct {
	Asset   *domain.Asset
	Gain    decimal.Decimal
	Percent decimal.Decimal
}

// BuildWalletDetail calculates the wallet detail from its non-empty asset positions
func BuildWalletDetail(ledger *domain.Ledger, wallet *domain.Wallet, assets []*domain.Asset, fiats []*domain.FiatCurrency) WalletDetail {
	wd := WalletDetail{Wallet: wallet}
	if wallet == nil {
		return wd
	}
	wd.Assets = valuation.WalletAssets(ledger, wallet.ID, assets, fiats)
	for _, d := range wd.Assets {
		wd.TotalCurrentValue = wd.TotalCurrentValue.Add(d.CurrentValueUSD)
		wd.TotalInvested = wd.TotalInvested.Add(d.InvestedFIAT)
		wd.TotalGain = wd.TotalGain.Add(d.Gain)
	}
	wd.GainPercent = valuation.Percent(wd.TotalGain, wd.TotalInvested)
	return wd
}

// WalletDetails calculates every wallet's detail, dropping wallets with no assets left
func WalletDetails(ledger *domain.Ledger, wallets []*domain.Wallet, assets []*domain.Asset, fiats []*domain.FiatCurrency) []WalletDetail {
	details := make([]WalletDetail, 0, len(wallets))
	for _, w := range wallets {
		wd := BuildWalletDetail(ledger, w, assets, fiats)
		if len(wd.Assets) == 0 {
			continue
		}
		details = append(details, wd)
	}
	return details
}

// Summarize calculates portfolio totals.
// Logic:
//   - Invested and current value: sums over the wallet details
//   - Sold: over every wallet, withdrawals' USD totals plus swaps' sent quantity
//     times the source unit price, whether or not the wallet still holds anything
//   - Gain: current value - invested
func Summarize(ledger *domain.Ledger, details []WalletDetail, wallets []*domain.Wallet) Summary {
	var s Summary
	for _, wd := range details {
		s.TotalInvestedUSD = s.TotalInvestedUSD.Add(wd.TotalInvested)
		s.TotalCurrentValueUSD = s.TotalCurrentValueUSD.Add(wd.TotalCurrentValue)
	}
	for _, w := range wallets {
		if w == nil {
			continue
		}
		s.TotalSoldUSD = s.TotalSoldUSD.Add(SoldUSD(ledger, w.ID))
	}
	s.TotalGain = s.TotalCurrentValueUSD.Sub(s.TotalInvestedUSD)
	s.GainPercent = valuation.Percent(s.TotalGain, s.TotalInvestedUSD)
	return s
}

// SoldUSD returns the USD value disposed of from a wallet
func SoldUSD(ledger *domain.Ledger, walletID uuid.UUID) decimal.Decimal {
	total := decimal.Zero
	if ledger == nil {
		return total
	}
	for _, leg := range ledger.WalletLegs(walletID) {
		switch m := leg.Movement.(type) {
		case *domain.Withdrawal:
			total = total.Add(m.TotalValueUSD())
		case *domain.Swap:
			if leg.Kind == domain.LegSwapOut {
				total = total.Add(m.SoldValueUSD())
			}
		}
	}
	return total
}

// GainDistribution groups gains by asset across wallets and ranks them, largest first.
// Each percent is the asset gain over the sum of the absolute grouped gains, so
// mixed-sign distributions do not add up to 100. An asset's gains in different
// wallets net out before the absolute value is taken.
func GainDistribution(details []WalletDetail) []GainShare {
	var order []uuid.UUID
	byAsset := make(map[uuid.UUID]*GainShare)
	for _, wd := range details {
		for _, d := range wd.Assets {
			if d.Asset == nil {
				continue
			}
			share, ok := byAsset[d.Asset.ID]
			if !ok {
				share = &GainShare{Asset: d.Asset}
				byAsset[d.Asset.ID] = share
				order = append(order, d.Asset.ID)
			}
			share.Gain = share.Gain.Add(d.Gain)
		}
	}

	magnitude := decimal.Zero
	shares := make([]GainShare, 0, len(order))
	for _, id := range order {
		magnitude = magnitude.Add(byAsset[id].Gain.Abs())
		shares = append(shares, *byAsset[id])
	}
	for i := range shares {
		shares[i].Percent = valuation.Percent(shares[i].Gain, magnitude)
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Gain.GreaterThan(shares[j].Gain)
	})
	return shares
}

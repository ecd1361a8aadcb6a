package grpc

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/importer"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/portfolio"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/valuation"
)

func assetToProto(asset *domain.Asset) *ledgerv1.Asset {
	if asset == nil {
		return nil
	}
	protoAsset := &ledgerv1.Asset{
		Id:           asset.ID.String(),
		Name:         asset.Name,
		Symbol:       asset.Symbol,
		CurrentPrice: asset.CurrentPrice.String(),
	}
	if !asset.LastUpdated.IsZero() {
		protoAsset.LastUpdated = timestamppb.New(asset.LastUpdated)
	}
	return protoAsset
}

func assetDetailToProto(d valuation.AssetDetail) *ledgerv1.AssetDetail {
	return &ledgerv1.AssetDetail{
		Asset:            assetToProto(d.Asset),
		TotalAcquired:    d.TotalAcquired.String(),
		TotalSold:        d.TotalSold.String(),
		NetTransferred:   d.NetTransferred.String(),
		CurrentBalance:   d.CurrentBalance.String(),
		InvestedUsd:      d.InvestedUSD.String(),
		InvestedFiat:     d.InvestedFIAT.String(),
		CurrentValueUsd:  d.CurrentValueUSD.String(),
		CurrentValueFiat: d.CurrentValueFIAT.String(),
		Gain:             d.Gain.String(),
		GainPercent:      d.GainPercent.String(),
	}
}

func walletDetailToProto(wd portfolio.WalletDetail) *ledgerv1.WalletDetail {
	protoDetail := &ledgerv1.WalletDetail{
		Assets:            make([]*ledgerv1.AssetDetail, 0, len(wd.Assets)),
		TotalCurrentValue: wd.TotalCurrentValue.String(),
		TotalInvested:     wd.TotalInvested.String(),
		TotalGain:         wd.TotalGain.String(),
		GainPercent:       wd.GainPercent.String(),
	}
	if wd.Wallet != nil {
		protoDetail.Wallet = &ledgerv1.Wallet{
			Id:     wd.Wallet.ID.String(),
			Name:   wd.Wallet.Name,
			Symbol: wd.Wallet.Symbol,
		}
	}
	for _, d := range wd.Assets {
		protoDetail.Assets = append(protoDetail.Assets, assetDetailToProto(d))
	}
	return protoDetail
}

func summaryToProto(s portfolio.Summary) *ledgerv1.Summary {
	return &ledgerv1.Summary{
		TotalInvestedUsd:     s.TotalInvestedUSD.String(),
		TotalCurrentValueUsd: s.TotalCurrentValueUSD.String(),
		TotalSoldUsd:         s.TotalSoldUSD.String(),
		TotalGain:            s.TotalGain.String(),
		GainPercent:          s.GainPercent.String(),
	}
}

func gainSharesToProto(shares []portfolio.GainShare) []*ledgerv1.GainShare {
	protoShares := make([]*ledgerv1.GainShare, 0, len(shares))
	for _, share := range shares {
		protoShares = append(protoShares, &ledgerv1.GainShare{
			Asset:   assetToProto(share.Asset),
			Gain:    share.Gain.String(),
			Percent: share.Percent.String(),
		})
	}
	return protoShares
}

func movementsToProto(movements []domain.Movement) []*ledgerv1.Movement {
	protoMovements := make([]*ledgerv1.Movement, 0, len(movements))
	for _, m := range movements {
		protoMovements = append(protoMovements, movementToProto(m))
	}
	return protoMovements
}

func movementToProto(m domain.Movement) *ledgerv1.Movement {
	protoMovement := &ledgerv1.Movement{
		Id:   m.MovementID().String(),
		Kind: string(m.Kind()),
		Date: timestamppb.New(m.When()),
	}

	switch v := m.(type) {
	case *domain.Deposit:
		flowToProto(protoMovement, &v.ExternalFlow)
	case *domain.Withdrawal:
		flowToProto(protoMovement, &v.ExternalFlow)
	case *domain.Transfer:
		protoMovement.WalletId = v.SourceWalletID.String()
		protoMovement.DestWalletId = v.DestWalletID.String()
		protoMovement.AssetId = v.AssetID.String()
		protoMovement.Quantity = v.QuantitySent.String()
		protoMovement.QuantityReceived = v.QuantityReceived.String()
	case *domain.Swap:
		protoMovement.WalletId = v.WalletID.String()
		protoMovement.AssetId = v.SourceAssetID.String()
		protoMovement.DestAssetId = v.DestAssetID.String()
		protoMovement.Quantity = v.QuantitySent.String()
		protoMovement.QuantityReceived = v.QuantityReceived.String()
		protoMovement.UnitPriceUsd = v.UnitPriceSourceUSD.String()
		protoMovement.UnitPriceDestUsd = v.UnitPriceDestUSD.String()
	}
	return protoMovement
}

func flowToProto(protoMovement *ledgerv1.Movement, f *domain.ExternalFlow) {
	protoMovement.WalletId = f.WalletID.String()
	protoMovement.AssetId = f.AssetID.String()
	protoMovement.Quantity = f.Quantity.String()
	protoMovement.UnitPriceUsd = f.UnitPriceUSD.String()
	protoMovement.TotalUsd = f.TotalValueUSD().String()
	if alt, ok := f.Value.(domain.USDAndAltFiat); ok {
		protoMovement.FiatId = alt.FiatID.String()
		protoMovement.FiatAmount = alt.FiatAmount.String()
	}
}

func priceEntryToProto(entry *domain.PriceHistoryEntry) *ledgerv1.PriceHistoryEntry {
	return &ledgerv1.PriceHistoryEntry{
		Id:    entry.ID.String(),
		Price: entry.Price.String(),
		Date:  timestamppb.New(entry.Date),
	}
}

// fieldParser parses wire fields, keeping only the first failure
type fieldParser struct {
	err error
}

func (p *fieldParser) uuid(field, raw string) uuid.UUID {
	id, err := uuid.Parse(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("invalid %s format: %v", field, err)
	}
	return id
}

func (p *fieldParser) decimal(field, raw string) decimal.Decimal {
	d, ok := importer.ParseDecimal(raw)
	if !ok && p.err == nil {
		p.err = fmt.Errorf("invalid %s format: %q", field, raw)
	}
	return d
}

// movementFromProto rebuilds a movement from its flat wire form. The date is
// truncated to its UTC calendar day.
func movementFromProto(pm *ledgerv1.Movement) (domain.Movement, error) {
	if pm == nil {
		return nil, errors.New("movement is required")
	}
	kind, err := domain.ParseMovementKind(pm.Kind)
	if err != nil {
		return nil, err
	}
	if pm.Date == nil {
		return nil, errors.New("date is required")
	}
	y, mo, d := pm.Date.AsTime().UTC().Date()
	date := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	p := &fieldParser{}
	id := p.uuid("id", pm.Id)

	var m domain.Movement
	switch kind {
	case domain.KindDeposit, domain.KindWithdrawal:
		f := domain.ExternalFlow{
			ID:           id,
			Date:         date,
			WalletID:     p.uuid("wallet_id", pm.WalletId),
			AssetID:      p.uuid("asset_id", pm.AssetId),
			Quantity:     p.decimal("quantity", pm.Quantity),
			UnitPriceUSD: p.decimal("unit_price_usd", pm.UnitPriceUsd),
		}
		total := p.decimal("total_usd", pm.TotalUsd)
		switch {
		case pm.FiatId == "" && pm.FiatAmount == "":
			f.Value = domain.USDOnly{Amount: total}
		case pm.FiatId == "" || pm.FiatAmount == "":
			return nil, domain.ErrIncompleteFiat
		default:
			f.Value = domain.USDAndAltFiat{
				USD:        total,
				FiatID:     p.uuid("fiat_id", pm.FiatId),
				FiatAmount: p.decimal("fiat_amount", pm.FiatAmount),
			}
		}
		if kind == domain.KindDeposit {
			m = &domain.Deposit{ExternalFlow: f}
		} else {
			m = &domain.Withdrawal{ExternalFlow: f}
		}
	case domain.KindTransfer:
		m = &domain.Transfer{
			ID:               id,
			Date:             date,
			AssetID:          p.uuid("asset_id", pm.AssetId),
			SourceWalletID:   p.uuid("wallet_id", pm.WalletId),
			DestWalletID:     p.uuid("dest_wallet_id", pm.DestWalletId),
			QuantitySent:     p.decimal("quantity", pm.Quantity),
			QuantityReceived: p.decimal("quantity_received", pm.QuantityReceived),
		}
	case domain.KindSwap:
		m = &domain.Swap{
			ID:                 id,
			Date:               date,
			WalletID:           p.uuid("wallet_id", pm.WalletId),
			SourceAssetID:      p.uuid("asset_id", pm.AssetId),
			DestAssetID:        p.uuid("dest_asset_id", pm.DestAssetId),
			QuantitySent:       p.decimal("quantity", pm.Quantity),
			QuantityReceived:   p.decimal("quantity_received", pm.QuantityReceived),
			UnitPriceSourceUSD: p.decimal("unit_price_usd", pm.UnitPriceUsd),
			UnitPriceDestUSD:   p.decimal("unit_price_dest_usd", pm.UnitPriceDestUsd),
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return m, nil
}

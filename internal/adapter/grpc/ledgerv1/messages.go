package ledgerv1

import (
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Quantities, prices and money amounts are decimal strings on the wire.

type Wallet struct {
	Id     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Asset struct {
	Id           string                 `json:"id"`
	Name         string                 `json:"name"`
	Symbol       string                 `json:"symbol"`
	CurrentPrice string                 `json:"current_price"`
	LastUpdated  *timestamppb.Timestamp `json:"last_updated,omitempty"`
}

type AssetDetail struct {
	Asset            *Asset `json:"asset"`
	TotalAcquired    string `json:"total_acquired"`
	TotalSold        string `json:"total_sold"`
	NetTransferred   string `json:"net_transferred"`
	CurrentBalance   string `json:"current_balance"`
	InvestedUsd      string `json:"invested_usd"`
	InvestedFiat     string `json:"invested_fiat"`
	CurrentValueUsd  string `json:"current_value_usd"`
	CurrentValueFiat string `json:"current_value_fiat"`
	Gain             string `json:"gain"`
	GainPercent      string `json:"gain_percent"`
}

type WalletDetail struct {
	Wallet            *Wallet        `json:"wallet"`
	Assets            []*AssetDetail `json:"assets"`
	TotalCurrentValue string         `json:"total_current_value"`
	TotalInvested     string         `json:"total_invested"`
	TotalGain         string         `json:"total_gain"`
	GainPercent       string         `json:"gain_percent"`
}

type Summary struct {
	TotalInvestedUsd     string `json:"total_invested_usd"`
	TotalCurrentValueUsd string `json:"total_current_value_usd"`
	TotalSoldUsd         string `json:"total_sold_usd"`
	TotalGain            string `json:"total_gain"`
	GainPercent          string `json:"gain_percent"`
}

type GainShare struct {
	Asset   *Asset `json:"asset"`
	Gain    string `json:"gain"`
	Percent string `json:"percent"`
}

// Movement is the flat wire form of every movement kind; unused fields are empty
type Movement struct {
	Id               string                 `json:"id"`
	Kind             string                 `json:"kind"`
	Date             *timestamppb.Timestamp `json:"date"`
	WalletId         string                 `json:"wallet_id,omitempty"`
	DestWalletId     string                 `json:"dest_wallet_id,omitempty"`
	AssetId          string                 `json:"asset_id,omitempty"`
	DestAssetId      string                 `json:"dest_asset_id,omitempty"`
	Quantity         string                 `json:"quantity,omitempty"`
	QuantityReceived string                 `json:"quantity_received,omitempty"`
	UnitPriceUsd     string                 `json:"unit_price_usd,omitempty"`
	UnitPriceDestUsd string                 `json:"unit_price_dest_usd,omitempty"`
	TotalUsd         string                 `json:"total_usd,omitempty"`
	FiatId           string                 `json:"fiat_id,omitempty"`
	FiatAmount       string                 `json:"fiat_amount,omitempty"`
}

type GetPortfolioRequest struct{}

type GetPortfolioResponse struct {
	Wallets      []*WalletDetail `json:"wallets"`
	Summary      *Summary        `json:"summary"`
	Distribution []*GainShare    `json:"distribution"`
}

type GetWalletDetailRequest struct {
	WalletId string `json:"wallet_id"`
}

type GetWalletDetailResponse struct {
	Detail *WalletDetail `json:"detail"`
}

type GetGainDistributionRequest struct{}

type GetGainDistributionResponse struct {
	Shares []*GainShare `json:"shares"`
}

type GetBalanceRequest struct {
	WalletId string `json:"wallet_id"`
	AssetId  string `json:"asset_id"`
}

type GetBalanceResponse struct {
	Available string `json:"available"`
}

type ImportMovementsRequest struct {
	Kind   string `json:"kind"`
	Csv    []byte `json:"csv"`
	DryRun bool   `json:"dry_run"`
}

type ImportMovementsResponse struct {
	Movements []*Movement `json:"movements"`
	Stored    bool        `json:"stored"`
}

type ListMovementsRequest struct {
	WalletId string `json:"wallet_id,omitempty"`
	AssetId  string `json:"asset_id,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

type ListMovementsResponse struct {
	Movements []*Movement `json:"movements"`
}

type DeleteMovementRequest struct {
	MovementId string `json:"movement_id"`
}

type DeleteMovementResponse struct{}

// UpdateMovementRequest overwrites every field of the stored movement with Movement.Id
type UpdateMovementRequest struct {
	Movement *Movement `json:"movement"`
}

type UpdateMovementResponse struct {
	Movement *Movement `json:"movement"`
}

type UpdateAssetPriceRequest struct {
	AssetId string `json:"asset_id"`
	Price   string `json:"price"`
}

type UpdateAssetPriceResponse struct {
	Asset *Asset `json:"asset"`
}

type PriceHistoryEntry struct {
	Id    string                 `json:"id"`
	Price string                 `json:"price"`
	Date  *timestamppb.Timestamp `json:"date"`
}

type GetPriceAtRequest struct {
	AssetId string                 `json:"asset_id"`
	Day     *timestamppb.Timestamp `json:"day"`
}

type GetPriceAtResponse struct {
	Entry *PriceHistoryEntry `json:"entry"`
}

type GetPerformanceRequest struct {
	AssetId string                 `json:"asset_id"`
	Day     *timestamppb.Timestamp `json:"day"`
}

type GetPerformanceResponse struct {
	Percent   string `json:"percent,omitempty"`
	Available bool   `json:"available"`
}

package grpc

import (
	"bytes"
	"context"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
	"github.com/simaogato/cryptoledger-backend/internal/adapter/tabular"
	"github.com/simaogato/cryptoledger-backend/internal/domain"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/importer"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/movement"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/portfolio"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/pricehistory"
)

// Server implements the LedgerService gRPC server
type Server struct {
	ledgerv1.UnimplementedLedgerServiceServer

	PortfolioService    *portfolio.PortfolioService
	ImportService       *importer.ImportService
	MovementService     *movement.MovementService
	PriceHistoryService *pricehistory.PriceHistoryService
}

// NewServer creates a new gRPC server instance
func NewServer(
	portfolioService *portfolio.PortfolioService,
	importService *importer.ImportService,
	movementService *movement.MovementService,
	priceHistoryService *pricehistory.PriceHistoryService,
) *Server {
	return &Server{
		PortfolioService:    portfolioService,
		ImportService:       importService,
		MovementService:     movementService,
		PriceHistoryService: priceHistoryService,
	}
}

// GetPortfolio handles the GetPortfolio RPC
func (s *Server) GetPortfolio(ctx context.Context, req *ledgerv1.GetPortfolioRequest) (*ledgerv1.GetPortfolioResponse, error) {
	report, err := s.PortfolioService.GetPortfolio(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ledgerv1.GetPortfolioResponse{
		Wallets:      make([]*ledgerv1.WalletDetail, 0, len(report.Wallets)),
		Summary:      summaryToProto(report.Summary),
		Distribution: gainSharesToProto(report.Distribution),
	}
	for _, wd := range report.Wallets {
		resp.Wallets = append(resp.Wallets, walletDetailToProto(wd))
	}
	return resp, nil
}

// GetWalletDetail handles the GetWalletDetail RPC
func (s *Server) GetWalletDetail(ctx context.Context, req *ledgerv1.GetWalletDetailRequest) (*ledgerv1.GetWalletDetailResponse, error) {
	walletID, err := uuid.Parse(req.WalletId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid wallet_id format: %v", err)
	}

	wd, err := s.PortfolioService.GetWalletDetail(ctx, walletID)
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.GetWalletDetailResponse{Detail: walletDetailToProto(*wd)}, nil
}

// GetGainDistribution handles the GetGainDistribution RPC
func (s *Server) GetGainDistribution(ctx context.Context, req *ledgerv1.GetGainDistributionRequest) (*ledgerv1.GetGainDistributionResponse, error) {
	report, err := s.PortfolioService.GetPortfolio(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.GetGainDistributionResponse{Shares: gainSharesToProto(report.Distribution)}, nil
}

// GetBalance handles the GetBalance RPC
func (s *Server) GetBalance(ctx context.Context, req *ledgerv1.GetBalanceRequest) (*ledgerv1.GetBalanceResponse, error) {
	walletID, err := uuid.Parse(req.WalletId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid wallet_id format: %v", err)
	}
	assetID, err := uuid.Parse(req.AssetId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset_id format: %v", err)
	}

	available, err := s.PortfolioService.GetBalance(ctx, walletID, assetID)
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.GetBalanceResponse{Available: available.String()}, nil
}

// ImportMovements handles the ImportMovements RPC
// A dry run validates the file against the stored ledger without storing anything
func (s *Server) ImportMovements(ctx context.Context, req *ledgerv1.ImportMovementsRequest) (*ledgerv1.ImportMovementsResponse, error) {
	kind, err := domain.ParseMovementKind(req.Kind)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid kind: %v", err)
	}

	table, err := tabular.ReadCSV(bytes.NewReader(req.Csv))
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid csv: %v", err)
	}

	var movements []domain.Movement
	if req.DryRun {
		movements, err = s.ImportService.Preview(ctx, kind, table)
	} else {
		movements, err = s.ImportService.Import(ctx, kind, table)
	}
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.ImportMovementsResponse{
		Movements: movementsToProto(movements),
		Stored:    !req.DryRun && len(movements) > 0,
	}, nil
}

// ListMovements handles the ListMovements RPC
func (s *Server) ListMovements(ctx context.Context, req *ledgerv1.ListMovementsRequest) (*ledgerv1.ListMovementsResponse, error) {
	var filter domain.MovementFilter
	if req.WalletId != "" {
		walletID, err := uuid.Parse(req.WalletId)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid wallet_id format: %v", err)
		}
		filter.WalletID = &walletID
	}
	if req.AssetId != "" {
		assetID, err := uuid.Parse(req.AssetId)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid asset_id format: %v", err)
		}
		filter.AssetID = &assetID
	}
	if req.Kind != "" {
		kind, err := domain.ParseMovementKind(req.Kind)
		if err != nil {
			return nil, status.Errorf(codes.InvalidArgument, "invalid kind: %v", err)
		}
		filter.Kind = kind
	}

	movements, err := s.MovementService.List(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.ListMovementsResponse{Movements: movementsToProto(movements)}, nil
}

// UpdateMovement handles the UpdateMovement RPC
// The stored movement keeps its ID and kind; every other field is overwritten
func (s *Server) UpdateMovement(ctx context.Context, req *ledgerv1.UpdateMovementRequest) (*ledgerv1.UpdateMovementResponse, error) {
	m, err := movementFromProto(req.Movement)
	if errors.Is(err, domain.ErrIncompleteFiat) {
		return nil, mapError(err)
	}
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid movement: %v", err)
	}

	if err := s.MovementService.Update(ctx, m); err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.UpdateMovementResponse{Movement: movementToProto(m)}, nil
}

// DeleteMovement handles the DeleteMovement RPC
func (s *Server) DeleteMovement(ctx context.Context, req *ledgerv1.DeleteMovementRequest) (*ledgerv1.DeleteMovementResponse, error) {
	id, err := uuid.Parse(req.MovementId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid movement_id format: %v", err)
	}

	if err := s.MovementService.Delete(ctx, id); err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.DeleteMovementResponse{}, nil
}

// UpdateAssetPrice handles the UpdateAssetPrice RPC
func (s *Server) UpdateAssetPrice(ctx context.Context, req *ledgerv1.UpdateAssetPriceRequest) (*ledgerv1.UpdateAssetPriceResponse, error) {
	assetID, err := uuid.Parse(req.AssetId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset_id format: %v", err)
	}
	price, ok := importer.ParseDecimal(req.Price)
	if !ok {
		return nil, status.Errorf(codes.InvalidArgument, "invalid price format: %q", req.Price)
	}

	asset, err := s.PriceHistoryService.UpdatePrice(ctx, assetID, price)
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.UpdateAssetPriceResponse{Asset: assetToProto(asset)}, nil
}

// GetPriceAt handles the GetPriceAt RPC
func (s *Server) GetPriceAt(ctx context.Context, req *ledgerv1.GetPriceAtRequest) (*ledgerv1.GetPriceAtResponse, error) {
	assetID, err := uuid.Parse(req.AssetId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset_id format: %v", err)
	}
	if req.Day == nil {
		return nil, status.Error(codes.InvalidArgument, "day is required")
	}

	entry, err := s.PriceHistoryService.PriceAt(ctx, assetID, req.Day.AsTime())
	if err != nil {
		return nil, mapError(err)
	}

	return &ledgerv1.GetPriceAtResponse{Entry: priceEntryToProto(entry)}, nil
}

// GetPerformance handles the GetPerformance RPC
func (s *Server) GetPerformance(ctx context.Context, req *ledgerv1.GetPerformanceRequest) (*ledgerv1.GetPerformanceResponse, error) {
	assetID, err := uuid.Parse(req.AssetId)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid asset_id format: %v", err)
	}
	if req.Day == nil {
		return nil, status.Error(codes.InvalidArgument, "day is required")
	}

	pct, ok, err := s.PriceHistoryService.Performance(ctx, assetID, req.Day.AsTime())
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ledgerv1.GetPerformanceResponse{Available: ok}
	if ok {
		resp.Percent = pct.String()
	}
	return resp, nil
}

// mapError converts domain errors to gRPC status errors
func mapError(err error) error {
	if err == nil {
		return nil
	}

	errorMsg := err.Error()

	// Import rejections and validation failures are the caller's to fix
	var rowErr *domain.RowError
	var columnsErr *domain.MissingColumnsError
	if errors.As(err, &rowErr) || errors.As(err, &columnsErr) {
		return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
	}
	for _, target := range invalidArgumentErrors {
		if errors.Is(err, target) {
			return status.Errorf(codes.InvalidArgument, "%s", errorMsg)
		}
	}

	if errors.Is(err, domain.ErrNotFound) {
		return status.Errorf(codes.NotFound, "%s", errorMsg)
	}
	if errors.Is(err, domain.ErrDuplicateEntry) {
		return status.Errorf(codes.AlreadyExists, "%s", errorMsg)
	}

	// Default to Internal error for unknown errors
	return status.Errorf(codes.Internal, "%s", errorMsg)
}

var invalidArgumentErrors = []error{
	domain.ErrEmptyName,
	domain.ErrEmptySymbol,
	domain.ErrNameTooLong,
	domain.ErrSymbolTooLong,
	domain.ErrNegativeAmount,
	domain.ErrMissingValue,
	domain.ErrMissingDate,
	domain.ErrSameWallet,
	domain.ErrSameAsset,
	domain.ErrInvalidReceivedAmount,
	domain.ErrInsufficientFunds,
	domain.ErrIncompleteFiat,
	domain.ErrFiatNotFound,
	movement.ErrKindChanged,
}

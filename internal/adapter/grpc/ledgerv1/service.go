// Package ledgerv1 defines the LedgerService wire contract: messages, the service
// descriptor and a typed client. Messages travel as JSON (content subtype "json").
package ledgerv1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "cryptoledger.v1.LedgerService"

const (
	LedgerService_GetPortfolio_FullMethodName        = "/" + ServiceName + "/GetPortfolio"
	LedgerService_GetWalletDetail_FullMethodName     = "/" + ServiceName + "/GetWalletDetail"
	LedgerService_GetGainDistribution_FullMethodName = "/" + ServiceName + "/GetGainDistribution"
	LedgerService_GetBalance_FullMethodName          = "/" + ServiceName + "/GetBalance"
	LedgerService_ImportMovements_FullMethodName     = "/" + ServiceName + "/ImportMovements"
	LedgerService_ListMovements_FullMethodName       = "/" + ServiceName + "/ListMovements"
	LedgerService_UpdateMovement_FullMethodName      = "/" + ServiceName + "/UpdateMovement"
	LedgerService_DeleteMovement_FullMethodName      = "/" + ServiceName + "/DeleteMovement"
	LedgerService_UpdateAssetPrice_FullMethodName    = "/" + ServiceName + "/UpdateAssetPrice"
	LedgerService_GetPriceAt_FullMethodName          = "/" + ServiceName + "/GetPriceAt"
	LedgerService_GetPerformance_FullMethodName      = "/" + ServiceName + "/GetPerformance"
)

// LedgerServiceServer is the server API for LedgerService
type LedgerServiceServer interface {
	GetPortfolio(context.Context, *GetPortfolioRequest) (*GetPortfolioResponse, error)
	GetWalletDetail(context.Context, *GetWalletDetailRequest) (*GetWalletDetailResponse, error)
	GetGainDistribution(context.Context, *GetGainDistributionRequest) (*GetGainDistributionResponse, error)
	GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error)
	ImportMovements(context.Context, *ImportMovementsRequest) (*ImportMovementsResponse, error)
	ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error)
	UpdateMovement(context.Context, *UpdateMovementRequest) (*UpdateMovementResponse, error)
	DeleteMovement(context.Context, *DeleteMovementRequest) (*DeleteMovementResponse, error)
	UpdateAssetPrice(context.Context, *UpdateAssetPriceRequest) (*UpdateAssetPriceResponse, error)
	GetPriceAt(context.Context, *GetPriceAtRequest) (*GetPriceAtResponse, error)
	GetPerformance(context.Context, *GetPerformanceRequest) (*GetPerformanceResponse, error)
}

// UnimplementedLedgerServiceServer can be embedded to have forward compatible implementations
type UnimplementedLedgerServiceServer struct{}

func (UnimplementedLedgerServiceServer) GetPortfolio(context.Context, *GetPortfolioRequest) (*GetPortfolioResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPortfolio not implemented")
}
func (UnimplementedLedgerServiceServer) GetWalletDetail(context.Context, *GetWalletDetailRequest) (*GetWalletDetailResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetWalletDetail not implemented")
}
func (UnimplementedLedgerServiceServer) GetGainDistribution(context.Context, *GetGainDistributionRequest) (*GetGainDistributionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetGainDistribution not implemented")
}
func (UnimplementedLedgerServiceServer) GetBalance(context.Context, *GetBalanceRequest) (*GetBalanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetBalance not implemented")
}
func (UnimplementedLedgerServiceServer) ImportMovements(context.Context, *ImportMovementsRequest) (*ImportMovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ImportMovements not implemented")
}
func (UnimplementedLedgerServiceServer) ListMovements(context.Context, *ListMovementsRequest) (*ListMovementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListMovements not implemented")
}
func (UnimplementedLedgerServiceServer) UpdateMovement(context.Context, *UpdateMovementRequest) (*UpdateMovementResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateMovement not implemented")
}
func (UnimplementedLedgerServiceServer) GetPriceAt(context.Context, *GetPriceAtRequest) (*GetPriceAtResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPriceAt not implemented")
}
func (UnimplementedLedgerServiceServer) DeleteMovement(context.Context, *DeleteMovementRequest) (*DeleteMovementResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteMovement not implemented")
}
func (UnimplementedLedgerServiceServer) UpdateAssetPrice(context.Context, *UpdateAssetPriceRequest) (*UpdateAssetPriceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateAssetPrice not implemented")
}
func (UnimplementedLedgerServiceServer) GetPerformance(context.Context, *GetPerformanceRequest) (*GetPerformanceResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPerformance not implemented")
}

// unary builds the method descriptor for one request/response RPC
func unary[Req, Resp any](name string, call func(LedgerServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(LedgerServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(LedgerServiceServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// LedgerService_ServiceDesc is the grpc.ServiceDesc for LedgerService
var LedgerService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("GetPortfolio", LedgerServiceServer.GetPortfolio),
		unary("GetWalletDetail", LedgerServiceServer.GetWalletDetail),
		unary("GetGainDistribution", LedgerServiceServer.GetGainDistribution),
		unary("GetBalance", LedgerServiceServer.GetBalance),
		unary("ImportMovements", LedgerServiceServer.ImportMovements),
		unary("ListMovements", LedgerServiceServer.ListMovements),
		unary("UpdateMovement", LedgerServiceServer.UpdateMovement),
		unary("DeleteMovement", LedgerServiceServer.DeleteMovement),
		unary("UpdateAssetPrice", LedgerServiceServer.UpdateAssetPrice),
		unary("GetPriceAt", LedgerServiceServer.GetPriceAt),
		unary("GetPerformance", LedgerServiceServer.GetPerformance),
	},
	Metadata: "cryptoledger/v1/ledger.json",
}

// RegisterLedgerServiceServer registers srv on s
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerService_ServiceDesc, srv)
}

// LedgerServiceClient is the client API for LedgerService
type LedgerServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewLedgerServiceClient creates a client whose calls always use the JSON codec
func NewLedgerServiceClient(cc grpc.ClientConnInterface) *LedgerServiceClient {
	return &LedgerServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, c *LedgerServiceClient, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerServiceClient) GetPortfolio(ctx context.Context, in *GetPortfolioRequest, opts ...grpc.CallOption) (*GetPortfolioResponse, error) {
	return invoke[GetPortfolioResponse](ctx, c, LedgerService_GetPortfolio_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) GetWalletDetail(ctx context.Context, in *GetWalletDetailRequest, opts ...grpc.CallOption) (*GetWalletDetailResponse, error) {
	return invoke[GetWalletDetailResponse](ctx, c, LedgerService_GetWalletDetail_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) GetGainDistribution(ctx context.Context, in *GetGainDistributionRequest, opts ...grpc.CallOption) (*GetGainDistributionResponse, error) {
	return invoke[GetGainDistributionResponse](ctx, c, LedgerService_GetGainDistribution_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) GetBalance(ctx context.Context, in *GetBalanceRequest, opts ...grpc.CallOption) (*GetBalanceResponse, error) {
	return invoke[GetBalanceResponse](ctx, c, LedgerService_GetBalance_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) ImportMovements(ctx context.Context, in *ImportMovementsRequest, opts ...grpc.CallOption) (*ImportMovementsResponse, error) {
	return invoke[ImportMovementsResponse](ctx, c, LedgerService_ImportMovements_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) ListMovements(ctx context.Context, in *ListMovementsRequest, opts ...grpc.CallOption) (*ListMovementsResponse, error) {
	return invoke[ListMovementsResponse](ctx, c, LedgerService_ListMovements_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) DeleteMovement(ctx context.Context, in *DeleteMovementRequest, opts ...grpc.CallOption) (*DeleteMovementResponse, error) {
	return invoke[DeleteMovementResponse](ctx, c, LedgerService_DeleteMovement_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) UpdateAssetPrice(ctx context.Context, in *UpdateAssetPriceRequest, opts ...grpc.CallOption) (*UpdateAssetPriceResponse, error) {
	return invoke[UpdateAssetPriceResponse](ctx, c, LedgerService_UpdateAssetPrice_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) GetPerformance(ctx context.Context, in *GetPerformanceRequest, opts ...grpc.CallOption) (*GetPerformanceResponse, error) {
	return invoke[GetPerformanceResponse](ctx, c, LedgerService_GetPerformance_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) UpdateMovement(ctx context.Context, in *UpdateMovementRequest, opts ...grpc.CallOption) (*UpdateMovementResponse, error) {
	return invoke[UpdateMovementResponse](ctx, c, LedgerService_UpdateMovement_FullMethodName, in, opts)
}

func (c *LedgerServiceClient) GetPriceAt(ctx context.Context, in *GetPriceAtRequest, opts ...grpc.CallOption) (*GetPriceAtResponse, error) {
	return invoke[GetPriceAtResponse](ctx, c, LedgerService_GetPriceAt_FullMethodName, in, opts)
}

// Package cli implements ledgerctl, a command line client of the ledger gRPC service.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
)

// Register adds every ledgerctl command to the commander.
func Register(c *subcommands.Commander) {
	c.Register(&importCmd{}, "movements")
	c.Register(&movementsCmd{}, "movements")
	c.Register(&editCmd{}, "movements")

	c.Register(&portfolioCmd{}, "reports")
	c.Register(&balanceCmd{}, "reports")

	c.Register(&priceCmd{}, "assets")
	c.Register(&priceAtCmd{}, "assets")
}

// ledgerctl runs once per invocation, so connection settings live in globals.

var serverAddr = flag.String("addr", "localhost:8080", "Address of the ledger gRPC server")
var apiToken = flag.String("token", os.Getenv("API_TOKEN"), "API token sent as authorization metadata (defaults to $API_TOKEN)")

// stdout receives command output.
var stdout io.Writer = os.Stdout

// LedgerClient is the part of the ledger service the commands call.
type LedgerClient interface {
	GetPortfolio(ctx context.Context, in *ledgerv1.GetPortfolioRequest, opts ...grpc.CallOption) (*ledgerv1.GetPortfolioResponse, error)
	GetBalance(ctx context.Context, in *ledgerv1.GetBalanceRequest, opts ...grpc.CallOption) (*ledgerv1.GetBalanceResponse, error)
	ImportMovements(ctx context.Context, in *ledgerv1.ImportMovementsRequest, opts ...grpc.CallOption) (*ledgerv1.ImportMovementsResponse, error)
	ListMovements(ctx context.Context, in *ledgerv1.ListMovementsRequest, opts ...grpc.CallOption) (*ledgerv1.ListMovementsResponse, error)
	UpdateMovement(ctx context.Context, in *ledgerv1.UpdateMovementRequest, opts ...grpc.CallOption) (*ledgerv1.UpdateMovementResponse, error)
	UpdateAssetPrice(ctx context.Context, in *ledgerv1.UpdateAssetPriceRequest, opts ...grpc.CallOption) (*ledgerv1.UpdateAssetPriceResponse, error)
	GetPriceAt(ctx context.Context, in *ledgerv1.GetPriceAtRequest, opts ...grpc.CallOption) (*ledgerv1.GetPriceAtResponse, error)
}

// connect dials the server; tests replace it.
var connect = func() (LedgerClient, func(), error) {
	conn, err := grpc.NewClient(*serverAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", *serverAddr, err)
	}
	return ledgerv1.NewLedgerServiceClient(conn), func() { conn.Close() }, nil
}

// authorized attaches the API token to outgoing calls.
func authorized(ctx context.Context) context.Context {
	return metadata.AppendToOutgoingContext(ctx, "authorization", *apiToken)
}

// run connects, calls fn and reports its error on stderr.
func run(ctx context.Context, fn func(context.Context, LedgerClient) error) subcommands.ExitStatus {
	client, closeFn, err := connect()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer closeFn()

	if err := fn(authorized(ctx), client); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

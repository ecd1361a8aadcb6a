package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	grpcadapter "github.com/simaogato/cryptoledger-backend/internal/adapter/grpc"
	"github.com/simaogato/cryptoledger-backend/internal/adapter/grpc/ledgerv1"
	"github.com/simaogato/cryptoledger-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/cryptoledger-backend/internal/config"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/importer"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/movement"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/portfolio"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/pricehistory"
	"github.com/simaogato/cryptoledger-backend/internal/usecase/seeder"
)

const (
	connectAttempts = 5
	connectWait     = 2 * time.Second
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()

	// 2. Setup Database
	ctx := context.Background()
	db, err := postgres.Connect(ctx, cfg.DBConnStr, connectAttempts, connectWait)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// 3. Initialize Repositories (Postgres)
	walletRepo := postgres.NewWalletRepository(db)
	assetRepo := postgres.NewAssetRepository(db)
	fiatRepo := postgres.NewFiatCurrencyRepository(db)
	movementRepo := postgres.NewMovementRepository(db)

	// 4. Initialize Services (Use Cases)
	portfolioService := portfolio.NewPortfolioService(walletRepo, assetRepo, fiatRepo, movementRepo)
	importService := importer.NewImportService(walletRepo, assetRepo, fiatRepo, movementRepo,
		cfg.RunningBalance, logger.WithField("component", "importer"))
	movementService := movement.NewMovementService(movementRepo, logger.WithField("component", "movement"))
	priceHistoryService := pricehistory.NewPriceHistoryService(assetRepo, logger.WithField("component", "pricehistory"))

	// Make sure the reference fiat currency exists
	referenceSeeder := seeder.NewReferenceSeeder(fiatRepo, logger.WithField("component", "seeder"))
	if err := referenceSeeder.Seed(ctx); err != nil {
		logger.Fatalf("Failed to seed reference currencies: %v", err)
	}

	// 5. Start gRPC Server
	grpcServer := grpclib.NewServer(
		grpclib.ChainUnaryInterceptor(
			grpcadapter.LoggingInterceptor(logger.WithField("component", "grpc")),
			grpcadapter.AuthInterceptor(cfg.APIToken, grpcadapter.HealthCheckMethod),
		),
	)

	grpcAdapter := grpcadapter.NewServer(portfolioService, importService, movementService, priceHistoryService)
	ledgerv1.RegisterLedgerServiceServer(grpcServer, grpcAdapter)

	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ledgerv1.ServiceName, healthpb.HealthCheckResponse_SERVING)

	grpcadapter.RegisterReflection(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		logger.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
	}

	go func() {
		logger.WithField("addr", cfg.GRPCAddr).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			logger.Fatalf("Failed to serve gRPC server: %v", err)
		}
	}()

	// Graceful shutdown
	waitForShutdown(logger, grpcServer, healthServer)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(logger logrus.FieldLogger, grpcServer *grpclib.Server, healthServer *health.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.WithField("signal", sig).Info("Shutting down gracefully")

	healthServer.Shutdown()
	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
}

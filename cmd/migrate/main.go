package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/cryptoledger-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/cryptoledger-backend/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	logger := cfg.NewLogger()

	db, err := postgres.Connect(context.Background(), cfg.DBConnStr, 5, 2*time.Second)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.Info("Running database migrations...")
	if err := db.Migrate(); err != nil {
		logger.Fatalf("Migration failed: %v", err)
	}
	logger.Info("Migrations completed successfully")
}

// Package config loads service configuration from the environment.
// A .env file in the working directory is read first when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

const (
	defaultGRPCAddr = ":8080"
	devAPIToken     = "dev-token"
)

// Config holds all service configuration
type Config struct {
	// DBConnStr is the lib/pq connection string
	DBConnStr string

	// GRPCAddr is the listen address of the gRPC server
	GRPCAddr string

	// APIToken is the bearer token every gRPC call must present
	APIToken string

	// LogLevel is the minimum logrus level
	LogLevel logrus.Level

	// RunningBalance makes import funds checks count earlier rows of the same file
	RunningBalance bool

	// Development relaxes the API token requirement
	Development bool
}

// Load reads configuration from the process environment.
// Call this once at startup.
func Load() (*Config, error) {
	if err := loadDotEnv(".env"); err != nil {
		return nil, err
	}
	return FromLookup(os.LookupEnv)
}

// loadDotEnv sets variables from path without overriding the environment.
// A missing file is not an error; an unreadable or malformed one is.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// FromLookup builds the configuration from the given lookup function.
// Every invalid or missing value is reported, not only the first.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, defaultValue string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return defaultValue
	}

	var errs error
	cfg := &Config{
		DBConnStr:   get("DB_CONN_STR", ""),
		GRPCAddr:    get("GRPC_ADDR", defaultGRPCAddr),
		APIToken:    get("API_TOKEN", ""),
		Development: get("APP_ENV", "") == "development",
	}

	if cfg.DBConnStr == "" {
		port := get("DB_PORT", "5432")
		if _, err := strconv.ParseUint(port, 10, 16); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("DB_PORT: %q is not a valid port", port))
		}
		cfg.DBConnStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			get("DB_HOST", "localhost"), port, get("DB_USER", "postgres"),
			get("DB_PASSWORD", "postgres"), get("DB_NAME", "cryptoledger"))
	}

	if cfg.APIToken == "" {
		if cfg.Development {
			cfg.APIToken = devAPIToken
		} else {
			errs = multierr.Append(errs, errors.New("API_TOKEN: required outside development"))
		}
	}

	level, err := logrus.ParseLevel(get("LOG_LEVEL", "info"))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}
	cfg.LogLevel = level

	running, err := strconv.ParseBool(get("IMPORT_RUNNING_BALANCE", "true"))
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("IMPORT_RUNNING_BALANCE: %q is not a boolean", get("IMPORT_RUNNING_BALANCE", "")))
	}
	cfg.RunningBalance = running

	if errs != nil {
		return nil, fmt.Errorf("invalid configuration: %w", errs)
	}
	return cfg, nil
}

// NewLogger builds the service logger at the configured level
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(c.LogLevel)
	if !c.Development {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return logger
}

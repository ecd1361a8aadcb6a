package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq" // PostgreSQL driver
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

//go:embed migrations/*.sql
var migrations embed.FS

// uniqueViolation is the PostgreSQL error code for a unique constraint failure
const uniqueViolation = "23505"

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=cryptoledger sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Connect opens the database, retrying while the server is still starting up.
// It gives up after attempts tries spaced wait apart, or when ctx is done.
func Connect(ctx context.Context, connectionString string, attempts uint64, wait time.Duration) (*DB, error) {
	if attempts == 0 {
		attempts = 1
	}
	var db *DB
	backoff := retry.WithMaxRetries(attempts-1, retry.NewConstant(wait))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		db, err = NewDB(connectionString)
		return retry.RetryableError(err)
	})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate applies every pending schema migration
func (db *DB) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

func parseDecimal(s, column string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse %s: %w", column, err)
	}
	return d, nil
}

// parseNullDecimal parses a nullable NUMERIC column; NULL yields zero
func parseNullDecimal(s sql.NullString, column string) (decimal.Decimal, error) {
	if !s.Valid {
		return decimal.Zero, nil
	}
	return parseDecimal(s.String, column)
}

// internal/common/database/postgres.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"cstore-prefill/internal/common/config"
	apperrors "cstore-prefill/internal/common/errors"

	_ "github.com/lib/pq"
)

// PostgresClient wraps the registry store connection pool.
type PostgresClient struct {
	DB *sql.DB
}

// NewPostgres opens the registry pool. It returns (nil, nil) when no registry
// is configured so callers can run without one.
func NewPostgres(cfg config.RegistryConfig) (*PostgresClient, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConnections)
	db.SetMaxIdleConns(cfg.MaxIdle)
	db.SetConnMaxLifetime(config.GetDuration(cfg.ConnMaxLifetime))
	db.SetConnMaxIdleTime(config.GetDuration(cfg.ConnMaxLifetime))

	return &PostgresClient{DB: db}, nil
}

// Ping checks the registry store. Failures carry REGISTRY_CONNECTION_FAILED.
func (c *PostgresClient) Ping(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return apperrors.NewRegistryConnectionError(fmt.Errorf("registry store not configured"))
	}
	if err := c.DB.PingContext(ctx); err != nil {
		return apperrors.NewRegistryConnectionError(err)
	}
	return nil
}

// Close closes the database connection
func (c *PostgresClient) Close() error {
	if c != nil && c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// GetDB returns the underlying *sql.DB, nil when unconfigured.
func (c *PostgresClient) GetDB() *sql.DB {
	if c == nil {
		return nil
	}
	return c.DB
}

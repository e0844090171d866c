package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps the application connection pool
type DB struct {
	Pool *pgxpool.Pool
}

// New creates the application database connection pool
func New(ctx context.Context, connString string) (*DB, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DB config: %w", err)
	}

	// Connection pool settings
	config.MaxConns = 25
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	db.Pool.Close()
}

// Health checks if the database is reachable
func (db *DB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// PoolStats returns connection pool statistics for diagnostics
func (db *DB) PoolStats() map[string]interface{} {
	stats := db.Pool.Stat()
	return map[string]interface{}{
		"acquired_conns": stats.AcquiredConns(),
		"idle_conns":     stats.IdleConns(),
		"total_conns":    stats.TotalConns(),
		"max_conns":      stats.MaxConns(),
	}
}

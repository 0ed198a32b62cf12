// Package database opens the PostgreSQL order store and keeps its schema
// migrated.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/themizzi/storefront-e2e/internal/config"
)

// Pool sizes the connection pool.
type Pool struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
}

// DefaultPool suits the demo storefront.
var DefaultPool = Pool{MaxOpen: 25, MaxIdle: 10, MaxLifetime: 5 * time.Minute}

const pingTimeout = 5 * time.Second

// Open connects with DefaultPool.
func Open(cfg *config.PostgresConfig) (*sql.DB, error) {
	return OpenWithPool(cfg, DefaultPool)
}

// OpenWithPool connects and pings; a database that does not answer within
// five seconds is an error.
func OpenWithPool(cfg *config.PostgresConfig, pool Pool) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(pool.MaxOpen)
	db.SetMaxIdleConns(pool.MaxIdle)
	db.SetConnMaxLifetime(pool.MaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s/%s: %w", cfg.Host, cfg.Database, err)
	}
	return db, nil
}

// Package testutil gives integration tests a migrated PostgreSQL schema of
// their own.
package testutil

import (
	"database/sql"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/themizzi/storefront-e2e/internal/config"
	"github.com/themizzi/storefront-e2e/internal/database"
)

// localDefaults point at a stock local postgres when POSTGRES_* is unset.
var localDefaults = map[string]string{
	"POSTGRES_USER":     "postgres",
	"POSTGRES_PASSWORD": "postgres",
	"POSTGRES_DB":       "postgres",
	"POSTGRES_HOSTNAME": "localhost",
}

func getenv(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return localDefaults[key]
}

var testPool = database.Pool{MaxOpen: 5, MaxIdle: 2, MaxLifetime: time.Minute}

// NewSchema creates a uniquely named schema, runs the storefront migrations
// in it and returns a connection whose search_path is that schema. The
// schema is dropped when t finishes.
func NewSchema(t testing.TB) *sql.DB {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(getenv)
	if err != nil {
		t.Fatalf("postgres config: %v", err)
	}
	admin, err := database.OpenWithPool(cfg, database.Pool{MaxOpen: 1, MaxIdle: 1})
	if err != nil {
		t.Fatalf("connect to postgres: %v", err)
	}

	schema := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if _, err := admin.Exec("CREATE SCHEMA " + pq.QuoteIdentifier(schema)); err != nil {
		admin.Close()
		t.Fatalf("create schema %s: %v", schema, err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec("DROP SCHEMA IF EXISTS " + pq.QuoteIdentifier(schema) + " CASCADE"); err != nil {
			t.Logf("drop schema %s: %v", schema, err)
		}
		admin.Close()
	})

	scoped := *cfg
	scoped.SearchPath = schema
	db, err := database.OpenWithPool(&scoped, testPool)
	if err != nil {
		t.Fatalf("connect to schema %s: %v", schema, err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.RunMigrations(db); err != nil {
		t.Fatalf("migrate schema %s: %v", schema, err)
	}
	return db
}

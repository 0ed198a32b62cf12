package config

import (
	"fmt"
	"strings"
)

// PostgresConfig is the order store connection used when ORDER_STORE=postgres.
type PostgresConfig struct {
	User     string
	Password string
	Database string
	Host     string
	Port     string
	SSLMode  string
	// SearchPath pins the connection to one schema. Integration tests use it
	// to give every test its own schema.
	SearchPath string
}

// LoadPostgresConfig reads POSTGRES_USER, POSTGRES_PASSWORD, POSTGRES_DB and
// POSTGRES_HOSTNAME (all required) plus POSTGRES_PORT (5432) and
// POSTGRES_SSLMODE (disable).
func LoadPostgresConfig(getenv func(string) string) (*PostgresConfig, error) {
	cfg := &PostgresConfig{Port: "5432", SSLMode: "disable"}
	required := []struct {
		key string
		dst *string
	}{
		{"POSTGRES_USER", &cfg.User},
		{"POSTGRES_PASSWORD", &cfg.Password},
		{"POSTGRES_DB", &cfg.Database},
		{"POSTGRES_HOSTNAME", &cfg.Host},
	}
	var missing []string
	for _, r := range required {
		*r.dst = getenv(r.key)
		if *r.dst == "" {
			missing = append(missing, r.key)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s required", strings.Join(missing, ", "))
	}

	if v := getenv("POSTGRES_PORT"); v != "" {
		cfg.Port = v
	}
	if v := getenv("POSTGRES_SSLMODE"); v != "" {
		cfg.SSLMode = v
	}
	return cfg, nil
}

// ConnectionString renders the lib/pq key=value DSN.
func (c *PostgresConfig) ConnectionString() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
	if c.SearchPath != "" {
		dsn += " search_path=" + c.SearchPath
	}
	return dsn
}

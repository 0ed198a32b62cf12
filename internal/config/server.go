package config

import (
	"fmt"
	"strings"
)

// Order store backends for the demo storefront.
const (
	OrderStoreMemory   = "memory"
	OrderStorePostgres = "postgres"
)

// ServerConfig holds demo storefront server configuration
type ServerConfig struct {
	Port       string
	OrderStore string
	// AuthSecret signs the session tokens handed to signed-in shoppers.
	AuthSecret string
}

// LoadServerConfig loads server configuration from environment variables
func LoadServerConfig(getenv func(string) string) (ServerConfig, error) {
	port := getenv("PORT")
	if port == "" {
		port = "8080" // Default to port 8080
	}

	store := strings.ToLower(getenv("ORDER_STORE"))
	switch store {
	case "":
		store = OrderStoreMemory
	case OrderStoreMemory, OrderStorePostgres:
	default:
		return ServerConfig{}, fmt.Errorf("ORDER_STORE must be %q or %q, got %q", OrderStoreMemory, OrderStorePostgres, store)
	}

	secret := getenv("AUTH_SECRET")
	if secret == "" {
		secret = "storefront-demo-secret"
	}

	return ServerConfig{
		Port:       port,
		OrderStore: store,
		AuthSecret: secret,
	}, nil
}

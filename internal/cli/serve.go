package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/config"
	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/handlers"
	applog "github.com/themizzi/storefront-e2e/internal/logger"
	"github.com/themizzi/storefront-e2e/internal/services"
	"github.com/themizzi/storefront-e2e/web"
)

// ServerDependencies holds all dependencies needed for the server
type ServerDependencies struct {
	ServerConfig config.ServerConfig
	Handler      http.Handler
	Logger       *log.Logger
}

// StorefrontOptions configures NewStorefront.
type StorefrontOptions struct {
	Secret    string
	OrderRepo services.OrderRepository
	Catalog   *dataset.Catalog
	Logger    *log.Logger
	// AuthOptions are passed to the account service, e.g. a cheaper hash
	// cost for tests.
	AuthOptions []services.AuthOption
}

// NewStorefront builds the demo storefront handler over the embedded web
// assets. A nil catalog means the embedded default catalog.
func NewStorefront(opts StorefrontOptions) (http.Handler, error) {
	if opts.OrderRepo == nil {
		return nil, errors.New("storefront needs an order repository")
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = dataset.DefaultCatalog()
	}
	if opts.Logger == nil {
		opts.Logger = applog.Discard()
	}

	auth, err := services.NewAuthService(opts.Secret, opts.Logger, opts.AuthOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create account service: %w", err)
	}
	orders := services.NewOrderService(opts.OrderRepo)
	payments := services.NewPaymentService(services.NewSandboxAuthorizer(), orders, opts.Logger)

	return handlers.NewRouter(handlers.Dependencies{
		Assets:   web.FS,
		Logger:   opts.Logger,
		Catalog:  services.NewCatalogService(catalog),
		Auth:     auth,
		Carts:    services.NewCartService(catalog, opts.Logger),
		Orders:   orders,
		Payments: payments,
	})
}

// RunServe starts the demo storefront and blocks until it is signalled to stop
func RunServe(deps ServerDependencies) error {
	listener, server, err := StartServer(deps)
	if err != nil {
		return err
	}
	defer listener.Close()

	return WaitForShutdown(server, nil, deps.Logger)
}

// StartServer creates and starts the HTTP server, returning the listener and server
func StartServer(deps ServerDependencies) (net.Listener, *http.Server, error) {
	addr := fmt.Sprintf(":%s", deps.ServerConfig.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create listener: %w", err)
	}

	server := &http.Server{
		Handler:           deps.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		deps.Logger.Info("Server listening", "addr", listener.Addr().String())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server error", "err", err)
		}
	}()

	return listener, server, nil
}

// WaitForShutdown waits for a shutdown signal and gracefully shuts down the server.
// If shutdown is nil a channel is created and registered with signal.Notify.
func WaitForShutdown(server *http.Server, shutdown chan os.Signal, logger *log.Logger) error {
	return WaitForShutdownWithTimeout(server, shutdown, 30*time.Second, logger)
}

// WaitForShutdownWithTimeout allows specifying a custom shutdown timeout (primarily for testing)
func WaitForShutdownWithTimeout(server *http.Server, shutdown chan os.Signal, shutdownTimeout time.Duration, logger *log.Logger) error {
	if shutdown == nil {
		shutdown = make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	}

	sig := <-shutdown
	logger.Info("Shutting down server", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		// Outstanding requests did not finish in time.
		if err := server.Close(); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	logger.Info("Server stopped")
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"
	"github.com/urfave/cli/v2"

	internalcli "github.com/themizzi/storefront-e2e/internal/cli"
	"github.com/themizzi/storefront-e2e/internal/config"
	"github.com/themizzi/storefront-e2e/internal/database"
	applog "github.com/themizzi/storefront-e2e/internal/logger"
	"github.com/themizzi/storefront-e2e/internal/repository"
	"github.com/themizzi/storefront-e2e/internal/services"
)

var version = "0.1.0"

func newLogger(prefix string) *log.Logger {
	opts := applog.DefaultOptions()
	opts.Level = config.LoadLogConfig(os.Getenv).Level
	opts.Prefix = prefix
	return applog.New(opts)
}

// orderRepository picks the order store named by the server config. The
// returned close func is never nil.
func orderRepository(cfg config.ServerConfig, logger *log.Logger) (services.OrderRepository, func(), error) {
	if cfg.OrderStore != config.OrderStorePostgres {
		logger.Info("Using in-memory order store")
		return repository.NewMemoryOrderRepository(), func() {}, nil
	}

	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("missing required Postgres configuration: %w", err)
	}
	db, err := database.Open(pgConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("Connected to database", "host", pgConfig.Host, "db", pgConfig.Database)

	if err := database.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewOrderRepository(db), func() { db.Close() }, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the demo storefront the e2e suite runs against",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "port to listen on",
				EnvVars: []string{"PORT"},
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger("storefront")

			serverConfig, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			if port := c.String("port"); port != "" {
				serverConfig.Port = port
			}

			repo, closeRepo, err := orderRepository(serverConfig, logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			handler, err := internalcli.NewStorefront(internalcli.StorefrontOptions{
				Secret:    serverConfig.AuthSecret,
				OrderRepo: repo,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: serverConfig,
				Handler:      handler,
				Logger:       logger,
			})
		},
	}
}

// InstallCommand downloads the Playwright driver and the configured browser.
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the Playwright driver and browser",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "all",
				Usage: "install every browser engine",
			},
		},
		Action: func(c *cli.Context) error {
			logger := newLogger("install")

			browserConfig, err := config.LoadBrowserConfig(os.Getenv)
			if err != nil {
				return err
			}
			browsers := []string{browserConfig.Browser}
			if c.Bool("all") {
				browsers = []string{config.BrowserChromium, config.BrowserFirefox, config.BrowserWebKit}
			}

			logger.Info("Installing Playwright", "browsers", browsers)
			if err := playwright.Install(&playwright.RunOptions{Browsers: browsers}); err != nil {
				return fmt.Errorf("failed to install playwright: %w", err)
			}
			logger.Info("Playwright installed")
			return nil
		},
	}
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env: %v\n", err)
	}

	app := &cli.App{
		Name:    "storefront-e2e",
		Usage:   "Demo storefront and browser tooling for the e2e suite",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package fixtures

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/config"
	applog "github.com/themizzi/storefront-e2e/internal/logger"
	"github.com/themizzi/storefront-e2e/internal/pages"
	"github.com/themizzi/storefront-e2e/internal/pages/saucedemo"
	"github.com/themizzi/storefront-e2e/internal/pages/storefront"
	"github.com/themizzi/storefront-e2e/internal/session"
)

// NewStorefront builds the storefront page objects over s. A nil logger
// discards.
func NewStorefront(s session.Session, baseURL, screenshotDir string, logger *log.Logger) *storefront.Pages {
	return storefront.New(pages.NewBase(s, baseURL, screenshotDir, prefixed(logger, "storefront")))
}

// NewSauceDemo builds the demo store page objects over s.
func NewSauceDemo(s session.Session, baseURL, screenshotDir string, logger *log.Logger) *saucedemo.Pages {
	return saucedemo.New(pages.NewBase(s, baseURL, screenshotDir, prefixed(logger, "saucedemo")))
}

func prefixed(logger *log.Logger, prefix string) *log.Logger {
	if logger == nil {
		return applog.Discard()
	}
	return logger.WithPrefix(prefix)
}

// Authenticate signs creds in and waits for the post-login page to settle.
func Authenticate(p *storefront.Pages, creds config.Credentials) error {
	if err := p.Login.NavigateToLogin(); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if err := p.Login.Login(creds.Username, creds.Password); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if err := p.Login.WaitForNetworkIdle(); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	return nil
}

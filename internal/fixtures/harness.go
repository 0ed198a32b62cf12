// Package fixtures wires page objects to browser sessions for the e2e
// suites. A Harness owns one browser per test package; every test gets a
// fresh browser context so no cookies or storage leak between tests.
package fixtures

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/playwright-community/playwright-go"

	"github.com/themizzi/storefront-e2e/internal/config"
	"github.com/themizzi/storefront-e2e/internal/pages/saucedemo"
	"github.com/themizzi/storefront-e2e/internal/pages/storefront"
	"github.com/themizzi/storefront-e2e/internal/session"
)

// Harness is a running Playwright driver with one launched browser.
type Harness struct {
	Config *config.BrowserConfig

	pw      *playwright.Playwright
	browser playwright.Browser
	log     *log.Logger
}

// Launch starts the Playwright driver and the configured browser engine.
func Launch(cfg *config.BrowserConfig, logger *log.Logger) (*Harness, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("could not start playwright: %w", err)
	}

	var engine playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		engine = pw.Firefox
	case config.BrowserWebKit:
		engine = pw.WebKit
	default:
		engine = pw.Chromium
	}

	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("could not launch %s: %w", engine.Name(), err)
	}

	logger.Info("Browser launched", "engine", engine.Name(), "headless", cfg.Headless, "version", browser.Version())
	return &Harness{Config: cfg, pw: pw, browser: browser, log: logger}, nil
}

// Close shuts the browser and the driver down.
func (h *Harness) Close() error {
	if err := h.browser.Close(); err != nil {
		_ = h.pw.Stop()
		return fmt.Errorf("close browser: %w", err)
	}
	return h.pw.Stop()
}

// NewSession opens a fresh context and page for t. On cleanup it saves a
// screenshot if t failed and screenshots are enabled, then closes the
// context.
func (h *Harness) NewSession(t testing.TB) session.Session {
	t.Helper()

	bctx, err := h.browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: 1280, Height: 720},
	})
	if err != nil {
		t.Fatalf("could not create browser context: %v", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		t.Fatalf("could not create page: %v", err)
	}

	s := session.NewPlaywright(page, h.Config.Timeout)
	t.Cleanup(func() {
		if t.Failed() && h.Config.Screenshots {
			h.captureFailure(t, s)
		}
		if err := bctx.Close(); err != nil {
			h.log.Warn("could not close browser context", "test", t.Name(), "err", err)
		}
	})
	return s
}

func (h *Harness) captureFailure(t testing.TB, s session.Session) {
	if err := os.MkdirAll(h.Config.ScreenshotDir, 0o755); err != nil {
		h.log.Warn("could not create screenshot dir", "dir", h.Config.ScreenshotDir, "err", err)
		return
	}
	path := FailureScreenshotPath(h.Config.ScreenshotDir, t.Name(), time.Now())
	if err := s.Screenshot(path); err != nil {
		h.log.Warn("could not capture failure screenshot", "test", t.Name(), "err", err)
		return
	}
	h.log.Error("Test failed", "test", t.Name(), "screenshot", path)
}

var unsafePathChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// FailureScreenshotPath names the screenshot saved for a failed test.
func FailureScreenshotPath(dir, testName string, at time.Time) string {
	name := unsafePathChars.ReplaceAllString(testName, "_")
	return filepath.Join(dir, fmt.Sprintf("%s_%d.png", name, at.Unix()))
}

// Storefront returns page objects for the generic storefront bound to a new
// session.
func (h *Harness) Storefront(t testing.TB) *storefront.Pages {
	t.Helper()
	return NewStorefront(h.NewSession(t), h.Config.BaseURL, h.Config.ScreenshotDir, h.log)
}

// SauceDemo returns page objects for the demo store bound to a new session.
func (h *Harness) SauceDemo(t testing.TB) *saucedemo.Pages {
	t.Helper()
	return NewSauceDemo(h.NewSession(t), h.Config.SauceDemoURL, h.Config.ScreenshotDir, h.log)
}

// AuthenticatedStorefront is Storefront with creds already signed in.
func (h *Harness) AuthenticatedStorefront(t testing.TB, creds config.Credentials) *storefront.Pages {
	t.Helper()
	p := h.Storefront(t)
	if err := Authenticate(p, creds); err != nil {
		t.Fatalf("could not authenticate %s: %v", creds.Username, err)
	}
	return p
}

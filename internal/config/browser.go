package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Supported browser engines.
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// BrowserConfig holds configuration for the browser harness and page objects
type BrowserConfig struct {
	// BaseURL prefixes every relative path the storefront page objects navigate to.
	BaseURL string
	// SauceDemoURL is the fixed demo store the second page-object family targets.
	SauceDemoURL  string
	Browser       string
	Headless      bool
	SlowMo        time.Duration
	Timeout       time.Duration
	Screenshots   bool
	ScreenshotDir string
}

// LoadBrowserConfig loads browser configuration from environment variables
func LoadBrowserConfig(getenv func(string) string) (*BrowserConfig, error) {
	config := &BrowserConfig{
		BaseURL:       strings.TrimRight(getenv("BASE_URL"), "/"),
		SauceDemoURL:  strings.TrimRight(getenv("SAUCEDEMO_URL"), "/"),
		Browser:       strings.ToLower(getenv("BROWSER")),
		Headless:      getenv("HEADLESS") != "false",
		Timeout:       5 * time.Second,
		Screenshots:   getenv("SCREENSHOTS") != "false",
		ScreenshotDir: getenv("SCREENSHOT_DIR"),
	}

	if config.BaseURL == "" {
		config.BaseURL = "https://example-ecommerce.com"
	}
	if config.SauceDemoURL == "" {
		config.SauceDemoURL = "https://www.saucedemo.com"
	}
	if config.ScreenshotDir == "" {
		config.ScreenshotDir = "screenshots"
	}

	switch config.Browser {
	case "":
		config.Browser = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit; got %q", config.Browser)
	}

	if v := getenv("SLOW_MO"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("SLOW_MO must be a non-negative number of milliseconds, got %q", v)
		}
		config.SlowMo = time.Duration(ms) * time.Millisecond
	}

	if v := getenv("TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil || ms <= 0 {
			return nil, fmt.Errorf("TIMEOUT_MS must be a positive number of milliseconds, got %q", v)
		}
		config.Timeout = time.Duration(ms) * time.Millisecond
	}

	return config, nil
}

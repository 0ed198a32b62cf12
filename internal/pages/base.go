// Package pages holds the interaction helper shared by every page object.
// Page objects embed a Base value to pick up its primitives; there is no
// common page interface.
package pages

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	applog "github.com/themizzi/storefront-e2e/internal/logger"
	"github.com/themizzi/storefront-e2e/internal/session"
)

// DefaultWait bounds WaitForElement and WaitForElementHidden when the caller
// passes zero.
const DefaultWait = 5 * time.Second

// Base wraps a session with a base URL, a screenshot directory and a logger.
// It holds no state of its own beyond those handles.
type Base struct {
	session       session.Session
	baseURL       string
	screenshotDir string
	log           *log.Logger
}

// NewBase builds the helper for a page object bound to s.
func NewBase(s session.Session, baseURL, screenshotDir string, logger *log.Logger) Base {
	if screenshotDir == "" {
		screenshotDir = "screenshots"
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return Base{
		session:       s,
		baseURL:       strings.TrimRight(baseURL, "/"),
		screenshotDir: screenshotDir,
		log:           logger,
	}
}

// Session returns the underlying session.
func (b Base) Session() session.Session { return b.session }

// BaseURL returns the configured address relative paths are resolved against.
func (b Base) BaseURL() string { return b.baseURL }

// Logger returns the injected logger.
func (b Base) Logger() *log.Logger { return b.log }

// URL joins path onto the base URL.
func (b Base) URL(path string) string {
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return b.baseURL + path
}

// Goto navigates to path under the base URL and waits for network idle.
func (b Base) Goto(path string) error {
	target := b.URL(path)
	b.log.Info("Navigating", "url", target)
	if err := b.session.Goto(target); err != nil {
		return fmt.Errorf("navigate to %s: %w", target, err)
	}
	return b.WaitForNetworkIdle()
}

func (b Base) WaitForNetworkIdle() error {
	if err := b.session.WaitForNetworkIdle(); err != nil {
		return fmt.Errorf("wait for network idle: %w", err)
	}
	return nil
}

func (b Base) CurrentURL() string {
	return b.session.URL()
}

// Title returns the document title, or "" when it cannot be read.
func (b Base) Title() string {
	title, err := b.session.Title()
	if err != nil {
		b.log.Debug("title unavailable", "err", err)
		return ""
	}
	return title
}

// TakeScreenshot writes <dir>/<name>.png and returns the path.
func (b Base) TakeScreenshot(name string) (string, error) {
	path := filepath.Join(b.screenshotDir, name+".png")
	if err := b.session.Screenshot(path); err != nil {
		return "", fmt.Errorf("screenshot %s: %w", name, err)
	}
	b.log.Info("Saved screenshot", "path", path)
	return path, nil
}

// WaitForNavigation runs action and then waits for the resulting page to
// settle.
func (b Base) WaitForNavigation(action func() error) error {
	if err := action(); err != nil {
		return err
	}
	return b.WaitForNetworkIdle()
}

// IsVisible reports whether selector is visible. Failures read as false.
func (b Base) IsVisible(selector string) bool {
	visible, err := b.session.IsVisible(selector)
	if err != nil {
		return false
	}
	return visible
}

// WaitForElement blocks until selector is visible or timeout elapses. A zero
// timeout means DefaultWait.
func (b Base) WaitForElement(selector string, timeout time.Duration) error {
	return b.waitFor(selector, session.StateVisible, timeout)
}

// WaitForElementHidden blocks until selector is hidden or detached.
func (b Base) WaitForElementHidden(selector string, timeout time.Duration) error {
	return b.waitFor(selector, session.StateHidden, timeout)
}

func (b Base) waitFor(selector string, state session.State, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = DefaultWait
	}
	return b.session.WaitFor(selector, state, timeout)
}

func (b Base) Click(selector string) error {
	b.log.Info("Clicking on", "selector", selector)
	return b.session.Click(selector)
}

// ClickAndWait clicks selector and waits for network idle.
func (b Base) ClickAndWait(selector string) error {
	return b.WaitForNavigation(func() error { return b.Click(selector) })
}

func (b Base) Fill(selector, value string) error {
	b.log.Info("Filling", "selector", selector, "value", value)
	return b.session.Fill(selector, value)
}

func (b Base) SelectOption(selector, value string) error {
	b.log.Info("Selecting option", "selector", selector, "value", value)
	return b.session.SelectOption(selector, value)
}

func (b Base) Check(selector string) error {
	b.log.Info("Checking", "selector", selector)
	return b.session.Check(selector)
}

// Text returns the text content of selector, or "".
func (b Base) Text(selector string) string {
	text, err := b.session.TextContent(selector)
	if err != nil {
		return ""
	}
	return text
}

// TextOr returns the text content of selector, or fallback when it cannot be
// read.
func (b Base) TextOr(selector, fallback string) string {
	text, err := b.session.TextContent(selector)
	if err != nil {
		return fallback
	}
	return text
}

// Attribute returns the named attribute of selector, or "".
func (b Base) Attribute(selector, name string) string {
	value, err := b.session.Attribute(selector, name)
	if err != nil {
		return ""
	}
	return value
}

// HasClass reports whether selector's class attribute contains className.
func (b Base) HasClass(selector, className string) bool {
	return strings.Contains(b.Attribute(selector, "class"), className)
}

func (b Base) IsChecked(selector string) bool {
	checked, err := b.session.IsChecked(selector)
	if err != nil {
		return false
	}
	return checked
}

func (b Base) InputValue(selector string) string {
	value, err := b.session.InputValue(selector)
	if err != nil {
		return ""
	}
	return value
}

// Count returns how many elements match selector, or 0.
func (b Base) Count(selector string) int {
	n, err := b.session.Count(selector)
	if err != nil {
		return 0
	}
	return n
}

// AllTexts returns the text of every match. It never returns nil.
func (b Base) AllTexts(selector string) []string {
	texts, err := b.session.AllTextContents(selector)
	if err != nil || texts == nil {
		return []string{}
	}
	return texts
}

// PageContainsText reports whether text is visible anywhere on the page.
func (b Base) PageContainsText(text string) bool {
	visible, err := b.session.TextVisible(text)
	if err != nil {
		return false
	}
	return visible
}

func (b Base) ScrollTo(selector string) error {
	return b.session.ScrollIntoView(selector)
}

func (b Base) PressKey(key string) error {
	return b.session.Press(key)
}

func (b Base) Reload() error {
	if err := b.session.Reload(); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	return b.WaitForNetworkIdle()
}

func (b Base) Close() error {
	return b.session.Close()
}

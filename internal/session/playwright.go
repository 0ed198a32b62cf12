package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Playwright implements Session over a playwright.Page.
type Playwright struct {
	page    playwright.Page
	timeout time.Duration
}

// NewPlaywright wraps page. timeout bounds every element lookup and wait that
// does not carry its own; it is also installed as the page default.
func NewPlaywright(page playwright.Page, timeout time.Duration) *Playwright {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	page.SetDefaultTimeout(ms(timeout))
	return &Playwright{page: page, timeout: timeout}
}

// Page exposes the underlying page for tests that need raw access.
func (p *Playwright) Page() playwright.Page {
	return p.page
}

func ms(d time.Duration) float64 {
	return float64(d.Milliseconds())
}

// translate maps Playwright errors from page level operations onto the
// package sentinels.
func translate(op, target string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s %s: %w: %w", op, target, ErrTimeout, err)
	}
	return fmt.Errorf("%s %s: %w", op, target, err)
}

// translateElement maps errors from a locator operation. A locator times out
// when nothing matches, so a timeout also wraps ErrElementNotFound.
func translateElement(op, selector string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "strict mode violation") {
		return fmt.Errorf("%s %s: %w: %w", op, selector, ErrStrictMode, err)
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%s %s: %w: %w: %w", op, selector, ErrElementNotFound, ErrTimeout, err)
	}
	return fmt.Errorf("%s %s: %w", op, selector, err)
}

func (p *Playwright) Goto(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return translate("goto", url, err)
	}
	return nil
}

func (p *Playwright) Reload() error {
	if _, err := p.page.Reload(); err != nil {
		return translate("reload", p.page.URL(), err)
	}
	return nil
}

func (p *Playwright) WaitForNetworkIdle() error {
	return translate("wait for network idle", p.page.URL(), p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateNetworkidle,
	}))
}

func (p *Playwright) URL() string {
	return p.page.URL()
}

func (p *Playwright) Title() (string, error) {
	return p.page.Title()
}

func (p *Playwright) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return translate("screenshot", path, err)
}

func (p *Playwright) Press(key string) error {
	return translate("press", key, p.page.Keyboard().Press(key))
}

func (p *Playwright) Close() error {
	return p.page.Close()
}

func (p *Playwright) Click(selector string) error {
	return translateElement("click", selector, p.page.Locator(selector).Click())
}

func (p *Playwright) Fill(selector, value string) error {
	return translateElement("fill", selector, p.page.Locator(selector).Fill(value))
}

func (p *Playwright) SelectOption(selector, value string) error {
	_, err := p.page.Locator(selector).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	return translateElement("select option in", selector, err)
}

func (p *Playwright) Check(selector string) error {
	return translateElement("check", selector, p.page.Locator(selector).Check())
}

func (p *Playwright) ScrollIntoView(selector string) error {
	return translateElement("scroll to", selector, p.page.Locator(selector).ScrollIntoViewIfNeeded())
}

func (p *Playwright) WaitFor(selector string, state State, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.timeout
	}
	var s *playwright.WaitForSelectorState
	switch state {
	case StateHidden:
		s = playwright.WaitForSelectorStateHidden
	case StateAttached:
		s = playwright.WaitForSelectorStateAttached
	case StateDetached:
		s = playwright.WaitForSelectorStateDetached
	default:
		s = playwright.WaitForSelectorStateVisible
	}
	err := p.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   s,
		Timeout: playwright.Float(ms(timeout)),
	})
	if state == StateHidden || state == StateDetached {
		return translate("wait for "+string(state), selector, err)
	}
	return translateElement("wait for", selector, err)
}

func (p *Playwright) IsVisible(selector string) (bool, error) {
	visible, err := p.page.Locator(selector).IsVisible()
	return visible, translateElement("is visible", selector, err)
}

func (p *Playwright) IsChecked(selector string) (bool, error) {
	checked, err := p.page.Locator(selector).IsChecked(playwright.LocatorIsCheckedOptions{
		Timeout: playwright.Float(ms(p.timeout)),
	})
	return checked, translateElement("is checked", selector, err)
}

func (p *Playwright) TextContent(selector string) (string, error) {
	text, err := p.page.Locator(selector).TextContent(playwright.LocatorTextContentOptions{
		Timeout: playwright.Float(ms(p.timeout)),
	})
	return text, translateElement("text of", selector, err)
}

func (p *Playwright) AllTextContents(selector string) ([]string, error) {
	texts, err := p.page.Locator(selector).AllTextContents()
	return texts, translateElement("texts of", selector, err)
}

func (p *Playwright) Attribute(selector, name string) (string, error) {
	value, err := p.page.Locator(selector).GetAttribute(name, playwright.LocatorGetAttributeOptions{
		Timeout: playwright.Float(ms(p.timeout)),
	})
	return value, translateElement("attribute "+name+" of", selector, err)
}

func (p *Playwright) InputValue(selector string) (string, error) {
	value, err := p.page.Locator(selector).InputValue(playwright.LocatorInputValueOptions{
		Timeout: playwright.Float(ms(p.timeout)),
	})
	return value, translateElement("value of", selector, err)
}

func (p *Playwright) Count(selector string) (int, error) {
	n, err := p.page.Locator(selector).Count()
	return n, translateElement("count", selector, err)
}

func (p *Playwright) TextVisible(text string) (bool, error) {
	visible, err := p.page.GetByText(text).First().IsVisible()
	return visible, translateElement("text visible", text, err)
}

var _ Session = (*Playwright)(nil)

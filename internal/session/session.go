// Package session defines the browser session boundary page objects are
// built against, plus a Playwright-backed implementation.
//
// Selectors are plain strings in Playwright selector syntax. A selector may
// match several elements; use Nth to target one of them.
package session

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned (wrapped) by Session implementations. An element
// operation that finds nothing before its timeout wraps both
// ErrElementNotFound and ErrTimeout.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrTimeout         = errors.New("timed out")
	ErrStrictMode      = errors.New("selector resolved to more than one element")
)

// State is the element state a wait blocks for.
type State string

// Element states accepted by WaitFor.
const (
	StateVisible  State = "visible"
	StateHidden   State = "hidden"
	StateAttached State = "attached"
	StateDetached State = "detached"
)

// Session is a live browser tab. Implementations are not safe for concurrent
// use; a test drives its session from one goroutine.
type Session interface {
	Goto(url string) error
	Reload() error
	WaitForNetworkIdle() error
	URL() string
	Title() (string, error)
	Screenshot(path string) error
	Press(key string) error
	Close() error

	Click(selector string) error
	Fill(selector, value string) error
	SelectOption(selector, value string) error
	Check(selector string) error
	ScrollIntoView(selector string) error
	WaitFor(selector string, state State, timeout time.Duration) error

	IsVisible(selector string) (bool, error)
	IsChecked(selector string) (bool, error)
	TextContent(selector string) (string, error)
	AllTextContents(selector string) ([]string, error)
	Attribute(selector, name string) (string, error)
	InputValue(selector string) (string, error)
	Count(selector string) (int, error)
	// TextVisible reports whether an element containing text is visible.
	TextVisible(text string) (bool, error)
}

// Nth narrows selector to its index-th match (zero based).
func Nth(selector string, index int) string {
	return fmt.Sprintf("%s >> nth=%d", selector, index)
}

// First narrows selector to its first match.
func First(selector string) string {
	return Nth(selector, 0)
}

// Within scopes child to elements inside parent. Parent may itself carry an
// nth= narrowing.
func Within(parent, child string) string {
	return parent + " >> " + child
}

// HasText narrows selector to elements containing text.
func HasText(selector, text string) string {
	return fmt.Sprintf("%s:has-text(%q)", selector, text)
}

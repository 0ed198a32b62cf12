// Package sessiontest provides an in-memory session.Session for exercising
// page objects without a browser.
package sessiontest

import (
	"fmt"
	"strings"
	"time"

	"github.com/themizzi/storefront-e2e/internal/session"
)

// Element is the fake's view of one DOM element.
type Element struct {
	Text    string
	Value   string
	Attrs   map[string]string
	Hidden  bool
	Checked bool
	// Options lists the values a select accepts. Empty means any value.
	Options []string
	// Matches is how many DOM nodes the selector resolves to. Zero means one.
	Matches int
	// OnClick runs after a successful click.
	OnClick func(f *Fake)
	// Err, when set, is returned by every action on this element.
	Err error
}

func (e *Element) count() int {
	if e.Matches <= 0 {
		return 1
	}
	return e.Matches
}

// Action is one recorded interaction.
type Action struct {
	Kind     string
	Selector string
	Value    string
}

func (a Action) String() string {
	if a.Value == "" {
		return a.Kind + " " + a.Selector
	}
	return fmt.Sprintf("%s %s=%q", a.Kind, a.Selector, a.Value)
}

// Fake is a scripted session. Elements are keyed by the exact selector
// string the page object passes in.
type Fake struct {
	Elements map[string]*Element
	// Lists backs AllTextContents and Count for multi-match selectors.
	Lists   map[string][]string
	Actions []Action
	// OnGoto runs after navigation and may swap the element set.
	OnGoto func(f *Fake, url string)
	// GotoErr fails every navigation.
	GotoErr error
	// PageText is searched by TextVisible.
	PageText string

	CurrentURL  string
	PageTitle   string
	Screenshots []string
	Closed      bool
}

// New returns an empty fake at about:blank.
func New() *Fake {
	return &Fake{
		Elements:   map[string]*Element{},
		Lists:      map[string][]string{},
		CurrentURL: "about:blank",
	}
}

// Set registers el under selector and returns the fake for chaining.
func (f *Fake) Set(selector string, el *Element) *Fake {
	f.Elements[selector] = el
	return f
}

// SetText registers a visible element with text.
func (f *Fake) SetText(selector, text string) *Fake {
	return f.Set(selector, &Element{Text: text})
}

// SetList registers a multi-match selector.
func (f *Fake) SetList(selector string, texts ...string) *Fake {
	f.Lists[selector] = texts
	return f
}

// Remove drops selector from the page.
func (f *Fake) Remove(selector string) {
	delete(f.Elements, selector)
	delete(f.Lists, selector)
}

// Kinds returns the recorded action kinds with their selectors, in order.
func (f *Fake) Kinds() []string {
	out := make([]string, len(f.Actions))
	for i, a := range f.Actions {
		out[i] = a.Kind + " " + a.Selector
	}
	return out
}

// Filled returns the last value filled into selector.
func (f *Fake) Filled(selector string) (string, bool) {
	for i := len(f.Actions) - 1; i >= 0; i-- {
		a := f.Actions[i]
		if a.Kind == "fill" && a.Selector == selector {
			return a.Value, true
		}
	}
	return "", false
}

// Clicked reports whether selector was clicked.
func (f *Fake) Clicked(selector string) bool {
	for _, a := range f.Actions {
		if a.Kind == "click" && a.Selector == selector {
			return true
		}
	}
	return false
}

func (f *Fake) record(kind, selector, value string) {
	f.Actions = append(f.Actions, Action{Kind: kind, Selector: selector, Value: value})
}

// target resolves selector for an action, mimicking Playwright strictness.
func (f *Fake) target(op, selector string) (*Element, error) {
	el, ok := f.Elements[selector]
	if !ok {
		return nil, fmt.Errorf("%s %s: %w: %w", op, selector, session.ErrElementNotFound, session.ErrTimeout)
	}
	if el.count() > 1 {
		return nil, fmt.Errorf("%s %s: %w", op, selector, session.ErrStrictMode)
	}
	if el.Err != nil {
		return nil, fmt.Errorf("%s %s: %w", op, selector, el.Err)
	}
	return el, nil
}

func (f *Fake) Goto(url string) error {
	f.record("goto", url, "")
	if f.GotoErr != nil {
		return fmt.Errorf("goto %s: %w", url, f.GotoErr)
	}
	f.CurrentURL = url
	if f.OnGoto != nil {
		f.OnGoto(f, url)
	}
	return nil
}

func (f *Fake) Reload() error {
	f.record("reload", f.CurrentURL, "")
	return nil
}

func (f *Fake) WaitForNetworkIdle() error {
	f.record("idle", "", "")
	return nil
}

func (f *Fake) URL() string {
	return f.CurrentURL
}

func (f *Fake) Title() (string, error) {
	return f.PageTitle, nil
}

func (f *Fake) Screenshot(path string) error {
	f.Screenshots = append(f.Screenshots, path)
	return nil
}

func (f *Fake) Press(key string) error {
	f.record("press", key, "")
	return nil
}

func (f *Fake) Close() error {
	f.Closed = true
	return nil
}

func (f *Fake) Click(selector string) error {
	el, err := f.target("click", selector)
	if err != nil {
		return err
	}
	if el.Hidden {
		return fmt.Errorf("click %s: %w", selector, session.ErrTimeout)
	}
	f.record("click", selector, "")
	if el.OnClick != nil {
		el.OnClick(f)
	}
	return nil
}

func (f *Fake) Fill(selector, value string) error {
	el, err := f.target("fill", selector)
	if err != nil {
		return err
	}
	el.Value = value
	f.record("fill", selector, value)
	return nil
}

func (f *Fake) SelectOption(selector, value string) error {
	el, err := f.target("select option in", selector)
	if err != nil {
		return err
	}
	if len(el.Options) > 0 {
		found := false
		for _, o := range el.Options {
			if o == value {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("select option in %s: no option %q: %w", selector, value, session.ErrElementNotFound)
		}
	}
	el.Value = value
	f.record("select", selector, value)
	return nil
}

func (f *Fake) Check(selector string) error {
	el, err := f.target("check", selector)
	if err != nil {
		return err
	}
	el.Checked = true
	f.record("check", selector, "")
	return nil
}

func (f *Fake) ScrollIntoView(selector string) error {
	if _, err := f.target("scroll to", selector); err != nil {
		return err
	}
	f.record("scroll", selector, "")
	return nil
}

func (f *Fake) WaitFor(selector string, state session.State, timeout time.Duration) error {
	el, ok := f.Elements[selector]
	visible := ok && !el.Hidden
	if _, listed := f.Lists[selector]; listed {
		visible = len(f.Lists[selector]) > 0
	}
	switch state {
	case session.StateHidden, session.StateDetached:
		if !visible {
			return nil
		}
	default:
		if visible {
			return nil
		}
	}
	if !ok && state != session.StateHidden && state != session.StateDetached {
		return fmt.Errorf("wait for %s to be %s after %s: %w: %w", selector, state, timeout, session.ErrElementNotFound, session.ErrTimeout)
	}
	return fmt.Errorf("wait for %s to be %s after %s: %w", selector, state, timeout, session.ErrTimeout)
}

func (f *Fake) IsVisible(selector string) (bool, error) {
	if texts, ok := f.Lists[selector]; ok {
		return len(texts) > 0, nil
	}
	el, ok := f.Elements[selector]
	return ok && !el.Hidden, nil
}

func (f *Fake) IsChecked(selector string) (bool, error) {
	el, err := f.target("is checked", selector)
	if err != nil {
		return false, err
	}
	return el.Checked, nil
}

func (f *Fake) TextContent(selector string) (string, error) {
	el, err := f.target("text of", selector)
	if err != nil {
		return "", err
	}
	return el.Text, nil
}

func (f *Fake) AllTextContents(selector string) ([]string, error) {
	if texts, ok := f.Lists[selector]; ok {
		return append([]string(nil), texts...), nil
	}
	if el, ok := f.Elements[selector]; ok {
		return []string{el.Text}, nil
	}
	return []string{}, nil
}

func (f *Fake) Attribute(selector, name string) (string, error) {
	el, err := f.target("attribute "+name+" of", selector)
	if err != nil {
		return "", err
	}
	v, ok := el.Attrs[name]
	if !ok {
		return "", fmt.Errorf("attribute %s of %s: %w", name, selector, session.ErrElementNotFound)
	}
	return v, nil
}

func (f *Fake) InputValue(selector string) (string, error) {
	el, err := f.target("value of", selector)
	if err != nil {
		return "", err
	}
	return el.Value, nil
}

func (f *Fake) Count(selector string) (int, error) {
	if texts, ok := f.Lists[selector]; ok {
		return len(texts), nil
	}
	if el, ok := f.Elements[selector]; ok {
		return el.count(), nil
	}
	return 0, nil
}

func (f *Fake) TextVisible(text string) (bool, error) {
	return text != "" && strings.Contains(f.PageText, text), nil
}

var _ session.Session = (*Fake)(nil)

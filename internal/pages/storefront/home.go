package storefront

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/pages"
)

var (
	searchInput  = tid("search")
	searchButton = tid("search-button")
	categories   = tid("categories")
)

// HomePage covers the landing page and the shared header.
type HomePage struct {
	pages.Base
}

func NewHomePage(base pages.Base) *HomePage {
	return &HomePage{Base: base}
}

func (p *HomePage) NavigateToHome() error {
	return p.Goto("/")
}

func (p *HomePage) SearchProduct(name string) error {
	if err := p.Fill(searchInput, name); err != nil {
		return fmt.Errorf("search %q: %w", name, err)
	}
	return p.ClickAndWait(searchButton)
}

func (p *HomePage) OpenCart() error {
	return p.ClickAndWait(cartIcon)
}

func (p *HomePage) OpenUserMenu() error {
	return p.Click(userMenu)
}

func (p *HomePage) Logout() error {
	if err := p.OpenUserMenu(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := p.ClickAndWait(logoutButton); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (p *HomePage) IsCartIconVisible() bool {
	return p.IsVisible(cartIcon)
}

func (p *HomePage) IsCategoriesVisible() bool {
	return p.IsVisible(categories)
}

// CartCount reads the header badge, "0" when it is absent.
func (p *HomePage) CartCount() string {
	return p.TextOr(cartBadge, "0")
}

func (p *HomePage) IsLoggedIn() bool {
	return isLoggedIn(p.Base)
}

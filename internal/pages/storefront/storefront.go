// Package storefront contains page objects for a generic web shop that tags
// its interactive elements with data-testid attributes.
package storefront

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/pages"
)

func tid(id string) string {
	return fmt.Sprintf(`[data-testid=%q]`, id)
}

// Header elements rendered on every screen once the shop layout loads.
var (
	logoutButton = tid("logout-button")
	cartIcon     = tid("cart-icon")
	cartBadge    = tid("cart-count")
	userMenu     = tid("user-menu")
)

// isLoggedIn checks for the post-login marker.
func isLoggedIn(b pages.Base) bool {
	return b.IsVisible(logoutButton)
}

// Pages bundles one instance of every storefront page object.
type Pages struct {
	Login    *LoginPage
	Home     *HomePage
	Products *ProductsPage
	Cart     *CartPage
	Checkout *CheckoutPage
}

// New builds every page object on top of base.
func New(base pages.Base) *Pages {
	return &Pages{
		Login:    NewLoginPage(base),
		Home:     NewHomePage(base),
		Products: NewProductsPage(base),
		Cart:     NewCartPage(base),
		Checkout: NewCheckoutPage(base),
	}
}

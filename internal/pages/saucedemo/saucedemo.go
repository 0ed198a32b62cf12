// Package saucedemo contains page objects for the Sauce Labs demo store,
// which tags elements with data-test attributes and fixed CSS classes.
package saucedemo

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/pages"
)

func dt(id string) string {
	return fmt.Sprintf(`[data-test=%q]`, id)
}

const (
	pageTitle = ".title"

	cartLink  = ".shopping_cart_link"
	cartBadge = ".shopping_cart_badge"
)

// Pages bundles one instance of every demo store page object.
type Pages struct {
	Login     *LoginPage
	Inventory *InventoryPage
	Cart      *CartPage
	Checkout  *CheckoutPage
}

// New builds every page object on top of base.
func New(base pages.Base) *Pages {
	return &Pages{
		Login:     &LoginPage{Base: base},
		Inventory: &InventoryPage{Base: base},
		Cart:      &CartPage{Base: base},
		Checkout:  &CheckoutPage{Base: base},
	}
}

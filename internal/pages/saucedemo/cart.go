package saucedemo

import "github.com/themizzi/storefront-e2e/internal/pages"

const cartItem = ".cart_item"

var (
	checkoutButton   = dt("checkout")
	continueShopping = dt("continue-shopping")
)

// CartPage lists the items added from the inventory.
type CartPage struct {
	pages.Base
}

func (p *CartPage) NavigateToCart() error {
	return p.Goto("/cart.html")
}

// Title reads the page heading, e.g. "Your Cart".
func (p *CartPage) Title() string {
	return p.Text(pageTitle)
}

func (p *CartPage) ItemCount() int {
	return p.Count(cartItem)
}

func (p *CartPage) ItemNames() []string {
	return p.AllTexts(itemNames)
}

func (p *CartPage) Checkout() error {
	return p.ClickAndWait(checkoutButton)
}

func (p *CartPage) ContinueShopping() error {
	return p.ClickAndWait(continueShopping)
}

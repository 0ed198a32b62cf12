package saucedemo

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/pages"
)

const (
	inventoryList = ".inventory_list"
	itemNames     = ".inventory_item_name"
	itemPrices    = ".inventory_item_price"
	menuButton    = "#react-burger-menu-btn"
	logoutLink    = "#logout_sidebar_link"
)

var sortContainer = dt("product-sort-container")

// SortOption is a value of the inventory sort dropdown.
type SortOption string

const (
	SortNameAZ      SortOption = "az"
	SortNameZA      SortOption = "za"
	SortPriceLowHi  SortOption = "lohi"
	SortPriceHighLo SortOption = "hilo"
)

// InventoryPage is the product listing shown after login.
type InventoryPage struct {
	pages.Base
}

func addButton(p dataset.Product) string {
	return dt("add-to-cart-" + p.Slug())
}

func removeButton(p dataset.Product) string {
	return dt("remove-" + p.Slug())
}

func (p *InventoryPage) NavigateToInventory() error {
	return p.Goto("/inventory.html")
}

func (p *InventoryPage) AddToCart(product dataset.Product) error {
	if err := p.Click(addButton(product)); err != nil {
		return fmt.Errorf("add %s to cart: %w", product.Name, err)
	}
	return nil
}

func (p *InventoryPage) RemoveFromCart(product dataset.Product) error {
	if err := p.Click(removeButton(product)); err != nil {
		return fmt.Errorf("remove %s from cart: %w", product.Name, err)
	}
	return nil
}

// CartCount reads the cart badge. The store hides the badge when the cart
// is empty, which reads as "0".
func (p *InventoryPage) CartCount() string {
	if !p.IsVisible(cartBadge) {
		return "0"
	}
	return p.TextOr(cartBadge, "0")
}

func (p *InventoryPage) OpenCart() error {
	return p.ClickAndWait(cartLink)
}

func (p *InventoryPage) SortBy(option SortOption) error {
	if err := p.SelectOption(sortContainer, string(option)); err != nil {
		return fmt.Errorf("sort by %s: %w", option, err)
	}
	return nil
}

func (p *InventoryPage) ProductNames() []string {
	return p.AllTexts(itemNames)
}

func (p *InventoryPage) ProductPrices() []string {
	return p.AllTexts(itemPrices)
}

func (p *InventoryPage) Logout() error {
	if err := p.Click(menuButton); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := p.ClickAndWait(logoutLink); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func (p *InventoryPage) IsLoggedIn() bool {
	return p.IsVisible(inventoryList)
}

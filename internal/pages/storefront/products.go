package storefront

import (
	"fmt"
	"net/url"

	"github.com/themizzi/storefront-e2e/internal/pages"
	"github.com/themizzi/storefront-e2e/internal/session"
)

var (
	productItems     = tid("product-item")
	productName      = tid("product-name")
	productPrice     = tid("product-price")
	addToCartButtons = tid("add-to-cart")

	priceMin       = tid("price-min")
	priceMax       = tid("price-max")
	categoryFilter = tid("category-filter")
	ratingFilter   = tid("rating-filter")
	applyFilters   = tid("apply-filters")
	clearFilters   = tid("clear-filters")
	sortSelect     = tid("sort")

	nextPage       = tid("next-page")
	prevPage       = tid("prev-page")
	pageInfo       = tid("page-info")
	noResults      = tid("no-results")
	loadingSpinner = tid("loading")
)

// SortOption is a value of the product sort dropdown.
type SortOption string

const (
	SortByPrice  SortOption = "price"
	SortByRating SortOption = "rating"
	SortByNewest SortOption = "newest"
)

// ProductsPage drives the catalog listing.
type ProductsPage struct {
	pages.Base
}

func NewProductsPage(base pages.Base) *ProductsPage {
	return &ProductsPage{Base: base}
}

// NavigateToProducts opens the listing, optionally pre-filtered by category.
func (p *ProductsPage) NavigateToProducts(category string) error {
	if category == "" {
		return p.Goto("/products")
	}
	return p.Goto("/products?category=" + url.QueryEscape(category))
}

func (p *ProductsPage) ProductCount() int {
	return p.Count(productItems)
}

func (p *ProductsPage) AllProductNames() []string {
	return p.AllTexts(productName)
}

func (p *ProductsPage) AllProductPrices() []string {
	return p.AllTexts(productPrice)
}

func productCard(name string) string {
	return session.First(session.HasText(productItems, name))
}

// ClickProductByName opens the detail page of the first card showing name.
func (p *ProductsPage) ClickProductByName(name string) error {
	return p.ClickAndWait(session.Within(productCard(name), productName))
}

func (p *ProductsPage) AddFirstProductToCart() error {
	return p.ClickAndWait(session.First(addToCartButtons))
}

func (p *ProductsPage) AddProductToCart(name string) error {
	return p.ClickAndWait(session.Within(productCard(name), addToCartButtons))
}

func (p *ProductsPage) SetMinPrice(v string) error {
	return p.Fill(priceMin, v)
}

func (p *ProductsPage) SetMaxPrice(v string) error {
	return p.Fill(priceMax, v)
}

func (p *ProductsPage) FilterByPrice(min, max string) error {
	if err := p.SetMinPrice(min); err != nil {
		return fmt.Errorf("filter by price: %w", err)
	}
	if err := p.SetMaxPrice(max); err != nil {
		return fmt.Errorf("filter by price: %w", err)
	}
	return p.ClickAndWait(applyFilters)
}

func (p *ProductsPage) FilterByCategory(category string) error {
	if err := p.SelectOption(categoryFilter, category); err != nil {
		return fmt.Errorf("filter by category: %w", err)
	}
	return p.ClickAndWait(applyFilters)
}

// FilterByRating keeps products rated at least rating stars.
func (p *ProductsPage) FilterByRating(rating string) error {
	if err := p.SelectOption(ratingFilter, rating); err != nil {
		return fmt.Errorf("filter by rating: %w", err)
	}
	return p.ClickAndWait(applyFilters)
}

func (p *ProductsPage) ClearAllFilters() error {
	return p.ClickAndWait(clearFilters)
}

func (p *ProductsPage) SortBy(option SortOption) error {
	if err := p.SelectOption(sortSelect, string(option)); err != nil {
		return fmt.Errorf("sort by %s: %w", option, err)
	}
	return p.WaitForNetworkIdle()
}

func (p *ProductsPage) HasResults() bool {
	return p.ProductCount() > 0
}

func (p *ProductsPage) IsNoResultsMessageVisible() bool {
	return p.IsVisible(noResults)
}

func (p *ProductsPage) GoToNextPage() error {
	return p.ClickAndWait(nextPage)
}

func (p *ProductsPage) GoToPreviousPage() error {
	return p.ClickAndWait(prevPage)
}

func (p *ProductsPage) IsNextPageAvailable() bool {
	return p.IsVisible(nextPage)
}

// PageInfo reads the "Page x of y" indicator.
func (p *ProductsPage) PageInfo() string {
	return p.Text(pageInfo)
}

// WaitForProductsToLoad waits out the spinner, then for the first card.
func (p *ProductsPage) WaitForProductsToLoad() error {
	_ = p.WaitForElementHidden(loadingSpinner, 0)
	return p.WaitForElement(session.First(productItems), 0)
}

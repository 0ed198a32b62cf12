//go:build e2e

package storefront

import (
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	shop "github.com/themizzi/storefront-e2e/internal/pages/storefront"
)

func onProductsPage(t *testing.T) *shop.Pages {
	t.Helper()
	p := harness.Storefront(t)
	require.NoError(t, p.Products.NavigateToProducts(""))
	require.NoError(t, p.Products.WaitForProductsToLoad())
	return p
}

func parsePrices(t *testing.T, texts []string) []decimal.Decimal {
	t.Helper()
	prices := make([]decimal.Decimal, 0, len(texts))
	for _, text := range texts {
		d, err := dataset.ParsePrice(text)
		require.NoError(t, err, "price %q", text)
		prices = append(prices, d)
	}
	return prices
}

// TC-101
func TestProducts_PageLoads(t *testing.T) {
	p := onProductsPage(t)

	assert.Greater(t, p.Products.ProductCount(), 0)
}

// TC-102
//
//	Scenario: Filter by price range
//	  When I filter prices between 100 and 500
//	  Then every listed price is inside the range
func TestProducts_FilterByPriceRange(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.FilterByPrice("100", "500"))

	low, high := decimal.NewFromInt(100), decimal.NewFromInt(500)
	for _, price := range parsePrices(t, p.Products.AllProductPrices()) {
		assert.True(t, price.GreaterThanOrEqual(low) && price.LessThanOrEqual(high), "price %s outside 100-500", price)
	}
}

// TC-103
func TestProducts_FilterByCategory(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.FilterByCategory("Electronics"))

	assert.True(t, p.Products.HasResults())
}

// TC-104
func TestProducts_SortByPriceAscending(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.SortBy(shop.SortByPrice))

	prices := parsePrices(t, p.Products.AllProductPrices())
	require.NotEmpty(t, prices)
	assert.True(t, sort.SliceIsSorted(prices, func(i, j int) bool { return prices[i].LessThan(prices[j]) }),
		"prices not ascending: %v", prices)
}

// TC-105
//
//	Scenario: Search by product name
//	  Given I am on the home page
//	  When I search for "Laptop"
//	  Then at least one result name contains "laptop"
func TestProducts_SearchByName(t *testing.T) {
	p := harness.Storefront(t)
	require.NoError(t, p.Home.NavigateToHome())

	require.NoError(t, p.Home.SearchProduct("Laptop"))

	names := p.Products.AllProductNames()
	require.NotEmpty(t, names)
	found := false
	for _, name := range names {
		if strings.Contains(strings.ToLower(name), "laptop") {
			found = true
		}
	}
	assert.True(t, found, "no result mentions laptop: %v", names)
}

// TC-106
func TestProducts_NoResultsMessage(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.FilterByPrice("10000", "20000"))

	assert.True(t, p.Products.IsNoResultsMessageVisible())
	assert.False(t, p.Products.HasResults())
}

// TC-107
func TestProducts_ClearFiltersRestoresListing(t *testing.T) {
	p := onProductsPage(t)
	initial := p.Products.ProductCount()

	require.NoError(t, p.Products.FilterByPrice("100", "300"))
	require.NoError(t, p.Products.ClearAllFilters())

	assert.Equal(t, initial, p.Products.ProductCount())
}

// TC-108
//
//	Scenario: Pagination
//	  Given the first page of products
//	  When I go to the next page
//	  Then the page indicator changes
func TestProducts_Pagination(t *testing.T) {
	p := onProductsPage(t)
	initial := p.Products.PageInfo()
	require.True(t, p.Products.IsNextPageAvailable(), "catalog should span more than one page")

	require.NoError(t, p.Products.GoToNextPage())

	assert.NotEqual(t, initial, p.Products.PageInfo())

	require.NoError(t, p.Products.GoToPreviousPage())
	assert.Equal(t, initial, p.Products.PageInfo())
}

// TC-109
func TestProducts_ViewDetails(t *testing.T) {
	p := onProductsPage(t)
	names := p.Products.AllProductNames()
	require.NotEmpty(t, names)

	require.NoError(t, p.Products.ClickProductByName(names[0]))

	assert.Contains(t, p.Products.CurrentURL(), "product")
	assert.True(t, p.Products.PageContainsText(names[0]))
}

// TC-110
func TestProducts_AddToCartFromList(t *testing.T) {
	p := onProductsPage(t)
	initial := p.Cart.CartItemCount()

	require.NoError(t, p.Products.AddFirstProductToCart())
	require.NoError(t, p.Cart.NavigateToCart())

	assert.Equal(t, initial+1, p.Cart.CartItemCount())
}

// TC-111
func TestProducts_FilterByRating(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.FilterByRating("4"))

	assert.True(t, p.Products.HasResults())
}

// TC-112
func TestProducts_CombinedFilters(t *testing.T) {
	p := onProductsPage(t)

	require.NoError(t, p.Products.FilterByCategory("Electronics"))
	require.NoError(t, p.Products.FilterByPrice("100", "500"))

	assert.GreaterOrEqual(t, p.Products.ProductCount(), 0)
	low, high := decimal.NewFromInt(100), decimal.NewFromInt(500)
	for _, price := range parsePrices(t, p.Products.AllProductPrices()) {
		assert.True(t, price.GreaterThanOrEqual(low) && price.LessThanOrEqual(high), "price %s outside 100-500", price)
	}
}

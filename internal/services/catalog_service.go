package services

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/themizzi/storefront-e2e/internal/dataset"
)

// ProductPageSize is how many products one listing page shows.
const ProductPageSize = 6

// Sort orders understood by ProductQuery.
const (
	SortFeatured  = ""
	SortPriceAsc  = "price"
	SortPriceDesc = "price-desc"
	SortRating    = "rating"
	SortNewest    = "newest"
)

// ProductQuery is a listing request. String fields come straight from the
// query string; values that do not parse are ignored.
type ProductQuery struct {
	Query    string
	Category string
	Min      string
	Max      string
	Rating   string
	Sort     string
	Page     int
}

// ProductPage is one page of a filtered, sorted listing.
type ProductPage struct {
	Items      []dataset.CatalogItem
	Total      int
	Page       int
	TotalPages int
}

// CatalogService answers listing queries against a catalog.
type CatalogService struct {
	catalog *dataset.Catalog
}

func NewCatalogService(catalog *dataset.Catalog) *CatalogService {
	return &CatalogService{catalog: catalog}
}

func (s *CatalogService) Categories() []string {
	return s.catalog.Categories()
}

func (s *CatalogService) Find(id string) (dataset.CatalogItem, bool) {
	return s.catalog.Find(id)
}

// Featured returns the first n catalog items.
func (s *CatalogService) Featured(n int) []dataset.CatalogItem {
	if n > len(s.catalog.Items) {
		n = len(s.catalog.Items)
	}
	return append([]dataset.CatalogItem(nil), s.catalog.Items[:n]...)
}

// Search filters, sorts and paginates. The page number is clamped to the
// available range.
func (s *CatalogService) Search(q ProductQuery) ProductPage {
	matches := make([]dataset.CatalogItem, 0, len(s.catalog.Items))
	for _, item := range s.catalog.Items {
		if q.matches(item) {
			matches = append(matches, item)
		}
	}
	sortItems(matches, q.Sort)

	result := ProductPage{Total: len(matches)}
	result.TotalPages = (len(matches) + ProductPageSize - 1) / ProductPageSize
	if result.TotalPages == 0 {
		result.TotalPages = 1
	}
	result.Page = q.Page
	if result.Page < 1 {
		result.Page = 1
	}
	if result.Page > result.TotalPages {
		result.Page = result.TotalPages
	}

	start := (result.Page - 1) * ProductPageSize
	end := start + ProductPageSize
	if end > len(matches) {
		end = len(matches)
	}
	result.Items = matches[start:end]
	return result
}

func (q ProductQuery) matches(item dataset.CatalogItem) bool {
	if term := strings.TrimSpace(q.Query); term != "" &&
		!strings.Contains(strings.ToLower(item.Name), strings.ToLower(term)) {
		return false
	}
	if q.Category != "" && !strings.EqualFold(item.Category, q.Category) {
		return false
	}
	if min, err := decimal.NewFromString(strings.TrimSpace(q.Min)); err == nil && item.Price.LessThan(min) {
		return false
	}
	if max, err := decimal.NewFromString(strings.TrimSpace(q.Max)); err == nil && item.Price.GreaterThan(max) {
		return false
	}
	if r, err := strconv.ParseFloat(q.Rating, 64); err == nil && item.Rating < r {
		return false
	}
	return true
}

func sortItems(items []dataset.CatalogItem, order string) {
	switch order {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.LessThan(items[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Price.GreaterThan(items[j].Price) })
	case SortRating:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Rating > items[j].Rating })
	case SortNewest:
		sort.SliceStable(items, func(i, j int) bool { return items[i].Added.After(items[j].Added) })
	}
}

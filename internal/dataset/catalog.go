package dataset

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

var ErrInvalidCatalog = errors.New("invalid catalog")

// CatalogItem is one product the demo storefront sells.
type CatalogItem struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Category    string
	Rating      float64
	Added       time.Time
	Description string
}

// Catalog is an ordered product list.
type Catalog struct {
	Items []CatalogItem
}

type catalogFile struct {
	Products []struct {
		ID          string    `yaml:"id"`
		Name        string    `yaml:"name"`
		Price       string    `yaml:"price"`
		Category    string    `yaml:"category"`
		Rating      float64   `yaml:"rating"`
		Added       time.Time `yaml:"added"`
		Description string    `yaml:"description"`
	} `yaml:"products"`
}

// LoadCatalog parses a YAML catalog. IDs must be unique and prices must be
// non-negative decimals.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var file catalogFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	seen := make(map[string]bool, len(file.Products))
	catalog := &Catalog{Items: make([]CatalogItem, 0, len(file.Products))}
	for i, p := range file.Products {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("%w: product %d needs an id and a name", ErrInvalidCatalog, i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidCatalog, p.ID)
		}
		seen[p.ID] = true

		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: price of %q: %v", ErrInvalidCatalog, p.ID, err)
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: negative price for %q", ErrInvalidCatalog, p.ID)
		}

		catalog.Items = append(catalog.Items, CatalogItem{
			ID:          p.ID,
			Name:        p.Name,
			Price:       price,
			Category:    p.Category,
			Rating:      p.Rating,
			Added:       p.Added,
			Description: p.Description,
		})
	}
	return catalog, nil
}

// DefaultCatalog returns the embedded catalog. It panics if the embedded
// file is malformed.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(catalogYAML))
	if err != nil {
		panic(err)
	}
	return c
}

// Find returns the item with id.
func (c *Catalog) Find(id string) (CatalogItem, bool) {
	for _, item := range c.Items {
		if item.ID == id {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// FindByName matches names case-insensitively.
func (c *Catalog) FindByName(name string) (CatalogItem, bool) {
	for _, item := range c.Items {
		if strings.EqualFold(item.Name, name) {
			return item, true
		}
	}
	return CatalogItem{}, false
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	var out []string
	seen := map[string]bool{}
	for _, item := range c.Items {
		if !seen[item.Category] {
			seen[item.Category] = true
			out = append(out, item.Category)
		}
	}
	return out
}

// FormatPrice renders an amount the way the storefronts print prices.
func FormatPrice(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// ParsePrice reads a printed price such as "$1,299.00" or "Total: $5.00".
func ParsePrice(s string) (decimal.Decimal, error) {
	if i := strings.LastIndex(s, "$"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse price: empty")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", s, err)
	}
	return d, nil
}

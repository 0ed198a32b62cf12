package dataset

import (
	"regexp"
	"strings"
)

// Product is reference data for assertions, not live inventory.
type Product struct {
	Name     string
	Price    string
	Category string
}

var (
	Backpack     = Product{Name: "Sauce Labs Backpack", Price: "$29.99", Category: "Accessories"}
	BikeLight    = Product{Name: "Sauce Labs Bike Light", Price: "$9.99", Category: "Accessories"}
	BoltTShirt   = Product{Name: "Sauce Labs Bolt T-Shirt", Price: "$15.99", Category: "Clothing"}
	FleeceJacket = Product{Name: "Sauce Labs Fleece Jacket", Price: "$49.99", Category: "Clothing"}
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug turns the product name into the id fragment the demo site uses in
// its data-test attributes, e.g. "sauce-labs-bolt-t-shirt".
func (p Product) Slug() string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(p.Name), "-"), "-")
}

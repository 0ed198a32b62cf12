package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Quantity bounds for a single cart line.
const (
	MinQuantity = 1
	MaxQuantity = 99
)

var (
	ErrInvalidQuantity = fmt.Errorf("quantity must be between %d and %d", MinQuantity, MaxQuantity)
	ErrLineNotFound    = errors.New("cart line not found")
)

// CartLine is one product entry in a cart.
type CartLine struct {
	ProductID string
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

// LineTotal is UnitPrice times Quantity.
func (l CartLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a shopper's basket. Each add creates its own line; lines are
// addressed by index.
type Cart struct {
	Lines    []CartLine
	Coupon   string
	GiftCard string
	Shipping ShippingMethod
}

// NewCart returns an empty cart with standard shipping.
func NewCart() *Cart {
	return &Cart{Shipping: ShippingStandard}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Add appends a line with quantity 1.
func (c *Cart) Add(productID, name string, price decimal.Decimal) {
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Name: name, UnitPrice: price, Quantity: MinQuantity})
}

func (c *Cart) line(index int) (*CartLine, error) {
	if index < 0 || index >= len(c.Lines) {
		return nil, fmt.Errorf("%w: index %d", ErrLineNotFound, index)
	}
	return &c.Lines[index], nil
}

// SetQuantity replaces the quantity of line index.
func (c *Cart) SetQuantity(index, quantity int) error {
	line, err := c.line(index)
	if err != nil {
		return err
	}
	if quantity < MinQuantity || quantity > MaxQuantity {
		return ErrInvalidQuantity
	}
	line.Quantity = quantity
	return nil
}

// Adjust adds delta to the quantity of line index, clamped to the allowed
// range.
func (c *Cart) Adjust(index, delta int) error {
	line, err := c.line(index)
	if err != nil {
		return err
	}
	q := line.Quantity + delta
	if q < MinQuantity {
		q = MinQuantity
	}
	if q > MaxQuantity {
		q = MaxQuantity
	}
	line.Quantity = q
	return nil
}

func (c *Cart) Remove(index int) error {
	if _, err := c.line(index); err != nil {
		return err
	}
	c.Lines = append(c.Lines[:index], c.Lines[index+1:]...)
	return nil
}

// ItemCount is the number of lines, which is what the header badge shows.
func (c *Cart) ItemCount() int {
	return len(c.Lines)
}

// Clear empties the cart after an order is placed.
func (c *Cart) Clear() {
	c.Lines = nil
	c.Coupon = ""
	c.GiftCard = ""
	c.Shipping = ShippingStandard
}

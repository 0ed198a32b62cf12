package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ShippingMethod is a delivery option offered in the cart and at checkout.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// ShippingOption describes a method for display.
type ShippingOption struct {
	Method ShippingMethod
	Label  string
	Cost   decimal.Decimal
}

// ShippingOptions lists the methods in display order.
func ShippingOptions() []ShippingOption {
	return []ShippingOption{
		{Method: ShippingStandard, Label: "Standard (5-7 days)", Cost: decimal.NewFromInt(5)},
		{Method: ShippingExpress, Label: "Express (1-2 days)", Cost: decimal.NewFromInt(15)},
	}
}

// ParseShippingMethod falls back to standard for unknown values.
func ParseShippingMethod(s string) ShippingMethod {
	if ShippingMethod(strings.ToLower(s)) == ShippingExpress {
		return ShippingExpress
	}
	return ShippingStandard
}

// Cost of the method.
func (m ShippingMethod) Cost() decimal.Decimal {
	for _, o := range ShippingOptions() {
		if o.Method == m {
			return o.Cost
		}
	}
	return decimal.NewFromInt(5)
}

var (
	// TaxRate applies to the discounted subtotal.
	TaxRate = decimal.RequireFromString("0.08")
	// CouponRate is the discount the percentage coupon grants.
	CouponRate = decimal.RequireFromString("0.10")
	// GiftCardValue is the credit a gift card carries.
	GiftCardValue = decimal.NewFromInt(50)
	// MinimumCharge is what is left on the card however much credit applies.
	MinimumCharge = decimal.RequireFromString("0.50")
)

// Totals is the price breakdown of a cart.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Shipping decimal.Decimal
	Tax      decimal.Decimal
	Gift     decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals prices c. An empty cart costs nothing, shipping included.
// The gift credit never takes the total below MinimumCharge.
func ComputeTotals(c *Cart) Totals {
	var t Totals
	if c.IsEmpty() {
		return t
	}
	for _, l := range c.Lines {
		t.Subtotal = t.Subtotal.Add(l.LineTotal())
	}
	if c.Coupon != "" {
		t.Discount = t.Subtotal.Mul(CouponRate).Round(2)
	}
	t.Shipping = c.Shipping.Cost()
	t.Tax = t.Subtotal.Sub(t.Discount).Mul(TaxRate).Round(2)

	gross := t.Subtotal.Sub(t.Discount).Add(t.Shipping).Add(t.Tax)
	if c.GiftCard != "" {
		t.Gift = decimal.Max(decimal.Zero, decimal.Min(GiftCardValue, gross.Sub(MinimumCharge)))
	}
	t.Total = gross.Sub(t.Gift)
	return t
}

// MinorUnits converts a dollar amount to cents.
func MinorUnits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

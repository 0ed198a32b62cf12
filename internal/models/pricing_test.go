package models

import "testing"

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name     string
		cart     func() *Cart
		subtotal string
		discount string
		shipping string
		tax      string
		gift     string
		total    string
	}{
		{
			name:     "empty cart",
			cart:     NewCart,
			subtotal: "0", discount: "0", shipping: "0", tax: "0", gift: "0", total: "0",
		},
		{
			name:     "single item standard shipping",
			cart:     func() *Cart { return cartWith("29.99") },
			subtotal: "29.99", discount: "0", shipping: "5", tax: "2.4", gift: "0", total: "37.39",
		},
		{
			name: "quantity and express shipping",
			cart: func() *Cart {
				c := cartWith("10.00")
				_ = c.SetQuantity(0, 3)
				c.Shipping = ShippingExpress
				return c
			},
			subtotal: "30", discount: "0", shipping: "15", tax: "2.4", gift: "0", total: "47.4",
		},
		{
			name: "coupon discounts before tax",
			cart: func() *Cart {
				c := cartWith("100.00")
				c.Coupon = "SAVE10"
				return c
			},
			subtotal: "100", discount: "10", shipping: "5", tax: "7.2", gift: "0", total: "102.2",
		},
		{
			name: "gift card leaves the minimum charge",
			cart: func() *Cart {
				c := cartWith("9.99")
				c.GiftCard = "GIFT50"
				return c
			},
			subtotal: "9.99", discount: "0", shipping: "5", tax: "0.8", gift: "15.29", total: "0.5",
		},
		{
			name: "gift card partial",
			cart: func() *Cart {
				c := cartWith("100.00")
				c.GiftCard = "GIFT50"
				return c
			},
			subtotal: "100", discount: "0", shipping: "5", tax: "8", gift: "50", total: "63",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.cart())

			check := func(field string, have, want string) {
				t.Helper()
				if !d(have).Equal(d(want)) {
					t.Errorf("%s = %s, want %s", field, have, want)
				}
			}
			check("Subtotal", got.Subtotal.String(), tt.subtotal)
			check("Discount", got.Discount.String(), tt.discount)
			check("Shipping", got.Shipping.String(), tt.shipping)
			check("Tax", got.Tax.String(), tt.tax)
			check("Gift", got.Gift.String(), tt.gift)
			check("Total", got.Total.String(), tt.total)
		})
	}
}

func TestParseShippingMethod(t *testing.T) {
	if ParseShippingMethod("EXPRESS") != ShippingExpress {
		t.Error("expected express")
	}
	if ParseShippingMethod("drone") != ShippingStandard {
		t.Error("unknown methods should fall back to standard")
	}
}

func TestMinorUnits(t *testing.T) {
	if got := MinorUnits(d("37.39")); got != 3739 {
		t.Errorf("MinorUnits() = %d, want 3739", got)
	}
}

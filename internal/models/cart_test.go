package models

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func cartWith(prices ...string) *Cart {
	c := NewCart()
	for i, p := range prices {
		c.Add("p"+string(rune('a'+i)), "Product", d(p))
	}
	return c
}

func TestCartAddKeepsSeparateLines(t *testing.T) {
	c := NewCart()
	c.Add("backpack", "Backpack", d("29.99"))
	c.Add("backpack", "Backpack", d("29.99"))

	if c.ItemCount() != 2 {
		t.Errorf("ItemCount() = %d, want 2", c.ItemCount())
	}
}

func TestCartQuantity(t *testing.T) {
	tests := []struct {
		name    string
		run     func(c *Cart) error
		want    int
		wantErr error
	}{
		{"set quantity", func(c *Cart) error { return c.SetQuantity(0, 3) }, 3, nil},
		{"set zero", func(c *Cart) error { return c.SetQuantity(0, 0) }, 1, ErrInvalidQuantity},
		{"set above max", func(c *Cart) error { return c.SetQuantity(0, 100) }, 1, ErrInvalidQuantity},
		{"set unknown line", func(c *Cart) error { return c.SetQuantity(4, 2) }, 1, ErrLineNotFound},
		{"increase", func(c *Cart) error { return c.Adjust(0, 1) }, 2, nil},
		{"decrease stays at one", func(c *Cart) error { return c.Adjust(0, -1) }, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := cartWith("10.00")

			err := tt.run(c)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if got := c.Lines[0].Quantity; got != tt.want {
				t.Errorf("Quantity = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCartRemove(t *testing.T) {
	c := cartWith("1.00", "2.00", "3.00")

	if err := c.Remove(1); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if c.ItemCount() != 2 || !c.Lines[1].UnitPrice.Equal(d("3.00")) {
		t.Errorf("unexpected lines after remove: %+v", c.Lines)
	}
	if err := c.Remove(5); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("Remove(5) error = %v, want ErrLineNotFound", err)
	}
}

func TestCartClear(t *testing.T) {
	c := cartWith("1.00")
	c.Coupon = "SAVE10"
	c.Shipping = ShippingExpress

	c.Clear()

	if !c.IsEmpty() || c.Coupon != "" || c.Shipping != ShippingStandard {
		t.Errorf("cart not reset: %+v", c)
	}
}

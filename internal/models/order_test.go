package models

import (
	"errors"
	"regexp"
	"testing"
)

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		description string
		amount      int64
		currency    string
		wantErr     error
	}{
		{
			name:        "valid order",
			email:       "test@example.com",
			description: "2 items",
			amount:      1000,
			currency:    "usd",
		},
		{
			name:        "invalid amount - zero",
			email:       "test@example.com",
			description: "2 items",
			amount:      0,
			currency:    "USD",
			wantErr:     ErrInvalidAmount,
		},
		{
			name:        "invalid amount - negative",
			email:       "test@example.com",
			description: "2 items",
			amount:      -100,
			currency:    "USD",
			wantErr:     ErrInvalidAmount,
		},
		{
			name:        "invalid currency",
			email:       "test@example.com",
			description: "2 items",
			amount:      1000,
			currency:    "US",
			wantErr:     ErrInvalidCurrency,
		},
		{
			name:        "empty description",
			email:       "test@example.com",
			description: "",
			amount:      1000,
			currency:    "USD",
			wantErr:     ErrInvalidDescription,
		},
		{
			name:        "email without at sign",
			email:       "test.example.com",
			description: "2 items",
			amount:      1000,
			currency:    "USD",
			wantErr:     ErrInvalidEmail,
		},
	}

	ref := regexp.MustCompile(`^ORD-[0-9A-F]{8}$`)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.email, tt.description, tt.amount, tt.currency)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				if order != nil {
					t.Error("Expected order to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewOrder() unexpected error = %v", err)
			}
			if order.ID == "" {
				t.Error("Order ID should not be empty")
			}
			if !ref.MatchString(order.Reference) {
				t.Errorf("Reference = %q, want ORD-XXXXXXXX", order.Reference)
			}
			if order.Currency != "USD" {
				t.Errorf("Currency = %q, want upper-cased USD", order.Currency)
			}
			if !order.IsPending() {
				t.Errorf("Status = %v, want pending", order.Status)
			}
		})
	}
}

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder("test@example.com", "1 item", 4250, "USD")
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	return order
}

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(o *Order)
		transition func(o *Order) error
		wantStatus OrderStatus
		wantErr    bool
	}{
		{
			name:       "authorize pending order",
			transition: func(o *Order) error { return o.Authorize("PSP-1") },
			wantStatus: OrderStatusAuthorized,
		},
		{
			name:       "authorize without psp reference",
			transition: func(o *Order) error { return o.Authorize("") },
			wantStatus: OrderStatusPending,
			wantErr:    true,
		},
		{
			name:       "authorize twice",
			setup:      func(o *Order) { _ = o.Authorize("PSP-1") },
			transition: func(o *Order) error { return o.Authorize("PSP-2") },
			wantStatus: OrderStatusAuthorized,
			wantErr:    true,
		},
		{
			name:       "fail pending order",
			transition: func(o *Order) error { return o.Fail("PSP-1") },
			wantStatus: OrderStatusFailed,
		},
		{
			name:       "fail authorized order",
			setup:      func(o *Order) { _ = o.Authorize("PSP-1") },
			transition: func(o *Order) error { return o.Fail("") },
			wantStatus: OrderStatusAuthorized,
			wantErr:    true,
		},
		{
			name:       "cancel pending order",
			transition: func(o *Order) error { return o.Cancel() },
			wantStatus: OrderStatusCancelled,
		},
		{
			name:       "fail cancelled order",
			setup:      func(o *Order) { _ = o.Cancel() },
			transition: func(o *Order) error { return o.Fail("") },
			wantStatus: OrderStatusCancelled,
			wantErr:    true,
		},
		{
			name:       "cancel authorized order",
			setup:      func(o *Order) { _ = o.Authorize("PSP-1") },
			transition: func(o *Order) error { return o.Cancel() },
			wantStatus: OrderStatusAuthorized,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			order := newTestOrder(t)
			if tt.setup != nil {
				tt.setup(order)
			}

			// WHEN
			err := tt.transition(order)

			// THEN
			if (err != nil) != tt.wantErr {
				t.Fatalf("transition error = %v, wantErr %v", err, tt.wantErr)
			}
			if order.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", order.Status, tt.wantStatus)
			}
		})
	}
}

func TestFailKeepsPSPReference(t *testing.T) {
	order := newTestOrder(t)
	_ = order.Fail("PSP-9")
	if order.PSPReference != "PSP-9" {
		t.Errorf("PSPReference = %q, want PSP-9", order.PSPReference)
	}
}

func TestFormattedAmount(t *testing.T) {
	tests := []struct {
		amount   int64
		currency string
		want     string
	}{
		{4250, "USD", "$42.50"},
		{5, "USD", "$0.05"},
		{129900, "EUR", "1299.00 EUR"},
	}
	for _, tt := range tests {
		o := &Order{Amount: tt.amount, Currency: tt.currency}
		if got := o.FormattedAmount(); got != tt.want {
			t.Errorf("FormattedAmount(%d %s) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestCanMoveTo(t *testing.T) {
	order := newTestOrder(t)
	for _, status := range []OrderStatus{OrderStatusAuthorized, OrderStatusFailed, OrderStatusCancelled} {
		if !order.CanMoveTo(status) {
			t.Errorf("pending order should move to %s", status)
		}
	}
	if order.CanMoveTo(OrderStatusPending) {
		t.Error("an order never returns to pending")
	}

	_ = order.Authorize("PSP-1")
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusFailed, OrderStatusCancelled, OrderStatusAuthorized} {
		if order.CanMoveTo(status) {
			t.Errorf("authorized order should not move to %s", status)
		}
	}
}

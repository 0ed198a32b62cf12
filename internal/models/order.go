package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusAuthorized OrderStatus = "authorized"
	OrderStatusFailed     OrderStatus = "failed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is a placed checkout awaiting or past payment. Amount is in minor
// units of Currency.
type Order struct {
	ID             string
	Reference      string
	Amount         int64
	Currency       string
	Status         OrderStatus
	CustomerEmail  string
	Description    string
	ShippingMethod string
	PSPReference   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Domain errors
var (
	ErrInvalidAmount           = errors.New("order amount must be positive")
	ErrInvalidCurrency         = errors.New("currency code must be 3 characters")
	ErrInvalidDescription      = errors.New("order description cannot be empty")
	ErrInvalidEmail            = errors.New("customer email is not valid")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
	ErrOrderNotFound           = errors.New("order not found")
)

// NewOrder creates a pending order for amount minor units.
func NewOrder(customerEmail, description string, amount int64, currency string) (*Order, error) {
	if err := validateOrderInput(customerEmail, description, amount, currency); err != nil {
		return nil, err
	}

	id := uuid.New()
	now := time.Now()
	return &Order{
		ID:            id.String(),
		Reference:     newReference(id),
		Amount:        amount,
		Currency:      strings.ToUpper(currency),
		Status:        OrderStatusPending,
		CustomerEmail: customerEmail,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// newReference derives a short human-facing reference such as ORD-1A2B3C4D.
func newReference(id uuid.UUID) string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

func validateOrderInput(customerEmail, description string, amount int64, currency string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}
	if description == "" {
		return ErrInvalidDescription
	}
	if !strings.Contains(customerEmail, "@") {
		return ErrInvalidEmail
	}
	return nil
}

// transitions lists the statuses each status may move to. Authorized is
// final; a failed order may be failed again by a later attempt or cancelled.
var transitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusAuthorized, OrderStatusFailed, OrderStatusCancelled},
	OrderStatusFailed:    {OrderStatusFailed, OrderStatusCancelled},
	OrderStatusCancelled: {OrderStatusCancelled},
}

// CanMoveTo reports whether the order may change to status.
func (o *Order) CanMoveTo(status OrderStatus) bool {
	for _, next := range transitions[o.Status] {
		if next == status {
			return true
		}
	}
	return false
}

func (o *Order) moveTo(status OrderStatus, pspReference string) error {
	if !o.CanMoveTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, status)
	}
	o.Status = status
	if pspReference != "" {
		o.PSPReference = pspReference
	}
	o.UpdatedAt = time.Now()
	return nil
}

// Authorize records a successful payment. The processor reference is required.
func (o *Order) Authorize(pspReference string) error {
	if pspReference == "" {
		return errors.New("psp reference required to authorize")
	}
	return o.moveTo(OrderStatusAuthorized, pspReference)
}

// Fail records a declined or errored attempt, keeping its processor
// reference when there is one.
func (o *Order) Fail(pspReference string) error {
	return o.moveTo(OrderStatusFailed, pspReference)
}

func (o *Order) Cancel() error {
	return o.moveTo(OrderStatusCancelled, "")
}

func (o *Order) IsPending() bool    { return o.Status == OrderStatusPending }
func (o *Order) IsAuthorized() bool { return o.Status == OrderStatusAuthorized }
func (o *Order) IsFailed() bool     { return o.Status == OrderStatusFailed }

// FormattedAmount renders the amount in major units, e.g. "$42.50".
func (o *Order) FormattedAmount() string {
	major := decimal.New(o.Amount, -2)
	if o.Currency == "USD" {
		return "$" + major.StringFixed(2)
	}
	return major.StringFixed(2) + " " + o.Currency
}

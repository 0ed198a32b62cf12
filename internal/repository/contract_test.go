package repository

import (
	"errors"
	"testing"

	"github.com/themizzi/storefront-e2e/internal/models"
)

type orderStore interface {
	Insert(order *models.Order) error
	FindByReference(reference string) (*models.Order, error)
	SaveStatus(order *models.Order) error
}

func newOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := models.NewOrder("test@example.com", "Sauce Labs Backpack x 1", 3739, "USD")
	if err != nil {
		t.Fatalf("NewOrder() error = %v", err)
	}
	order.ShippingMethod = string(models.ShippingExpress)
	return order
}

// testOrderStore checks the behaviour every order store shares. open must
// return an empty store.
func testOrderStore(t *testing.T, open func(t *testing.T) orderStore) {
	t.Run("insert then find", func(t *testing.T) {
		store := open(t)
		order := newOrder(t)

		if err := store.Insert(order); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		got, err := store.FindByReference(order.Reference)

		if err != nil {
			t.Fatalf("FindByReference() error = %v", err)
		}
		if got.ID != order.ID || got.Amount != 3739 || got.CustomerEmail != "test@example.com" {
			t.Errorf("unexpected order: %+v", got)
		}
		if got.ShippingMethod != string(models.ShippingExpress) || !got.IsPending() {
			t.Errorf("shipping/status not stored: %s/%s", got.ShippingMethod, got.Status)
		}
		if order.CreatedAt.IsZero() || order.UpdatedAt.IsZero() {
			t.Error("timestamps should be set on insert")
		}
	})

	t.Run("duplicate reference", func(t *testing.T) {
		store := open(t)
		order := newOrder(t)
		if err := store.Insert(order); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		clash := newOrder(t)
		clash.Reference = order.Reference
		err := store.Insert(clash)

		if !errors.Is(err, ErrDuplicateReference) {
			t.Errorf("Insert() error = %v, want ErrDuplicateReference", err)
		}
	})

	t.Run("missing order", func(t *testing.T) {
		store := open(t)

		_, err := store.FindByReference("ORD-MISSING")

		if !errors.Is(err, models.ErrOrderNotFound) {
			t.Errorf("FindByReference() error = %v, want ErrOrderNotFound", err)
		}
	})

	t.Run("save status", func(t *testing.T) {
		store := open(t)
		order := newOrder(t)
		if err := store.Insert(order); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
		if err := order.Authorize("PSP-1"); err != nil {
			t.Fatalf("Authorize() error = %v", err)
		}

		if err := store.SaveStatus(order); err != nil {
			t.Fatalf("SaveStatus() error = %v", err)
		}

		got, err := store.FindByReference(order.Reference)
		if err != nil {
			t.Fatalf("FindByReference() error = %v", err)
		}
		if !got.IsAuthorized() || got.PSPReference != "PSP-1" {
			t.Errorf("order not updated: %s/%q", got.Status, got.PSPReference)
		}
		if got.UpdatedAt.Before(got.CreatedAt) {
			t.Error("UpdatedAt should not precede CreatedAt")
		}
	})

	t.Run("save status of missing order", func(t *testing.T) {
		store := open(t)
		order := newOrder(t)
		order.Status = models.OrderStatusFailed

		err := store.SaveStatus(order)

		if !errors.Is(err, models.ErrOrderNotFound) {
			t.Errorf("SaveStatus() error = %v, want ErrOrderNotFound", err)
		}
	})

	t.Run("found orders are copies", func(t *testing.T) {
		store := open(t)
		order := newOrder(t)
		if err := store.Insert(order); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}

		got, _ := store.FindByReference(order.Reference)
		got.Status = models.OrderStatusCancelled

		again, _ := store.FindByReference(order.Reference)
		if !again.IsPending() {
			t.Errorf("store mutated through a found order: %v", again.Status)
		}
	})
}

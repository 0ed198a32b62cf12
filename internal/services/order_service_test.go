package services

import (
	"errors"
	"testing"

	"github.com/themizzi/storefront-e2e/internal/models"
)

// MockOrderRepository is a mock implementation of OrderRepository for testing
type MockOrderRepository struct {
	InsertFunc          func(*models.Order) error
	FindByReferenceFunc func(string) (*models.Order, error)
	SaveStatusFunc      func(*models.Order) error
}

func (m *MockOrderRepository) Insert(order *models.Order) error {
	if m.InsertFunc != nil {
		return m.InsertFunc(order)
	}
	return nil
}

func (m *MockOrderRepository) FindByReference(reference string) (*models.Order, error) {
	if m.FindByReferenceFunc != nil {
		return m.FindByReferenceFunc(reference)
	}
	return &models.Order{Reference: reference, Status: models.OrderStatusPending}, nil
}

func (m *MockOrderRepository) SaveStatus(order *models.Order) error {
	if m.SaveStatusFunc != nil {
		return m.SaveStatusFunc(order)
	}
	return nil
}

func backpackOrder() NewOrderRequest {
	return NewOrderRequest{
		CustomerEmail: "test@example.com",
		Description:   "Sauce Labs Backpack x 1",
		Amount:        3739,
		Currency:      "usd",
		Shipping:      models.ShippingExpress,
	}
}

func TestOrderService_Place(t *testing.T) {
	// GIVEN
	var stored *models.Order
	service := NewOrderService(&MockOrderRepository{
		InsertFunc: func(order *models.Order) error {
			stored = order
			return nil
		},
	})

	// WHEN
	order, err := service.Place(backpackOrder())

	// THEN
	if err != nil {
		t.Fatalf("Place() unexpected error = %v", err)
	}
	if stored != order {
		t.Fatal("expected the placed order to be the one stored")
	}
	if order.ID == "" || order.Reference == "" {
		t.Errorf("order identifiers not generated: %+v", order)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("Expected status %s, got %s", models.OrderStatusPending, order.Status)
	}
	if order.Currency != "USD" {
		t.Errorf("Expected currency USD, got %s", order.Currency)
	}
	if order.ShippingMethod != string(models.ShippingExpress) {
		t.Errorf("shipping must be set before the insert, got %q", order.ShippingMethod)
	}
}

func TestOrderService_PlaceDefaultsShipping(t *testing.T) {
	req := backpackOrder()
	req.Shipping = ""

	order, err := NewOrderService(&MockOrderRepository{}).Place(req)

	if err != nil {
		t.Fatalf("Place() unexpected error = %v", err)
	}
	if order.ShippingMethod != string(models.ShippingStandard) {
		t.Errorf("Expected standard shipping, got %q", order.ShippingMethod)
	}
}

func TestOrderService_PlaceErrors(t *testing.T) {
	dbErr := errors.New("database error")
	tests := []struct {
		name       string
		mutate     func(*NewOrderRequest)
		insertErr  error
		wantErr    error
		wantInsert bool
	}{
		{
			name:       "repository error is wrapped",
			insertErr:  dbErr,
			wantErr:    dbErr,
			wantInsert: true,
		},
		{
			name:    "invalid email never reaches the repository",
			mutate:  func(r *NewOrderRequest) { r.CustomerEmail = "nobody" },
			wantErr: models.ErrInvalidEmail,
		},
		{
			name:    "zero amount is rejected",
			mutate:  func(r *NewOrderRequest) { r.Amount = 0 },
			wantErr: models.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			req := backpackOrder()
			if tt.mutate != nil {
				tt.mutate(&req)
			}
			inserted := false
			service := NewOrderService(&MockOrderRepository{
				InsertFunc: func(*models.Order) error {
					inserted = true
					return tt.insertErr
				},
			})

			// WHEN
			_, err := service.Place(req)

			// THEN
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Place() error = %v, want %v", err, tt.wantErr)
			}
			if inserted != tt.wantInsert {
				t.Errorf("insert called = %v, want %v", inserted, tt.wantInsert)
			}
		})
	}
}

func TestOrderService_Find(t *testing.T) {
	service := NewOrderService(&MockOrderRepository{
		FindByReferenceFunc: func(reference string) (*models.Order, error) {
			if reference == "ORD-123" {
				return &models.Order{Reference: reference, Amount: 100}, nil
			}
			return nil, models.ErrOrderNotFound
		},
	})

	order, err := service.Find("ORD-123")
	if err != nil || order.Amount != 100 {
		t.Errorf("Find(ORD-123) = %+v, %v", order, err)
	}

	if _, err := service.Find("ORD-999"); !errors.Is(err, models.ErrOrderNotFound) {
		t.Errorf("Find(ORD-999) error = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderService_Settle(t *testing.T) {
	tests := []struct {
		name      string
		from      models.OrderStatus
		status    models.OrderStatus
		psp       string
		saveErr   error
		wantErr   bool
		wantSaved bool
		wantPSP   string
	}{
		{name: "authorize", from: models.OrderStatusPending, status: models.OrderStatusAuthorized, psp: "PSP-123", wantSaved: true, wantPSP: "PSP-123"},
		{name: "fail keeps attempt reference", from: models.OrderStatusPending, status: models.OrderStatusFailed, psp: "PSP-456", wantSaved: true, wantPSP: "PSP-456"},
		{name: "cancel", from: models.OrderStatusPending, status: models.OrderStatusCancelled, wantSaved: true},
		{name: "pending is not final", from: models.OrderStatusPending, status: models.OrderStatusPending, wantErr: true},
		{name: "unknown status", from: models.OrderStatusPending, status: "shipped", wantErr: true},
		{name: "authorized order cannot fail", from: models.OrderStatusAuthorized, status: models.OrderStatusFailed, psp: "PSP-9", wantErr: true},
		{name: "repository error", from: models.OrderStatusPending, status: models.OrderStatusAuthorized, psp: "PSP-123", saveErr: errors.New("database error"), wantErr: true, wantSaved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// GIVEN
			saved := false
			service := NewOrderService(&MockOrderRepository{
				FindByReferenceFunc: func(reference string) (*models.Order, error) {
					return &models.Order{Reference: reference, Status: tt.from}, nil
				},
				SaveStatusFunc: func(order *models.Order) error {
					saved = true
					if order.Status != tt.status {
						t.Errorf("saved status %s, want %s", order.Status, tt.status)
					}
					return tt.saveErr
				},
			})

			// WHEN
			order, err := service.Settle("ORD-123", tt.status, tt.psp)

			// THEN
			if (err != nil) != tt.wantErr {
				t.Fatalf("Settle() error = %v, wantErr %v", err, tt.wantErr)
			}
			if saved != tt.wantSaved {
				t.Errorf("saved = %v, want %v", saved, tt.wantSaved)
			}
			if err == nil && order.PSPReference != tt.wantPSP {
				t.Errorf("PSP reference = %q, want %q", order.PSPReference, tt.wantPSP)
			}
		})
	}
}

func TestOrderService_SettleRejectsNonFinalStatusBeforeLoading(t *testing.T) {
	loaded := false
	service := NewOrderService(&MockOrderRepository{
		FindByReferenceFunc: func(string) (*models.Order, error) {
			loaded = true
			return &models.Order{}, nil
		},
	})

	_, err := service.Settle("ORD-1", models.OrderStatusPending, "")

	if !errors.Is(err, models.ErrInvalidStatusTransition) {
		t.Errorf("error = %v, want ErrInvalidStatusTransition", err)
	}
	if loaded {
		t.Error("order should not be loaded for a non-final status")
	}
}

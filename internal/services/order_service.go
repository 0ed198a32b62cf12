package services

import (
	"fmt"

	"github.com/themizzi/storefront-e2e/internal/models"
)

// OrderRepository persists orders. The storefront ships an in-memory and a
// PostgreSQL implementation.
type OrderRepository interface {
	Insert(order *models.Order) error
	FindByReference(reference string) (*models.Order, error)
	// SaveStatus writes the order's status, PSP reference and update time.
	SaveStatus(order *models.Order) error
}

// NewOrderRequest is a checkout turned into an order. Amount is in minor
// units of Currency.
type NewOrderRequest struct {
	CustomerEmail string
	Description   string
	Amount        int64
	Currency      string
	Shipping      models.ShippingMethod
}

// OrderService places orders and settles them once payment has an outcome.
type OrderService interface {
	Place(req NewOrderRequest) (*models.Order, error)
	Find(reference string) (*models.Order, error)
	Settle(reference string, status models.OrderStatus, pspReference string) (*models.Order, error)
}

type orderService struct {
	repo OrderRepository
}

func NewOrderService(repo OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// Place validates req and stores a pending order for it.
func (s *orderService) Place(req NewOrderRequest) (*models.Order, error) {
	order, err := models.NewOrder(req.CustomerEmail, req.Description, req.Amount, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}
	order.ShippingMethod = string(req.Shipping)
	if order.ShippingMethod == "" {
		order.ShippingMethod = string(models.ShippingStandard)
	}

	if err := s.repo.Insert(order); err != nil {
		return nil, fmt.Errorf("could not store order %s: %w", order.Reference, err)
	}
	return order, nil
}

func (s *orderService) Find(reference string) (*models.Order, error) {
	order, err := s.repo.FindByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("could not load order %s: %w", reference, err)
	}
	return order, nil
}

// settlements maps each final status to the transition that reaches it.
var settlements = map[models.OrderStatus]func(o *models.Order, pspReference string) error{
	models.OrderStatusAuthorized: (*models.Order).Authorize,
	models.OrderStatusFailed:     (*models.Order).Fail,
	models.OrderStatusCancelled:  func(o *models.Order, _ string) error { return o.Cancel() },
}

// Settle moves the order to a final status and persists it.
func (s *orderService) Settle(reference string, status models.OrderStatus, pspReference string) (*models.Order, error) {
	transition, ok := settlements[status]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a final status", models.ErrInvalidStatusTransition, status)
	}

	order, err := s.Find(reference)
	if err != nil {
		return nil, err
	}
	if err := transition(order, pspReference); err != nil {
		return nil, err
	}
	if err := s.repo.SaveStatus(order); err != nil {
		return nil, fmt.Errorf("could not save order %s: %w", reference, err)
	}
	return order, nil
}

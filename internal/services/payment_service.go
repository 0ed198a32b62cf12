package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/models"
)

// ErrNoPendingPayment is returned when a payment is submitted for an order
// that has no card on file, including one already being submitted.
var ErrNoPendingPayment = errors.New("no pending payment for order")

// ErrPaymentNotOwned is returned when a session submits the payment of an
// order another session placed.
var ErrPaymentNotOwned = errors.New("order was placed by another session")

// PaymentService handles payment-related business logic
type PaymentService interface {
	StartPayment(req *StartPaymentRequest) (*PaymentSessionResult, error)
	SubmitPayment(reference, sessionID string) (*PaymentVerificationResult, error)
}

// StartPaymentRequest carries a placed checkout into the payment step.
type StartPaymentRequest struct {
	CustomerEmail  string
	Description    string
	Amount         int64
	Currency       string
	ShippingMethod models.ShippingMethod
	Card           Card
	// SessionID is the shopper session allowed to submit the payment.
	SessionID string
}

type pendingPayment struct {
	card      Card
	sessionID string
}

// PaymentServiceImpl implements PaymentService. Cards are held in memory
// between placing an order and submitting its payment.
type PaymentServiceImpl struct {
	authorizer   CardAuthorizer
	orderService OrderService
	log          *log.Logger

	mu      sync.Mutex
	pending map[string]pendingPayment
}

// NewPaymentService creates a new payment service
func NewPaymentService(authorizer CardAuthorizer, orderService OrderService, logger *log.Logger) PaymentService {
	return &PaymentServiceImpl{
		authorizer:   authorizer,
		orderService: orderService,
		log:          logger,
		pending:      make(map[string]pendingPayment),
	}
}

// PaymentSessionResult represents an order waiting for payment
type PaymentSessionResult struct {
	OrderRef string
	Order    *models.Order
}

// PaymentVerificationResult represents the result of a payment attempt
type PaymentVerificationResult struct {
	Order         *models.Order
	ResultCode    string
	PSPReference  string
	RefusalReason string
	Status        string
}

// StartPayment creates a pending order and keeps the card for SubmitPayment.
func (s *PaymentServiceImpl) StartPayment(req *StartPaymentRequest) (*PaymentSessionResult, error) {
	order, err := s.orderService.Place(NewOrderRequest{
		CustomerEmail: req.CustomerEmail,
		Description:   req.Description,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Shipping:      req.ShippingMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.mu.Lock()
	s.pending[order.Reference] = pendingPayment{card: req.Card, sessionID: req.SessionID}
	s.mu.Unlock()

	s.log.Info("Created order", "reference", order.Reference, "amount", order.FormattedAmount())
	return &PaymentSessionResult{OrderRef: order.Reference, Order: order}, nil
}

// SubmitPayment authorizes the card on file for reference and moves the
// order to its final status. The pending payment is claimed before the card
// is authorized, so a repeated submit gets ErrNoPendingPayment instead of a
// second authorization. It is put back when the attempt ends without a final
// status.
func (s *PaymentServiceImpl) SubmitPayment(reference, sessionID string) (*PaymentVerificationResult, error) {
	p, err := s.claim(reference, sessionID)
	if err != nil {
		return nil, err
	}
	settled := false
	defer func() {
		if !settled {
			s.mu.Lock()
			s.pending[reference] = p
			s.mu.Unlock()
		}
	}()

	order, err := s.orderService.Find(reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	resp, err := s.authorizer.Authorize(&AuthorizationRequest{
		Reference: order.Reference,
		Amount:    Amount{Currency: order.Currency, Value: order.Amount},
		Card:      p.card,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to authorize payment: %w", err)
	}

	s.log.Info("Payment processed", "reference", reference, "resultCode", resp.ResultCode, "pspReference", resp.PSPReference)

	orderStatus := mapResultCodeToStatus(resp.ResultCode)
	if orderStatus != models.OrderStatusPending {
		settled = true
		if _, err := s.orderService.Settle(order.Reference, orderStatus, resp.PSPReference); err != nil {
			s.log.Warn("Failed to update order status", "reference", reference, "err", err)
		}
	}

	order.Status = orderStatus
	order.PSPReference = resp.PSPReference

	return &PaymentVerificationResult{
		Order:         order,
		ResultCode:    resp.ResultCode,
		PSPReference:  resp.PSPReference,
		RefusalReason: resp.RefusalReason,
		Status:        string(orderStatus),
	}, nil
}

func (s *PaymentServiceImpl) claim(reference, sessionID string) (pendingPayment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[reference]
	if !ok {
		return p, fmt.Errorf("%w: %s", ErrNoPendingPayment, reference)
	}
	if p.sessionID != sessionID {
		return p, fmt.Errorf("%w: %s", ErrPaymentNotOwned, reference)
	}
	delete(s.pending, reference)
	return p, nil
}

// mapResultCodeToStatus maps an authorization result code to our order status
func mapResultCodeToStatus(resultCode string) models.OrderStatus {
	switch resultCode {
	case ResultAuthorised:
		return models.OrderStatusAuthorized
	case ResultRefused, ResultError:
		return models.OrderStatusFailed
	case ResultCancelled:
		return models.OrderStatusCancelled
	default:
		return models.OrderStatusPending
	}
}

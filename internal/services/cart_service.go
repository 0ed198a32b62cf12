package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

// CouponResult is what applying a code did to the cart.
type CouponResult struct {
	Outcome dataset.PromoOutcome
	Applied bool
	Message string
}

// CartService keeps one cart per browser session.
type CartService struct {
	catalog *dataset.Catalog
	log     *log.Logger

	mu    sync.RWMutex
	carts map[string]*models.Cart
}

// NewCartService creates a cart service selling from catalog
func NewCartService(catalog *dataset.Catalog, logger *log.Logger) *CartService {
	return &CartService{
		catalog: catalog,
		log:     logger,
		carts:   make(map[string]*models.Cart),
	}
}

// Cart returns a snapshot of the session's cart. Unknown sessions get an
// empty cart.
func (s *CartService) Cart(sessionID string) models.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return *models.NewCart()
	}
	snapshot := *c
	snapshot.Lines = append([]models.CartLine(nil), c.Lines...)
	return snapshot
}

// update runs fn on the session's cart under the write lock, creating the
// cart on first use.
func (s *CartService) update(sessionID string, fn func(c *models.Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = models.NewCart()
		s.carts[sessionID] = c
	}
	return fn(c)
}

// Add puts one unit of productID in the cart as a new line.
func (s *CartService) Add(sessionID, productID string) error {
	item, ok := s.catalog.Find(productID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProductNotFound, productID)
	}
	s.log.Debug("Adding to cart", "session", sessionID, "product", item.ID)
	return s.update(sessionID, func(c *models.Cart) error {
		c.Add(item.ID, item.Name, item.Price)
		return nil
	})
}

func (s *CartService) SetQuantity(sessionID string, index, quantity int) error {
	return s.update(sessionID, func(c *models.Cart) error {
		return c.SetQuantity(index, quantity)
	})
}

func (s *CartService) Adjust(sessionID string, index, delta int) error {
	return s.update(sessionID, func(c *models.Cart) error {
		return c.Adjust(index, delta)
	})
}

func (s *CartService) Remove(sessionID string, index int) error {
	return s.update(sessionID, func(c *models.Cart) error {
		return c.Remove(index)
	})
}

// ApplyCoupon classifies code and applies it when it is a live coupon. Any
// other outcome leaves the current discount untouched.
func (s *CartService) ApplyCoupon(sessionID, code string) CouponResult {
	outcome := dataset.Classify(code)
	result := CouponResult{Outcome: outcome}

	switch outcome {
	case dataset.PromoValid:
		result.Applied = true
		result.Message = fmt.Sprintf("Coupon %s applied: 10%% off", dataset.ValidCoupon)
		_ = s.update(sessionID, func(c *models.Cart) error {
			c.Coupon = dataset.ValidCoupon
			return nil
		})
	case dataset.PromoExpired:
		result.Message = "This coupon has expired"
	case dataset.PromoGift:
		result.Message = fmt.Sprintf("%s is a gift card, apply it at checkout", dataset.GiftCard)
	default:
		result.Message = "Invalid coupon code"
	}

	s.log.Info("Coupon submitted", "session", sessionID, "outcome", outcome)
	return result
}

func (s *CartService) RemoveCoupon(sessionID string) {
	_ = s.update(sessionID, func(c *models.Cart) error {
		c.Coupon = ""
		return nil
	})
}

// ApplyGiftCard accepts only gift card codes.
func (s *CartService) ApplyGiftCard(sessionID, code string) (string, bool) {
	if dataset.Classify(code) != dataset.PromoGift {
		return "Invalid gift card", false
	}
	_ = s.update(sessionID, func(c *models.Cart) error {
		c.GiftCard = dataset.GiftCard
		return nil
	})
	return fmt.Sprintf("Gift card applied: %s credit", dataset.FormatPrice(models.GiftCardValue)), true
}

func (s *CartService) RemoveGiftCard(sessionID string) {
	_ = s.update(sessionID, func(c *models.Cart) error {
		c.GiftCard = ""
		return nil
	})
}

func (s *CartService) SetShipping(sessionID string, method models.ShippingMethod) {
	_ = s.update(sessionID, func(c *models.Cart) error {
		c.Shipping = method
		return nil
	})
}

func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

package storefront

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/themizzi/storefront-e2e/internal/pages"
	"github.com/themizzi/storefront-e2e/internal/session"
)

var (
	cartItems     = tid("cart-item")
	itemName      = tid("item-name")
	itemPrice     = tid("item-price")
	itemQuantity  = tid("item-quantity")
	removeItem    = tid("remove-item")
	increaseQty   = tid("increase-qty")
	decreaseQty   = tid("decrease-qty")
	couponInput   = tid("coupon")
	applyCoupon   = tid("apply-coupon")
	couponMessage = tid("coupon-message")
	removeCoupon  = tid("remove-coupon")

	cartSubtotal = tid("subtotal")
	cartShipping = tid("shipping")
	cartTax      = tid("tax")
	cartDiscount = tid("discount")
	cartTotal    = tid("total")

	shippingOptions  = tid("shipping-option")
	continueShopping = tid("continue-shopping")
	checkoutButton   = tid("checkout")
	emptyCart        = tid("empty-cart")
)

// CartPage drives the shopping cart.
type CartPage struct {
	pages.Base
}

func NewCartPage(base pages.Base) *CartPage {
	return &CartPage{Base: base}
}

func (p *CartPage) NavigateToCart() error {
	return p.Goto("/cart")
}

func (p *CartPage) CartItemCount() int {
	return p.Count(cartItems)
}

func (p *CartPage) AllItemNames() []string {
	return p.AllTexts(itemName)
}

func (p *CartPage) AllItemPrices() []string {
	return p.AllTexts(itemPrice)
}

// FirstItemQuantity returns the first line's quantity field, "" when the
// cart is empty.
func (p *CartPage) FirstItemQuantity() string {
	return p.InputValue(session.First(itemQuantity))
}

// ChangeQuantity types quantity into line index and submits it with Enter.
func (p *CartPage) ChangeQuantity(index, quantity int) error {
	field := session.Nth(itemQuantity, index)
	if err := p.Fill(field, strconv.Itoa(quantity)); err != nil {
		return fmt.Errorf("change quantity of item %d: %w", index, err)
	}
	return p.WaitForNavigation(func() error { return p.PressKey("Enter") })
}

func (p *CartPage) IncreaseItemQuantity(index int) error {
	return p.ClickAndWait(session.Nth(increaseQty, index))
}

func (p *CartPage) DecreaseItemQuantity(index int) error {
	return p.ClickAndWait(session.Nth(decreaseQty, index))
}

func (p *CartPage) RemoveItem(index int) error {
	return p.ClickAndWait(session.Nth(removeItem, index))
}

func (p *CartPage) RemoveItemByName(name string) error {
	line := session.First(session.HasText(cartItems, name))
	return p.ClickAndWait(session.Within(line, removeItem))
}

func (p *CartPage) ApplyCoupon(code string) error {
	if err := p.Fill(couponInput, code); err != nil {
		return fmt.Errorf("apply coupon %q: %w", code, err)
	}
	return p.ClickAndWait(applyCoupon)
}

func (p *CartPage) CouponMessage() string {
	return p.Text(couponMessage)
}

// CouponMessageMatches reports whether the coupon message contains any of
// terms, ignoring case.
func (p *CartPage) CouponMessageMatches(terms ...string) bool {
	return containsAny(p.CouponMessage(), terms...)
}

func containsAny(s string, terms ...string) bool {
	s = strings.ToLower(s)
	for _, term := range terms {
		if term != "" && strings.Contains(s, strings.ToLower(term)) {
			return true
		}
	}
	return false
}

func (p *CartPage) RemoveCoupon() error {
	return p.ClickAndWait(removeCoupon)
}

func (p *CartPage) Subtotal() string     { return p.Text(cartSubtotal) }
func (p *CartPage) ShippingCost() string { return p.Text(cartShipping) }
func (p *CartPage) TaxCost() string      { return p.Text(cartTax) }
func (p *CartPage) Discount() string     { return p.Text(cartDiscount) }
func (p *CartPage) TotalPrice() string   { return p.Text(cartTotal) }

func (p *CartPage) SelectShippingOption(index int) error {
	if err := p.Check(session.Nth(shippingOptions, index)); err != nil {
		return fmt.Errorf("select shipping option %d: %w", index, err)
	}
	return p.WaitForNetworkIdle()
}

func (p *CartPage) GoToCheckout() error {
	return p.ClickAndWait(checkoutButton)
}

func (p *CartPage) IsCartEmpty() bool {
	return p.IsVisible(emptyCart)
}

func (p *CartPage) ContinueShopping() error {
	return p.ClickAndWait(continueShopping)
}

func (p *CartPage) IsContinueShoppingVisible() bool {
	return p.IsVisible(continueShopping)
}

package storefront

import (
	"fmt"
	"time"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/pages"
	"github.com/themizzi/storefront-e2e/internal/session"
)

var (
	shipFirstName = tid("shipping-first-name")
	shipLastName  = tid("shipping-last-name")
	shipEmail     = tid("shipping-email")
	shipPhone     = tid("shipping-phone")
	shipAddress   = tid("shipping-address")
	shipCity      = tid("shipping-city")
	shipState     = tid("shipping-state")
	shipZip       = tid("shipping-zip")
	shipCountry   = tid("shipping-country")

	cardNameInput   = tid("card-name")
	cardNumberInput = tid("card-number")
	cardExpiryInput = tid("card-expiry")
	cardCVCInput    = tid("card-cvc")

	sameAsShipping   = tid("same-as-shipping")
	billingFirstName = tid("billing-first-name")
	billingLastName  = tid("billing-last-name")
	billingAddress   = tid("billing-address")

	giftCardInput   = tid("gift-card")
	applyGiftButton = tid("apply-gift")

	shippingMethods = tid("shipping-method")

	summarySubtotal = tid("summary-subtotal")
	summaryShipping = tid("summary-shipping")
	summaryTax      = tid("summary-tax")
	summaryTotal    = tid("summary-total")

	placeOrderButton    = tid("place-order")
	submitPaymentButton = tid("submit-payment")

	checkoutError     = tid("error")
	checkoutSuccess   = tid("success")
	orderConfirmation = tid("order-confirmation")
	orderReference    = tid("order-reference")

	shippingTab = tid("shipping-tab")
	paymentTab  = tid("payment-tab")
	reviewTab   = tid("review-tab")
)

const confirmationWait = 10 * time.Second

// ShippingInfo is the shipping block of the checkout form. An empty Country
// selects "US".
type ShippingInfo struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
}

// CardInfo is the payment card block of the checkout form.
type CardInfo struct {
	Name   string
	Number string
	Expiry string
	CVC    string
}

// ShippingFrom extracts the shipping block from a payload.
func ShippingFrom(p dataset.CheckoutPayload) ShippingInfo {
	return ShippingInfo{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		ZipCode:   p.ZipCode,
		Country:   p.Country,
	}
}

// CardFrom extracts the card block from a payload.
func CardFrom(p dataset.CheckoutPayload) CardInfo {
	return CardInfo{Name: p.CardName, Number: p.CardNumber, Expiry: p.Expiry, CVC: p.CVC}
}

// CheckoutPage drives the checkout form, the payment step and the order
// result screens.
type CheckoutPage struct {
	pages.Base
}

func NewCheckoutPage(base pages.Base) *CheckoutPage {
	return &CheckoutPage{Base: base}
}

func (p *CheckoutPage) NavigateToCheckout() error {
	return p.Goto("/checkout")
}

func (p *CheckoutPage) fillAll(step string, fields []struct{ selector, value string }) error {
	for _, f := range fields {
		if err := p.Fill(f.selector, f.value); err != nil {
			return fmt.Errorf("%s: %w", step, err)
		}
	}
	return nil
}

func (p *CheckoutPage) FillShippingInfo(info ShippingInfo) error {
	err := p.fillAll("fill shipping info", []struct{ selector, value string }{
		{shipFirstName, info.FirstName},
		{shipLastName, info.LastName},
		{shipEmail, info.Email},
		{shipPhone, info.Phone},
		{shipAddress, info.Address},
		{shipCity, info.City},
		{shipState, info.State},
		{shipZip, info.ZipCode},
	})
	if err != nil {
		return err
	}
	country := info.Country
	if country == "" {
		country = "US"
	}
	if err := p.SelectOption(shipCountry, country); err != nil {
		return fmt.Errorf("fill shipping info: %w", err)
	}
	return nil
}

// SetSameAsShipping marks the billing address as identical to shipping.
func (p *CheckoutPage) SetSameAsShipping() error {
	return p.Check(sameAsShipping)
}

func (p *CheckoutPage) IsSameAsShippingChecked() bool {
	return p.IsChecked(sameAsShipping)
}

func (p *CheckoutPage) FillBillingInfo(firstName, lastName, address string) error {
	return p.fillAll("fill billing info", []struct{ selector, value string }{
		{billingFirstName, firstName},
		{billingLastName, lastName},
		{billingAddress, address},
	})
}

func (p *CheckoutPage) FillCardInfo(card CardInfo) error {
	return p.fillAll("fill card info", []struct{ selector, value string }{
		{cardNameInput, card.Name},
		{cardNumberInput, card.Number},
		{cardExpiryInput, card.Expiry},
		{cardCVCInput, card.CVC},
	})
}

func (p *CheckoutPage) SelectShippingMethod(index int) error {
	if err := p.Check(session.Nth(shippingMethods, index)); err != nil {
		return fmt.Errorf("select shipping method %d: %w", index, err)
	}
	return p.WaitForNetworkIdle()
}

func (p *CheckoutPage) ShippingMethodCount() int {
	return p.Count(shippingMethods)
}

func (p *CheckoutPage) ApplyGiftCard(code string) error {
	if err := p.Fill(giftCardInput, code); err != nil {
		return fmt.Errorf("apply gift card: %w", err)
	}
	return p.ClickAndWait(applyGiftButton)
}

func (p *CheckoutPage) IsGiftCardVisible() bool {
	return p.IsVisible(giftCardInput)
}

func (p *CheckoutPage) Subtotal() string     { return p.Text(summarySubtotal) }
func (p *CheckoutPage) ShippingCost() string { return p.Text(summaryShipping) }
func (p *CheckoutPage) Tax() string          { return p.Text(summaryTax) }
func (p *CheckoutPage) TotalPrice() string   { return p.Text(summaryTotal) }

func (p *CheckoutPage) PlaceOrder() error {
	return p.ClickAndWait(placeOrderButton)
}

func (p *CheckoutPage) SubmitPayment() error {
	return p.ClickAndWait(submitPaymentButton)
}

// CompleteCheckout runs the whole checkout in order: shipping, billing same
// as shipping, card, first shipping method, place order, confirm payment.
// The first failing step aborts the sequence and nothing is undone.
func (p *CheckoutPage) CompleteCheckout(info ShippingInfo, card CardInfo) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"fill shipping info", func() error { return p.FillShippingInfo(info) }},
		{"billing same as shipping", p.SetSameAsShipping},
		{"fill card info", func() error { return p.FillCardInfo(card) }},
		{"select shipping method", func() error { return p.SelectShippingMethod(0) }},
		{"place order", p.PlaceOrder},
		{"submit payment", p.SubmitPayment},
		{"wait for confirmation", p.WaitForNetworkIdle},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			p.Logger().Error("Checkout aborted", "step", step.name, "err", err)
			return fmt.Errorf("complete checkout: %s: %w", step.name, err)
		}
	}
	return nil
}

func (p *CheckoutPage) ErrorMessage() string {
	return p.Text(checkoutError)
}

func (p *CheckoutPage) IsErrorVisible() bool {
	return p.IsVisible(checkoutError)
}

func (p *CheckoutPage) IsSuccessMessageVisible() bool {
	return p.IsVisible(checkoutSuccess)
}

// IsOrderConfirmed waits briefly for the confirmation marker.
func (p *CheckoutPage) IsOrderConfirmed() bool {
	return p.WaitForElement(orderConfirmation, confirmationWait) == nil
}

func (p *CheckoutPage) OrderReference() string {
	return p.Text(orderReference)
}

func (p *CheckoutPage) GoToShippingTab() error {
	return p.ClickAndWait(shippingTab)
}

func (p *CheckoutPage) GoToPaymentTab() error {
	return p.ClickAndWait(paymentTab)
}

func (p *CheckoutPage) GoToReviewTab() error {
	return p.ClickAndWait(reviewTab)
}

func (p *CheckoutPage) AreTabsVisible() bool {
	return p.IsVisible(shippingTab) && p.IsVisible(paymentTab)
}

func (p *CheckoutPage) ShippingEmail() string {
	return p.InputValue(shipEmail)
}

func (p *CheckoutPage) CardName() string {
	return p.InputValue(cardNameInput)
}

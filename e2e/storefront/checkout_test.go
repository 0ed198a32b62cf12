//go:build e2e

package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	shop "github.com/themizzi/storefront-e2e/internal/pages/storefront"
)

// onCheckoutPage starts every checkout journey with one product in the cart.
func onCheckoutPage(t *testing.T) *shop.Pages {
	t.Helper()
	p := withProductInCart(t)
	require.NoError(t, p.Cart.GoToCheckout())
	return p
}

// TC-301
func TestCheckout_NavigateFromCart(t *testing.T) {
	p := onCheckoutPage(t)

	assert.Contains(t, p.Checkout.CurrentURL(), "checkout")
}

// TC-302
func TestCheckout_FillShippingInfo(t *testing.T) {
	p := onCheckoutPage(t)

	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))

	assert.Equal(t, dataset.ValidCheckout.Email, p.Checkout.ShippingEmail())
}

// TC-303
func TestCheckout_BillingSameAsShipping(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))

	require.NoError(t, p.Checkout.SetSameAsShipping())

	assert.True(t, p.Checkout.IsSameAsShippingChecked())
}

// TC-304
func TestCheckout_FillCardInfo(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))

	require.NoError(t, p.Checkout.FillCardInfo(shop.CardFrom(dataset.ValidCheckout)))

	assert.Equal(t, dataset.ValidCheckout.CardName, p.Checkout.CardName())
}

// TC-305
func TestCheckout_SelectShippingMethod(t *testing.T) {
	p := onCheckoutPage(t)

	require.NoError(t, p.Checkout.SelectShippingMethod(0))

	assert.NotEmpty(t, p.Checkout.ShippingCost())
}

// TC-306
func TestCheckout_OrderSummary(t *testing.T) {
	p := onCheckoutPage(t)

	assert.NotEmpty(t, p.Checkout.Subtotal())
	assert.NotEmpty(t, p.Checkout.TotalPrice())
}

// TC-307
//
//	Scenario: Place an order with valid data
//	  Given a filled checkout form
//	  When I place the order
//	  Then I am taken to the payment step for the new order
func TestCheckout_PlaceOrderWithValidData(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))
	require.NoError(t, p.Checkout.SetSameAsShipping())
	require.NoError(t, p.Checkout.FillCardInfo(shop.CardFrom(dataset.ValidCheckout)))
	require.NoError(t, p.Checkout.SelectShippingMethod(0))

	require.NoError(t, p.Checkout.PlaceOrder())
	require.NoError(t, p.Checkout.WaitForNetworkIdle())

	assert.Contains(t, p.Checkout.CurrentURL(), "/order/payment")
	assert.NotEmpty(t, p.Checkout.OrderReference())
}

// TC-308
func TestCheckout_MissingRequiredFields(t *testing.T) {
	p := onCheckoutPage(t)

	require.NoError(t, p.Checkout.PlaceOrder())

	require.True(t, p.Checkout.IsErrorVisible())
	assert.Contains(t, p.Checkout.ErrorMessage(), "required")
	assert.Contains(t, p.Checkout.CurrentURL(), "checkout")
}

// TC-309
func TestCheckout_ApplyGiftCard(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))
	require.True(t, p.Checkout.IsGiftCardVisible())
	before, err := dataset.ParsePrice(p.Checkout.TotalPrice())
	require.NoError(t, err)

	require.NoError(t, p.Checkout.ApplyGiftCard(dataset.GiftCard))

	after, err := dataset.ParsePrice(p.Checkout.TotalPrice())
	require.NoError(t, err)
	assert.True(t, after.LessThan(before), "total %s should drop below %s", after, before)
	assert.Equal(t, dataset.ValidCheckout.Email, p.Checkout.ShippingEmail(), "form should survive the re-render")
}

// TC-310
//
//	Scenario: Order success page
//	  Given a filled checkout form with an approved card
//	  When I place the order and confirm the payment
//	  Then I land on the success page with an order reference
func TestCheckout_OrderSuccessPage(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))
	require.NoError(t, p.Checkout.SetSameAsShipping())
	require.NoError(t, p.Checkout.FillCardInfo(shop.CardFrom(dataset.ValidCheckout)))
	require.NoError(t, p.Checkout.SelectShippingMethod(0))

	require.NoError(t, p.Checkout.PlaceOrder())
	require.NoError(t, p.Checkout.SubmitPayment())

	assert.Contains(t, p.Checkout.CurrentURL(), "success")
	assert.True(t, p.Checkout.IsOrderConfirmed())
	assert.True(t, p.Checkout.IsSuccessMessageVisible())
}

// TC-311
func TestCheckout_MultipleShippingOptions(t *testing.T) {
	p := onCheckoutPage(t)

	assert.Greater(t, p.Checkout.ShippingMethodCount(), 1)
}

// TC-312
func TestCheckout_TotalFollowsShippingSelection(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))
	initial := p.Checkout.TotalPrice()
	require.Greater(t, p.Checkout.ShippingMethodCount(), 1)

	require.NoError(t, p.Checkout.SelectShippingMethod(1))

	assert.NotEqual(t, initial, p.Checkout.TotalPrice())
}

// TC-313
func TestCheckout_TabsNavigation(t *testing.T) {
	p := onCheckoutPage(t)
	require.True(t, p.Checkout.AreTabsVisible())

	require.NoError(t, p.Checkout.GoToPaymentTab())

	assert.Contains(t, p.Checkout.CurrentURL(), "#payment")
}

// TC-314
func TestCheckout_EditShippingAddress(t *testing.T) {
	p := onCheckoutPage(t)
	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.ValidCheckout)))

	require.NoError(t, p.Checkout.FillShippingInfo(shop.ShippingFrom(dataset.EditedCheckout)))

	assert.Equal(t, "jane@example.com", p.Checkout.ShippingEmail())
}

// TC-315
//
//	Scenario: Full checkout journey
//	  Given one product in the cart
//	  When I complete the checkout in one go
//	  Then the order is confirmed with a reference
func TestCheckout_FullJourney(t *testing.T) {
	p := onCheckoutPage(t)

	require.NoError(t, p.Checkout.CompleteCheckout(
		shop.ShippingFrom(dataset.ValidCheckout),
		shop.CardFrom(dataset.ValidCheckout),
	))

	assert.True(t, p.Checkout.IsOrderConfirmed())
	assert.NotEmpty(t, p.Checkout.OrderReference())
	assert.Equal(t, "0", p.Home.CartCount(), "cart should be cleared after payment")
}

package storefront

import (
	"strconv"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/logger"
	"github.com/themizzi/storefront-e2e/internal/pages"
	"github.com/themizzi/storefront-e2e/internal/session"
	"github.com/themizzi/storefront-e2e/internal/session/sessiontest"
)

const shopURL = "http://shop.test"

// fakeShop scripts a sessiontest.Fake to behave like a tiny storefront.
type fakeShop struct {
	*sessiontest.Fake
	cart     []string
	products []string
	coupon   string
}

func newFakeShop() *fakeShop {
	s := &fakeShop{
		Fake:     sessiontest.New(),
		products: []string{"Laptop Pro 14", "USB-C Hub", "Sauce Labs Backpack"},
	}
	s.OnGoto = func(f *sessiontest.Fake, url string) { s.render(url) }
	return s
}

func (s *fakeShop) open() (*LoginPage, *HomePage, *ProductsPage, *CartPage, *CheckoutPage) {
	b := pages.NewBase(s.Fake, shopURL, "shots", logger.Discard())
	return NewLoginPage(b), NewHomePage(b), NewProductsPage(b), NewCartPage(b), NewCheckoutPage(b)
}

func (s *fakeShop) header() {
	s.SetText(cartBadge, strconv.Itoa(len(s.cart)))
	s.Set(cartIcon, &sessiontest.Element{OnClick: func(*sessiontest.Fake) { s.visit("/cart") }})
}

func (s *fakeShop) visit(path string) {
	s.CurrentURL = shopURL + path
	s.render(s.CurrentURL)
}

func (s *fakeShop) render(url string) {
	loggedIn := s.Elements[logoutButton] != nil
	s.Elements = map[string]*sessiontest.Element{}
	s.Lists = map[string][]string{}
	if loggedIn {
		s.Set(logoutButton, &sessiontest.Element{})
	}
	s.header()

	switch url {
	case shopURL + "/login":
		s.renderLogin()
	case shopURL + "/products":
		s.renderProducts()
	case shopURL + "/cart":
		s.renderCart()
	case shopURL + "/checkout":
		s.renderCheckout()
	}
}

func (s *fakeShop) renderLogin() {
	s.Set(loginEmail, &sessiontest.Element{})
	s.Set(loginPassword, &sessiontest.Element{})
	s.Set(loginSubmit, &sessiontest.Element{OnClick: func(f *sessiontest.Fake) {
		id, _ := f.Filled(loginEmail)
		secret, _ := f.Filled(loginPassword)
		if id == dataset.ValidUser.Identifier && secret == dataset.ValidUser.Secret {
			f.Set(logoutButton, &sessiontest.Element{})
			s.visit("/")
			return
		}
		f.SetText(loginError, "Invalid email or password")
	}})
}

func (s *fakeShop) renderProducts() {
	s.SetList(productItems, s.products...)
	s.SetList(productName, s.products...)
	s.Set(session.First(addToCartButtons), &sessiontest.Element{OnClick: func(*sessiontest.Fake) {
		s.cart = append(s.cart, s.products[0])
		s.header()
	}})
	for _, name := range s.products {
		name := name
		s.Set(session.Within(productCard(name), addToCartButtons), &sessiontest.Element{OnClick: func(*sessiontest.Fake) {
			s.cart = append(s.cart, name)
			s.header()
		}})
	}
}

func (s *fakeShop) renderCart() {
	if len(s.cart) == 0 {
		s.SetText(emptyCart, "Your cart is empty")
		return
	}
	s.SetList(cartItems, s.cart...)
	s.SetList(itemName, s.cart...)
	for i := range s.cart {
		i := i
		s.Set(session.Nth(removeItem, i), &sessiontest.Element{OnClick: func(*sessiontest.Fake) {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.visit("/cart")
		}})
	}
	s.Set(couponInput, &sessiontest.Element{})
	s.Set(applyCoupon, &sessiontest.Element{OnClick: func(f *sessiontest.Fake) {
		code, _ := f.Filled(couponInput)
		s.coupon = code
		s.visit("/cart")
	}})
	s.SetText(cartSubtotal, "$100.00")
	switch dataset.Classify(s.coupon) {
	case dataset.PromoValid:
		s.SetText(couponMessage, "Coupon SAVE10 applied: 10% off")
		s.SetText(cartDiscount, "-$10.00")
	case dataset.PromoInvalid:
		if s.coupon != "" {
			s.SetText(couponMessage, "Invalid coupon code")
		}
	}
	s.Set(checkoutButton, &sessiontest.Element{OnClick: func(*sessiontest.Fake) { s.visit("/checkout") }})
}

func (s *fakeShop) renderCheckout() {
	for _, sel := range []string{
		shipFirstName, shipLastName, shipEmail, shipPhone, shipAddress, shipCity, shipState, shipZip,
		cardNameInput, cardNumberInput, cardExpiryInput, cardCVCInput, sameAsShipping,
	} {
		s.Set(sel, &sessiontest.Element{})
	}
	s.Set(shipCountry, &sessiontest.Element{Options: []string{"US", "CA", "GB"}})
	s.SetList(shippingMethods, "standard", "express")
	s.Set(session.Nth(shippingMethods, 0), &sessiontest.Element{})
	s.Set(session.Nth(shippingMethods, 1), &sessiontest.Element{})
	s.SetText(summaryTotal, "$113.00")
	s.Set(placeOrderButton, &sessiontest.Element{OnClick: func(f *sessiontest.Fake) {
		if v, _ := f.Filled(shipFirstName); v == "" {
			f.SetText(checkoutError, "First name is required")
			return
		}
		f.CurrentURL = shopURL + "/order/payment?ref=abc"
		f.Elements = map[string]*sessiontest.Element{}
		f.Set(submitPaymentButton, &sessiontest.Element{OnClick: func(f *sessiontest.Fake) {
			f.CurrentURL = shopURL + "/order/success?ref=abc"
			f.Elements = map[string]*sessiontest.Element{}
			f.SetText(orderConfirmation, "Thank you for your order")
			f.SetText(orderReference, "abc")
		}})
	}})
}

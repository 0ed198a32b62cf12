package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/models"
	"github.com/themizzi/storefront-e2e/internal/services"
)

type country struct {
	Code string
	Name string
}

var countries = []country{
	{"US", "United States"},
	{"CA", "Canada"},
	{"GB", "United Kingdom"},
	{"DE", "Germany"},
	{"AU", "Australia"},
}

// CheckoutHandler serves the checkout form and turns a placed order into a
// pending payment.
type CheckoutHandler struct {
	view     view
	carts    *services.CartService
	payments services.PaymentService
	currency string
	log      *log.Logger
}

func NewCheckoutHandler(v view, carts *services.CartService, payments services.PaymentService, logger *log.Logger) *CheckoutHandler {
	return &CheckoutHandler{view: v, carts: carts, payments: payments, currency: "USD", log: logger}
}

// CheckoutForm holds the posted checkout fields so a rejected form can be
// shown again as it was submitted.
type CheckoutForm struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	Zip            string
	Country        string
	SameAsShipping bool

	BillingFirstName string
	BillingLastName  string
	BillingAddress   string

	CardName   string
	CardNumber string
	CardExpiry string
	CardCVC    string
}

func parseCheckoutForm(r *http.Request) CheckoutForm {
	v := func(name string) string { return strings.TrimSpace(r.FormValue(name)) }
	return CheckoutForm{
		FirstName:        v("first_name"),
		LastName:         v("last_name"),
		Email:            v("email"),
		Phone:            v("phone"),
		Address:          v("address"),
		City:             v("city"),
		State:            v("state"),
		Zip:              v("zip"),
		Country:          v("country"),
		SameAsShipping:   r.FormValue("same_as_shipping") != "",
		BillingFirstName: v("billing_first_name"),
		BillingLastName:  v("billing_last_name"),
		BillingAddress:   v("billing_address"),
		CardName:         v("card_name"),
		CardNumber:       strings.ReplaceAll(v("card_number"), " ", ""),
		CardExpiry:       v("card_expiry"),
		CardCVC:          v("card_cvc"),
	}
}

// Missing lists the labels of required fields left blank. Billing fields are
// only required when billing differs from shipping.
func (f CheckoutForm) Missing() []string {
	required := []struct{ label, value string }{
		{"first name", f.FirstName},
		{"last name", f.LastName},
		{"email", f.Email},
		{"address", f.Address},
		{"city", f.City},
		{"ZIP code", f.Zip},
		{"card number", f.CardNumber},
		{"expiry date", f.CardExpiry},
		{"CVC", f.CardCVC},
	}
	if !f.SameAsShipping {
		required = append(required,
			struct{ label, value string }{"billing first name", f.BillingFirstName},
			struct{ label, value string }{"billing last name", f.BillingLastName},
			struct{ label, value string }{"billing address", f.BillingAddress},
		)
	}

	var missing []string
	for _, field := range required {
		if field.value == "" {
			missing = append(missing, field.label)
		}
	}
	return missing
}

func (f CheckoutForm) card() services.Card {
	holder := f.CardName
	if holder == "" {
		holder = strings.TrimSpace(f.FirstName + " " + f.LastName)
	}
	return services.Card{
		Holder: holder,
		Number: f.CardNumber,
		Expiry: f.CardExpiry,
		CVC:    f.CardCVC,
	}
}

type checkoutView struct {
	Page
	Error           string
	Notice          string
	Form            CheckoutForm
	Countries       []country
	ShippingOptions []models.ShippingOption
	Shipping        models.ShippingMethod
	Lines           []models.CartLine
	Totals          models.Totals
}

func (h *CheckoutHandler) render(w http.ResponseWriter, r *http.Request, status int, data checkoutView) {
	cart := h.carts.Cart(SessionID(r.Context()))
	data.Page = h.view.page(r, "Checkout")
	data.Countries = countries
	data.ShippingOptions = models.ShippingOptions()
	data.Shipping = cart.Shipping
	data.Lines = cart.Lines
	data.Totals = models.ComputeTotals(&cart)
	h.view.Render(w, status, "checkout", data)
}

func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := checkoutView{Form: CheckoutForm{Country: "US"}}
	if claims := CurrentUser(r.Context()); claims != nil && strings.Contains(claims.Subject, "@") {
		data.Form.Email = claims.Subject
	}
	h.render(w, r, http.StatusOK, data)
}

// Submit handles the form buttons: applying or removing a gift card
// re-renders the form, placing the order validates it and starts the payment.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	form := parseCheckoutForm(r)
	if method := r.FormValue("shipping_method"); method != "" {
		h.carts.SetShipping(sid, models.ParseShippingMethod(method))
	}

	switch r.FormValue("action") {
	case "gift":
		message, ok := h.carts.ApplyGiftCard(sid, r.FormValue("gift_card"))
		data := checkoutView{Form: form}
		if ok {
			data.Notice = message
		} else {
			data.Error = message
		}
		h.render(w, r, http.StatusOK, data)
		return
	case "remove_gift":
		h.carts.RemoveGiftCard(sid)
		h.render(w, r, http.StatusOK, checkoutView{Form: form, Notice: "Gift card removed"})
		return
	}

	fail := func(message string) {
		h.render(w, r, http.StatusUnprocessableEntity, checkoutView{Form: form, Error: message})
	}

	if missing := form.Missing(); len(missing) > 0 {
		fail("Please fill in the required fields: " + strings.Join(missing, ", "))
		return
	}
	if !strings.Contains(form.Email, "@") {
		fail("Please enter a valid email address")
		return
	}

	cart := h.carts.Cart(sid)
	if cart.IsEmpty() {
		fail("Your cart is empty")
		return
	}
	totals := models.ComputeTotals(&cart)
	amount := models.MinorUnits(totals.Total)
	if amount <= 0 {
		fail("Order total must be greater than zero")
		return
	}

	result, err := h.payments.StartPayment(&services.StartPaymentRequest{
		CustomerEmail:  form.Email,
		Description:    orderDescription(cart),
		Amount:         amount,
		Currency:       h.currency,
		ShippingMethod: cart.Shipping,
		Card:           form.card(),
		SessionID:      sid,
	})
	if err != nil {
		h.log.Error("Error starting payment", "session", sid, "err", err)
		fail("We could not place your order. Please try again.")
		return
	}

	h.log.Info("Order placed", "reference", result.OrderRef, "amount", amount)
	http.Redirect(w, r, "/order/payment?ref="+url.QueryEscape(result.OrderRef), http.StatusSeeOther)
}

func orderDescription(c models.Cart) string {
	if len(c.Lines) == 1 {
		return fmt.Sprintf("%s x %d", c.Lines[0].Name, c.Lines[0].Quantity)
	}
	return fmt.Sprintf("%s and %d more", c.Lines[0].Name, len(c.Lines)-1)
}

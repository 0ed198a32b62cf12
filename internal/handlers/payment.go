package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/models"
	"github.com/themizzi/storefront-e2e/internal/services"
)

// PaymentHandler shows the pay-now step for a placed order and submits the
// card held for it.
type PaymentHandler struct {
	view     view
	orders   services.OrderService
	payments services.PaymentService
	carts    *services.CartService
	log      *log.Logger
}

func NewPaymentHandler(v view, orders services.OrderService, payments services.PaymentService, carts *services.CartService, logger *log.Logger) *PaymentHandler {
	return &PaymentHandler{view: v, orders: orders, payments: payments, carts: carts, log: logger}
}

type paymentView struct {
	Page
	Order *models.Order
}

func (h *PaymentHandler) Show(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("ref")
	order, err := h.orders.Find(reference)
	if err != nil {
		h.view.notFound(w, r, "We could not find that order.")
		return
	}
	if !order.IsPending() {
		http.Redirect(w, r, resultURL(order, "", ""), http.StatusSeeOther)
		return
	}
	h.view.Render(w, http.StatusOK, "payment", paymentView{
		Page:  h.view.page(r, "Payment"),
		Order: order,
	})
}

// Submit authorizes the payment. Authorized orders empty the cart and land on
// the confirmation page; everything else lands on the failure page.
func (h *PaymentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	reference := r.FormValue("ref")
	result, err := h.payments.SubmitPayment(reference, SessionID(r.Context()))
	if errors.Is(err, services.ErrPaymentNotOwned) {
		h.log.Warn("Payment submitted from another session", "reference", reference)
		h.view.notFound(w, r, "We could not find that order.")
		return
	}
	if errors.Is(err, services.ErrNoPendingPayment) {
		// Already submitted; send the shopper to wherever the order ended up.
		order, lookupErr := h.orders.Find(reference)
		if lookupErr != nil {
			h.view.notFound(w, r, "We could not find that order.")
			return
		}
		http.Redirect(w, r, resultURL(order, "", ""), http.StatusSeeOther)
		return
	}
	if err != nil {
		h.log.Error("Error submitting payment", "reference", reference, "err", err)
		http.Redirect(w, r, failureURL(reference, services.ResultError, ""), http.StatusSeeOther)
		return
	}

	if result.Order.IsAuthorized() {
		h.carts.Clear(SessionID(r.Context()))
	}
	http.Redirect(w, r, resultURL(result.Order, result.ResultCode, result.RefusalReason), http.StatusSeeOther)
}

func resultURL(order *models.Order, resultCode, detail string) string {
	switch {
	case order.IsAuthorized():
		return "/order/success?ref=" + url.QueryEscape(order.Reference)
	case order.IsPending():
		return "/order/payment?ref=" + url.QueryEscape(order.Reference)
	}
	if resultCode == "" {
		resultCode = services.ResultRefused
		if order.Status == models.OrderStatusCancelled {
			resultCode = services.ResultCancelled
		}
	}
	return failureURL(order.Reference, resultCode, detail)
}

func failureURL(reference, reason, detail string) string {
	q := url.Values{}
	q.Set("ref", reference)
	q.Set("reason", reason)
	if detail != "" {
		q.Set("detail", detail)
	}
	return "/order/failed?" + q.Encode()
}

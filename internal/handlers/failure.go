package handlers

import (
	"net/http"

	"github.com/themizzi/storefront-e2e/internal/services"
)

var failureMessages = map[string]string{
	services.ResultRefused:   "Your payment was declined. Please check your card details and try again.",
	services.ResultCancelled: "The payment was cancelled. Your cart is still waiting for you.",
	services.ResultError:     "An error occurred while processing your payment. Please try again.",
}

const fallbackFailureMessage = "We couldn't process your payment. Please try again or contact support."

func failureMessage(reason string) string {
	if msg, ok := failureMessages[reason]; ok {
		return msg
	}
	return fallbackFailureMessage
}

// FailedOrderView is rendered by /order/failed. The cart is left intact so
// the shopper can go back and retry.
type FailedOrderView struct {
	Page
	OrderReference string
	Reason         string
	Message        string
	Detail         string
}

type failureHandler struct {
	view view
}

func NewFailureHandler(v view) http.Handler {
	return &failureHandler{view: v}
}

func (h *failureHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.view.Render(w, http.StatusOK, "failure", FailedOrderView{
		Page:           h.view.page(r, "Payment failed"),
		OrderReference: q.Get("ref"),
		Reason:         q.Get("reason"),
		Message:        failureMessage(q.Get("reason")),
		Detail:         q.Get("detail"),
	})
}

package handlers

import (
	"net/http"

	"github.com/themizzi/storefront-e2e/internal/models"
	"github.com/themizzi/storefront-e2e/internal/services"
)

// ConfirmationHandler handles the order confirmation page
type ConfirmationHandler struct {
	view   view
	orders services.OrderService
}

func NewConfirmationHandler(v view, orders services.OrderService) *ConfirmationHandler {
	return &ConfirmationHandler{view: v, orders: orders}
}

// ConfirmationData represents the data for the confirmation template
type ConfirmationData struct {
	Page
	Order  *models.Order
	Status string
}

// ServeHTTP renders the confirmation for an authorized order. Any other
// order is sent to wherever its status belongs.
func (h *ConfirmationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Find(r.URL.Query().Get("ref"))
	if err != nil {
		h.view.notFound(w, r, "We could not find that order.")
		return
	}
	if !order.IsAuthorized() {
		http.Redirect(w, r, resultURL(order, "", ""), http.StatusSeeOther)
		return
	}

	h.view.Render(w, http.StatusOK, "confirmation", ConfirmationData{
		Page:   h.view.page(r, "Order confirmed"),
		Order:  order,
		Status: "Authorized",
	})
}

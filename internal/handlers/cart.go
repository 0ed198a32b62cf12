package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/themizzi/storefront-e2e/internal/dataset"
	"github.com/themizzi/storefront-e2e/internal/models"
	"github.com/themizzi/storefront-e2e/internal/services"
)

// CartHandler serves the cart page and its form actions. Every action
// redirects back to /cart so a reload never resubmits.
type CartHandler struct {
	view    view
	carts   *services.CartService
	flashes *flashStore
	log     *log.Logger
}

func NewCartHandler(v view, carts *services.CartService, logger *log.Logger) *CartHandler {
	return &CartHandler{view: v, carts: carts, flashes: newFlashStore(), log: logger}
}

type cartView struct {
	Page
	Error           string
	Cart            models.Cart
	Coupon          *services.CouponResult
	ShippingOptions []models.ShippingOption
	Totals          models.Totals
}

// TotalsResponse is the JSON body returned when shipping changes in place.
type TotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Gift     string `json:"gift"`
	Total    string `json:"total"`
}

func newTotalsResponse(t models.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal: dataset.FormatPrice(t.Subtotal),
		Discount: dataset.FormatPrice(t.Discount),
		Shipping: dataset.FormatPrice(t.Shipping),
		Tax:      dataset.FormatPrice(t.Tax),
		Gift:     dataset.FormatPrice(t.Gift),
		Total:    dataset.FormatPrice(t.Total),
	}
}

func (h *CartHandler) Show(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	cart := h.carts.Cart(sid)
	f := h.flashes.take(sid)

	h.view.Render(w, http.StatusOK, "cart", cartView{
		Page:            h.view.page(r, "Cart"),
		Error:           f.Error,
		Cart:            cart,
		Coupon:          f.Coupon,
		ShippingOptions: models.ShippingOptions(),
		Totals:          models.ComputeTotals(&cart),
	})
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	productID := r.FormValue("product_id")
	if err := h.carts.Add(sid, productID); err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			h.view.notFound(w, r, "We could not find that product.")
			return
		}
		h.log.Error("Error adding to cart", "product", productID, "err", err)
		http.Error(w, "Failed to add to cart", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, safeReturn(r.FormValue("return"), "/products"), http.StatusSeeOther)
}

// Update sets the quantity of one line from the quantity field.
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, func(sid string, index int) error {
		qty, err := strconv.Atoi(strings.TrimSpace(r.FormValue("quantity")))
		if err != nil {
			return models.ErrInvalidQuantity
		}
		return h.carts.SetQuantity(sid, index, qty)
	})
}

func (h *CartHandler) Increase(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, func(sid string, index int) error {
		return h.carts.Adjust(sid, index, 1)
	})
}

func (h *CartHandler) Decrease(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, func(sid string, index int) error {
		return h.carts.Adjust(sid, index, -1)
	})
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.lineAction(w, r, func(sid string, index int) error {
		return h.carts.Remove(sid, index)
	})
}

func (h *CartHandler) lineAction(w http.ResponseWriter, r *http.Request, fn func(sid string, index int) error) {
	sid := SessionID(r.Context())
	index, err := strconv.Atoi(r.FormValue("index"))
	if err != nil {
		err = models.ErrLineNotFound
	} else {
		err = fn(sid, index)
	}
	if err != nil {
		h.flashes.put(sid, flash{Error: capitalize(err.Error())})
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	result := h.carts.ApplyCoupon(sid, r.FormValue("code"))
	h.flashes.put(sid, flash{Coupon: &result})
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *CartHandler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	h.carts.RemoveCoupon(SessionID(r.Context()))
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Shipping changes the shipping method. Script callers asking for JSON get
// the new totals back; plain form posts are redirected to the cart.
func (h *CartHandler) Shipping(w http.ResponseWriter, r *http.Request) {
	sid := SessionID(r.Context())
	h.carts.SetShipping(sid, models.ParseShippingMethod(r.FormValue("shipping")))

	if !strings.Contains(r.Header.Get("Accept"), "application/json") {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	cart := h.carts.Cart(sid)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(newTotalsResponse(models.ComputeTotals(&cart))); err != nil {
		h.log.Error("Error encoding response", "err", err)
	}
}

package handlers

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/themizzi/storefront-e2e/internal/services"
)

// Dependencies is everything the storefront routes need.
type Dependencies struct {
	Assets   fs.FS
	Logger   *log.Logger
	Catalog  *services.CatalogService
	Auth     *services.AuthService
	Carts    *services.CartService
	Orders   services.OrderService
	Payments services.PaymentService
}

// NewRouter wires every storefront page onto a chi router.
func NewRouter(deps Dependencies) (http.Handler, error) {
	renderer, err := NewRenderer(deps.Assets, deps.Logger)
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(deps.Assets, "static")
	if err != nil {
		return nil, fmt.Errorf("failed to open static assets: %w", err)
	}

	v := view{Renderer: renderer, carts: deps.Carts}
	sessions := NewSessions(deps.Auth, deps.Logger)

	auth := NewAuthHandler(v, deps.Auth, sessions, deps.Logger)
	products := NewProductHandler(v, deps.Catalog)
	cart := NewCartHandler(v, deps.Carts, deps.Logger)
	checkout := NewCheckoutHandler(v, deps.Carts, deps.Payments, deps.Logger)
	payment := NewPaymentHandler(v, deps.Orders, deps.Payments, deps.Carts, deps.Logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(deps.Logger))
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)

		r.Get("/", products.Home)
		r.Get("/products", products.List)
		r.Get("/products/{id}", products.Detail)

		r.Get("/login", auth.LoginPage)
		r.Post("/login", auth.Login)
		r.Get("/register", auth.RegisterPage)
		r.Post("/register", auth.Register)
		r.Get("/forgot-password", auth.ForgotPage)
		r.Post("/forgot-password", auth.Forgot)
		r.Post("/logout", auth.Logout)

		r.Get("/cart", cart.Show)
		r.Post("/cart/add", cart.Add)
		r.Post("/cart/update", cart.Update)
		r.Post("/cart/increase", cart.Increase)
		r.Post("/cart/decrease", cart.Decrease)
		r.Post("/cart/remove", cart.Remove)
		r.Post("/cart/coupon", cart.ApplyCoupon)
		r.Post("/cart/coupon/remove", cart.RemoveCoupon)
		r.Post("/cart/shipping", cart.Shipping)

		r.Get("/checkout", checkout.Show)
		r.Post("/checkout", checkout.Submit)

		r.Get("/order/payment", payment.Show)
		r.Post("/order/payment", payment.Submit)
		r.Method(http.MethodGet, "/order/success", NewConfirmationHandler(v, deps.Orders))
		r.Method(http.MethodGet, "/order/failed", NewFailureHandler(v))

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			v.notFound(w, r, "The page you are looking for does not exist.")
		})
	})

	return r, nil
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("Request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(start),
				"requestID", middleware.GetReqID(r.Context()),
			)
		})
	}
}

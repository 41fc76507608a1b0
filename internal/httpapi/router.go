package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RouterDeps carries the services the HTTP surface is built from.
type RouterDeps struct {
	Carts          CartService
	Checkout       CheckoutService
	Queries        OrderQueries
	Users          UserReader
	RequestTimeout time.Duration
}

// NewRouter assembles the chi router with global middleware, the public cart
// and order routes, and the admin group behind the role check.
func NewRouter(deps RouterDeps) http.Handler {
	cartHandler := NewCartHandler(deps.Carts, deps.RequestTimeout)
	ordersHandler := NewOrdersHandler(deps.Checkout, deps.Queries, deps.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(HeaderAuthMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{item_id}", cartHandler.UpdateItem)
			r.Delete("/items/{item_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", ordersHandler.CreateOrder)
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{id}", ordersHandler.GetOrder)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminOnly(deps.Users))
			r.Get("/orders", ordersHandler.ListAllOrders)
			r.Put("/orders/{id}/status", ordersHandler.UpdateStatus)
		})
	})

	return otelhttp.NewHandler(r, "rosy-glow")
}

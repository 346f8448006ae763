// Package web is the HTTP adapter: routing, auth middleware, and thin
// handlers that translate JSON requests into ApplicationService calls.
package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"petstore-backend/internal/app"
	"petstore-backend/internal/core"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	jwtSecret string
	logger    *log.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string, logger *log.Logger) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret, logger: logger}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(h.Logger)
	r.Use(h.Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	r.Get("/api/services", h.listServices)
	r.Get("/api/services/{id}", h.getService)
	r.Get("/api/appointments/slots", h.availableSlots)
	r.Get("/api/appointments/feedback", h.listAppointmentFeedback)
	r.Get("/api/products/{id}/feedback", h.listProductFeedback)
	r.Get("/api/products/ratings", h.productRatings)

	// ── Authenticated ─────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.me)
		r.Get("/api/auth/login-history", h.loginHistory)

		// Pets
		r.Post("/api/pets", h.createPet)
		r.Get("/api/pets", h.listPets)
		r.Get("/api/pets/{id}", h.getPet)
		r.Put("/api/pets/{id}", h.updatePet)
		r.Delete("/api/pets/{id}", h.deletePet)

		// Appointments
		r.Post("/api/appointments", h.createAppointment)
		r.Get("/api/appointments", h.listAppointments)
		r.Get("/api/appointments/{id}", h.getAppointment)
		r.Patch("/api/appointments/{id}/status", h.updateAppointmentStatus)
		r.Post("/api/appointments/{id}/feedback", h.createAppointmentFeedback)

		// Orders
		r.Post("/api/orders", h.createOrder)
		r.Get("/api/orders", h.listOrders)
		r.Get("/api/orders/{id}", h.getOrder)
		r.Patch("/api/orders/{id}/status", h.updateOrderStatus)
		r.Post("/api/orders/{id}/feedback", h.createPurchaseFeedback)
		r.Post("/api/orders/{id}/products/{productID}/feedback", h.createProductFeedback)

		// Notifications
		r.Get("/api/notifications", h.listNotifications)
		r.Patch("/api/notifications/{id}/read", h.markNotificationRead)

		// Catalog browsing for signed-in customers
		r.Get("/api/products", h.listProducts)
		r.Get("/api/products/{id}", h.getProduct)

		// ── Staff only ────────────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(h.RequireStaff)

			// Inventory
			r.Post("/api/products", h.createProducts)
			r.Put("/api/products/{id}", h.updateProduct)
			r.Delete("/api/products/{id}", h.deleteProduct)
			r.Post("/api/products/{id}/adjust", h.adjustStock)
			r.Post("/api/products/{id}/restock", h.restock)
			r.Get("/api/inventory/history", h.stockHistory)
			r.Patch("/api/inventory/history/{id}/payment", h.updateHistoryPayment)

			// Suppliers
			r.Post("/api/suppliers", h.createSupplier)
			r.Get("/api/suppliers", h.listSuppliers)
			r.Put("/api/suppliers/{id}", h.updateSupplier)
			r.Delete("/api/suppliers/{id}", h.deleteSupplier)

			// Catalog management
			r.Post("/api/services", h.createService)
			r.Put("/api/services/{id}", h.updateService)
			r.Delete("/api/services/{id}", h.deleteService)

			// Appointments, orders, feedback (staff views)
			r.Get("/api/admin/appointments", h.adminListAppointments)
			r.Patch("/api/admin/appointments/{id}/status", h.adminUpdateAppointmentStatus)
			r.Get("/api/admin/orders", h.adminListOrders)
			r.Patch("/api/admin/orders/{id}/status", h.adminUpdateOrderStatus)
			r.Get("/api/admin/feedback/purchases", h.listPurchaseFeedback)

			// Point of sale
			r.Post("/api/sales", h.createSale)
			r.Get("/api/sales", h.listSales)
			r.Get("/api/sales/stats", h.saleStats)
			r.Get("/api/sales/{id}", h.getSale)
		})
	})

	return r
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// decodeJSON decodes the request body into v, writing an error response and
// returning false on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}

// pathID parses the {id} (or named) URL parameter as an int.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}

// branchParam parses an optional ?branch= query filter.
func branchParam(r *http.Request) *core.Branch {
	raw := r.URL.Query().Get("branch")
	if raw == "" || raw == "all" {
		return nil
	}
	b := core.Branch(raw)
	return &b
}

// dateParam parses an optional ?date=YYYY-MM-DD query filter.
func dateParam(r *http.Request) (*time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, core.InvalidArgumentf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return &d, nil
}

package web

import (
	"net/http"
	"strconv"

	"petstore-backend/internal/core"
)

// createOrder handles POST /api/orders.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req core.CreateOrderInput
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := authFromContext(r.Context())
	req.UserID = claims.UserID

	order, err := h.svc.Orders().Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, order)
}

func orderFilterFromQuery(r *http.Request) core.OrderFilter {
	var filter core.OrderFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := core.OrderStatus(raw)
		filter.Status = &s
	}
	filter.Branch = branchParam(r)
	return filter
}

// listOrders handles GET /api/orders?status=&branch= for the caller.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	orders, err := h.svc.Orders().ListForUser(r.Context(), claims.UserID, orderFilterFromQuery(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, orders)
}

// getOrder handles GET /api/orders/{id}. Staff can fetch any order.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	claims := authFromContext(r.Context())
	order, err := h.svc.Orders().Get(r.Context(), claims.UserID, claims.IsStaff(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// updateOrderStatus handles PATCH /api/orders/{id}/status. Customers may only
// cancel their own pending orders.
func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Status core.OrderStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status != core.OrderCancelled {
		writeError(w, r, "you can only cancel your own orders", "FORBIDDEN", http.StatusForbidden)
		return
	}

	claims := authFromContext(r.Context())
	order, err := h.svc.Orders().CancelOwn(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// adminListOrders handles GET /api/admin/orders?status=&branch=&user=.
func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	filter := orderFilterFromQuery(r)
	if raw := r.URL.Query().Get("user"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, "invalid user filter", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.UserID = &id
	}
	orders, err := h.svc.Orders().ListAll(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, orders)
}

// adminUpdateOrderStatus handles PATCH /api/admin/orders/{id}/status.
func (h *Handler) adminUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Status  core.OrderStatus        `json:"status"`
		Payment *core.OrderPaymentInput `json:"payment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	order, err := h.svc.Orders().UpdateStatus(r.Context(), claims.UserID, id, req.Status, req.Payment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, order)
}

// ── Notifications ─────────────────────────────────────────────────────────────

// listNotifications handles GET /api/notifications — unread messages for
// orders still awaiting pickup.
func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	notifications, err := h.svc.Orders().ListNotifications(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, notifications)
}

// markNotificationRead handles PATCH /api/notifications/{id}/read.
func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid notification id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	claims := authFromContext(r.Context())
	if err := h.svc.Orders().MarkNotificationRead(r.Context(), claims.UserID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Feedback ──────────────────────────────────────────────────────────────────

// createPurchaseFeedback handles POST /api/orders/{id}/feedback.
func (h *Handler) createPurchaseFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := authFromContext(r.Context())
	feedback, err := h.svc.Orders().CreatePurchaseFeedback(r.Context(), claims.UserID, id, req.Rating, req.Comment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, feedback)
}

// listPurchaseFeedback handles GET /api/admin/feedback/purchases.
func (h *Handler) listPurchaseFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.svc.Orders().ListPurchaseFeedback(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, feedback)
}

// createProductFeedback handles POST /api/orders/{id}/products/{productID}/feedback.
func (h *Handler) createProductFeedback(w http.ResponseWriter, r *http.Request) {
	orderID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid order id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := authFromContext(r.Context())
	feedback, err := h.svc.Orders().CreateProductFeedback(r.Context(), claims.UserID, orderID, productID, req.Rating, req.Comment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, feedback)
}

// listProductFeedback handles GET /api/products/{id}/feedback (public).
func (h *Handler) listProductFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	feedback, err := h.svc.Orders().ListProductFeedback(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, feedback)
}

// productRatings handles GET /api/products/ratings (public).
func (h *Handler) productRatings(w http.ResponseWriter, r *http.Request) {
	ratings, err := h.svc.Orders().ProductRatings(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, ratings)
}

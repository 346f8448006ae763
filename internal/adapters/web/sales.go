package web

import (
	"net/http"

	"petstore-backend/internal/core"
)

// createSale handles POST /api/sales.
func (h *Handler) createSale(w http.ResponseWriter, r *http.Request) {
	var req core.CreateSaleInput
	if !decodeJSON(w, r, &req) {
		return
	}
	claims := authFromContext(r.Context())
	req.CashierID = claims.UserID

	sale, err := h.svc.Sales().Create(r.Context(), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, sale)
}

func saleFilterFromQuery(r *http.Request) (core.SaleFilter, error) {
	var filter core.SaleFilter
	filter.Branch = branchParam(r)
	date, err := dateParam(r)
	if err != nil {
		return filter, err
	}
	filter.Date = date
	if raw := r.URL.Query().Get("status"); raw != "" && raw != "all" {
		s := core.SaleStatus(raw)
		filter.Status = &s
	}
	return filter, nil
}

// listSales handles GET /api/sales?branch=&date=&status=.
func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	filter, err := saleFilterFromQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	sales, err := h.svc.Sales().List(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, sales)
}

// getSale handles GET /api/sales/{id}.
func (h *Handler) getSale(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid sale id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	sale, err := h.svc.Sales().Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, sale)
}

// saleStats handles GET /api/sales/stats?branch=&date=.
func (h *Handler) saleStats(w http.ResponseWriter, r *http.Request) {
	filter, err := saleFilterFromQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	stats, err := h.svc.Sales().Stats(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

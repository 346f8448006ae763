package web

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"petstore-backend/internal/core"
)

// createProducts handles POST /api/products. Accepts a single product object
// or an array; either way the batch commits atomically.
func (h *Handler) createProducts(w http.ResponseWriter, r *http.Request) {
	var raw json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	var inputs []core.ProductInput
	if len(raw) > 0 && raw[0] == '[' {
		if err := json.Unmarshal(raw, &inputs); err != nil {
			writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
	} else {
		var single core.ProductInput
		if err := json.Unmarshal(raw, &single); err != nil {
			writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		inputs = []core.ProductInput{single}
	}

	products, err := h.svc.Inventory().CreateProducts(r.Context(), inputs)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	if len(products) == 1 {
		writeCreated(w, products[0])
		return
	}
	writeCreated(w, products)
}

// listProducts handles GET /api/products?branch=.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.svc.Inventory().GetProducts(r.Context(), branchParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, products)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	product, err := h.svc.Inventory().GetProduct(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// updateProduct handles PUT /api/products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.ProductInput
	if !decodeJSON(w, r, &input) {
		return
	}
	product, err := h.svc.Inventory().UpdateProduct(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, product)
}

// deleteProduct handles DELETE /api/products/{id}.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.Inventory().DeleteProduct(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// adjustStock handles POST /api/products/{id}/adjust — the general ledger
// adjustment endpoint.
func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var req struct {
		Operation       core.StockOperation  `json:"operation"`
		Quantity        int                  `json:"quantity"`
		TransactionType core.TransactionType `json:"transaction_type"`
		Reason          string               `json:"reason"`
		Supplier        string               `json:"supplier"`
		UnitCost        *decimal.Decimal     `json:"unit_cost"`
		AmountPaid      *decimal.Decimal     `json:"amount_paid"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	product, entry, err := h.svc.Inventory().AdjustStock(r.Context(), core.AdjustStockInput{
		ProductID:       id,
		Operation:       req.Operation,
		Quantity:        req.Quantity,
		TransactionType: req.TransactionType,
		Reason:          req.Reason,
		UserID:          &claims.UserID,
		Supplier:        req.Supplier,
		UnitCost:        req.UnitCost,
		AmountPaid:      req.AmountPaid,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"product": product, "history": entry})
}

// restock handles POST /api/products/{id}/restock.
func (h *Handler) restock(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	var req struct {
		Quantity   int              `json:"quantity"`
		Supplier   string           `json:"supplier"`
		UnitCost   *decimal.Decimal `json:"unit_cost"`
		AmountPaid *decimal.Decimal `json:"amount_paid"`
		Reason     string           `json:"reason"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	claims := authFromContext(r.Context())
	product, entry, err := h.svc.Inventory().Restock(r.Context(), core.RestockInput{
		ProductID:  id,
		Quantity:   req.Quantity,
		Supplier:   req.Supplier,
		UnitCost:   req.UnitCost,
		AmountPaid: req.AmountPaid,
		Reason:     req.Reason,
		UserID:     &claims.UserID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, map[string]any{"product": product, "history": entry})
}

// stockHistory handles GET /api/inventory/history?product=&branch=&type=.
func (h *Handler) stockHistory(w http.ResponseWriter, r *http.Request) {
	var filter core.HistoryFilter
	filter.Branch = branchParam(r)
	if raw := r.URL.Query().Get("product"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, "invalid product filter", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		filter.ProductID = &id
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		t := core.TransactionType(raw)
		filter.TransactionType = &t
	}

	entries, err := h.svc.Inventory().History(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entries)
}

// updateHistoryPayment handles PATCH /api/inventory/history/{id}/payment.
func (h *Handler) updateHistoryPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid history id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		AmountPaid decimal.Decimal `json:"amount_paid"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	entry, err := h.svc.Inventory().UpdateHistoryPayment(r.Context(), id, req.AmountPaid)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, entry)
}

// ── Suppliers ─────────────────────────────────────────────────────────────────

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var input core.SupplierInput
	if !decodeJSON(w, r, &input) {
		return
	}
	supplier, err := h.svc.Inventory().CreateSupplier(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, supplier)
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.svc.Inventory().GetSuppliers(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, suppliers)
}

func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.SupplierInput
	if !decodeJSON(w, r, &input) {
		return
	}
	supplier, err := h.svc.Inventory().UpdateSupplier(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, supplier)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid supplier id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.Inventory().DeleteSupplier(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

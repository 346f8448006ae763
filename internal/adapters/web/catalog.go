package web

import (
	"net/http"

	"petstore-backend/internal/core"
)

// createService handles POST /api/services.
func (h *Handler) createService(w http.ResponseWriter, r *http.Request) {
	var input core.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}
	svc, err := h.svc.Catalog().CreateService(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, svc)
}

// listServices handles GET /api/services.
func (h *Handler) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.svc.Catalog().GetServices(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, services)
}

// getService handles GET /api/services/{id}.
func (h *Handler) getService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid service id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	svc, err := h.svc.Catalog().GetService(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, svc)
}

// updateService handles PUT /api/services/{id}.
func (h *Handler) updateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid service id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.ServiceInput
	if !decodeJSON(w, r, &input) {
		return
	}
	svc, err := h.svc.Catalog().UpdateService(r.Context(), id, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, svc)
}

// deleteService handles DELETE /api/services/{id}.
func (h *Handler) deleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid service id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if err := h.svc.Catalog().DeleteService(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

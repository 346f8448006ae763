package web

import (
	"net/http"

	"petstore-backend/internal/core"
)

// createPet handles POST /api/pets.
func (h *Handler) createPet(w http.ResponseWriter, r *http.Request) {
	var input core.PetInput
	if !decodeJSON(w, r, &input) {
		return
	}
	claims := authFromContext(r.Context())
	pet, err := h.svc.Pets().Create(r.Context(), claims.UserID, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, pet)
}

// listPets handles GET /api/pets.
func (h *Handler) listPets(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	pets, err := h.svc.Pets().ListForOwner(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, pets)
}

// getPet handles GET /api/pets/{id}.
func (h *Handler) getPet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid pet id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	claims := authFromContext(r.Context())
	pet, err := h.svc.Pets().Get(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, pet)
}

// updatePet handles PUT /api/pets/{id}.
func (h *Handler) updatePet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid pet id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var input core.PetInput
	if !decodeJSON(w, r, &input) {
		return
	}
	claims := authFromContext(r.Context())
	pet, err := h.svc.Pets().Update(r.Context(), claims.UserID, id, input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, pet)
}

// deletePet handles DELETE /api/pets/{id}.
func (h *Handler) deletePet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid pet id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	claims := authFromContext(r.Context())
	if err := h.svc.Pets().Delete(r.Context(), claims.UserID, id); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

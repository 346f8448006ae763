package web

import (
	"encoding/json"
	"net/http"

	"petstore-backend/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeDomainError maps a core service error onto HTTP. DomainError kinds get
// stable codes; anything else is a 500 with the detail kept server-side.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch core.KindOf(err) {
	case core.KindNotFound:
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case core.KindInvalidArgument:
		writeError(w, r, err.Error(), "INVALID_ARGUMENT", http.StatusBadRequest)
	case core.KindInsufficientStock:
		writeError(w, r, err.Error(), "INSUFFICIENT_STOCK", http.StatusBadRequest)
	case core.KindConflict:
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeCreated writes a JSON response with status 201.
func writeCreated(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(v)
}

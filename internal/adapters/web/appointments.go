package web

import (
	"net/http"
	"strconv"
	"time"

	"petstore-backend/internal/core"
)

// createAppointment handles POST /api/appointments.
func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ServiceID int    `json:"service"`
		PetID     *int   `json:"pet"`
		AddOnIDs  []int  `json:"add_ons"`
		Branch    string `json:"branch"`
		Date      string `json:"appointment_date"`
		StartTime string `json:"start_time"`
		Notes     string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, r, "invalid appointment_date, want YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	claims := authFromContext(r.Context())
	appointment, err := h.svc.Appointments().Create(r.Context(), core.CreateAppointmentInput{
		UserID:    claims.UserID,
		ServiceID: req.ServiceID,
		PetID:     req.PetID,
		AddOnIDs:  req.AddOnIDs,
		Branch:    core.Branch(req.Branch),
		Date:      date,
		StartTime: req.StartTime,
		Notes:     req.Notes,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, appointment)
}

// listAppointments handles GET /api/appointments?status= for the caller.
func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var status *core.AppointmentStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := core.AppointmentStatus(raw)
		status = &s
	}
	appointments, err := h.svc.Appointments().ListForUser(r.Context(), claims.UserID, status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, appointments)
}

// getAppointment handles GET /api/appointments/{id}.
func (h *Handler) getAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid appointment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	claims := authFromContext(r.Context())
	appointment, err := h.svc.Appointments().Get(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, appointment)
}

// updateAppointmentStatus handles PATCH /api/appointments/{id}/status.
// Customers may only cancel their own pending bookings.
func (h *Handler) updateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid appointment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Status core.AppointmentStatus `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Status != core.AppointmentCancelled {
		writeError(w, r, "you can only cancel your own appointments", "FORBIDDEN", http.StatusForbidden)
		return
	}

	claims := authFromContext(r.Context())
	appointment, err := h.svc.Appointments().CancelOwn(r.Context(), claims.UserID, id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, appointment)
}

// adminListAppointments handles GET /api/admin/appointments?status=&branch=&date=.
func (h *Handler) adminListAppointments(w http.ResponseWriter, r *http.Request) {
	var filter core.AppointmentFilter
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := core.AppointmentStatus(raw)
		filter.Status = &s
	}
	filter.Branch = branchParam(r)
	date, err := dateParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	filter.Date = date

	appointments, err := h.svc.Appointments().ListAll(r.Context(), filter)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, appointments)
}

// adminUpdateAppointmentStatus handles PATCH /api/admin/appointments/{id}/status.
func (h *Handler) adminUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid appointment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var req struct {
		Status  core.AppointmentStatus        `json:"status"`
		Payment *core.AppointmentPaymentInput `json:"payment"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	appointment, err := h.svc.Appointments().UpdateStatus(r.Context(), id, req.Status, req.Payment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, appointment)
}

// availableSlots handles GET /api/appointments/slots?date=&branch=&service=.
func (h *Handler) availableSlots(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("date") == "" || q.Get("branch") == "" || q.Get("service") == "" {
		writeError(w, r, "date, branch, and service are required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	date, err := dateParam(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	serviceID, err := strconv.Atoi(q.Get("service"))
	if err != nil {
		writeError(w, r, "invalid service id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.Appointments().AvailableSlots(r.Context(), core.SlotQuery{
		Date:      *date,
		Branch:    core.Branch(q.Get("branch")),
		ServiceID: serviceID,
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createAppointmentFeedback handles POST /api/appointments/{id}/feedback.
func (h *Handler) createAppointmentFeedback(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, "invalid appointment id", "BAD_REQUEST", http.StatusBadRequest)
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
	feedback, err := h.svc.Appointments().CreateFeedback(r.Context(), claims.UserID, id, req.Rating, req.Comment)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeCreated(w, feedback)
}

// listAppointmentFeedback handles GET /api/appointments/feedback (public).
func (h *Handler) listAppointmentFeedback(w http.ResponseWriter, r *http.Request) {
	feedback, err := h.svc.Appointments().ListFeedback(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, feedback)
}

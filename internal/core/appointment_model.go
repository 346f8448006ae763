package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// AppointmentStatus is the lifecycle state of a booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled:
		return true
	}
	return false
}

// Appointment is a booked service slot. Times are clock strings ("HH:MM");
// EndTime is derived from the service duration at creation.
type Appointment struct {
	ID          int               `json:"id"`
	UserID      int               `json:"user_id"`
	Username    string            `json:"username,omitempty"`
	ServiceID   int               `json:"service_id"`
	ServiceName string            `json:"service_name"`
	PetID       *int              `json:"pet_id,omitempty"`
	PetName     string            `json:"pet_name,omitempty"`
	AddOns      []Service         `json:"add_ons"`
	Branch      Branch            `json:"branch"`
	Date        time.Time         `json:"appointment_date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
	Status      AppointmentStatus `json:"status"`
	Notes       string            `json:"notes"`
	AmountPaid  *decimal.Decimal  `json:"amount_paid,omitempty"`
	Change      *decimal.Decimal  `json:"change,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateAppointmentInput is a booking request. EndTime is computed, never
// supplied.
type CreateAppointmentInput struct {
	UserID     int
	ServiceID  int              `json:"service"`
	PetID      *int             `json:"pet"`
	AddOnIDs   []int            `json:"add_ons"`
	Branch     Branch           `json:"branch"`
	Date       time.Time        `json:"appointment_date"`
	StartTime  string           `json:"start_time"`
	Notes      string           `json:"notes"`
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	Change     *decimal.Decimal `json:"change"`
}

// AppointmentFilter narrows a staff appointment listing.
type AppointmentFilter struct {
	Status *AppointmentStatus
	Branch *Branch
	Date   *time.Time
}

// AppointmentPaymentInput records payment taken at the counter.
type AppointmentPaymentInput struct {
	AmountPaid *decimal.Decimal `json:"amount_paid"`
	Change     *decimal.Decimal `json:"change"`
}

// AppointmentFeedback is a 1-5 star review of a completed appointment,
// displayed publicly. One per appointment.
type AppointmentFeedback struct {
	ID            int       `json:"id"`
	AppointmentID int       `json:"appointment_id"`
	UserID        int       `json:"user_id"`
	Username      string    `json:"username,omitempty"`
	ServiceName   string    `json:"service_name,omitempty"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
}

// SlotQuery asks for open slots on one day for one service at one branch.
type SlotQuery struct {
	Date      time.Time
	Branch    Branch
	ServiceID int
}

// SlotResult is the availability answer, echoing the query context.
type SlotResult struct {
	Date            string     `json:"date"`
	Branch          Branch     `json:"branch"`
	Service         string     `json:"service"`
	DurationMinutes int        `json:"duration_minutes"`
	MayOverlap      bool       `json:"may_overlap"`
	AvailableSlots  []TimeSlot `json:"available_slots"`
}

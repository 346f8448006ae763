package core

import "fmt"

// Business hours and slot cadence for appointment booking.
const (
	businessOpenMinutes  = 8 * 60  // 08:00
	businessCloseMinutes = 17 * 60 // 17:00
	slotStepMinutes      = 30
)

// TimeSlot is one bookable window, times formatted as HH:MM (24-hour).
type TimeSlot struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Display   string `json:"display"`
}

// BookedInterval is an existing blocking appointment on the queried day,
// expressed in minutes since midnight.
type BookedInterval struct {
	StartMinutes int
	EndMinutes   int
}

// ParseClock parses "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, InvalidArgumentf("invalid time %q, want HH:MM", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, InvalidArgumentf("invalid time %q, want HH:MM", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// formatClock12 renders minutes since midnight in 12-hour form, e.g. "01:30 PM".
func formatClock12(minutes int) string {
	h, m := minutes/60, minutes%60
	suffix := "AM"
	if h >= 12 {
		suffix = "PM"
	}
	h12 := h % 12
	if h12 == 0 {
		h12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", h12, m, suffix)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any time. Back-to-back slots do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// AvailableSlots walks the business day in 30-minute steps and returns every
// slot where a service of the given duration fits. Generation stops once the
// slot end would pass closing time. Overlap-capable services ignore existing
// bookings entirely; all other services are checked against the blocking
// intervals (pending or confirmed, non-overlap-capable appointments).
func AvailableSlots(durationMinutes int, mayOverlap bool, booked []BookedInterval) []TimeSlot {
	slots := []TimeSlot{}
	if durationMinutes <= 0 {
		return slots
	}
	for start := businessOpenMinutes; start < businessCloseMinutes; start += slotStepMinutes {
		end := start + durationMinutes
		if end > businessCloseMinutes {
			break
		}

		available := true
		if !mayOverlap {
			for _, b := range booked {
				if Overlaps(start, end, b.StartMinutes, b.EndMinutes) {
					available = false
					break
				}
			}
		}
		if available {
			slots = append(slots, TimeSlot{
				StartTime: FormatClock(start),
				EndTime:   FormatClock(end),
				Display:   fmt.Sprintf("%s - %s", formatClock12(start), formatClock12(end)),
			})
		}
	}
	return slots
}

// WithinBusinessHours reports whether [startMinutes, endMinutes) fits in the
// 08:00-17:00 booking window.
func WithinBusinessHours(startMinutes, endMinutes int) bool {
	return startMinutes >= businessOpenMinutes && endMinutes <= businessCloseMinutes && startMinutes < endMinutes
}

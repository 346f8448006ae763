package core_test

import (
	"testing"

	"petstore-backend/internal/core"
)

func TestAvailableSlots_BlockingBooking(t *testing.T) {
	// One blocking appointment 09:00-10:00; sixty-minute service.
	booked := []core.BookedInterval{{StartMinutes: 9 * 60, EndMinutes: 10 * 60}}

	slots := core.AvailableSlots(60, false, booked)

	starts := make(map[string]bool)
	for _, s := range slots {
		starts[s.StartTime] = true
	}

	for _, want := range []string{"08:00", "10:00", "16:00"} {
		if !starts[want] {
			t.Errorf("expected %s to be available, got slots %v", want, starts)
		}
	}
	// 08:30 would run into the booking, 09:00/09:30 collide outright, and a
	// 16:30 start would end past closing.
	for _, blocked := range []string{"08:30", "09:00", "09:30", "16:30"} {
		if starts[blocked] {
			t.Errorf("expected %s to be unavailable", blocked)
		}
	}
}

func TestAvailableSlots_MayOverlapIgnoresBookings(t *testing.T) {
	booked := []core.BookedInterval{
		{StartMinutes: 8 * 60, EndMinutes: 17 * 60}, // fully booked day
	}

	slots := core.AvailableSlots(60, true, booked)

	// Starts 08:00 through 16:00 inclusive, every 30 minutes.
	if len(slots) != 17 {
		t.Fatalf("expected 17 slots, got %d", len(slots))
	}
	if slots[0].StartTime != "08:00" || slots[len(slots)-1].StartTime != "16:00" {
		t.Errorf("unexpected slot range %s..%s", slots[0].StartTime, slots[len(slots)-1].StartTime)
	}
}

func TestAvailableSlots_StopsAtClosing(t *testing.T) {
	slots := core.AvailableSlots(30, false, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots for 30-minute service")
	}
	last := slots[len(slots)-1]
	if last.StartTime != "16:30" || last.EndTime != "17:00" {
		t.Errorf("expected last slot 16:30-17:00, got %s-%s", last.StartTime, last.EndTime)
	}
}

func TestAvailableSlots_DurationLongerThanDay(t *testing.T) {
	if slots := core.AvailableSlots(10*60, false, nil); len(slots) != 0 {
		t.Errorf("expected no slots for a 600-minute service, got %d", len(slots))
	}
	if slots := core.AvailableSlots(0, false, nil); len(slots) != 0 {
		t.Errorf("expected no slots for zero duration, got %d", len(slots))
	}
}

func TestAvailableSlots_DisplayFormat(t *testing.T) {
	slots := core.AvailableSlots(90, false, nil)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}
	if slots[0].Display != "08:00 AM - 09:30 AM" {
		t.Errorf("unexpected display %q", slots[0].Display)
	}
	last := slots[len(slots)-1]
	if last.Display != "03:30 PM - 05:00 PM" {
		t.Errorf("unexpected display %q", last.Display)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "08:00", want: 480},
		{in: "17:00", want: 1020},
		{in: "00:00", want: 0},
		{in: "23:59", want: 1439},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := core.ParseClock(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q): expected error, got %d", tt.in, got)
			} else if core.KindOf(err) != core.KindInvalidArgument {
				t.Errorf("ParseClock(%q): expected invalid argument, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q): unexpected error %v", tt.in, err)
		} else if got != tt.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{name: "identical", aStart: 480, aEnd: 540, bStart: 480, bEnd: 540, want: true},
		{name: "partial", aStart: 480, aEnd: 540, bStart: 510, bEnd: 570, want: true},
		{name: "contained", aStart: 480, aEnd: 600, bStart: 510, bEnd: 540, want: true},
		{name: "back to back", aStart: 480, aEnd: 540, bStart: 540, bEnd: 600, want: false},
		{name: "disjoint", aStart: 480, aEnd: 540, bStart: 600, bEnd: 660, want: false},
	}
	for _, tt := range tests {
		if got := core.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd); got != tt.want {
			t.Errorf("%s: Overlaps = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestWithinBusinessHours(t *testing.T) {
	tests := []struct {
		name       string
		start, end int
		want       bool
	}{
		{name: "opening hour", start: 480, end: 540, want: true},
		{name: "ends at close", start: 960, end: 1020, want: true},
		{name: "starts before open", start: 450, end: 510, want: false},
		{name: "ends after close", start: 990, end: 1050, want: false},
		{name: "empty interval", start: 540, end: 540, want: false},
	}
	for _, tt := range tests {
		if got := core.WithinBusinessHours(tt.start, tt.end); got != tt.want {
			t.Errorf("%s: WithinBusinessHours = %v, want %v", tt.name, got, tt.want)
		}
	}
}

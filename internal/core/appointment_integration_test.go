package core_test

import (
	"context"
	"testing"
	"time"

	"petstore-backend/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

func createTestService(t *testing.T, pool *pgxpool.Pool, name string, durationMinutes int, mayOverlap bool) *core.Service {
	t.Helper()
	catalog := core.NewCatalogService(pool)
	svc, err := catalog.CreateService(context.Background(), core.ServiceInput{
		Name:            name,
		DurationMinutes: durationMinutes,
		MayOverlap:      mayOverlap,
		IsSolo:          mayOverlap,
		CanBeStandalone: true,
		BasePrice:       decimal.RequireFromString("500.00"),
		Inclusions:      []string{"Bath", "Blow dry"},
	})
	if err != nil {
		t.Fatalf("Failed to create test service: %v", err)
	}
	return svc
}

func futureDate() time.Time {
	return time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
}

func TestAppointment_Create_ConflictOnOverlap(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	first := createTestUser(t, pool, "user")
	second := createTestUser(t, pool, "user")
	grooming := createTestService(t, pool, "Full Grooming", 60, false)
	date := futureDate()

	booked, err := appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    first.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchMatina,
		Date:      date,
		StartTime: "09:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if booked.Status != core.AppointmentPending {
		t.Errorf("expected pending, got %s", booked.Status)
	}
	if booked.EndTime != "10:00" {
		t.Errorf("expected end time 10:00, got %s", booked.EndTime)
	}

	// A half-overlapping booking for the same branch and day is rejected.
	_, err = appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    second.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchMatina,
		Date:      date,
		StartTime: "09:30",
	})
	if core.KindOf(err) != core.KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// The other branch is a separate calendar.
	if _, err := appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    second.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchToril,
		Date:      date,
		StartTime: "09:30",
	}); err != nil {
		t.Errorf("expected other branch to book freely, got %v", err)
	}
}

func TestAppointment_Create_MayOverlapNeverBlocks(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	customer := createTestUser(t, pool, "user")
	nails := createTestService(t, pool, "Nail Trimming", 30, true)
	date := futureDate()

	for _, start := range []string{"09:00", "09:00", "09:15"} {
		if _, err := appointments.Create(ctx, core.CreateAppointmentInput{
			UserID:    customer.ID,
			ServiceID: nails.ID,
			Branch:    core.BranchMatina,
			Date:      date,
			StartTime: start,
		}); err != nil {
			t.Fatalf("Create at %s: %v", start, err)
		}
	}
}

func TestAppointment_Create_OutsideBusinessHours(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	customer := createTestUser(t, pool, "user")
	grooming := createTestService(t, pool, "Full Grooming", 90, false)

	for _, start := range []string{"07:30", "16:00", "17:00"} {
		_, err := appointments.Create(ctx, core.CreateAppointmentInput{
			UserID:    customer.ID,
			ServiceID: grooming.ID,
			Branch:    core.BranchMatina,
			Date:      futureDate(),
			StartTime: start,
		})
		if core.KindOf(err) != core.KindInvalidArgument {
			t.Errorf("start %s: expected invalid argument, got %v", start, err)
		}
	}
}

func TestAppointment_AvailableSlots(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	customer := createTestUser(t, pool, "user")
	grooming := createTestService(t, pool, "Full Grooming", 60, false)
	nails := createTestService(t, pool, "Nail Trimming", 30, true)
	date := futureDate()

	if _, err := appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    customer.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchMatina,
		Date:      date,
		StartTime: "09:00",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	result, err := appointments.AvailableSlots(ctx, core.SlotQuery{
		Date:      date,
		Branch:    core.BranchMatina,
		ServiceID: grooming.ID,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	starts := make(map[string]bool)
	for _, s := range result.AvailableSlots {
		starts[s.StartTime] = true
	}
	for _, blocked := range []string{"08:30", "09:00", "09:30"} {
		if starts[blocked] {
			t.Errorf("expected %s to be blocked", blocked)
		}
	}
	if !starts["08:00"] || !starts["10:00"] {
		t.Errorf("expected 08:00 and 10:00 to stay available, got %v", starts)
	}

	// Overlap-capable services see the full day regardless of bookings.
	overlapResult, err := appointments.AvailableSlots(ctx, core.SlotQuery{
		Date:      date,
		Branch:    core.BranchMatina,
		ServiceID: nails.ID,
	})
	if err != nil {
		t.Fatalf("AvailableSlots: %v", err)
	}
	if len(overlapResult.AvailableSlots) != 18 {
		t.Errorf("expected 18 slots for a 30-minute overlap service, got %d",
			len(overlapResult.AvailableSlots))
	}
}

func TestAppointment_CancelOwn_PendingOnly(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	customer := createTestUser(t, pool, "user")
	grooming := createTestService(t, pool, "Full Grooming", 60, false)

	booked, err := appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    customer.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchMatina,
		Date:      futureDate(),
		StartTime: "10:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Staff confirms; the customer can no longer cancel.
	if _, err := appointments.UpdateStatus(ctx, booked.ID, core.AppointmentConfirmed, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := appointments.CancelOwn(ctx, customer.ID, booked.ID); core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict cancelling a confirmed appointment, got %v", err)
	}

	// Another customer cannot see or cancel it at all.
	other := createTestUser(t, pool, "user")
	if _, err := appointments.CancelOwn(ctx, other.ID, booked.ID); !core.IsNotFound(err) {
		t.Errorf("expected not found for another user, got %v", err)
	}
}

func TestAppointment_FeedbackRequiresCompletion(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	appointments := core.NewAppointmentService(pool)
	customer := createTestUser(t, pool, "user")
	grooming := createTestService(t, pool, "Full Grooming", 60, false)

	booked, err := appointments.Create(ctx, core.CreateAppointmentInput{
		UserID:    customer.ID,
		ServiceID: grooming.ID,
		Branch:    core.BranchMatina,
		Date:      futureDate(),
		StartTime: "11:00",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := appointments.CreateFeedback(ctx, customer.ID, booked.ID, 5, "great"); core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict before completion, got %v", err)
	}

	if _, err := appointments.UpdateStatus(ctx, booked.ID, core.AppointmentCompleted, nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := appointments.CreateFeedback(ctx, customer.ID, booked.ID, 5, "great"); err != nil {
		t.Fatalf("CreateFeedback: %v", err)
	}
	if _, err := appointments.CreateFeedback(ctx, customer.ID, booked.ID, 4, "again"); core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict on duplicate feedback, got %v", err)
	}
}

package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AppointmentService books service slots and answers availability queries.
type AppointmentService interface {
	Create(ctx context.Context, input CreateAppointmentInput) (*Appointment, error)
	Get(ctx context.Context, userID, appointmentID int) (*Appointment, error)
	ListForUser(ctx context.Context, userID int, status *AppointmentStatus) ([]Appointment, error)
	ListAll(ctx context.Context, filter AppointmentFilter) ([]Appointment, error)

	// CancelOwn lets a customer cancel their own booking while it is still
	// pending. Any other state is rejected.
	CancelOwn(ctx context.Context, userID, appointmentID int) (*Appointment, error)
	// UpdateStatus is the staff transition: any valid status, plus optional
	// payment capture.
	UpdateStatus(ctx context.Context, appointmentID int, status AppointmentStatus, payment *AppointmentPaymentInput) (*Appointment, error)

	AvailableSlots(ctx context.Context, query SlotQuery) (*SlotResult, error)

	CreateFeedback(ctx context.Context, userID, appointmentID, rating int, comment string) (*AppointmentFeedback, error)
	ListFeedback(ctx context.Context) ([]AppointmentFeedback, error)
}

type appointmentService struct {
	pool *pgxpool.Pool
}

func NewAppointmentService(pool *pgxpool.Pool) AppointmentService {
	return &appointmentService{pool: pool}
}

const appointmentColumns = `a.id, a.user_id, u.username, a.service_id, s.service_name,
	a.pet_id, COALESCE(p.pet_name, ''), a.branch, a.appointment_date,
	to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI'),
	a.status, a.notes, a.amount_paid, a.change, a.created_at, a.updated_at`

const appointmentJoins = `
	FROM appointments a
	JOIN users u ON u.id = a.user_id
	JOIN services s ON s.id = a.service_id
	LEFT JOIN pet_profiles p ON p.id = a.pet_id`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(
		&a.ID, &a.UserID, &a.Username, &a.ServiceID, &a.ServiceName,
		&a.PetID, &a.PetName, &a.Branch, &a.Date,
		&a.StartTime, &a.EndTime,
		&a.Status, &a.Notes, &a.AmountPaid, &a.Change, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *appointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*Appointment, error) {
	if !input.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", input.Branch)
	}
	startMinutes, err := ParseClock(input.StartTime)
	if err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		durationMinutes int
		mayOverlap      bool
	)
	err = tx.QueryRow(ctx,
		"SELECT duration_minutes, may_overlap FROM services WHERE id = $1", input.ServiceID,
	).Scan(&durationMinutes, &mayOverlap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("service %d not found", input.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %d: %w", input.ServiceID, err)
	}

	endMinutes := startMinutes + durationMinutes
	if !WithinBusinessHours(startMinutes, endMinutes) {
		return nil, InvalidArgumentf("appointment must fall between 08:00 and 17:00; a %d-minute service starting at %s would end at %s",
			durationMinutes, input.StartTime, FormatClock(endMinutes))
	}

	if input.PetID != nil {
		var owned bool
		err = tx.QueryRow(ctx,
			"SELECT EXISTS (SELECT 1 FROM pet_profiles WHERE id = $1 AND owner_id = $2)",
			*input.PetID, input.UserID,
		).Scan(&owned)
		if err != nil {
			return nil, fmt.Errorf("failed to check pet ownership: %w", err)
		}
		if !owned {
			return nil, NotFoundf("pet %d not found", *input.PetID)
		}
	}

	// Overlap-capable services never contend for slots; everything else is
	// checked against pending/confirmed blocking bookings at the same branch
	// and date. The advisory lock serializes concurrent bookings for one
	// branch/day so the existence check cannot race.
	if !mayOverlap {
		if _, err := tx.Exec(ctx,
			"SELECT pg_advisory_xact_lock(hashtext($1 || ':' || $2::text))",
			input.Branch, input.Date.Format("2006-01-02"),
		); err != nil {
			return nil, fmt.Errorf("failed to lock booking window: %w", err)
		}

		var clash bool
		err = tx.QueryRow(ctx, `
			SELECT EXISTS (
				SELECT 1
				FROM appointments a
				JOIN services s ON s.id = a.service_id
				WHERE a.branch = $1
				  AND a.appointment_date = $2
				  AND a.status IN ('pending', 'confirmed')
				  AND s.may_overlap = false
				  AND a.start_time < $4::time
				  AND a.end_time > $3::time
			)
		`, input.Branch, input.Date, FormatClock(startMinutes), FormatClock(endMinutes)).Scan(&clash)
		if err != nil {
			return nil, fmt.Errorf("failed to check slot availability: %w", err)
		}
		if clash {
			return nil, Conflictf("time slot %s - %s on %s at %s is already booked",
				FormatClock(startMinutes), FormatClock(endMinutes),
				input.Date.Format("2006-01-02"), input.Branch)
		}
	}

	var appointmentID int
	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (user_id, service_id, pet_id, branch, appointment_date,
		                          start_time, end_time, status, notes, amount_paid, change)
		VALUES ($1, $2, $3, $4, $5, $6::time, $7::time, 'pending', $8, $9, $10)
		RETURNING id
	`, input.UserID, input.ServiceID, input.PetID, input.Branch, input.Date,
		FormatClock(startMinutes), FormatClock(endMinutes), input.Notes,
		input.AmountPaid, input.Change,
	).Scan(&appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert appointment: %w", err)
	}

	// Only solo services qualify as add-ons; unknown or unqualified IDs are
	// silently skipped.
	for _, addOnID := range input.AddOnIDs {
		if _, err := tx.Exec(ctx, `
			INSERT INTO appointment_addons (appointment_id, service_id)
			SELECT $1, id FROM services WHERE id = $2 AND is_solo = true
		`, appointmentID, addOnID); err != nil {
			return nil, fmt.Errorf("failed to attach add-on %d: %w", addOnID, err)
		}
	}

	appointment, err := s.fetchTx(ctx, tx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit appointment: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) fetchTx(ctx context.Context, q querier, appointmentID int) (*Appointment, error) {
	appointment, err := scanAppointment(q.QueryRow(ctx,
		"SELECT "+appointmentColumns+appointmentJoins+" WHERE a.id = $1", appointmentID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %d: %w", appointmentID, err)
	}
	if err := s.loadAddOns(ctx, q, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) loadAddOns(ctx context.Context, q querier, appointment *Appointment) error {
	rows, err := q.Query(ctx, `
		SELECT `+serviceColumns+`
		FROM services
		WHERE id IN (SELECT service_id FROM appointment_addons WHERE appointment_id = $1)
		ORDER BY service_name
	`, appointment.ID)
	if err != nil {
		return fmt.Errorf("failed to query add-ons for appointment %d: %w", appointment.ID, err)
	}
	defer rows.Close()

	appointment.AddOns = []Service{}
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return fmt.Errorf("failed to scan add-on: %w", err)
		}
		appointment.AddOns = append(appointment.AddOns, *svc)
	}
	return rows.Err()
}

func (s *appointmentService) Get(ctx context.Context, userID, appointmentID int) (*Appointment, error) {
	appointment, err := scanAppointment(s.pool.QueryRow(ctx,
		"SELECT "+appointmentColumns+appointmentJoins+" WHERE a.id = $1 AND a.user_id = $2",
		appointmentID, userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %d: %w", appointmentID, err)
	}
	if err := s.loadAddOns(ctx, s.pool, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) list(ctx context.Context, where string, args ...any) ([]Appointment, error) {
	rows, err := s.pool.Query(ctx,
		"SELECT "+appointmentColumns+appointmentJoins+where+
			" ORDER BY a.appointment_date, a.start_time", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range appointments {
		if err := s.loadAddOns(ctx, s.pool, &appointments[i]); err != nil {
			return nil, err
		}
	}
	return appointments, nil
}

func (s *appointmentService) ListForUser(ctx context.Context, userID int, status *AppointmentStatus) ([]Appointment, error) {
	if status != nil {
		return s.list(ctx, " WHERE a.user_id = $1 AND a.status = $2", userID, *status)
	}
	return s.list(ctx, " WHERE a.user_id = $1", userID)
}

func (s *appointmentService) ListAll(ctx context.Context, filter AppointmentFilter) ([]Appointment, error) {
	where := " WHERE 1=1"
	var args []any
	if filter.Status != nil {
		args = append(args, *filter.Status)
		where += fmt.Sprintf(" AND a.status = $%d", len(args))
	}
	if filter.Branch != nil {
		args = append(args, *filter.Branch)
		where += fmt.Sprintf(" AND a.branch = $%d", len(args))
	}
	if filter.Date != nil {
		args = append(args, *filter.Date)
		where += fmt.Sprintf(" AND a.appointment_date = $%d", len(args))
	}
	return s.list(ctx, where, args...)
}

func (s *appointmentService) CancelOwn(ctx context.Context, userID, appointmentID int) (*Appointment, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status AppointmentStatus
	err = tx.QueryRow(ctx,
		"SELECT status FROM appointments WHERE id = $1 AND user_id = $2 FOR UPDATE",
		appointmentID, userID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock appointment %d: %w", appointmentID, err)
	}
	if status != AppointmentPending {
		return nil, Conflictf("only pending appointments can be cancelled, current status is %q", status)
	}

	if _, err := tx.Exec(ctx,
		"UPDATE appointments SET status = 'cancelled', updated_at = NOW() WHERE id = $1",
		appointmentID,
	); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment %d: %w", appointmentID, err)
	}

	appointment, err := s.fetchTx(ctx, tx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, appointmentID int, status AppointmentStatus, payment *AppointmentPaymentInput) (*Appointment, error) {
	if !status.Valid() {
		return nil, InvalidArgumentf("unknown appointment status %q", status)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		"UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2",
		status, appointmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update appointment %d status: %w", appointmentID, err)
	}
	if tag.RowsAffected() == 0 {
		return nil, NotFoundf("appointment %d not found", appointmentID)
	}

	if payment != nil {
		if _, err := tx.Exec(ctx, `
			UPDATE appointments
			SET amount_paid = COALESCE($1, amount_paid),
			    change = COALESCE($2, change),
			    updated_at = NOW()
			WHERE id = $3
		`, payment.AmountPaid, payment.Change, appointmentID); err != nil {
			return nil, fmt.Errorf("failed to record payment on appointment %d: %w", appointmentID, err)
		}
	}

	appointment, err := s.fetchTx(ctx, tx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return appointment, nil
}

func (s *appointmentService) AvailableSlots(ctx context.Context, query SlotQuery) (*SlotResult, error) {
	if !query.Branch.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", query.Branch)
	}

	var (
		serviceName     string
		durationMinutes int
		mayOverlap      bool
	)
	err := s.pool.QueryRow(ctx,
		"SELECT service_name, duration_minutes, may_overlap FROM services WHERE id = $1",
		query.ServiceID,
	).Scan(&serviceName, &durationMinutes, &mayOverlap)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("service %d not found", query.ServiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service %d: %w", query.ServiceID, err)
	}

	var booked []BookedInterval
	if !mayOverlap {
		rows, err := s.pool.Query(ctx, `
			SELECT to_char(a.start_time, 'HH24:MI'), to_char(a.end_time, 'HH24:MI')
			FROM appointments a
			JOIN services s ON s.id = a.service_id
			WHERE a.branch = $1
			  AND a.appointment_date = $2
			  AND a.status IN ('pending', 'confirmed')
			  AND s.may_overlap = false
			ORDER BY a.start_time
		`, query.Branch, query.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to query booked appointments: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var startStr, endStr string
			if err := rows.Scan(&startStr, &endStr); err != nil {
				return nil, fmt.Errorf("failed to scan booked interval: %w", err)
			}
			start, err := ParseClock(startStr)
			if err != nil {
				return nil, err
			}
			end, err := ParseClock(endStr)
			if err != nil {
				return nil, err
			}
			booked = append(booked, BookedInterval{StartMinutes: start, EndMinutes: end})
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return &SlotResult{
		Date:            query.Date.Format("2006-01-02"),
		Branch:          query.Branch,
		Service:         serviceName,
		DurationMinutes: durationMinutes,
		MayOverlap:      mayOverlap,
		AvailableSlots:  AvailableSlots(durationMinutes, mayOverlap, booked),
	}, nil
}

func (s *appointmentService) CreateFeedback(ctx context.Context, userID, appointmentID, rating int, comment string) (*AppointmentFeedback, error) {
	if rating < 1 || rating > 5 {
		return nil, InvalidArgumentf("rating must be between 1 and 5, got %d", rating)
	}

	var status AppointmentStatus
	err := s.pool.QueryRow(ctx,
		"SELECT status FROM appointments WHERE id = $1 AND user_id = $2",
		appointmentID, userID,
	).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("appointment %d not found", appointmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch appointment %d: %w", appointmentID, err)
	}
	if status != AppointmentCompleted {
		return nil, Conflictf("feedback is only allowed for completed appointments, current status is %q", status)
	}

	var f AppointmentFeedback
	err = s.pool.QueryRow(ctx, `
		INSERT INTO appointment_feedback (appointment_id, user_id, rating, comment)
		VALUES ($1, $2, $3, $4)
		RETURNING id, appointment_id, user_id, rating, comment, created_at
	`, appointmentID, userID, rating, comment).Scan(
		&f.ID, &f.AppointmentID, &f.UserID, &f.Rating, &f.Comment, &f.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, Conflictf("appointment %d already has feedback", appointmentID)
		}
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}
	return &f, nil
}

func (s *appointmentService) ListFeedback(ctx context.Context) ([]AppointmentFeedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT f.id, f.appointment_id, f.user_id, u.username, s.service_name,
		       f.rating, f.comment, f.created_at
		FROM appointment_feedback f
		JOIN users u ON u.id = f.user_id
		JOIN appointments a ON a.id = f.appointment_id
		JOIN services s ON s.id = a.service_id
		ORDER BY f.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointment feedback: %w", err)
	}
	defer rows.Close()

	var feedback []AppointmentFeedback
	for rows.Next() {
		var f AppointmentFeedback
		if err := rows.Scan(&f.ID, &f.AppointmentID, &f.UserID, &f.Username, &f.ServiceName,
			&f.Rating, &f.Comment, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}

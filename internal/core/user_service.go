package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

const userColumns = "id, username, email, first_name, last_name, password_hash, role, location, is_active, created_at"

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.Role, &u.Location, &u.IsActive, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if input.Username == "" {
		return nil, InvalidArgumentf("username is required")
	}
	if len(input.Password) < 8 {
		return nil, InvalidArgumentf("password must be at least 8 characters")
	}
	role := input.Role
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		return nil, InvalidArgumentf("unknown role %q", role)
	}
	location := input.Location
	if location == "" {
		location = BranchMatina
	}
	if !location.Valid() {
		return nil, InvalidArgumentf("unknown branch %q", location)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := scanUser(s.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, first_name, last_name, password_hash, role, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		input.Username, input.Email, input.FirstName, input.LastName, string(hash), role, location,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, Conflictf("username %q is already taken", input.Username)
		}
		return nil, fmt.Errorf("failed to create user %q: %w", input.Username, err)
	}
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, username, password, ipAddress, userAgent string) (*User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, InvalidArgumentf("invalid credentials")
	}

	if _, err := s.pool.Exec(ctx, `
		INSERT INTO login_activities (user_id, ip_address, user_agent)
		VALUES ($1, NULLIF($2, ''), $3)
	`, user.ID, ipAddress, userAgent); err != nil {
		return nil, fmt.Errorf("failed to record login for %q: %w", username, err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	user, err := scanUser(s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1 AND is_active = true LIMIT 1",
		username,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("user %q not found", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", username, err)
	}
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, userID int) (*User, error) {
	user, err := scanUser(s.pool.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1", userID,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, NotFoundf("user %d not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", userID, err)
	}
	return user, nil
}

func (s *userService) LoginHistory(ctx context.Context, userID int) ([]LoginActivity, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, login_time, COALESCE(ip_address::text, ''), user_agent
		FROM login_activities
		WHERE user_id = $1
		ORDER BY login_time DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query login history: %w", err)
	}
	defer rows.Close()

	var activities []LoginActivity
	for rows.Next() {
		var a LoginActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.LoginTime, &a.IPAddress, &a.UserAgent); err != nil {
			return nil, fmt.Errorf("failed to scan login activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

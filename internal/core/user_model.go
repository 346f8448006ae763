package core

import (
	"context"
	"time"
)

// User is an account holder. Role is "user" or "admin"; admin implies staff
// rights across branches.
type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Location     Branch    `json:"location"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsStaff reports whether the user holds staff rights.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// RegisterInput is a new-account request. Password arrives plain and is
// hashed before storage.
type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Location  Branch `json:"location"`
}

// LoginActivity is one recorded sign-in.
type LoginActivity struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	LoginTime time.Time `json:"login_time"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
}

// UserService provides account registration, credential checks, and lookup.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)

	// Authenticate verifies username/password and records the login.
	// Returns NotFound for unknown users and InvalidArgument for a bad
	// password; callers present both identically.
	Authenticate(ctx context.Context, username, password, ipAddress, userAgent string) (*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, userID int) (*User, error)
	LoginHistory(ctx context.Context, userID int) ([]LoginActivity, error)
}

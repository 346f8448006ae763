package core_test

import (
	"context"
	"testing"

	"petstore-backend/internal/core"
)

func TestUser_RegisterAndAuthenticate(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()
	ctx := context.Background()
	users := core.NewUserService(pool)

	user, err := users.Register(ctx, core.RegisterInput{
		Username: "chonkyfan",
		Email:    "fan@example.com",
		Password: "hunter2hunter2",
		Location: core.BranchMatina,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != core.RoleUser {
		t.Errorf("expected default role user, got %s", user.Role)
	}

	// Duplicate usernames conflict.
	_, err = users.Register(ctx, core.RegisterInput{
		Username: "chonkyfan",
		Email:    "other@example.com",
		Password: "hunter2hunter2",
		Location: core.BranchMatina,
	})
	if core.KindOf(err) != core.KindConflict {
		t.Errorf("expected conflict on duplicate username, got %v", err)
	}

	// Short passwords are rejected up front.
	_, err = users.Register(ctx, core.RegisterInput{
		Username: "shortpw",
		Email:    "short@example.com",
		Password: "abc",
		Location: core.BranchMatina,
	})
	if core.KindOf(err) != core.KindInvalidArgument {
		t.Errorf("expected invalid argument for short password, got %v", err)
	}

	authed, err := users.Authenticate(ctx, "chonkyfan", "hunter2hunter2", "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != user.ID {
		t.Errorf("expected user %d, got %d", user.ID, authed.ID)
	}

	if _, err := users.Authenticate(ctx, "chonkyfan", "wrong password", "127.0.0.1", "go-test"); core.KindOf(err) != core.KindInvalidArgument {
		t.Errorf("expected invalid argument for bad password, got %v", err)
	}
	if _, err := users.Authenticate(ctx, "nobody", "hunter2hunter2", "127.0.0.1", "go-test"); !core.IsNotFound(err) {
		t.Errorf("expected not found for unknown user, got %v", err)
	}

	// The successful login is on the books.
	history, err := users.LoginHistory(ctx, user.ID)
	if err != nil {
		t.Fatalf("LoginHistory: %v", err)
	}
	if len(history) != 1 {
		t.Errorf("expected 1 login activity, got %d", len(history))
	}
	if history[0].IPAddress != "127.0.0.1" {
		t.Errorf("expected recorded IP, got %q", history[0].IPAddress)
	}
}

package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/testutil"
)

// setupRepo connects to the test database, serializes access with an
// advisory lock and resets the schema. Skipped unless DATABASE_URL is
// set.
func setupRepo(t *testing.T) (*Repository, context.Context) {
	t.Helper()

	databaseURL := testutil.RequireEnv(t, "DATABASE_URL")
	ctx := context.Background()

	repo, err := New(ctx, databaseURL)
	if err != nil {
		t.Fatalf("connect to database: %v", err)
	}
	t.Cleanup(repo.Close)

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		t.Fatalf("acquire db lock: %v", err)
	}
	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release db lock: %v", err)
		}
	})

	if err := testutil.ResetUsersSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo, ctx
}

func TestUserCRUD_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	// Duplicate email violates the unique constraint.
	dup := testutil.NewTestUser(t, "alice2")
	dup.Email = user.Email
	if err := repo.CreateUser(ctx, dup); !errors.Is(err, ErrUserExists) {
		t.Errorf("expected ErrUserExists for duplicate email, got %v", err)
	}

	byID, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != "alice" || !byID.IsActive {
		t.Errorf("unexpected user: %+v", byID)
	}

	byEmail, err := repo.GetUserByEmail(ctx, user.Email)
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("expected %s, got %s", user.ID, byEmail.ID)
	}

	if _, err := repo.GetUserByID(ctx, "no-such-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRefreshToken_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	token := "refresh-token-value"
	if err := repo.UpdateRefreshToken(ctx, user.ID, &token); err != nil {
		t.Fatalf("UpdateRefreshToken failed: %v", err)
	}

	stored, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if stored.RefreshToken == nil || *stored.RefreshToken != token {
		t.Error("refresh token not persisted")
	}

	// A second login overwrites the slot; logout clears it.
	if err := repo.UpdateRefreshToken(ctx, user.ID, nil); err != nil {
		t.Fatalf("clear refresh token failed: %v", err)
	}
	stored, _ = repo.GetUserByID(ctx, user.ID)
	if stored.RefreshToken != nil {
		t.Error("refresh token not cleared")
	}

	if err := repo.UpdateRefreshToken(ctx, "no-such-id", &token); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRoleAndActive_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)

	user := testutil.NewTestUser(t, "alice")
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	if err := repo.UpdateUserRole(ctx, user.ID, model.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole failed: %v", err)
	}
	stored, _ := repo.GetUserByID(ctx, user.ID)
	if stored.Role != model.RoleAdmin {
		t.Errorf("expected admin, got %s", stored.Role)
	}

	active, err := repo.ToggleUserActive(ctx, user.ID)
	if err != nil {
		t.Fatalf("ToggleUserActive failed: %v", err)
	}
	if active {
		t.Error("expected first toggle to deactivate")
	}
	active, err = repo.ToggleUserActive(ctx, user.ID)
	if err != nil {
		t.Fatalf("second ToggleUserActive failed: %v", err)
	}
	if !active {
		t.Error("expected second toggle to reactivate")
	}
}

func TestListAndCountUsers_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)

	names := []string{"alice", "bob", "carol"}
	for _, name := range names {
		if err := repo.CreateUser(ctx, testutil.NewTestUser(t, name)); err != nil {
			t.Fatalf("CreateUser(%s) failed: %v", name, err)
		}
	}

	total, err := repo.CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers failed: %v", err)
	}
	if total != len(names) {
		t.Errorf("expected %d users, got %d", len(names), total)
	}

	page, err := repo.ListUsers(ctx, 0, 2)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(page) != 2 {
		t.Errorf("expected 2 users on first page, got %d", len(page))
	}

	rest, err := repo.ListUsers(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListUsers offset failed: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("expected 1 user on last page, got %d", len(rest))
	}
}

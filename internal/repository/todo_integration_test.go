package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/testutil"
)

// seedOwner inserts a user to own todos in these tests.
func seedOwner(t *testing.T, repo *Repository, ctx context.Context, username string) *model.User {
	t.Helper()
	user := testutil.NewTestUser(t, username)
	if err := repo.CreateUser(ctx, user); err != nil {
		t.Fatalf("seed owner %s: %v", username, err)
	}
	return user
}

func TestTodoCRUD_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)
	owner := seedOwner(t, repo, ctx, "alice")

	todo := testutil.NewTestTodo(t, owner.ID, "buy milk")
	due := time.Now().Add(24 * time.Hour).UTC().Truncate(time.Millisecond)
	todo.DueDate = &due

	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	got, err := repo.GetTodoWithOwner(ctx, todo.ID)
	if err != nil {
		t.Fatalf("GetTodoWithOwner failed: %v", err)
	}
	if got.Title != "buy milk" || got.Status != model.StatusPending {
		t.Errorf("unexpected todo: %+v", got)
	}
	if got.Owner.ID != owner.ID || got.Owner.Username != "alice" {
		t.Errorf("owner not expanded: %+v", got.Owner)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date mismatch: %v", got.DueDate)
	}

	if _, err := repo.GetTodoWithOwner(ctx, "01ZZZZZZZZZZZZZZZZZZZZZZZZ"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestListTodos_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)
	alice := seedOwner(t, repo, ctx, "alice")
	bob := seedOwner(t, repo, ctx, "bob")

	older := testutil.NewTestTodo(t, alice.ID, "older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testutil.NewTestTodo(t, alice.ID, "newer")
	foreign := testutil.NewTestTodo(t, bob.ID, "bob-task")

	for _, todo := range []*model.Todo{older, newer, foreign} {
		if err := repo.CreateTodo(ctx, todo); err != nil {
			t.Fatalf("CreateTodo failed: %v", err)
		}
	}

	all, err := repo.ListTodos(ctx, nil)
	if err != nil {
		t.Fatalf("ListTodos(nil) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 todos unscoped, got %d", len(all))
	}

	scoped, err := repo.ListTodos(ctx, &alice.ID)
	if err != nil {
		t.Fatalf("ListTodos(owner) failed: %v", err)
	}
	if len(scoped) != 2 {
		t.Fatalf("expected 2 todos for alice, got %d", len(scoped))
	}
	if scoped[0].ID != newer.ID || scoped[1].ID != older.ID {
		t.Error("expected most recent todo first")
	}
}

func TestUpdateTodo_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)
	alice := seedOwner(t, repo, ctx, "alice")
	bob := seedOwner(t, repo, ctx, "bob")

	todo := testutil.NewTestTodo(t, alice.ID, "task")
	// Backdate so the update's now() is clearly newer even with clock skew.
	todo.UpdatedAt = todo.UpdatedAt.Add(-time.Minute)
	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	title := "renamed"
	status := model.StatusInProgress
	if err := repo.UpdateTodo(ctx, todo.ID, &alice.ID, TodoPatch{Title: &title, Status: &status}); err != nil {
		t.Fatalf("UpdateTodo failed: %v", err)
	}

	got, _ := repo.GetTodoWithOwner(ctx, todo.ID)
	if got.Title != "renamed" || got.Status != model.StatusInProgress {
		t.Errorf("patch not applied: %+v", got)
	}
	if !got.UpdatedAt.After(todo.UpdatedAt) {
		t.Error("updated_at not advanced")
	}

	// The owner filter lives inside the UPDATE, so a non-owner matches
	// no row at all.
	hijack := "hijacked"
	if err := repo.UpdateTodo(ctx, todo.ID, &bob.ID, TodoPatch{Title: &hijack}); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for foreign update, got %v", err)
	}

	// A nil scope bypasses the filter (admin path).
	if err := repo.UpdateTodo(ctx, todo.ID, nil, TodoPatch{Title: &hijack}); err != nil {
		t.Errorf("unscoped update failed: %v", err)
	}
}

func TestDeleteTodo_Integration(t *testing.T) {
	repo, ctx := setupRepo(t)
	alice := seedOwner(t, repo, ctx, "alice")
	bob := seedOwner(t, repo, ctx, "bob")

	todo := testutil.NewTestTodo(t, alice.ID, "task")
	if err := repo.CreateTodo(ctx, todo); err != nil {
		t.Fatalf("CreateTodo failed: %v", err)
	}

	if err := repo.DeleteTodo(ctx, todo.ID, &bob.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound for foreign delete, got %v", err)
	}

	if err := repo.DeleteTodo(ctx, todo.ID, &alice.ID); err != nil {
		t.Fatalf("DeleteTodo failed: %v", err)
	}
	if err := repo.DeleteTodo(ctx, todo.ID, &alice.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("expected ErrTodoNotFound on second delete, got %v", err)
	}
}

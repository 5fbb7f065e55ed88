package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/KrrishNichanii/Todo-Backend/internal/metrics"
	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/repository"
)

// TodoStore defines the persistence operations TodoService depends on.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *model.Todo) error
	GetTodoWithOwner(ctx context.Context, id string) (*model.TodoWithOwner, error)
	ListTodos(ctx context.Context, ownerID *string) ([]*model.TodoWithOwner, error)
	UpdateTodo(ctx context.Context, id string, ownerID *string, patch repository.TodoPatch) error
	DeleteTodo(ctx context.Context, id string, ownerID *string) error
}

// TodoService handles ownership-scoped todo CRUD.
type TodoService struct {
	todos    TodoStore
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore, logger *slog.Logger, recorder metrics.Recorder) *TodoService {
	return &TodoService{
		todos:    todos,
		logger:   logger,
		recorder: recorder,
	}
}

// ownerScope is the single ownership filter: admins see everything
// (nil scope), everyone else only their own rows. All list/update/
// delete paths go through this instead of branching on the role.
func ownerScope(principal *model.User) *string {
	if principal.IsAdmin() {
		return nil
	}
	id := principal.ID
	return &id
}

// CreateTodoInput defines input for creating a todo.
type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     *time.Time
}

// Create adds a todo owned by the principal. Status is always pending
// at creation, regardless of caller input.
func (s *TodoService) Create(ctx context.Context, principal *model.User, input CreateTodoInput) (*model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	now := time.Now().UTC()
	todo := &model.Todo{
		ID:          ulid.Make().String(),
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Status:      model.StatusPending,
		OwnerID:     principal.ID,
		DueDate:     input.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("todo_created", "todo_id", todo.ID, "owner_id", todo.OwnerID)
	s.recorder.IncTodoCreated()

	return todo, nil
}

// List returns the todos visible to the principal, most recent first,
// with owners expanded.
func (s *TodoService) List(ctx context.Context, principal *model.User) ([]*model.TodoWithOwner, error) {
	todos, err := s.todos.ListTodos(ctx, ownerScope(principal))
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Get returns a single todo. Existence is disclosed here: a valid id
// the caller may not read yields ErrTodoForbidden, not not-found.
func (s *TodoService) Get(ctx context.Context, principal *model.User, todoID string) (*model.TodoWithOwner, error) {
	if err := validateTodoID(todoID); err != nil {
		return nil, err
	}

	todo, err := s.todos.GetTodoWithOwner(ctx, todoID)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	if !principal.IsAdmin() && todo.OwnerID != principal.ID {
		return nil, ErrTodoForbidden
	}

	return todo, nil
}

// UpdateTodoInput defines a partial todo update. Nil fields are not
// touched; invalid status values are silently dropped.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Status      *string
	DueDate     *time.Time
}

// Update applies a patch through the owner-scoped update path. For
// non-admins the owner filter is part of the update itself, so another
// user's todo surfaces as ErrTodoNotFound rather than forbidden,
// deliberately not disclosing its existence.
func (s *TodoService) Update(ctx context.Context, principal *model.User, todoID string, input UpdateTodoInput) (*model.TodoWithOwner, error) {
	if err := validateTodoID(todoID); err != nil {
		return nil, err
	}

	patch := repository.TodoPatch{DueDate: input.DueDate}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		patch.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		patch.Description = &description
	}
	if input.Status != nil {
		if status := model.TodoStatus(*input.Status); status.IsValid() {
			patch.Status = &status
		}
	}

	if patch.IsEmpty() {
		return nil, ErrEmptyPatch
	}

	if err := s.todos.UpdateTodo(ctx, todoID, ownerScope(principal), patch); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}

	todo, err := s.todos.GetTodoWithOwner(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload todo: %w", err)
	}

	s.logger.Info("todo_updated", "todo_id", todoID, "by", principal.ID)
	s.recorder.IncTodoUpdated()

	return todo, nil
}

// Delete removes a todo through the same owner-scoped path as Update.
func (s *TodoService) Delete(ctx context.Context, principal *model.User, todoID string) error {
	if err := validateTodoID(todoID); err != nil {
		return err
	}

	if err := s.todos.DeleteTodo(ctx, todoID, ownerScope(principal)); err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return ErrTodoNotFound
		}
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info("todo_deleted", "todo_id", todoID, "by", principal.ID)
	s.recorder.IncTodoDeleted()

	return nil
}

// validateTodoID rejects ids that are not structurally valid ULIDs
// before any store round-trip.
func validateTodoID(id string) error {
	if _, err := ulid.Parse(id); err != nil {
		return ErrInvalidTodoID
	}
	return nil
}

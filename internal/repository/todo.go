package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
)

// ErrTodoNotFound is returned when a todo is absent, or when an
// owner-scoped update/delete matched no row the caller may touch.
var ErrTodoNotFound = errors.New("todo not found")

// TodoPatch holds the fields of a partial todo update. Nil fields are
// left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	Status      *model.TodoStatus
	DueDate     *time.Time
}

// IsEmpty reports whether the patch changes nothing.
func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.DueDate == nil
}

const todoWithOwnerColumns = `
	t.id, t.title, t.description, t.status, t.owner_id, t.due_date, t.created_at, t.updated_at,
	u.id, u.username, u.email, u.role
`

// CreateTodo inserts a new todo into the database.
func (r *Repository) CreateTodo(ctx context.Context, todo *model.Todo) error {
	query := `
		INSERT INTO todos (id, title, description, status, owner_id, due_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		todo.ID,
		todo.Title,
		todo.Description,
		todo.Status,
		todo.OwnerID,
		todo.DueDate,
		todo.CreatedAt,
		todo.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}

	return nil
}

// GetTodoWithOwner retrieves a todo by ID with its owner expanded.
func (r *Repository) GetTodoWithOwner(ctx context.Context, id string) (*model.TodoWithOwner, error) {
	query := `
		SELECT ` + todoWithOwnerColumns + `
		FROM todos t
		JOIN users u ON u.id = t.owner_id
		WHERE t.id = $1
	`

	todo, err := scanTodoWithOwner(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return todo, nil
}

// ListTodos retrieves todos with owners expanded, most recent first.
// A nil ownerID returns every todo; otherwise only that owner's rows.
func (r *Repository) ListTodos(ctx context.Context, ownerID *string) ([]*model.TodoWithOwner, error) {
	query := `
		SELECT ` + todoWithOwnerColumns + `
		FROM todos t
		JOIN users u ON u.id = t.owner_id
	`
	var args []any
	if ownerID != nil {
		query += ` WHERE t.owner_id = $1`
		args = append(args, *ownerID)
	}
	query += ` ORDER BY t.created_at DESC, t.id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	var todos []*model.TodoWithOwner
	for rows.Next() {
		todo, err := scanTodoWithOwner(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating todos: %w", err)
	}

	return todos, nil
}

// UpdateTodo applies a partial update. The owner filter is part of the
// UPDATE statement itself, so filter and mutation are one atomic
// operation; a non-owner's attempt matches no row and surfaces as
// ErrTodoNotFound. A nil ownerID skips the filter (admin).
func (r *Repository) UpdateTodo(ctx context.Context, id string, ownerID *string, patch TodoPatch) error {
	query := `UPDATE todos SET updated_at = now()`
	args := []any{id}
	argIndex := 2

	if patch.Title != nil {
		query += fmt.Sprintf(", title = $%d", argIndex)
		args = append(args, *patch.Title)
		argIndex++
	}
	if patch.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIndex)
		args = append(args, *patch.Description)
		argIndex++
	}
	if patch.Status != nil {
		query += fmt.Sprintf(", status = $%d", argIndex)
		args = append(args, *patch.Status)
		argIndex++
	}
	if patch.DueDate != nil {
		query += fmt.Sprintf(", due_date = $%d", argIndex)
		args = append(args, *patch.DueDate)
		argIndex++
	}

	query += ` WHERE id = $1`
	if ownerID != nil {
		query += fmt.Sprintf(" AND owner_id = $%d", argIndex)
		args = append(args, *ownerID)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// DeleteTodo removes a todo. Same owner scoping as UpdateTodo.
func (r *Repository) DeleteTodo(ctx context.Context, id string, ownerID *string) error {
	query := `DELETE FROM todos WHERE id = $1`
	args := []any{id}
	if ownerID != nil {
		query += ` AND owner_id = $2`
		args = append(args, *ownerID)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTodoNotFound
	}

	return nil
}

// scanTodoWithOwner scans a joined todos/users row.
func scanTodoWithOwner(row pgx.Row) (*model.TodoWithOwner, error) {
	var todo model.TodoWithOwner
	err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Description,
		&todo.Status,
		&todo.OwnerID,
		&todo.DueDate,
		&todo.CreatedAt,
		&todo.UpdatedAt,
		&todo.Owner.ID,
		&todo.Owner.Username,
		&todo.Owner.Email,
		&todo.Owner.Role,
	)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

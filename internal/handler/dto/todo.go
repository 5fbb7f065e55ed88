package dto

import (
	"time"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
)

// CreateTodoRequest is the body of POST /api/todos.
// Status is not accepted at creation; new todos are always pending.
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTodoRequest is the body of PATCH /api/todos/{todoId}.
// Absent fields are left untouched.
type UpdateTodoRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// TodoResponse is a todo as returned from the create path, where the
// owner is the caller and is not expanded.
type TodoResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	OwnerID     string     `json:"ownerId"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ToTodoResponse converts a Todo model to TodoResponse.
func ToTodoResponse(t *model.Todo) TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		OwnerID:     t.OwnerID,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// OwnerResponse is the expanded owner attached to todo reads.
type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// TodoWithOwnerResponse is a todo with its owner expanded.
type TodoWithOwnerResponse struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Owner       OwnerResponse `json:"owner"`
	DueDate     *time.Time    `json:"dueDate"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ToTodoWithOwnerResponse converts a TodoWithOwner to its response shape.
func ToTodoWithOwnerResponse(t *model.TodoWithOwner) TodoWithOwnerResponse {
	return TodoWithOwnerResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Owner: OwnerResponse{
			ID:       t.Owner.ID,
			Username: t.Owner.Username,
			Email:    t.Owner.Email,
			Role:     string(t.Owner.Role),
		},
		DueDate:   t.DueDate,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTodoListResponse converts a slice of todos with owners.
func ToTodoListResponse(todos []*model.TodoWithOwner) []TodoWithOwnerResponse {
	out := make([]TodoWithOwnerResponse, len(todos))
	for i, t := range todos {
		out[i] = ToTodoWithOwnerResponse(t)
	}
	return out
}

// DeleteTodoResponse echoes the id of the removed todo.
type DeleteTodoResponse struct {
	DeletedID string `json:"deletedId"`
}

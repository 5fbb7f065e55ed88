package model

import "time"

// TodoStatus enumerates the lifecycle states of a todo item.
type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in-progress"
	StatusCompleted  TodoStatus = "completed"
)

// IsValid checks if the status is one of the known values.
func (s TodoStatus) IsValid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// Todo represents a todo item owned by exactly one user.
// The owner is fixed at creation and never reassigned.
type Todo struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TodoStatus `json:"status"`
	OwnerID     string     `json:"ownerId"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// OwnerSummary is the owner projection attached to todo reads.
type OwnerSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// TodoWithOwner is a todo with its owner expanded.
type TodoWithOwner struct {
	Todo
	Owner OwnerSummary `json:"owner"`
}

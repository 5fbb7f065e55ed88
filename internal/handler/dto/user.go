package dto

import (
	"time"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/service"
)

// RegisterRequest is the body of POST /api/users/register.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest is the body of POST /api/users/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangeRoleRequest is the body of PATCH /api/users/promote/{userId}.
type ChangeRoleRequest struct {
	Role string `json:"role"`
}

// UserResponse is a user with secret fields stripped.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToUserResponse converts a User model to UserResponse.
func ToUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginResponse carries the user and both tokens. The tokens are also
// set as httpOnly cookies.
type LoginResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// RoleChangeResponse is the minimal projection returned by promote.
type RoleChangeResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// ActiveToggleResponse is the minimal projection returned by toggle-active.
type ActiveToggleResponse struct {
	ID       string `json:"id"`
	IsActive bool   `json:"isActive"`
}

// UserListResponse is one page of the admin user listing.
type UserListResponse struct {
	Users       []UserResponse `json:"users"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
	TotalUsers  int            `json:"totalUsers"`
}

// ToUserListResponse converts a service page to its response shape.
func ToUserListResponse(page *service.UserPage) UserListResponse {
	users := make([]UserResponse, len(page.Users))
	for i, u := range page.Users {
		users[i] = ToUserResponse(u)
	}
	return UserListResponse{
		Users:       users,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		TotalUsers:  page.TotalUsers,
	}
}

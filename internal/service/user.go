package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/KrrishNichanii/Todo-Backend/internal/auth"
	"github.com/KrrishNichanii/Todo-Backend/internal/metrics"
	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/repository"
)

// UserStore defines the persistence operations UserService depends on.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateRefreshToken(ctx context.Context, id string, token *string) error
	UpdateUserRole(ctx context.Context, id string, role model.Role) error
	ToggleUserActive(ctx context.Context, id string) (bool, error)
	ListUsers(ctx context.Context, offset, limit int) ([]*model.User, error)
	CountUsers(ctx context.Context) (int, error)
}

// UserService handles registration, authentication and account admin.
type UserService struct {
	users    UserStore
	tokens   auth.TokenConfig
	logger   *slog.Logger
	recorder metrics.Recorder
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore, tokens auth.TokenConfig, logger *slog.Logger, recorder metrics.Recorder) *UserService {
	return &UserService{
		users:    users,
		tokens:   tokens,
		logger:   logger,
		recorder: recorder,
	}
}

// RegisterInput defines input for registering a user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// Register creates a new account with a hashed password. The role
// defaults to user unless explicitly admin.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*model.User, error) {
	username := strings.ToLower(strings.TrimSpace(input.Username))
	email := strings.ToLower(strings.TrimSpace(input.Email))
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || password == "" {
		return nil, ErrFieldsRequired
	}

	role := model.RoleUser
	if model.Role(input.Role) == model.RoleAdmin {
		role = model.RoleAdmin
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user_registered", "user_id", user.ID, "role", user.Role)
	s.recorder.IncUserRegistered()

	return user, nil
}

// TokenPair bundles the two tokens issued at login.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// Login verifies credentials and issues a token pair. The refresh token
// is persisted on the user record, overwriting any prior value, so each
// login invalidates the previous session.
func (s *UserService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, nil, ErrCredentialsRequired
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.recorder.IncLoginFailure()
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.recorder.IncLoginFailure()
		return nil, nil, ErrInvalidCredentials
	}

	accessToken, err := s.tokens.NewAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue access token: %w", err)
	}
	refreshToken, err := s.tokens.NewRefreshToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		return nil, nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	s.logger.Info("user_logged_in", "user_id", user.ID)
	s.recorder.IncLoginSuccess()

	return user, &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// Logout clears the stored refresh token.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	s.logger.Info("user_logged_out", "user_id", userID)
	return nil
}

// ChangeRole sets the target user's role. Admins cannot change their
// own role through this path.
func (s *UserService) ChangeRole(ctx context.Context, principal *model.User, targetID, newRole string) (*model.User, error) {
	role := model.Role(newRole)
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to look up target user: %w", err)
	}

	if target.ID == principal.ID {
		return nil, ErrSelfRoleChange
	}

	if err := s.users.UpdateUserRole(ctx, target.ID, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	target.Role = role

	s.logger.Info("user_role_changed", "user_id", target.ID, "role", role, "changed_by", principal.ID)

	return target, nil
}

// ToggleActive flips the target user's active flag. Admins cannot
// deactivate their own account.
func (s *UserService) ToggleActive(ctx context.Context, principal *model.User, targetID string) (*model.User, error) {
	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, fmt.Errorf("failed to look up target user: %w", err)
	}

	if target.ID == principal.ID {
		return nil, ErrSelfDeactivate
	}

	isActive, err := s.users.ToggleUserActive(ctx, target.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle active flag: %w", err)
	}
	target.IsActive = isActive

	s.logger.Info("user_active_toggled", "user_id", target.ID, "is_active", isActive, "changed_by", principal.ID)

	return target, nil
}

// UserPage is one page of the user listing.
type UserPage struct {
	Users       []*model.User
	CurrentPage int
	TotalPages  int
	TotalUsers  int
}

const defaultPageSize = 10

// ListUsers returns a 1-based page of users plus totals.
func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}

	users, err := s.users.ListUsers(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	total, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &UserPage{
		Users:       users,
		CurrentPage: page,
		TotalPages:  (total + limit - 1) / limit,
		TotalUsers:  total,
	}, nil
}

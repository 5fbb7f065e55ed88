package handler

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/repository"
)

// memUserStore is an in-memory UserStore for handler tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*model.User{}}
}

func (s *memUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrUserExists
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) UpdateRefreshToken(_ context.Context, id string, token *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.RefreshToken = token
	return nil
}

func (s *memUserStore) UpdateUserRole(_ context.Context, id string, role model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = role
	return nil
}

func (s *memUserStore) ToggleUserActive(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return false, repository.ErrUserNotFound
	}
	user.IsActive = !user.IsActive
	return user.IsActive, nil
}

func (s *memUserStore) ListUsers(_ context.Context, offset, limit int) ([]*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	all := make([]*model.User, 0, len(s.users))
	for _, user := range s.users {
		clone := *user
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (s *memUserStore) CountUsers(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), nil
}

// memTodoStore is an in-memory TodoStore for handler tests. Owners are
// looked up in the paired user store when expanding.
type memTodoStore struct {
	mu    sync.Mutex
	todos map[string]*model.Todo
	users *memUserStore
}

func newMemTodoStore(users *memUserStore) *memTodoStore {
	return &memTodoStore{todos: map[string]*model.Todo{}, users: users}
}

func (s *memTodoStore) CreateTodo(_ context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *todo
	s.todos[todo.ID] = &clone
	return nil
}

func (s *memTodoStore) expand(todo *model.Todo) *model.TodoWithOwner {
	out := &model.TodoWithOwner{Todo: *todo}
	if owner, err := s.users.GetUserByID(context.Background(), todo.OwnerID); err == nil {
		out.Owner = model.OwnerSummary{
			ID:       owner.ID,
			Username: owner.Username,
			Email:    owner.Email,
			Role:     owner.Role,
		}
	}
	return out
}

func (s *memTodoStore) GetTodoWithOwner(_ context.Context, id string) (*model.TodoWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, repository.ErrTodoNotFound
	}
	return s.expand(todo), nil
}

func (s *memTodoStore) ListTodos(_ context.Context, ownerID *string) ([]*model.TodoWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.TodoWithOwner, 0, len(s.todos))
	for _, todo := range s.todos {
		if ownerID != nil && todo.OwnerID != *ownerID {
			continue
		}
		out = append(out, s.expand(todo))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *memTodoStore) UpdateTodo(_ context.Context, id string, ownerID *string, patch repository.TodoPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok || (ownerID != nil && todo.OwnerID != *ownerID) {
		return repository.ErrTodoNotFound
	}
	if patch.Title != nil {
		todo.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Description != nil {
		todo.Description = *patch.Description
	}
	if patch.Status != nil {
		todo.Status = *patch.Status
	}
	if patch.DueDate != nil {
		todo.DueDate = patch.DueDate
	}
	return nil
}

func (s *memTodoStore) DeleteTodo(_ context.Context, id string, ownerID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok || (ownerID != nil && todo.OwnerID != *ownerID) {
		return repository.ErrTodoNotFound
	}
	delete(s.todos, id)
	return nil
}

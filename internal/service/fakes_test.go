package service

import (
	"context"
	"sort"
	"sync"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
	"github.com/KrrishNichanii/Todo-Backend/internal/repository"
)

// memUserStore is an in-memory UserStore for unit tests.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*model.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return repository.ErrUserExists
		}
	}
	copied := *user
	s.users[user.ID] = &copied
	return nil
}

func (s *memUserStore) GetUserByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
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
		copied := *user
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool {
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

// memTodoStore is an in-memory TodoStore for unit tests. Owner
// summaries are registered up front so reads can expand them.
type memTodoStore struct {
	mu     sync.Mutex
	todos  map[string]*model.Todo
	owners map[string]model.OwnerSummary
}

func newMemTodoStore() *memTodoStore {
	return &memTodoStore{
		todos:  make(map[string]*model.Todo),
		owners: make(map[string]model.OwnerSummary),
	}
}

func (s *memTodoStore) registerOwner(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.owners[user.ID] = model.OwnerSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
}

func (s *memTodoStore) CreateTodo(_ context.Context, todo *model.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *todo
	s.todos[todo.ID] = &copied
	return nil
}

func (s *memTodoStore) withOwner(todo *model.Todo) *model.TodoWithOwner {
	return &model.TodoWithOwner{Todo: *todo, Owner: s.owners[todo.OwnerID]}
}

func (s *memTodoStore) GetTodoWithOwner(_ context.Context, id string) (*model.TodoWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok {
		return nil, repository.ErrTodoNotFound
	}
	return s.withOwner(todo), nil
}

func (s *memTodoStore) ListTodos(_ context.Context, ownerID *string) ([]*model.TodoWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []*model.TodoWithOwner
	for _, todo := range s.todos {
		if ownerID != nil && todo.OwnerID != *ownerID {
			continue
		}
		result = append(result, s.withOwner(todo))
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *memTodoStore) UpdateTodo(_ context.Context, id string, ownerID *string, patch repository.TodoPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todo, ok := s.todos[id]
	if !ok || (ownerID != nil && todo.OwnerID != *ownerID) {
		return repository.ErrTodoNotFound
	}
	if patch.Title != nil {
		todo.Title = *patch.Title
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

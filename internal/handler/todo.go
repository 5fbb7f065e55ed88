package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/KrrishNichanii/Todo-Backend/internal/auth"
	"github.com/KrrishNichanii/Todo-Backend/internal/handler/dto"
	"github.com/KrrishNichanii/Todo-Backend/internal/service"
)

// CreateTodo adds a todo owned by the caller.
// POST /api/todos
func (h *Handler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.todos.Create(r.Context(), principal, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusCreated, dto.ToTodoResponse(todo), "todo created successfully")
}

// ListTodos returns the todos visible to the caller, most recent first.
// GET /api/todos
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	todos, err := h.todos.List(r.Context(), principal)
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.ToTodoListResponse(todos), "todos fetched successfully")
}

// GetTodo returns a single todo with its owner expanded.
// GET /api/todos/{todoId}
func (h *Handler) GetTodo(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	todo, err := h.todos.Get(r.Context(), principal, chi.URLParam(r, "todoId"))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.ToTodoWithOwnerResponse(todo), "todo fetched successfully")
}

// UpdateTodo applies a partial update to a todo the caller owns.
// PATCH /api/todos/{todoId}
func (h *Handler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req dto.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	todo, err := h.todos.Update(r.Context(), principal, chi.URLParam(r, "todoId"), service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.ToTodoWithOwnerResponse(todo), "todo updated successfully")
}

// DeleteTodo removes a todo the caller owns.
// DELETE /api/todos/{todoId}
func (h *Handler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	principal := auth.PrincipalFromContext(r.Context())
	if principal == nil {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	todoID := chi.URLParam(r, "todoId")
	if err := h.todos.Delete(r.Context(), principal, todoID); err != nil {
		h.handleServiceError(w, r, err)
		return
	}

	respond(w, http.StatusOK, dto.DeleteTodoResponse{DeletedID: todoID}, "todo deleted successfully")
}

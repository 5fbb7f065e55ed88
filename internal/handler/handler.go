// Package handler provides HTTP request handlers.
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/KrrishNichanii/Todo-Backend/internal/handler/dto"
	"github.com/KrrishNichanii/Todo-Backend/internal/service"
)

// Handler wraps application dependencies for HTTP handlers.
type Handler struct {
	users  *service.UserService
	todos  *service.TodoService
	logger *slog.Logger

	accessTTL     time.Duration
	secureCookies bool
}

// Options configures cookie behavior for a Handler.
type Options struct {
	// AccessTTL bounds the accessToken cookie lifetime.
	AccessTTL time.Duration
	// SecureCookies switches token cookies to Secure with SameSite=None
	// for cross-site frontends. Off in development so plain HTTP works.
	SecureCookies bool
}

// New creates a new Handler instance.
func New(users *service.UserService, todos *service.TodoService, logger *slog.Logger, opts Options) *Handler {
	return &Handler{
		users:         users,
		todos:         todos,
		logger:        logger,
		accessTTL:     opts.AccessTTL,
		secureCookies: opts.SecureCookies,
	}
}

// NotFound handles 404 responses for unmatched routes.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "resource not found")
}

// MethodNotAllowed handles 405 responses.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// respond writes a success envelope with the given status and payload.
func respond(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, dto.Envelope{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// respondError writes a failure envelope. Data is always omitted.
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, dto.Envelope{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Headers are already sent; nothing useful to do.
		_ = err
	}
}

// decodeJSON decodes a request body into dst, rejecting unknown noise
// only insofar as it fails to parse. A malformed body is a client error.
func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

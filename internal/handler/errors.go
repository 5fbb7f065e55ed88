package handler

import (
	"errors"
	"net/http"

	"github.com/KrrishNichanii/Todo-Backend/internal/service"
)

// serviceErrorStatus maps known service errors to HTTP status codes.
// Anything not listed is a 500.
var serviceErrorStatus = map[error]int{
	service.ErrFieldsRequired:      http.StatusBadRequest,
	service.ErrCredentialsRequired: http.StatusBadRequest,
	service.ErrInvalidRole:         http.StatusBadRequest,
	service.ErrTitleRequired:       http.StatusBadRequest,
	service.ErrInvalidTodoID:       http.StatusBadRequest,
	service.ErrEmptyPatch:          http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrSelfRoleChange:      http.StatusForbidden,
	service.ErrSelfDeactivate:      http.StatusForbidden,
	service.ErrTodoForbidden:       http.StatusForbidden,
	service.ErrUserNotFound:        http.StatusNotFound,
	service.ErrTargetNotFound:      http.StatusNotFound,
	service.ErrTodoNotFound:        http.StatusNotFound,
	service.ErrUserExists:          http.StatusConflict,
}

// handleServiceError translates a service error into an envelope
// response. Known errors surface their own message; everything else is
// logged and reported as an opaque 500.
func (h *Handler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for sentinel, status := range serviceErrorStatus {
		if errors.Is(err, sentinel) {
			respondError(w, status, sentinel.Error())
			return
		}
	}

	h.logger.Error("request_failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	respondError(w, http.StatusInternalServerError, "internal server error")
}

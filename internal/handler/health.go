package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/KrrishNichanii/Todo-Backend/internal/handler/dto"
)

// Pinger reports whether a backing service is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler creates a health handler over the given backends.
func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Healthz reports process liveness.
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	respond(w, http.StatusOK, map[string]string{"status": "ok"}, "healthy")
}

// Readyz reports whether the database and cache are reachable. The
// cache is advisory only; rate limiting fails open without it.
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	ready := true

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unreachable"
		ready = false
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["cache"] = "unreachable"
		}
	}

	if !ready {
		writeJSON(w, http.StatusServiceUnavailable, dto.Envelope{
			StatusCode: http.StatusServiceUnavailable,
			Data:       checks,
			Message:    "not ready",
			Success:    false,
		})
		return
	}

	respond(w, http.StatusOK, checks, "ready")
}

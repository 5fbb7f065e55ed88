package handler

import (
	"fmt"
	"net/http"

	"github.com/KrrishNichanii/Todo-Backend/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "todo_users_registered_total %d\n", snap.UsersRegistered)
	writeMetric(w, "todo_logins_total{status=\"success\"} %d\n", snap.LoginSuccesses)
	writeMetric(w, "todo_logins_total{status=\"failure\"} %d\n", snap.LoginFailures)

	writeMetric(w, "todo_todos_created_total %d\n", snap.TodosCreated)
	writeMetric(w, "todo_todos_updated_total %d\n", snap.TodosUpdated)
	writeMetric(w, "todo_todos_deleted_total %d\n", snap.TodosDeleted)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/KrrishNichanii/Todo-Backend/internal/handler/dto"
)

// writeEnvelope writes a failure envelope from middleware, matching the
// shape handlers produce so clients see one error format everywhere.
func writeEnvelope(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(dto.Envelope{
		StatusCode: status,
		Message:    message,
		Success:    false,
	})
}

package middleware

import (
	"net/http"

	"github.com/KrrishNichanii/Todo-Backend/internal/auth"
)

// RequireAdmin rejects requests whose principal is not an admin. It
// must run after Auth in the chain.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := auth.PrincipalFromContext(r.Context())
		if principal == nil {
			writeEnvelope(w, http.StatusUnauthorized, "authentication required")
			return
		}
		if !principal.IsAdmin() {
			writeEnvelope(w, http.StatusForbidden, "admin access required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

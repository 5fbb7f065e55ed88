package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/KrrishNichanii/Todo-Backend/internal/auth"
	"github.com/KrrishNichanii/Todo-Backend/internal/model"
)

// UserResolver loads the principal behind a verified token.
type UserResolver interface {
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// AuthConfig holds dependencies for the Auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Tokens auth.TokenConfig
	Users  UserResolver
}

// Auth authenticates requests via the accessToken cookie or, failing
// that, a Bearer token. The resolved user is injected into the request
// context; requests without a valid token get a 401 envelope.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				writeEnvelope(w, http.StatusUnauthorized, "authentication required")
				return
			}

			claims, err := cfg.Tokens.ParseAccessToken(token)
			if err != nil {
				writeEnvelope(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			user, err := cfg.Users.GetUserByID(r.Context(), claims.Subject)
			if err != nil {
				// The token is valid but its subject no longer exists.
				cfg.Logger.Warn("token subject not found",
					"request_id", GetRequestID(r.Context()),
					"user_id", claims.Subject,
				)
				writeEnvelope(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := auth.ContextWithPrincipal(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken returns the access token from the accessToken cookie,
// falling back to the Authorization header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("accessToken"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}

	return ""
}

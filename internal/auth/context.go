package auth

import (
	"context"

	"github.com/KrrishNichanii/Todo-Backend/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const principalKey contextKey = "principal"

// ContextWithPrincipal attaches the authenticated user to the context.
func ContextWithPrincipal(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, principalKey, u)
}

// PrincipalFromContext retrieves the authenticated user from the context.
// Returns nil if no principal is present.
func PrincipalFromContext(ctx context.Context) *model.User {
	u, ok := ctx.Value(principalKey).(*model.User)
	if !ok {
		return nil
	}
	return u
}

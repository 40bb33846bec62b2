package utils

import (
	"context"
	"net/http"

	"github.com/panaderiadelsol/pos-api/internal/models"
)

type contextKey string

const userContextKey contextKey = "user"

// ContextWithUser attaches the verified actor to the request context.
func ContextWithUser(ctx context.Context, user *models.JWT) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUser returns the verified actor attached by the auth middleware, or
// nil on an unauthenticated request.
func GetUser(r *http.Request) *models.JWT {
	user, _ := r.Context().Value(userContextKey).(*models.JWT)
	return user
}

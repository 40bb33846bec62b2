package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/panaderiadelsol/pos-api/internal/utils"
)

// Logger logs every request with its duration.
func (app *application) Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		app.infoLog.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// RequireAuth verifies the bearer token and attaches the actor identity to
// the request context.
func (app *application) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			utils.Unauthorized(w, "No token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			utils.Unauthorized(w, "Invalid authorization header")
			return
		}

		user, err := utils.ParseJWT(parts[1], app.config.JWT)
		if err != nil {
			utils.Unauthorized(w, "Invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.ContextWithUser(r.Context(), user)))
	})
}

// RequireRole is the single capability check: it allows the request only
// when the authenticated actor's role is in the allowed set. Handlers never
// re-check roles themselves.
func (app *application) RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := utils.GetUser(r)
			if user == nil {
				utils.Unauthorized(w, "")
				return
			}
			if !RoleAllowed(user.Role, roles) {
				utils.Forbidden(w, "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RoleAllowed reports whether role is in allowed.
func RoleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

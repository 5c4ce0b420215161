package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireUser rejects anonymous requests. It must run after OptionalAuth.
func RequireUser(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); !ok {
				logger.Debug("Anonymous request to protected endpoint", zap.String("path", r.URL.Path))
				unauthorized(w, "authentication required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin middleware ensures the authenticated user is the administrator.
// It must run after OptionalAuth.
func RequireAdmin(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := GetUser(r.Context())
			if !ok {
				logger.Warn("User not found in context")
				unauthorized(w, "authentication required")
				return
			}

			if !user.IsAdmin {
				logger.Warn("Non-admin user attempted to access admin endpoint",
					zap.String("username", user.Username),
				)
				RespondWithError(w, http.StatusForbidden, "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"

	"ggsale/internal/domain"
	"ggsale/internal/service"

	"go.uber.org/zap"
)

type contextKey string

const UserKey contextKey = "user"

// authRealm is announced in WWW-Authenticate on 401 responses
const authRealm = `Basic realm="ggsale", charset="UTF-8"`

// OptionalAuth checks HTTP Basic credentials against the identity service on
// every request. Valid credentials attach the user to the context, requests
// without credentials pass through anonymously and wrong credentials are
// rejected with 401.
func OptionalAuth(identity service.IdentityService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			user, ok := authenticate(w, r, identity, username, password, logger)
			if !ok {
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, identity service.IdentityService, username, password string, logger *zap.Logger) (*domain.User, bool) {
	user, ok, err := identity.Authenticate(r.Context(), username, password)
	if err != nil {
		logger.Error("Failed to authenticate", zap.Error(err))
		RespondWithError(w, http.StatusInternalServerError, "internal server error")
		return nil, false
	}
	if !ok {
		logger.Debug("Invalid credentials", zap.String("username", username))
		unauthorized(w, service.ErrInvalidCredentials.Error())
		return nil, false
	}

	logger.Debug("User authenticated",
		zap.String("username", user.Username),
		zap.Bool("is_admin", user.IsAdmin),
	)
	return user, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", authRealm)
	RespondWithError(w, http.StatusUnauthorized, message)
}

// WithUser stores the authenticated user in ctx
func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUser extracts the authenticated user from request context
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok && user != nil
}

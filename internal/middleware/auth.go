package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/pmartell/driveledger/internal/domain"
)

// TokenAuthenticator validates a bearer token and resolves the account it
// belongs to. Implemented by service.AuthService.
type TokenAuthenticator interface {
	UserFromToken(ctx context.Context, token string) (domain.User, error)
}

type contextKey int

const userContextKey contextKey = iota

// NewAuth returns a middleware that requires a valid "Authorization: Bearer"
// token on every request it wraps. On success the resolved user is stored in
// the request context for UserFromContext; on failure it responds 401 and
// never calls the next handler.
func NewAuth(auth TokenAuthenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			user, err := auth.UserFromToken(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// WithUser returns a context carrying user. Exported so handler tests can
// exercise protected endpoints without minting real tokens.
func WithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext returns the authenticated user stored by NewAuth.
// ok is false on requests that did not pass through the auth middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(domain.User)
	return user, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing useful to do if the client is gone.
	w.Write([]byte(`{"error":{"code":"unauthorized","message":"` + message + `"}}`))
}

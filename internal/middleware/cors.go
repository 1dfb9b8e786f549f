// Package middleware provides reusable HTTP middleware for the Drive Ledger API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware applying CORS headers for the given
// origins (full scheme+host, no trailing slash). The browser frontend sends
// JSON bodies and a Bearer token, so Content-Type and Authorization must be
// preflightable; credentials stay off because auth rides in the header, not
// in cookies.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		// Cache preflight responses so the browser doesn't re-ask on every
		// mutating request.
		MaxAge: 300,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}

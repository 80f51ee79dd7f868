// Package middleware provides reusable HTTP middleware for the HR operations API.
package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// corsPreflightMaxAge is how long, in seconds, browsers may cache a preflight.
const corsPreflightMaxAge = 300

// NewCORSHandler returns a middleware that applies CORS headers based on allowedOrigins.
// Each entry in allowedOrigins must be a full origin (scheme + host, no trailing slash).
// Last-Event-ID is allowed so EventSource reconnects to /events pass preflight,
// and the request ID is exposed so the UI can quote it in bug reports.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Authorization", "Last-Event-ID"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         corsPreflightMaxAge,
	})
	return c.Handler
}

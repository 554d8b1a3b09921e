package middleware

import (
	"context"
	"net/http"
	"time"
)

// RequestTimeout cancels the request context after the configured duration.
// Handlers are expected to propagate the context into fetch and store calls
// so an abandoned request does not keep I/O running.
func RequestTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

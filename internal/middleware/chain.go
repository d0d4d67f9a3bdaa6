package middleware

import (
	"log/slog"
	"net/http"
)

// Chain wraps the handler with the full middleware stack, outermost
// first: request ID, logging, metrics, body limit, auth.
func Chain(handler http.Handler, logger *slog.Logger, authToken string) http.Handler {
	h := handler
	h = Auth(authToken)(h)
	h = MaxBytes(256 * 1024)(h)
	h = Metrics(h)
	h = Logging(logger)(h)
	h = RequestID(h)
	return h
}

// MaxBytes caps the request body size.
func MaxBytes(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

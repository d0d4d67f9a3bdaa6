package middleware

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"
)

const userIDKey contextKey = "userID"

// Auth enforces the gateway identity handoff: requests carry the shared
// bearer token (when one is configured) and an X-User-ID header set by
// the authenticating gateway. Health and metrics are exempt so probes
// work without credentials.
func Auth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if exemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if token != "" {
				provided := bearerToken(r)
				if provided == "" {
					writeAuthError(w, "missing bearer token")
					return
				}
				if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
					writeAuthError(w, "invalid bearer token")
					return
				}
			}

			userID := r.Header.Get("X-User-ID")
			if userID == "" {
				writeAuthError(w, "missing user identity")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext returns the authenticated caller identity or "".
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

func exemptPath(path string) bool {
	return path == "/api/ai/health" || path == "/metrics"
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// Package api implements the Ansuz search REST API using chi.
package api

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userKey ctxKey = iota

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through (disabled mode).
// If enabled is true, requests must carry a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserMiddleware resolves the calling user from the X-User-ID header and
// stores it on the request context. Every search route is user-scoped, so
// requests without the header are rejected outright.
func UserMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get("X-User-ID"))
		if user == "" {
			writeJSON(w, http.StatusBadRequest, errorBody("X-User-ID header is required"))
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	})
}

// userFrom returns the user set by UserMiddleware.
func userFrom(r *http.Request) string {
	user, _ := r.Context().Value(userKey).(string)
	return user
}

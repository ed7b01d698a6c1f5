package middleware

import (
	"crypto/hmac"
	"net/http"
	"strings"
)

// RequireAdmin is middleware that guards mutating endpoints behind the
// configured admin token. Requests must carry "Authorization: Bearer <token>".
// With no token configured every request is rejected, so a bare deployment
// stays read-only.
func RequireAdmin(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" {
				http.Error(w, `{"error": "admin access is not configured"}`, http.StatusForbidden)
				return
			}

			presented := bearerToken(r)
			if presented == "" || !hmac.Equal([]byte(presented), []byte(token)) {
				http.Error(w, `{"error": "unauthorized"}`, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

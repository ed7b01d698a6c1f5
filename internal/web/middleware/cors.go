package middleware

import (
	"net/http"
	"net/url"
	"os"
	"slices"
	"strings"
)

// allowedOrigins reads the comma-separated WEB_ALLOWED_ORIGINS whitelist.
func allowedOrigins() []string {
	var origins []string
	for o := range strings.SplitSeq(os.Getenv("WEB_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// originAllowed reports whether an origin may receive CORS headers.
// Localhost origins on any port always pass, so local frontend development
// needs no configuration.
func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return false
	}
	if u, err := url.Parse(origin); err == nil && u.Hostname() == "localhost" {
		return true
	}
	return slices.Contains(allowed, origin)
}

// CORS returns middleware implementing an origin whitelist read from the
// WEB_ALLOWED_ORIGINS environment variable.
func CORS() func(http.Handler) http.Handler {
	allowed := allowedOrigins()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if origin := r.Header.Get("Origin"); originAllowed(origin, allowed) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeaders returns middleware setting the content security policy for
// the attendee frontend. Photos may be served from a remote media host, so
// img-src admits https origins.
func SecurityHeaders() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Security-Policy",
				"default-src 'self'; img-src 'self' data: blob: https:; "+
					"style-src 'self' 'unsafe-inline'; font-src 'self' data:")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"strings"
)

// CORS handles cross-origin requests for the single configured origin.
// allowedOrigin may be "*" (any origin) or one exact origin. Preflight
// OPTIONS requests are answered directly with 204.
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	allowedOrigin = strings.TrimRight(allowedOrigin, "/")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && originAllowed(origin, allowedOrigin) {
				w.Header().Set("Access-Control-Allow-Origin", allowedValue(origin, allowedOrigin))
				w.Header().Add("Vary", "Origin")
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, X-Request-ID")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin, allowed string) bool {
	return allowed == "*" || strings.EqualFold(origin, allowed)
}

func allowedValue(origin, allowed string) string {
	if allowed == "*" {
		return "*"
	}
	return origin
}

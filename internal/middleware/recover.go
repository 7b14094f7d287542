package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
)

// stackSize caps the stack trace captured on panic.
const stackSize = 4096

// Recover converts panics into a generic 500 JSON response and logs the
// panic value with a stack trace. The submitter never sees panic detail.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					stack := make([]byte, stackSize)
					n := runtime.Stack(stack, false)

					log.ErrorContext(r.Context(), "panic recovered",
						slog.Any("panic", rec),
						slog.String("stack", string(stack[:n])),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"success": false,
						"message": "Something went wrong. Please try again later.",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"runtime/debug"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/pkg/logging"
)

// Recover converts handler panics into a JSON 500 so a single bad
// request never takes the process down.
func Recover(logger *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic recovered in handler",
						"panic", rec,
						"stack", string(debug.Stack()),
						"request_id", GetRequestID(r.Context()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(models.ErrorResponse{Error: "Internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

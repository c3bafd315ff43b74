package handlers

import (
	"encoding/json"
	"net/http"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}

// handleRelayError maps service errors onto the wire taxonomy. Unknown
// errors become a 500 so nothing is silently dropped.
func handleRelayError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *services.ConfigError:
		writeError(w, http.StatusInternalServerError, e.Message)
	case *services.TimeoutError:
		writeError(w, http.StatusGatewayTimeout, e.Message)
	case *services.UpstreamError:
		status := e.StatusCode
		if status < 100 {
			status = http.StatusBadGateway
		}
		writeError(w, status, e.Message)
	case *services.BadGatewayError:
		writeError(w, http.StatusBadGateway, e.Message)
	default:
		writeError(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

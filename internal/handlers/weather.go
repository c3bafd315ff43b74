package handlers

import (
	"context"
	"net/http"
	"strconv"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/pkg/logging"
)

type weatherProvider interface {
	Current(ctx context.Context, lat, lon float64) (*models.WeatherReport, error)
}

// WeatherHandler serves the display widget's data. It has no
// interaction with the chat path.
type WeatherHandler struct {
	weather weatherProvider
	logger  *logging.Logger
}

func NewWeatherHandler(weather weatherProvider, logger *logging.Logger) *WeatherHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeatherHandler{weather: weather, logger: logger}
}

func (h *WeatherHandler) Current(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "Query parameters lat and lon must be numbers.")
		return
	}

	report, err := h.weather.Current(r.Context(), lat, lon)
	if err != nil {
		h.logger.Warn("weather relay failed", "error", err)
		handleRelayError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

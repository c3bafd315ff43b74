package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"chatrelay-backend/internal/models"
	"chatrelay-backend/pkg/logging"
)

// WeatherService fetches current conditions from an Open-Meteo style
// provider. Independent leaf; it never touches the chat path.
type WeatherService struct {
	httpClient *http.Client
	baseURL    string
	logger     *logging.Logger
}

func NewWeatherService(baseURL string, timeout time.Duration, logger *logging.Logger) *WeatherService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeatherService{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		logger:     logger,
	}
}

type currentWeatherPayload struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// Current returns the provider's current conditions for a coordinate.
func (s *WeatherService) Current(ctx context.Context, lat, lon float64) (*models.WeatherReport, error) {
	url := fmt.Sprintf("%s/v1/forecast?latitude=%.4f&longitude=%.4f&current_weather=true", s.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &BadGatewayError{Message: "Unable to reach the weather service."}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("weather provider unreachable", "error", err)
		return nil, &BadGatewayError{Message: "Unable to reach the weather service."}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Error("weather provider error", "status", resp.StatusCode)
		return nil, &BadGatewayError{Message: "The weather service returned an error."}
	}

	var payload currentWeatherPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, &BadGatewayError{Message: "Invalid response from the weather service."}
	}

	return &models.WeatherReport{
		TemperatureC: payload.CurrentWeather.Temperature,
		WindSpeedKmh: payload.CurrentWeather.WindSpeed,
		WeatherCode:  payload.CurrentWeather.WeatherCode,
		Description:  weatherDescription(payload.CurrentWeather.WeatherCode),
	}, nil
}

// weatherDescription maps WMO weather interpretation codes to short text.
func weatherDescription(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code <= 2:
		return "Partly cloudy"
	case code == 3:
		return "Overcast"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code == 85 || code == 86:
		return "Snow showers"
	case code >= 95:
		return "Thunderstorm"
	default:
		return "Unknown"
	}
}

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatrelay-backend/pkg/logging"
)

func newWeatherService(t *testing.T, upstream http.HandlerFunc) *WeatherService {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)
	return NewWeatherService(srv.URL, time.Second, logging.New("error", ""))
}

func TestWeatherCurrent(t *testing.T) {
	svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "52.3700", r.URL.Query().Get("latitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{"current_weather": {"temperature": 12.5, "windspeed": 20.3, "weathercode": 61}}`))
	})

	report, err := svc.Current(context.Background(), 52.37, 4.89)

	require.NoError(t, err)
	assert.Equal(t, 12.5, report.TemperatureC)
	assert.Equal(t, 20.3, report.WindSpeedKmh)
	assert.Equal(t, 61, report.WeatherCode)
	assert.Equal(t, "Rain", report.Description)
}

func TestWeatherProviderFailure(t *testing.T) {
	svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := svc.Current(context.Background(), 52.37, 4.89)

	var gwErr *BadGatewayError
	require.ErrorAs(t, err, &gwErr)
}

func TestWeatherProviderBadBody(t *testing.T) {
	svc := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("nope"))
	})

	_, err := svc.Current(context.Background(), 52.37, 4.89)

	var gwErr *BadGatewayError
	require.ErrorAs(t, err, &gwErr)
}

func TestWeatherDescription(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{0, "Clear sky"},
		{2, "Partly cloudy"},
		{3, "Overcast"},
		{48, "Fog"},
		{53, "Drizzle"},
		{65, "Rain"},
		{75, "Snow"},
		{81, "Rain showers"},
		{86, "Snow showers"},
		{96, "Thunderstorm"},
		{40, "Unknown"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, weatherDescription(tc.code), "code %d", tc.code)
	}
}

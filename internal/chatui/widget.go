package chatui

import (
	"context"
	"fmt"
)

// WeatherWidget turns the relay's weather endpoint into a one-line
// display. Failures degrade to a placeholder, never an error.
type WeatherWidget struct {
	client WeatherClient
}

func NewWeatherWidget(client WeatherClient) *WeatherWidget {
	return &WeatherWidget{client: client}
}

// Line fetches current conditions for a coordinate and formats them.
func (w *WeatherWidget) Line(ctx context.Context, lat, lon float64) string {
	report, err := w.client.Current(ctx, lat, lon)
	if err != nil {
		return "Weather unavailable."
	}
	return fmt.Sprintf("%s, %.1f°C, wind %.0f km/h", report.Description, report.TemperatureC, report.WindSpeedKmh)
}

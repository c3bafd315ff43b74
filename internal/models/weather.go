package models

// WeatherReport is the trimmed view of the provider's current conditions
// that the widget consumes.
type WeatherReport struct {
	TemperatureC float64 `json:"temperature_c"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	WeatherCode  int     `json:"weather_code"`
	Description  string  `json:"description"`
}

// Package weather fetches current conditions and forecasts for a city from an
// OpenWeatherMap-compatible HTTP API.
package weather

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which endpoint is queried
type Mode string

const (
	// ModeCurrent returns current conditions only
	ModeCurrent Mode = "current"
	// ModeForecast returns current conditions plus the forecast list
	ModeForecast Mode = "forecast"
)

// ParseMode parses a mode name, accepting "weather" as an alias of current
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "current", "weather", "now":
		return ModeCurrent, nil
	case "forecast":
		return ModeForecast, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want current or forecast)", s)
	}
}

// Units is the measurement system requested from the provider
type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
	UnitsStandard Units = "standard"
)

// ParseUnits validates a units name. Empty means metric.
func ParseUnits(s string) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case "", UnitsMetric:
		return UnitsMetric, nil
	case UnitsImperial:
		return UnitsImperial, nil
	case UnitsStandard:
		return UnitsStandard, nil
	default:
		return "", fmt.Errorf("unknown units %q (want metric, imperial or standard)", s)
	}
}

// TemperatureSymbol returns the display suffix for temperatures
func (u Units) TemperatureSymbol() string {
	switch u {
	case UnitsImperial:
		return "°F"
	case UnitsStandard:
		return "K"
	default:
		return "°C"
	}
}

// SpeedSymbol returns the display suffix for wind speed
func (u Units) SpeedSymbol() string {
	if u == UnitsImperial {
		return "mph"
	}
	return "m/s"
}

// Result is the weather for one city, built from a single API response
type Result struct {
	City        string          `json:"city" yaml:"city"`
	Temperature float64         `json:"temperature" yaml:"temperature"`
	Description string          `json:"description" yaml:"description"`
	Humidity    float64         `json:"humidity" yaml:"humidity"`
	WindSpeed   float64         `json:"wind_speed" yaml:"wind_speed"`
	Forecast    []ForecastEntry `json:"forecast" yaml:"forecast"`
	Mode        Mode            `json:"mode" yaml:"mode"`
	Units       Units           `json:"units" yaml:"units"`
}

// ForecastEntry is one future time slot
type ForecastEntry struct {
	Date        time.Time `json:"date" yaml:"date"`
	Temperature float64   `json:"temperature" yaml:"temperature"`
	Description string    `json:"description" yaml:"description"`
}

// NormalizeCity trims a city name and rejects empty input
func NormalizeCity(city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", &InvalidInputError{Reason: "city name must not be empty"}
	}
	return city, nil
}

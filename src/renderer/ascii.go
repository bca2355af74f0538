package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/apimgr/cityweather/src/weather"
)

// condition groups a free-text description into a drawable category
type condition int

const (
	conditionCloudy condition = iota
	conditionClear
	conditionPartlyCloudy
	conditionRain
	conditionSnow
	conditionStorm
	conditionFog
)

// artWidth is the visible width of every art line
const artWidth = 13

// ASCIIRenderer handles ASCII art weather display with terminal formatting
type ASCIIRenderer struct {
	NoColors      bool
	ForecastLimit int
}

// NewASCIIRenderer creates a new ASCII renderer. A zero limit draws every forecast slot.
func NewASCIIRenderer(noColors bool, forecastLimit int) *ASCIIRenderer {
	return &ASCIIRenderer{NoColors: noColors, ForecastLimit: forecastLimit}
}

// Render draws a header, the condition art beside the current values and,
// in forecast mode, one line per forecast slot.
func (r *ASCIIRenderer) Render(res *weather.Result) string {
	lines := []string{
		colorize("Weather report: "+TitleCase(res.City), ColorYellow, true, r.NoColors),
		"",
	}
	lines = append(lines, r.renderCurrent(res)...)

	if res.Mode == weather.ModeForecast && len(res.Forecast) > 0 {
		lines = append(lines, "")
		lines = append(lines, r.renderForecast(res)...)
	}

	return strings.Join(lines, "\n") + "\n"
}

// renderCurrent renders the current weather with ASCII art
func (r *ASCIIRenderer) renderCurrent(res *weather.Result) []string {
	cond := classify(res.Description)
	art := r.coloredArt(cond)

	temp := int(math.Round(res.Temperature))
	wind := int(math.Round(res.WindSpeed))

	values := []string{
		colorize(TitleCase(res.Description), ColorCyan, false, r.NoColors),
		colorize(fmt.Sprintf("%+d %s", temp, res.Units.TemperatureSymbol()), ColorYellow, false, r.NoColors),
		colorize(fmt.Sprintf("%d %s", wind, res.Units.SpeedSymbol()), ColorGreen, false, r.NoColors),
		colorize(fmt.Sprintf("%.0f%% humidity", res.Humidity), ColorPurple, false, r.NoColors),
		"",
	}

	lines := make([]string, len(art))
	for i := range art {
		lines[i] = strings.TrimRight(padToWidth(art[i], artWidth)+"     "+values[i], " ")
	}
	return lines
}

// renderForecast renders one line per slot, up to ForecastLimit
func (r *ASCIIRenderer) renderForecast(res *weather.Result) []string {
	entries := res.Forecast
	if r.ForecastLimit > 0 && len(entries) > r.ForecastLimit {
		entries = entries[:r.ForecastLimit]
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		temp := int(math.Round(entry.Temperature))
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			colorize(entry.Date.Format("Mon Jan 02 15:04"), ColorGray, false, r.NoColors),
			padToWidth(colorize(fmt.Sprintf("%+d%s", temp, res.Units.TemperatureSymbol()), ColorYellow, false, r.NoColors), 6),
			colorize(TitleCase(entry.Description), conditionColor(classify(entry.Description)), false, r.NoColors)))
	}
	return lines
}

// coloredArt returns the art for cond, colored unless NoColors is set
func (r *ASCIIRenderer) coloredArt(cond condition) []string {
	art := conditionArt(cond)
	if r.NoColors {
		return art
	}

	colored := make([]string, len(art))
	for i, line := range art {
		colored[i] = colorize(strings.TrimRight(line, " "), conditionColor(cond), false, false)
	}
	return colored
}

// classify maps a provider description such as "light rain" onto a condition
func classify(description string) condition {
	d := strings.ToLower(description)
	switch {
	case strings.Contains(d, "thunder"), strings.Contains(d, "storm"):
		return conditionStorm
	case strings.Contains(d, "snow"), strings.Contains(d, "sleet"):
		return conditionSnow
	case strings.Contains(d, "rain"), strings.Contains(d, "drizzle"), strings.Contains(d, "shower"):
		return conditionRain
	case strings.Contains(d, "mist"), strings.Contains(d, "fog"), strings.Contains(d, "haze"),
		strings.Contains(d, "smoke"), strings.Contains(d, "dust"), strings.Contains(d, "sand"):
		return conditionFog
	case strings.Contains(d, "few clouds"), strings.Contains(d, "scattered"), strings.Contains(d, "partly"):
		return conditionPartlyCloudy
	case strings.Contains(d, "clear"), strings.Contains(d, "sun"):
		return conditionClear
	default:
		return conditionCloudy
	}
}

// conditionColor returns the Dracula theme color for a condition
func conditionColor(cond condition) string {
	switch cond {
	case conditionClear:
		return ColorYellow
	case conditionRain:
		return ColorCyan
	case conditionSnow, conditionFog:
		// foreground
		return "#f8f8f2"
	case conditionStorm:
		return ColorRed
	case conditionPartlyCloudy:
		return ColorOrange
	default:
		return ColorGray
	}
}

// conditionArt returns five lines of ASCII art for a condition
func conditionArt(cond condition) []string {
	switch cond {
	case conditionClear:
		return []string{
			"    \\   /    ",
			"     .-.     ",
			"  - (   ) -  ",
			"     `-'     ",
			"    /   \\    ",
		}
	case conditionPartlyCloudy:
		return []string{
			"   \\  /      ",
			" _ /\"\".-.    ",
			"   \\_(   ).  ",
			"   /(_(__)   ",
			"             ",
		}
	case conditionRain:
		return []string{
			"     .-.     ",
			"    (   ).   ",
			"   (___(__)  ",
			"    ' ' ' '  ",
			"   ' ' ' '   ",
		}
	case conditionSnow:
		return []string{
			"     .-.     ",
			"    (   ).   ",
			"   (___(__)  ",
			"    *  *  *  ",
			"   *  *  *   ",
		}
	case conditionStorm:
		return []string{
			"     .-.     ",
			"    (   ).   ",
			"   (___(__)  ",
			"    /_  /_   ",
			"     /   /   ",
		}
	case conditionFog:
		return []string{
			"             ",
			" _ - _ - _ - ",
			"  _ - _ - _  ",
			" _ - _ - _ - ",
			"             ",
		}
	default:
		return []string{
			"             ",
			"     .--.    ",
			"  .-(    ).  ",
			" (___.__)_)  ",
			"             ",
		}
	}
}

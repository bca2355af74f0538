package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/cityweather/src/renderer"
	"github.com/apimgr/cityweather/src/weather"
)

// forecastDateLayout matches the provider's dt_txt
const forecastDateLayout = "2006-01-02 15:04:05"

// Formatter handles output formatting
type Formatter struct {
	Format        string
	NoColor       bool
	ForecastLimit int
}

// NewFormatter creates a new formatter. A zero limit prints every forecast slot.
func NewFormatter(format string, noColor bool, forecastLimit int) *Formatter {
	return &Formatter{
		Format:        format,
		NoColor:       noColor,
		ForecastLimit: forecastLimit,
	}
}

// FormatResult formats a weather result in the configured format
func (f *Formatter) FormatResult(res *weather.Result) string {
	switch f.Format {
	case "json":
		return f.formatJSON(res)
	case "yaml":
		return f.formatYAML(res)
	case "oneline":
		return renderer.NewOneLineRenderer(f.NoColor).Render(res)
	case "ascii":
		return renderer.NewASCIIRenderer(f.NoColor, f.ForecastLimit).Render(res)
	case "plain":
		if res.Mode == weather.ModeForecast {
			return f.formatPlainForecast(res)
		}
		return f.formatPlainWeather(res)
	// table
	default:
		if res.Mode == weather.ModeForecast {
			return f.formatTableForecast(res)
		}
		return f.formatTableWeather(res)
	}
}

// formatJSON formats data as indented JSON
func (f *Formatter) formatJSON(data interface{}) string {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error formatting JSON: %v", err)
	}
	return string(jsonData) + "\n"
}

func (f *Formatter) formatYAML(data interface{}) string {
	out, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Sprintf("Error formatting YAML: %v", err)
	}
	return string(out)
}

// formatPlainWeather formats current weather as plain text
func (f *Formatter) formatPlainWeather(res *weather.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current weather in %s:\n", res.City))
	sb.WriteString(fmt.Sprintf("  Temperature: %s%s\n", formatNumber(res.Temperature), res.Units.TemperatureSymbol()))
	sb.WriteString(fmt.Sprintf("  Condition: %s\n", renderer.TitleCase(res.Description)))
	sb.WriteString(fmt.Sprintf("  Humidity: %s%%\n", formatNumber(res.Humidity)))
	sb.WriteString(fmt.Sprintf("  Wind Speed: %s %s\n", formatNumber(res.WindSpeed), res.Units.SpeedSymbol()))
	return sb.String()
}

// formatPlainForecast formats the forecast list as plain text
func (f *Formatter) formatPlainForecast(res *weather.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Forecast for %s:\n", res.City))
	for _, item := range f.limit(res.Forecast) {
		sb.WriteString(fmt.Sprintf("  %s: %s%s, %s\n",
			item.Date.Format(forecastDateLayout),
			formatNumber(item.Temperature),
			res.Units.TemperatureSymbol(),
			renderer.TitleCase(item.Description)))
	}
	return sb.String()
}

// formatTableWeather formats current weather as a bordered box
func (f *Formatter) formatTableWeather(res *weather.Result) string {
	rows := [][2]string{
		{"Temperature", fmt.Sprintf("%.1f%s", res.Temperature, res.Units.TemperatureSymbol())},
		{"Condition", renderer.TitleCase(res.Description)},
		{"Humidity", fmt.Sprintf("%.0f%%", res.Humidity)},
		{"Wind Speed", fmt.Sprintf("%.1f %s", res.WindSpeed, res.Units.SpeedSymbol())},
	}

	lines := []string{f.titleStyle().Render(res.City), ""}
	for _, row := range rows {
		label := f.labelStyle().Render(fmt.Sprintf("%-13s", row[0]+":"))
		lines = append(lines, label+" "+row[1])
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 2)
	if !f.NoColor {
		box = box.BorderForeground(lipgloss.Color(renderer.ColorPurple))
	}
	return box.Render(strings.Join(lines, "\n")) + "\n"
}

// formatTableForecast formats the forecast list as a table
func (f *Formatter) formatTableForecast(res *weather.Result) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Date", "Temp", "Condition")

	for _, item := range f.limit(res.Forecast) {
		t.Row(
			item.Date.Format(forecastDateLayout),
			fmt.Sprintf("%.1f%s", item.Temperature, res.Units.TemperatureSymbol()),
			renderer.TitleCase(item.Description),
		)
	}

	cell := lipgloss.NewStyle().Padding(0, 1)
	header := cell
	if !f.NoColor {
		header = f.labelStyle().Bold(true).Padding(0, 1)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		if row == table.HeaderRow {
			return header
		}
		return cell
	})

	return f.titleStyle().Render("Forecast for "+res.City) + "\n" + t.String() + "\n"
}

// limit trims forecast entries to ForecastLimit
func (f *Formatter) limit(entries []weather.ForecastEntry) []weather.ForecastEntry {
	if f.ForecastLimit > 0 && len(entries) > f.ForecastLimit {
		return entries[:f.ForecastLimit]
	}
	return entries
}

func (f *Formatter) titleStyle() lipgloss.Style {
	if f.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(renderer.ColorYellow))
}

func (f *Formatter) labelStyle() lipgloss.Style {
	if f.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(renderer.ColorCyan))
}

// formatNumber prints 20 as "20" and 3.1 as "3.1"
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

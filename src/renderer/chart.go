package renderer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/apimgr/cityweather/src/weather"
)

const (
	defaultChartHeight = 10
	axisLabelWidth     = 8
	dateLabelLayout    = "Jan 02 15:04"
)

// ChartRenderer draws forecast charts as text
type ChartRenderer struct {
	Width    int
	Height   int
	NoColors bool
}

// NewChartRenderer creates a chart renderer. A zero width uses the terminal width.
func NewChartRenderer(width int, noColors bool) *ChartRenderer {
	if width <= 0 {
		width = TerminalWidth()
	}
	return &ChartRenderer{
		Width:    width,
		Height:   defaultChartHeight,
		NoColors: noColors,
	}
}

// RenderAll draws the temperature chart followed by the condition histogram
func (r *ChartRenderer) RenderAll(res *weather.Result) string {
	return r.RenderTemperature(res) + "\n" + r.RenderConditionFrequency(res)
}

// RenderTemperature plots forecast temperature over time, one column per slot
func (r *ChartRenderer) RenderTemperature(res *weather.Result) string {
	var sb strings.Builder
	sb.WriteString(colorize("Temperature Forecast for "+res.City, ColorYellow, true, r.NoColors))
	sb.WriteString("\n\n")

	entries := res.Forecast
	if len(entries) == 0 {
		sb.WriteString("No forecast data.\n")
		return sb.String()
	}

	maxCols := r.Width - axisLabelWidth - 2
	if maxCols < 1 {
		maxCols = 1
	}
	if len(entries) > maxCols {
		entries = entries[:maxCols]
	}

	lo, hi := entries[0].Temperature, entries[0].Temperature
	for _, e := range entries[1:] {
		lo = math.Min(lo, e.Temperature)
		hi = math.Max(hi, e.Temperature)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	height := r.Height
	if height < 2 {
		height = 2
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", len(entries)))
	}
	for col, e := range entries {
		row := int(math.Round((e.Temperature - lo) / span * float64(height-1)))
		grid[height-1-row][col] = '●'
	}

	unit := res.Units.TemperatureSymbol()
	for i, row := range grid {
		label := ""
		switch i {
		case 0:
			label = fmt.Sprintf("%.1f%s", hi, unit)
		case height - 1:
			label = fmt.Sprintf("%.1f%s", lo, unit)
		}
		sb.WriteString(fmt.Sprintf("%*s ┤", axisLabelWidth, label))
		sb.WriteString(colorize(string(row), ColorCyan, false, r.NoColors))
		sb.WriteString("\n")
	}
	sb.WriteString(strings.Repeat(" ", axisLabelWidth+1) + "└" + strings.Repeat("─", len(entries)) + "\n")

	first := entries[0].Date.Format(dateLabelLayout)
	last := entries[len(entries)-1].Date.Format(dateLabelLayout)
	sb.WriteString(strings.Repeat(" ", axisLabelWidth+2) + first)
	if len(entries) > 1 {
		sb.WriteString("  ->  " + last)
	}
	sb.WriteString("\n")

	return sb.String()
}

// ConditionCount is one histogram bar
type ConditionCount struct {
	Condition string
	Count     int
}

// ConditionFrequency counts descriptions in first-seen order
func ConditionFrequency(entries []weather.ForecastEntry) []ConditionCount {
	index := map[string]int{}
	var counts []ConditionCount
	for _, e := range entries {
		cond := e.Description
		if cond == "" {
			cond = "unknown"
		}
		if i, ok := index[cond]; ok {
			counts[i].Count++
			continue
		}
		index[cond] = len(counts)
		counts = append(counts, ConditionCount{Condition: cond, Count: 1})
	}
	return counts
}

// RenderConditionFrequency draws a horizontal bar per condition
func (r *ChartRenderer) RenderConditionFrequency(res *weather.Result) string {
	var sb strings.Builder
	sb.WriteString(colorize("Weather Condition Frequency for "+res.City, ColorYellow, true, r.NoColors))
	sb.WriteString("\n\n")

	counts := ConditionFrequency(res.Forecast)
	if len(counts) == 0 {
		sb.WriteString("No forecast data.\n")
		return sb.String()
	}

	// Stable so ties keep first-seen order
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })

	labelWidth := 0
	for _, c := range counts {
		if n := len([]rune(TitleCase(c.Condition))); n > labelWidth {
			labelWidth = n
		}
	}

	maxBar := r.Width - labelWidth - 8
	if maxBar < 1 {
		maxBar = 1
	}
	top := counts[0].Count

	for _, c := range counts {
		bar := int(math.Round(float64(c.Count) / float64(top) * float64(maxBar)))
		if bar < 1 {
			bar = 1
		}
		sb.WriteString(padToWidth(TitleCase(c.Condition), labelWidth))
		sb.WriteString(" │")
		sb.WriteString(colorize(strings.Repeat("█", bar), ColorGreen, false, r.NoColors))
		sb.WriteString(fmt.Sprintf(" %d\n", c.Count))
	}

	return sb.String()
}

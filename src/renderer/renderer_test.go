package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/apimgr/cityweather/src/weather"
)

func sampleForecast() *weather.Result {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	temps := []float64{1, 3, 5, 4, 2}
	conds := []string{"snow", "light rain", "light rain", "clear sky", "light rain"}

	res := &weather.Result{
		City:        "TestCity",
		Temperature: 1,
		Description: "snow",
		Humidity:    80,
		WindSpeed:   2,
		Mode:        weather.ModeForecast,
		Units:       weather.UnitsMetric,
	}
	for i := range temps {
		res.Forecast = append(res.Forecast, weather.ForecastEntry{
			Date:        base.Add(time.Duration(i*3) * time.Hour),
			Temperature: temps[i],
			Description: conds[i],
		})
	}
	return res
}

func TestTitleCase(t *testing.T) {
	tests := map[string]string{
		"clear sky":       "Clear Sky",
		"light rain":      "Light Rain",
		"":                "",
		"OVERCAST clouds": "Overcast Clouds",
	}
	for in, want := range tests {
		if got := TitleCase(in); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestColorize(t *testing.T) {
	if got := colorize("hi", ColorCyan, false, true); got != "hi" {
		t.Errorf("Expected plain text with colors disabled, got %q", got)
	}

	colored := colorize("hi", ColorCyan, true, false)
	if !strings.Contains(colored, "\033[38;2;139;233;253m") {
		t.Errorf("Expected 24-bit cyan escape, got %q", colored)
	}
	if StripANSI(colored) != "hi" {
		t.Errorf("Expected StripANSI to recover text, got %q", StripANSI(colored))
	}
}

func TestOneLineRender(t *testing.T) {
	res := &weather.Result{
		City:        "London",
		Temperature: 19.6,
		Description: "clear sky",
		Humidity:    50,
		WindSpeed:   5.2,
		Units:       weather.UnitsMetric,
	}

	got := NewOneLineRenderer(true).Render(res)
	want := "London: 20°C Clear Sky 5m/s 50%\n"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}

	colored := NewOneLineRenderer(false).Render(res)
	if StripANSI(colored) != want {
		t.Errorf("Expected colored output to match plain after stripping, got %q", StripANSI(colored))
	}
}

func TestRenderTemperature(t *testing.T) {
	r := NewChartRenderer(80, true)
	out := r.RenderTemperature(sampleForecast())

	if !strings.Contains(out, "Temperature Forecast for TestCity") {
		t.Error("Expected chart title")
	}
	if !strings.Contains(out, "5.0°C") || !strings.Contains(out, "1.0°C") {
		t.Errorf("Expected max and min axis labels, got:\n%s", out)
	}
	if n := strings.Count(out, "●"); n != 5 {
		t.Errorf("Expected 5 points, got %d", n)
	}
	if !strings.Contains(out, "Jan 01 00:00") || !strings.Contains(out, "Jan 01 12:00") {
		t.Errorf("Expected first and last date labels, got:\n%s", out)
	}
}

func TestRenderTemperatureTruncatesToWidth(t *testing.T) {
	r := NewChartRenderer(axisLabelWidth+5, true)
	out := r.RenderTemperature(sampleForecast())

	if n := strings.Count(out, "●"); n != 3 {
		t.Errorf("Expected 3 points to fit width, got %d", n)
	}
}

func TestRenderTemperatureEmpty(t *testing.T) {
	r := NewChartRenderer(80, true)
	out := r.RenderTemperature(&weather.Result{City: "Nowhere"})
	if !strings.Contains(out, "No forecast data.") {
		t.Errorf("Expected empty message, got %q", out)
	}
}

func TestConditionFrequency(t *testing.T) {
	counts := ConditionFrequency(sampleForecast().Forecast)

	want := []ConditionCount{
		{"snow", 1},
		{"light rain", 3},
		{"clear sky", 1},
	}
	if len(counts) != len(want) {
		t.Fatalf("Expected %d conditions, got %d", len(want), len(counts))
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}
}

func TestRenderConditionFrequency(t *testing.T) {
	r := NewChartRenderer(60, true)
	out := r.RenderConditionFrequency(sampleForecast())

	lines := strings.Split(strings.TrimSpace(out), "\n")
	// title, blank, then bars sorted by count
	if len(lines) != 5 {
		t.Fatalf("Expected 5 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[2], "Light Rain") || !strings.HasSuffix(lines[2], " 3") {
		t.Errorf("Expected most frequent condition first, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], "Snow") {
		t.Errorf("Expected ties in first-seen order, got %q", lines[3])
	}
}

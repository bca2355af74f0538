package renderer

import (
	"fmt"
	"math"

	"github.com/apimgr/cityweather/src/weather"
)

// OneLineRenderer renders a single status-bar line
type OneLineRenderer struct {
	NoColors bool
}

// NewOneLineRenderer creates a new one-line renderer
func NewOneLineRenderer(noColors bool) *OneLineRenderer {
	return &OneLineRenderer{NoColors: noColors}
}

// Render formats "City: 20°C Clear Sky 5m/s 50%"
func (r *OneLineRenderer) Render(res *weather.Result) string {
	temp := int(math.Round(res.Temperature))
	wind := int(math.Round(res.WindSpeed))

	return fmt.Sprintf("%s: %s %s %s %s\n",
		colorize(res.City, ColorCyan, false, r.NoColors),
		colorize(fmt.Sprintf("%d%s", temp, res.Units.TemperatureSymbol()), ColorYellow, false, r.NoColors),
		colorize(TitleCase(res.Description), ColorPurple, false, r.NoColors),
		colorize(fmt.Sprintf("%d%s", wind, res.Units.SpeedSymbol()), ColorPink, false, r.NoColors),
		colorize(fmt.Sprintf("%.0f%%", res.Humidity), ColorOrange, false, r.NoColors))
}

// Package renderer draws weather results as terminal text: one-line status
// output, ASCII art reports and ASCII charts of a forecast.
package renderer

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Dracula palette, shared with the CLI formatter
const (
	ColorCyan   = "#8be9fd"
	ColorGreen  = "#50fa7b"
	ColorOrange = "#ffb86c"
	ColorPink   = "#ff79c6"
	ColorPurple = "#bd93f9"
	ColorYellow = "#f1fa8c"
	ColorRed    = "#ff5555"
	ColorGray   = "#6272a4"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// TitleCase capitalises each word of a condition, e.g. "light rain" -> "Light Rain"
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// TerminalWidth returns the stdout width, defaulting to 80
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width == 0 {
		return 80
	}
	return width
}

// colorize wraps text in a 24-bit ANSI color unless noColors is set
func colorize(text, hexColor string, bold, noColors bool) string {
	if noColors {
		return text
	}

	red, green, blue := hexToRGB(hexColor)
	colorCode := fmt.Sprintf("\033[38;2;%d;%d;%dm", red, green, blue)
	if bold {
		colorCode = "\033[1m" + colorCode
	}
	return colorCode + text + "\033[0m"
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// StripANSI removes color codes, used for width math and tests
func StripANSI(text string) string {
	return ansiPattern.ReplaceAllString(text, "")
}

// padToWidth right-pads text to a visible width
func padToWidth(text string, width int) string {
	visible := utf8.RuneCountInString(StripANSI(text))
	if visible >= width {
		return text
	}
	return text + strings.Repeat(" ", width-visible)
}

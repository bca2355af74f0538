package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/apimgr/cityweather/src/renderer"
	"github.com/apimgr/cityweather/src/weather"
)

// Fetcher is the part of *weather.Client the commands use
type Fetcher interface {
	FetchWeather(ctx context.Context, city string, mode weather.Mode) (*weather.Result, error)
}

// Shell is the interactive read-eval-print loop
type Shell struct {
	Fetcher   Fetcher
	Formatter *Formatter
	Charts    *renderer.ChartRenderer
	Out       io.Writer
	Logger    *Logger
}

// Run reads commands from in until quit or EOF. Fetch failures are printed
// and the loop continues.
func (s *Shell) Run(ctx context.Context, in io.Reader) error {
	fmt.Fprintln(s.Out, "Welcome to the Weather CLI App! Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.Out, "weather> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return scanner.Err()
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		command := strings.ToLower(fields[0])
		arg := strings.Join(fields[1:], " ")

		switch command {
		case "quit", "exit", "q":
			fmt.Fprintln(s.Out, "Goodbye!")
			return nil
		case "help":
			printShellHelp(s.Out)
		case "weather", "current":
			s.show(ctx, command, arg, weather.ModeCurrent)
		case "forecast", "chart":
			s.show(ctx, command, arg, weather.ModeForecast)
		default:
			fmt.Fprintf(s.Out, "Unknown command: %s. Type 'help' for available commands.\n", command)
		}
	}
}

func (s *Shell) show(ctx context.Context, command, city string, mode weather.Mode) {
	if city == "" {
		fmt.Fprintf(s.Out, "Usage: %s <city>\n", command)
		return
	}

	res, err := s.Fetcher.FetchWeather(ctx, city, mode)
	if err != nil {
		s.Logger.Debugf("shell %s %q: %v", command, city, err)
		what := "weather"
		if mode == weather.ModeForecast {
			what = "forecast"
		}
		fmt.Fprintf(s.Out, "Could not fetch %s for '%s': %v\n", what, city, toExitError(err))
		return
	}

	if command == "chart" {
		fmt.Fprint(s.Out, s.Charts.RenderAll(res))
		return
	}
	fmt.Fprint(s.Out, s.Formatter.FormatResult(res))
}

func printShellHelp(w io.Writer) {
	fmt.Fprint(w, `
Weather CLI Commands:
  weather <city>     Show current weather for <city>
  forecast <city>    Show the forecast for <city>
  chart <city>       Chart the forecast for <city>
  help               Show this help message
  quit / exit / q    Quit the application

`)
}

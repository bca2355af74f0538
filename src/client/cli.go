package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/cityweather/src/weather"
)

// options holds parsed command-line flags
type options struct {
	apiKey   string
	baseURL  string
	units    string
	lang     string
	output   string
	config   string
	out      string
	limit    int
	noColor  bool
	debug    bool
	forecast bool
	version  bool
	help     bool
}

// commands recognised as the first positional argument. Anything else is a city.
var commands = map[string]bool{
	"current":  true,
	"weather":  true,
	"forecast": true,
	"chart":    true,
	"shell":    true,
	"config":   true,
	"version":  true,
	"help":     true,
}

// Execute is the main entry point for the CLI
func Execute() error {
	return Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// Run parses args and runs the selected command. Flags may appear anywhere,
// so "cityweather London --forecast" works.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts := &options{}

	flagSet := pflag.NewFlagSet(projectName, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		printUsage(stdout)
	}

	flagSet.StringVar(&opts.apiKey, "api-key", "", "OpenWeatherMap API key (overrides "+EnvAPIKey+" and config)")
	flagSet.StringVar(&opts.baseURL, "base-url", "", "Weather API base URL (overrides config)")
	flagSet.StringVarP(&opts.units, "units", "u", "", "Units: metric, imperial, standard")
	flagSet.StringVar(&opts.lang, "lang", "", "Language for condition descriptions")
	flagSet.StringVarP(&opts.output, "output", "o", "", "Output format: table, plain, json, yaml, oneline, ascii")
	flagSet.StringVarP(&opts.config, "config", "c", "", "Config file path or profile name")
	flagSet.StringVar(&opts.out, "out", "", "Write the chart to a file (chart command)")
	flagSet.IntVarP(&opts.limit, "limit", "n", -1, "Number of forecast entries to print")
	flagSet.BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	flagSet.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flagSet.BoolVarP(&opts.forecast, "forecast", "f", false, "Show the forecast instead of current weather")
	flagSet.BoolVarP(&opts.version, "version", "v", false, "Show version information")
	flagSet.BoolVarP(&opts.help, "help", "h", false, "Show help")

	// Parse flags
	if err := flagSet.Parse(args); err != nil {
		return NewUsageError(err.Error())
	}

	// Show version
	if opts.version {
		printVersion(stdout)
		return nil
	}

	// Show help
	if opts.help {
		printUsage(stdout)
		return nil
	}

	// Get command
	positional := flagSet.Args()
	command := "current"
	if len(positional) > 0 && commands[strings.ToLower(positional[0])] {
		command = strings.ToLower(positional[0])
		positional = positional[1:]
	}
	if command == "weather" {
		command = "current"
	}
	if opts.forecast && command == "current" {
		command = "forecast"
	}

	switch command {
	case "help":
		printUsage(stdout)
		return nil
	case "version":
		printVersion(stdout)
		return nil
	case "config":
		return handleConfigCommand(ResolveConfigPath(opts.config), positional, stdout)
	}

	a, err := newApp(opts, stdin, stdout, stderr)
	if err != nil {
		return err
	}
	defer a.logger.Close()

	ctx := context.Background()

	// Route to appropriate command handler
	switch command {
	case "current":
		err = a.handleWeatherCommand(ctx, positional, weather.ModeCurrent)
	case "forecast":
		err = a.handleWeatherCommand(ctx, positional, weather.ModeForecast)
	case "chart":
		err = a.handleChartCommand(ctx, positional, opts.out)
	case "shell":
		err = a.handleShellCommand(ctx)
	}
	return toExitError(err)
}

// printUsage prints the usage information
func printUsage(w io.Writer) {
	fmt.Fprint(w, `cityweather - current weather and forecasts by city

Usage:
  cityweather [flags] <city...>
  cityweather [flags] <command> [args]

Commands:
  current [city]      Show current weather (default)
  forecast [city]     Show the forecast
  chart [city]        Chart forecast temperatures and conditions
  shell               Start the interactive shell
  config              Manage configuration (init, show, get, set)
  version             Show version information
  help                Show this help message

Flags:
  --api-key <key>      OpenWeatherMap API key (or OPENWEATHER_API_KEY)
  --base-url <url>     Weather API base URL (default: https://api.openweathermap.org/data/2.5)
  -u, --units <units>  metric, imperial, standard (default: metric)
  --lang <code>        Language for condition descriptions
  -o, --output <fmt>   table, plain, json, yaml, oneline, ascii (default: table)
  -c, --config <path>  Config file path or profile name
  -f, --forecast       Show the forecast instead of current weather
  -n, --limit <n>      Number of forecast entries to print (default: 10)
  --out <file>         Write the chart to a file (chart command)
  --no-color           Disable colored output
  --debug              Enable debug logging
  -v, --version        Show version information
  -h, --help           Show this help message

Examples:
  cityweather London
  cityweather new york --forecast
  cityweather forecast Paris -n 5 -o plain
  cityweather chart Tokyo --out tokyo.txt
  cityweather config set auth.api_key YOUR_API_KEY

Configuration:
  Config file location: `+CLIConfigFile()+`
  Initialize config: cityweather config init
`)
}

// printVersion prints version information
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version %s\n", projectName, Version)
	fmt.Fprintf(w, "Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
}

// handleConfigCommand handles config subcommands
func handleConfigCommand(path string, args []string, out io.Writer) error {
	if len(args) == 0 {
		return NewUsageError("config command requires a subcommand (init, show, get, set)")
	}

	subcommand := args[0]

	switch subcommand {
	case "init":
		return InitConfig(path, out)

	case "show":
		config, err := LoadConfigFrom(path)
		if err != nil {
			return err
		}
		shown := *config
		if shown.Auth.APIKey != "" {
			shown.Auth.APIKey = maskSecret(shown.Auth.APIKey)
		}
		data, err := yaml.Marshal(&shown)
		if err != nil {
			return NewConfigError(fmt.Sprintf("failed to marshal config: %v", err))
		}
		fmt.Fprintf(out, "# %s\n%s", path, data)
		return nil

	case "get":
		if len(args) < 2 {
			return NewUsageError("config get requires a key")
		}
		config, err := LoadConfigFrom(path)
		if err != nil {
			return err
		}
		value, err := GetConfigValue(config, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, value)
		return nil

	case "set":
		if len(args) < 3 {
			return NewUsageError("config set requires a key and value")
		}
		config, err := readConfigFile(path)
		if err != nil {
			return err
		}
		value := strings.Join(args[2:], " ")
		if err := SetConfigValue(config, args[1], value); err != nil {
			return err
		}
		if err := SaveConfig(config, path); err != nil {
			return err
		}
		fmt.Fprintf(out, "Configuration updated: %s = %s\n", args[1], value)
		return nil

	default:
		return NewUsageError(fmt.Sprintf("unknown config subcommand: %s", subcommand))
	}
}

// maskSecret keeps the last four characters of a secret
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

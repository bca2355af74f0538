package client

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apimgr/cityweather/src/renderer"
	"github.com/apimgr/cityweather/src/weather"
)

// app is the wiring shared by the weather commands
type app struct {
	config      *CLIConfig
	fetcher     Fetcher
	formatter   *Formatter
	logger      *Logger
	noColor     bool
	interactive bool
	stdin       io.Reader
	stdout      io.Writer
}

// newApp loads config, applies flag overrides and builds the weather client
func newApp(opts *options, stdin io.Reader, stdout, stderr io.Writer) (*app, error) {
	config, err := LoadConfigFrom(ResolveConfigPath(opts.config))
	if err != nil {
		return nil, err
	}

	// Override config with flags
	if opts.baseURL != "" {
		config.Provider.BaseURL = opts.baseURL
	}
	if opts.units != "" {
		config.Provider.Units = opts.units
	}
	if opts.lang != "" {
		config.Provider.Lang = opts.lang
	}
	if opts.output != "" {
		config.Output.Format = opts.output
	}
	if opts.limit >= 0 {
		config.Output.ForecastLimit = opts.limit
	}
	if opts.debug {
		config.Debug = true
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	logger, err := OpenLogger(stderr, config.Logging, config.Debug)
	if err != nil {
		return nil, err
	}

	units, _ := weather.ParseUnits(config.Provider.Units)
	apiKey := config.APIKey(opts.apiKey)
	if apiKey == "" {
		logger.Warnf("no API key configured; set %s or auth.api_key", EnvAPIKey)
	}

	client := weather.NewClient(
		weather.WithBaseURL(config.Provider.BaseURL),
		weather.WithAPIKey(apiKey),
		weather.WithUnits(units),
		weather.WithLanguage(config.Provider.Lang),
		weather.WithLogger(logger),
		weather.WithUserAgent(UserAgent()),
	)

	noColor := !colorEnabled(config.Output.Color, opts.noColor, stdout)

	return &app{
		config:      config,
		fetcher:     client,
		formatter:   NewFormatter(config.Output.Format, noColor, config.Output.ForecastLimit),
		logger:      logger,
		noColor:     noColor,
		interactive: isTerminal(stdin) && isTerminal(stdout),
		stdin:       stdin,
		stdout:      stdout,
	}, nil
}

// city resolves the city from args, the configured default, or a prompt
func (a *app) city(args []string) (string, error) {
	if len(args) == 0 && a.config.Location != "" {
		args = []string{a.config.Location}
	}
	return GetCity(args, a.stdin, a.stdout, a.interactive)
}

// handleWeatherCommand prints current conditions or the forecast
func (a *app) handleWeatherCommand(ctx context.Context, args []string, mode weather.Mode) error {
	city, err := a.city(args)
	if err != nil {
		return err
	}

	res, err := a.fetcher.FetchWeather(ctx, city, mode)
	if err != nil {
		a.logger.Debugf("fetch failed: %v", err)
		return err
	}

	fmt.Fprint(a.stdout, a.formatter.FormatResult(res))
	return nil
}

// handleChartCommand charts the forecast to stdout, or to outPath without colors
func (a *app) handleChartCommand(ctx context.Context, args []string, outPath string) error {
	city, err := a.city(args)
	if err != nil {
		return err
	}

	res, err := a.fetcher.FetchWeather(ctx, city, weather.ModeForecast)
	if err != nil {
		a.logger.Debugf("fetch failed: %v", err)
		return err
	}

	if outPath == "" {
		fmt.Fprint(a.stdout, renderer.NewChartRenderer(0, a.noColor).RenderAll(res))
		return nil
	}

	chart := renderer.NewChartRenderer(0, true).RenderAll(res)
	if err := EnsureFile(outPath); err != nil {
		return NewExitError(fmt.Sprintf("failed to write chart: %v", err), ExitGeneralError)
	}
	if err := os.WriteFile(outPath, []byte(chart), 0644); err != nil {
		return NewExitError(fmt.Sprintf("failed to write chart: %v", err), ExitGeneralError)
	}
	fmt.Fprintf(a.stdout, "Chart saved to %s\n", outPath)
	return nil
}

// handleShellCommand runs the interactive shell on stdin
func (a *app) handleShellCommand(ctx context.Context) error {
	shell := &Shell{
		Fetcher:   a.fetcher,
		Formatter: a.formatter,
		Charts:    renderer.NewChartRenderer(0, a.noColor),
		Out:       a.stdout,
		Logger:    a.logger,
	}
	return shell.Run(ctx, a.stdin)
}

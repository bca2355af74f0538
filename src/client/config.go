package client

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/apimgr/cityweather/src/weather"
)

// Environment variables read on top of the config file
const (
	EnvAPIKey       = "OPENWEATHER_API_KEY"
	EnvBaseURL      = "WEATHER_BASE_URL"
	EnvUnits        = "WEATHER_UNITS"
	EnvOutputFormat = "WEATHER_OUTPUT_FORMAT"
	EnvDebug        = "WEATHER_DEBUG"
)

// DefaultForecastLimit is how many forecast slots are printed (about 30 hours of 3-hour slots)
const DefaultForecastLimit = 10

// CLIConfig represents the CLI client configuration
type CLIConfig struct {
	// Weather API settings
	Provider ProviderConfig `yaml:"provider,omitempty"`
	// Authentication
	Auth AuthConfig `yaml:"auth,omitempty"`
	// Output preferences
	Output OutputConfig `yaml:"output,omitempty"`
	// Logging
	Logging LoggingConfig `yaml:"logging,omitempty"`
	// Debug mode
	Debug bool `yaml:"debug,omitempty"`
	// Default city when none is given
	Location string `yaml:"location,omitempty"`
}

// ProviderConfig holds weather API settings
type ProviderConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	Units   string `yaml:"units,omitempty"`
	Lang    string `yaml:"lang,omitempty"`
}

// AuthConfig holds the API key, inline or in a file
type AuthConfig struct {
	APIKey     string `yaml:"api_key,omitempty"`
	APIKeyFile string `yaml:"api_key_file,omitempty"`
}

// OutputConfig holds output preferences
type OutputConfig struct {
	Format        string `yaml:"format,omitempty"`
	Color         string `yaml:"color,omitempty"`
	ForecastLimit int    `yaml:"forecast_limit,omitempty"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

var (
	outputFormats = []string{"table", "plain", "json", "yaml", "oneline", "ascii"}
	colorModes    = []string{"auto", "always", "never"}
	logLevels     = []string{"debug", "info", "warn", "error"}
)

// DefaultConfig returns the default configuration
func DefaultConfig() *CLIConfig {
	return &CLIConfig{
		Provider: ProviderConfig{
			BaseURL: weather.DefaultBaseURL,
			Units:   string(weather.UnitsMetric),
		},
		Output: OutputConfig{
			Format:        "table",
			Color:         "auto",
			ForecastLimit: DefaultForecastLimit,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// LoadConfig loads the default config file
func LoadConfig() (*CLIConfig, error) {
	return LoadConfigFrom(CLIConfigFile())
}

// LoadConfigFrom builds the effective configuration: defaults, then the YAML
// file at path (if present), then .env and environment overrides.
func LoadConfigFrom(path string) (*CLIConfig, error) {
	config, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	if err := loadDotEnv(".env"); err != nil {
		return nil, NewConfigError(fmt.Sprintf("failed to load .env: %v", err))
	}
	config.applyEnv()

	return config, nil
}

// readConfigFile returns defaults merged with the file at path, without
// environment overrides. A missing file yields the defaults.
func readConfigFile(path string) (*CLIConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, NewConfigError(fmt.Sprintf("failed to parse config %s: %v", path, err))
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only
	default:
		return nil, NewConfigError(fmt.Sprintf("failed to read config: %v", err))
	}
	return config, nil
}

// loadDotEnv loads a .env file if present. Variables already set win.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv applies WEATHER_* and OPENWEATHER_API_KEY overrides
func (c *CLIConfig) applyEnv() {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvUnits); v != "" {
		c.Provider.Units = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		c.Debug = parseBoolValue(v)
	}
}

// Validate checks enumerated values
func (c *CLIConfig) Validate() error {
	if _, err := weather.ParseUnits(c.Provider.Units); err != nil {
		return NewConfigError(err.Error())
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return NewConfigError(fmt.Sprintf("output.format must be one of %s", strings.Join(outputFormats, ", ")))
	}
	if !slices.Contains(colorModes, c.Output.Color) {
		return NewConfigError(fmt.Sprintf("output.color must be one of %s", strings.Join(colorModes, ", ")))
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return NewConfigError(fmt.Sprintf("logging.level must be one of %s", strings.Join(logLevels, ", ")))
	}
	if c.Output.ForecastLimit < 0 {
		return NewConfigError("output.forecast_limit must not be negative")
	}
	return nil
}

// APIKey returns the API key by priority:
// 1. --api-key flag, 2. OPENWEATHER_API_KEY, 3. auth.api_key, 4. auth.api_key_file,
// 5. {config_dir}/api_key. Empty means no key is sent.
func (c *CLIConfig) APIKey(flagKey string) string {
	if flagKey != "" {
		return flagKey
	}
	if key := os.Getenv(EnvAPIKey); key != "" {
		return key
	}
	if c.Auth.APIKey != "" {
		return c.Auth.APIKey
	}
	for _, path := range []string{c.Auth.APIKeyFile, CLIAPIKeyFile()} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			if key := strings.TrimSpace(string(data)); key != "" {
				return key
			}
		}
	}
	return ""
}

// SaveConfig writes the configuration to path with user-only permissions
func SaveConfig(config *CLIConfig, path string) error {
	if err := EnsureFile(path); err != nil {
		return NewConfigError(fmt.Sprintf("failed to create config directory: %v", err))
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return NewConfigError(fmt.Sprintf("failed to marshal config: %v", err))
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return NewConfigError(fmt.Sprintf("failed to write config: %v", err))
	}
	if err := setFilePermissions(path); err != nil {
		return NewConfigError(fmt.Sprintf("failed to set config permissions: %v", err))
	}
	return nil
}

// InitConfig writes a default config file, refusing to overwrite one
func InitConfig(path string, out io.Writer) error {
	if _, err := os.Stat(path); err == nil {
		return NewConfigError(fmt.Sprintf("config file already exists: %s", path))
	}

	if err := SaveConfig(DefaultConfig(), path); err != nil {
		return err
	}

	fmt.Fprintf(out, "Configuration file created at: %s\n", path)
	return nil
}

// GetConfigValue returns a value by dotted key, e.g. provider.units
func GetConfigValue(config *CLIConfig, key string) (string, error) {
	switch key {
	case "provider.base_url":
		return config.Provider.BaseURL, nil
	case "provider.units":
		return config.Provider.Units, nil
	case "provider.lang":
		return config.Provider.Lang, nil
	case "auth.api_key":
		return config.Auth.APIKey, nil
	case "auth.api_key_file":
		return config.Auth.APIKeyFile, nil
	case "output.format":
		return config.Output.Format, nil
	case "output.color":
		return config.Output.Color, nil
	case "output.forecast_limit":
		return strconv.Itoa(config.Output.ForecastLimit), nil
	case "logging.level":
		return config.Logging.Level, nil
	case "logging.file":
		return config.Logging.File, nil
	case "location":
		return config.Location, nil
	case "debug":
		return strconv.FormatBool(config.Debug), nil
	default:
		return "", NewConfigError(fmt.Sprintf("unknown config key: %s", key))
	}
}

// SetConfigValue sets a value by dotted key, validating enumerations
func SetConfigValue(config *CLIConfig, key, value string) error {
	switch key {
	case "provider.base_url":
		config.Provider.BaseURL = value
	case "provider.units":
		units, err := weather.ParseUnits(value)
		if err != nil {
			return NewConfigError(err.Error())
		}
		config.Provider.Units = string(units)
	case "provider.lang":
		config.Provider.Lang = value
	case "auth.api_key":
		config.Auth.APIKey = value
	case "auth.api_key_file":
		config.Auth.APIKeyFile = value
	case "output.format":
		if !slices.Contains(outputFormats, value) {
			return NewConfigError(fmt.Sprintf("output.format must be one of %s", strings.Join(outputFormats, ", ")))
		}
		config.Output.Format = value
	case "output.color":
		if !slices.Contains(colorModes, value) {
			return NewConfigError(fmt.Sprintf("output.color must be one of %s", strings.Join(colorModes, ", ")))
		}
		config.Output.Color = value
	case "output.forecast_limit":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return NewConfigError("output.forecast_limit must be a non-negative integer")
		}
		config.Output.ForecastLimit = n
	case "logging.level":
		if !slices.Contains(logLevels, value) {
			return NewConfigError(fmt.Sprintf("logging.level must be one of %s", strings.Join(logLevels, ", ")))
		}
		config.Logging.Level = value
	case "logging.file":
		config.Logging.File = value
	case "location":
		config.Location = value
	case "debug":
		config.Debug = parseBoolValue(value)
	default:
		return NewConfigError(fmt.Sprintf("unknown config key: %s", key))
	}
	return nil
}

// parseBoolValue parses true/false, yes/no, 1/0, on/off, enable/disable
func parseBoolValue(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "yes", "1", "on", "enable", "enabled", "y":
		return true
	default:
		return false
	}
}


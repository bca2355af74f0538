package client

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/apimgr/cityweather/src/weather"
)

// isolateEnv points HOME at a temp dir and clears the variables the config reads
func isolateEnv(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("APPDATA", home)
	for _, key := range []string{EnvAPIKey, EnvBaseURL, EnvUnits, EnvOutputFormat, EnvDebug, "NO_COLOR"} {
		t.Setenv(key, "")
	}
	return home
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Provider.BaseURL != weather.DefaultBaseURL {
		t.Errorf("Expected default base URL to be %s, got %s", weather.DefaultBaseURL, config.Provider.BaseURL)
	}

	if config.Provider.Units != "metric" {
		t.Errorf("Expected default units to be metric, got %s", config.Provider.Units)
	}

	if config.Output.Format != "table" {
		t.Errorf("Expected default output to be table, got %s", config.Output.Format)
	}

	if config.Output.ForecastLimit != DefaultForecastLimit {
		t.Errorf("Expected default forecast limit to be %d, got %d", DefaultForecastLimit, config.Output.ForecastLimit)
	}

	if config.Debug {
		t.Error("Expected default Debug to be false")
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	isolateEnv(t)
	path := CLIConfigFile()

	if !filepath.IsAbs(path) {
		t.Errorf("Expected absolute path, got %s", path)
	}

	if filepath.Base(path) != "cli.yml" {
		t.Errorf("Expected filename to be cli.yml, got %s", filepath.Base(path))
	}
}

func TestResolveConfigPath(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name     string
		expected string
	}{
		{"", CLIConfigFile()},
		{"work", filepath.Join(CLIConfigDir(), "work.yml")},
		{"work.yaml", filepath.Join(CLIConfigDir(), "work.yaml")},
		{"./local.yml", "./local.yml"},
		{"/tmp/other.yml", "/tmp/other.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveConfigPath(tt.name); got != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestLoadConfigNonExistent(t *testing.T) {
	isolateEnv(t)

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	// Should return default config
	if config.Provider.BaseURL != weather.DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", config.Provider.BaseURL)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "cli.yml")
	if err := os.WriteFile(path, []byte("provider: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadConfigFrom(path)
	if ExitCode(err) != ExitConfigError {
		t.Errorf("Expected ExitConfigError, got %v", err)
	}
}

func TestSaveAndLoadConfig(t *testing.T) {
	isolateEnv(t)

	// Create config
	config := DefaultConfig()
	config.Provider.BaseURL = "http://test.example.com"
	config.Provider.Units = "imperial"
	config.Auth.APIKey = "test-key"
	config.Output.Format = "json"
	config.Output.ForecastLimit = 4
	config.Location = "New York"

	// Save config
	if err := SaveConfig(config, CLIConfigFile()); err != nil {
		t.Fatalf("SaveConfig() failed: %v", err)
	}

	info, err := os.Stat(CLIConfigFile())
	if err != nil {
		t.Fatalf("Config file was not created: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected permissions 0600, got %o", info.Mode().Perm())
	}

	// Load config
	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	// Verify all fields
	if loaded.Provider.BaseURL != config.Provider.BaseURL {
		t.Errorf("Expected base URL %s, got %s", config.Provider.BaseURL, loaded.Provider.BaseURL)
	}
	if loaded.Provider.Units != config.Provider.Units {
		t.Errorf("Expected units %s, got %s", config.Provider.Units, loaded.Provider.Units)
	}
	if loaded.Auth.APIKey != config.Auth.APIKey {
		t.Errorf("Expected API key %s, got %s", config.Auth.APIKey, loaded.Auth.APIKey)
	}
	if loaded.Output.Format != config.Output.Format {
		t.Errorf("Expected output %s, got %s", config.Output.Format, loaded.Output.Format)
	}
	if loaded.Output.ForecastLimit != config.Output.ForecastLimit {
		t.Errorf("Expected forecast limit %d, got %d", config.Output.ForecastLimit, loaded.Output.ForecastLimit)
	}
	if loaded.Location != config.Location {
		t.Errorf("Expected location %s, got %s", config.Location, loaded.Location)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvBaseURL, "http://env.example.com")
	t.Setenv(EnvUnits, "imperial")
	t.Setenv(EnvOutputFormat, "plain")
	t.Setenv(EnvDebug, "yes")

	config, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if config.Provider.BaseURL != "http://env.example.com" {
		t.Errorf("Expected base URL from env, got %s", config.Provider.BaseURL)
	}
	if config.Provider.Units != "imperial" {
		t.Errorf("Expected units from env, got %s", config.Provider.Units)
	}
	if config.Output.Format != "plain" {
		t.Errorf("Expected output from env, got %s", config.Output.Format)
	}
	if !config.Debug {
		t.Error("Expected Debug from env")
	}
}

func TestAPIKeyPriority(t *testing.T) {
	isolateEnv(t)
	config := DefaultConfig()

	if key := config.APIKey(""); key != "" {
		t.Errorf("Expected no API key, got %s", key)
	}

	keyFile := CLIAPIKeyFile()
	if err := EnsureFile(keyFile); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(keyFile, []byte("file-key\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if key := config.APIKey(""); key != "file-key" {
		t.Errorf("Expected key from default key file, got %s", key)
	}

	config.Auth.APIKey = "config-key"
	if key := config.APIKey(""); key != "config-key" {
		t.Errorf("Expected key from config, got %s", key)
	}

	t.Setenv(EnvAPIKey, "env-key")
	if key := config.APIKey(""); key != "env-key" {
		t.Errorf("Expected key from env, got %s", key)
	}

	if key := config.APIKey("flag-key"); key != "flag-key" {
		t.Errorf("Expected key from flag, got %s", key)
	}
}

func TestInitConfig(t *testing.T) {
	isolateEnv(t)
	path := CLIConfigFile()

	// Initialize config
	if err := InitConfig(path, io.Discard); err != nil {
		t.Fatalf("InitConfig() failed: %v", err)
	}

	// Verify config file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	// Try to init again (should fail)
	err := InitConfig(path, io.Discard)
	if err == nil {
		t.Error("Expected error when initializing existing config")
	}
	if exitErr, ok := err.(*ExitError); ok {
		if exitErr.Code != ExitConfigError {
			t.Errorf("Expected ExitConfigError, got exit code %d", exitErr.Code)
		}
	} else {
		t.Error("Expected ExitError type")
	}
}

func TestGetConfigValue(t *testing.T) {
	config := DefaultConfig()
	config.Provider.BaseURL = "http://test.example.com"
	config.Auth.APIKey = "test-key"
	config.Output.Format = "json"
	config.Output.ForecastLimit = 5
	config.Debug = true
	config.Location = "Paris"

	tests := []struct {
		key      string
		expected string
	}{
		{"provider.base_url", "http://test.example.com"},
		{"provider.units", "metric"},
		{"auth.api_key", "test-key"},
		{"output.format", "json"},
		{"output.forecast_limit", "5"},
		{"logging.level", "warn"},
		{"debug", "true"},
		{"location", "Paris"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			value, err := GetConfigValue(config, tt.key)
			if err != nil {
				t.Fatalf("GetConfigValue(%s) failed: %v", tt.key, err)
			}
			if value != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, value)
			}
		})
	}

	// Test invalid key
	_, err := GetConfigValue(config, "invalid_key")
	if err == nil {
		t.Error("Expected error for invalid key")
	}
}

func TestSetConfigValue(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"provider.base_url", "http://new.example.com"},
		{"provider.units", "imperial"},
		{"provider.lang", "de"},
		{"auth.api_key", "new-key"},
		{"output.format", "yaml"},
		{"output.color", "never"},
		{"output.forecast_limit", "3"},
		{"logging.level", "debug"},
		{"location", "San Francisco"},
		{"debug", "true"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if err := SetConfigValue(config, tt.key, tt.value); err != nil {
				t.Fatalf("SetConfigValue(%s, %s) failed: %v", tt.key, tt.value, err)
			}

			// Verify the value was set
			value, err := GetConfigValue(config, tt.key)
			if err != nil {
				t.Fatalf("GetConfigValue(%s) failed: %v", tt.key, err)
			}
			if value != tt.value {
				t.Errorf("Expected %s, got %s", tt.value, value)
			}
		})
	}
}

func TestSetConfigValueValidation(t *testing.T) {
	config := DefaultConfig()

	tests := []struct {
		key   string
		value string
	}{
		{"provider.units", "kelvin"},
		{"output.format", "invalid"},
		{"output.color", "sometimes"},
		{"output.forecast_limit", "abc"},
		{"output.forecast_limit", "-1"},
		{"logging.level", "trace"},
		{"invalid_key", "value"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			err := SetConfigValue(config, tt.key, tt.value)
			if err == nil {
				t.Fatalf("Expected error for %s=%s", tt.key, tt.value)
			}
			if ExitCode(err) != ExitConfigError {
				t.Errorf("Expected ExitConfigError, got exit code %d", ExitCode(err))
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*CLIConfig)
	}{
		{"units", func(c *CLIConfig) { c.Provider.Units = "kelvin" }},
		{"format", func(c *CLIConfig) { c.Output.Format = "xml" }},
		{"color", func(c *CLIConfig) { c.Output.Color = "rainbow" }},
		{"level", func(c *CLIConfig) { c.Logging.Level = "loud" }},
		{"limit", func(c *CLIConfig) { c.Output.ForecastLimit = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(config)
			if err := config.Validate(); ExitCode(err) != ExitConfigError {
				t.Errorf("Expected ExitConfigError, got %v", err)
			}
		})
	}
}

func TestParseBoolValue(t *testing.T) {
	for _, v := range []string{"true", "YES", "1", "on", "enabled", " y "} {
		if !parseBoolValue(v) {
			t.Errorf("Expected %q to be true", v)
		}
	}
	for _, v := range []string{"false", "no", "0", "off", "maybe", ""} {
		if parseBoolValue(v) {
			t.Errorf("Expected %q to be false", v)
		}
	}
}

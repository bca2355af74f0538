package client

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Platform-specific directory paths for CLI configuration

const (
	projectOrg  = "apimgr"
	projectName = "cityweather"
)

// CLIConfigDir returns the CLI config directory
// ~/.config/apimgr/cityweather/ (Unix) or %APPDATA%\apimgr\cityweather\ (Windows)
func CLIConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(os.Getenv("APPDATA"), projectOrg, projectName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", projectOrg, projectName)
}

// CLIConfigFile returns the default config file path
func CLIConfigFile() string {
	return filepath.Join(CLIConfigDir(), "cli.yml")
}

// CLIAPIKeyFile returns the API key file path
func CLIAPIKeyFile() string {
	return filepath.Join(CLIConfigDir(), "api_key")
}

// ResolveConfigPath maps a --config value to a file.
// Empty selects the default file, a bare name selects {config_dir}/{name}.yml,
// anything containing a path separator is used as is.
func ResolveConfigPath(name string) string {
	if name == "" {
		return CLIConfigFile()
	}
	if strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	if !strings.HasSuffix(name, ".yml") && !strings.HasSuffix(name, ".yaml") {
		name += ".yml"
	}
	return filepath.Join(CLIConfigDir(), name)
}

// EnsureFile creates parent dirs with user-only permissions
func EnsureFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := setDirPermissions(dir); err != nil {
		return fmt.Errorf("set permissions on %s: %w", dir, err)
	}
	return nil
}

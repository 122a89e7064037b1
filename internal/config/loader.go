package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.promptlens.yaml",               // Project-specific config (highest priority)
	"~/.config/promptlens/config.yaml", // User config
}

// BaseURLEnvVars lists the variables that can set the analysis endpoint,
// highest priority first
var BaseURLEnvVars = []string{
	"PROMPTLENS_API_URL",
	"API_BASE_URL",
	"NEXT_PUBLIC_API_URL",
}

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	dotenvPath  string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		dotenvPath:  ".env",
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables (real environment, then .env)
// 3. ./.promptlens.yaml
// 4. ~/.config/promptlens/config.yaml
// 5. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if err := l.loadDotEnv(); err != nil {
		return nil, err
	}

	if customPath != "" {
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// lowest priority first so later files win
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if !fileExists(expandedPath) {
				continue
			}
			if err := l.loadFromFile(config, expandedPath); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
			}
		}
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadDotEnv populates unset variables from a .env file when one exists
func (l *Loader) loadDotEnv() error {
	if l.dotenvPath == "" || !fileExists(l.dotenvPath) {
		return nil
	}
	if err := godotenv.Load(l.dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", l.dotenvPath, err)
	}
	return nil
}

// loadFromFile loads configuration from a YAML file over the existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - config path is chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	// yaml only overwrites the keys present in the file
	if err := yaml.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	for i := len(BaseURLEnvVars) - 1; i >= 0; i-- {
		if v := strings.TrimSpace(os.Getenv(BaseURLEnvVars[i])); v != "" {
			config.API.BaseURL = v
		}
	}

	envMappings := map[string]func(string) error{
		"PROMPTLENS_NO_EMOJI":   func(v string) error { return parseBool(v, &config.UI.NoEmoji) },
		"PROMPTLENS_ALT_SCREEN": func(v string) error { return parseBool(v, &config.UI.AltScreen) },
		"PROMPTLENS_OUTPUT":     func(v string) error { config.UI.Output = v; return nil },
		"PROMPTLENS_STYLE":      func(v string) error { config.UI.Style = v; return nil },
		"PROMPTLENS_WRAP_WIDTH": func(v string) error { return parseInt(v, &config.UI.WrapWidth) },
		"PROMPTLENS_LOG_LEVEL":  func(v string) error { config.Logging.Level = v; return nil },
		"PROMPTLENS_LOG_FILE":   func(v string) error { config.Logging.File = v; return nil },
	}

	for envVar, setter := range envMappings {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}
	return nil
}

// SearchPaths returns ConfigPaths with ~ expanded, highest priority first
func SearchPaths() []string {
	paths := make([]string, len(ConfigPaths))
	for i, path := range ConfigPaths {
		paths[i] = expandPath(path)
	}
	return paths
}

func parseBool(value string, target *bool) error {
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}

func parseInt(value string, target *int) error {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*target = parsed
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

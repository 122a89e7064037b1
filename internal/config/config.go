package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/csheth/promptlens/internal/analysis"
	"github.com/csheth/promptlens/internal/report"
)

// Config holds the complete application configuration
type Config struct {
	API     APIConfig     `yaml:"api" json:"api"`
	UI      UIConfig      `yaml:"ui" json:"ui"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// APIConfig points at the analysis service
type APIConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// UIConfig configures the terminal surfaces
type UIConfig struct {
	AltScreen bool `yaml:"alt_screen" json:"alt_screen"`
	NoEmoji   bool `yaml:"no_emoji" json:"no_emoji"`
	// Output is one of text, json, markdown, html, pretty.
	Output string `yaml:"output" json:"output"`
	// Style is the glamour style used by pretty output.
	Style     string `yaml:"style" json:"style"`
	WrapWidth int    `yaml:"wrap_width" json:"wrap_width"`
}

// LoggingConfig configures the diagnostic log
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"`
	File  string `yaml:"file" json:"file"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: analysis.DefaultBaseURL,
		},
		UI: UIConfig{
			AltScreen: true,
			NoEmoji:   false,
			Output:    "text",
			Style:     "auto",
			WrapWidth: 76,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Validate checks the configuration for usable values
func (c *Config) Validate() error {
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("api.base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("api.base_url must be an http(s) URL, got %q", c.API.BaseURL)
	}
	if parsed.Host == "" {
		return fmt.Errorf("api.base_url is missing a host: %q", c.API.BaseURL)
	}
	if _, err := report.New(c.UI.Output, report.Options{}); err != nil {
		return fmt.Errorf("ui.output: %w", err)
	}
	if c.UI.WrapWidth < 20 {
		return fmt.Errorf("ui.wrap_width must be at least 20, got %d", c.UI.WrapWidth)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

// LogFile resolves the diagnostic log location
func (c *Config) LogFile() string {
	if c.Logging.File != "" {
		return expandPath(c.Logging.File)
	}
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		if home, err := os.UserHomeDir(); err == nil {
			base = filepath.Join(home, ".local", "state")
		} else {
			base = os.TempDir()
		}
	}
	return filepath.Join(base, "promptlens", "promptlens.log")
}

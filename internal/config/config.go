// Package config handles persistent user configuration for r2ta.
//
// Configuration is stored as JSON at ~/.config/r2ta/config.json (or the
// platform-equivalent path returned by os.UserConfigDir). Every setting is
// optional; unset values fall back to the defaults below, and command-line
// flags override both.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"r2ta/internal/database"
)

const (
	appDir   = "r2ta"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Defaults for unset configuration values.
const (
	DefaultBundleName   = database.DefaultBundleName
	DefaultChartSize    = 800
	DefaultOutputFormat = "svg"
	DefaultBins         = 50
	DefaultLogLevel     = "warn"
)

// Config holds user preferences that persist across invocations.
type Config struct {
	BundleName    string `json:"bundle_name,omitempty"`
	ChartSize     int    `json:"chart_size,omitempty"`
	OutputFormat  string `json:"output_format,omitempty"`
	HistogramBins int    `json:"histogram_bins,omitempty"`
	LogLevel      string `json:"log_level,omitempty"`
}

// Bundle returns the bundle file name looked up inside input directories.
func (c *Config) Bundle() string {
	if c.BundleName == "" {
		return DefaultBundleName
	}
	return c.BundleName
}

// Size returns the rendered chart edge length in pixels.
func (c *Config) Size() int {
	if c.ChartSize <= 0 {
		return DefaultChartSize
	}
	return c.ChartSize
}

// Format returns the chart output format name.
func (c *Config) Format() string {
	if c.OutputFormat == "" {
		return DefaultOutputFormat
	}
	return c.OutputFormat
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config.
// If the file does not exist, a zero-value Config is returned (not an error).
func Load() (*Config, error) {
	return loadFrom("")
}

// loadFrom reads the config from the given path. If path is empty, the
// default Path() is used. Exported only for testing via LoadFrom.
func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

// saveTo writes the config to the given path. If path is empty, the
// default Path() is used.
func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path. Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}

package config

import (
	"fmt"
	"strconv"
	"strings"

	"r2ta/internal/charting"
	"r2ta/internal/logging"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "chart-size").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Default is the effective value while the key is unset.
	Default string

	// Get returns the stored value for this key from a loaded Config, or ""
	// when unset.
	Get func(cfg *Config) string

	// Set validates value and applies it to the given Config (in memory
	// only; the caller is responsible for calling Save).
	Set func(cfg *Config, value string) error
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "bundle-name",
		Description: "File name of the analysis bundle inside an input directory",
		Default:     DefaultBundleName,
		Get:         func(cfg *Config) string { return cfg.BundleName },
		Set: func(cfg *Config, v string) error {
			v = strings.TrimSpace(v)
			if v == "" || strings.ContainsAny(v, `/\`) {
				return fmt.Errorf("bundle name must be a plain file name, got %q", v)
			}
			cfg.BundleName = v
			return nil
		},
	},
	{
		Name:        "chart-size",
		Description: "Width and height of rendered charts in pixels",
		Default:     strconv.Itoa(DefaultChartSize),
		Get:         func(cfg *Config) string { return itoaOrEmpty(cfg.ChartSize) },
		Set: func(cfg *Config, v string) error {
			n, err := positiveInt(v)
			if err != nil {
				return err
			}
			cfg.ChartSize = n
			return nil
		},
	},
	{
		Name:        "output-format",
		Description: "Chart output format: svg, png or text",
		Default:     DefaultOutputFormat,
		Get:         func(cfg *Config) string { return cfg.OutputFormat },
		Set: func(cfg *Config, v string) error {
			f, err := charting.ParseFormat(v)
			if err != nil {
				return err
			}
			cfg.OutputFormat = f.String()
			return nil
		},
	},
	{
		Name:        "histogram-bins",
		Description: "Bin count for histograms when --bins is not given",
		Default:     strconv.Itoa(DefaultBins),
		Get:         func(cfg *Config) string { return itoaOrEmpty(cfg.HistogramBins) },
		Set: func(cfg *Config, v string) error {
			n, err := positiveInt(v)
			if err != nil {
				return err
			}
			cfg.HistogramBins = n
			return nil
		},
	},
	{
		Name:        "log-level",
		Description: "Diagnostic log level: debug, info, warn or error",
		Default:     DefaultLogLevel,
		Get:         func(cfg *Config) string { return cfg.LogLevel },
		Set: func(cfg *Config, v string) error {
			level, err := logging.ParseLevel(strings.TrimSpace(v))
			if err != nil {
				return err
			}
			cfg.LogLevel = level.String()
			return nil
		},
	},
}

func positiveInt(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", v)
	}
	return n, nil
}

func itoaOrEmpty(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}

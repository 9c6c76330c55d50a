package charting

import (
	"fmt"
	"strings"
)

// Plot selects the chart variant. HistogramPlot and ScatterPlot are the
// only implementations.
type Plot interface {
	// Slug names the plot in generated file names.
	Slug() string

	isPlot()
}

// HistogramPlot bins samples into at most Bins buckets. Zero means
// DefaultBins.
type HistogramPlot struct {
	Bins int
}

// ScatterPlot draws one point per sample against its index.
type ScatterPlot struct{}

func (HistogramPlot) isPlot() {}
func (ScatterPlot) isPlot()   {}

// Slug includes the requested bin count as given, so "histogram_0" is the
// default binning.
func (p HistogramPlot) Slug() string { return fmt.Sprintf("histogram_%d", p.Bins) }
func (ScatterPlot) Slug() string     { return "scatter" }

// ParsePlot maps "histogram" or "scatter" to a Plot.
func ParsePlot(s string, bins int) (Plot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "histogram":
		if bins < 0 {
			return nil, fmt.Errorf("charting: bin count must not be negative, got %d", bins)
		}
		return HistogramPlot{Bins: bins}, nil
	case "scatter":
		return ScatterPlot{}, nil
	}
	return nil, fmt.Errorf("charting: unknown plot %q (valid: histogram, scatter)", s)
}

// Format is the output encoding of a chart.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatText Format = "text"
)

// Formats lists every accepted format.
var Formats = []Format{FormatSVG, FormatPNG, FormatText}

// ParseFormat accepts a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("charting: unknown output format %q (valid: svg, png, text)", s)
}

func (f Format) String() string { return string(f) }

// Set implements pflag.Value.
func (f *Format) Set(s string) error {
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }

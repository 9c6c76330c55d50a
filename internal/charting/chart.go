// Package charting turns a sample sequence into a binned histogram or an
// indexed scatter plot and renders it to SVG, PNG or a terminal preview.
package charting

import (
	"fmt"
	"math"

	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"

	"github.com/wcharczuk/go-chart/v2"
)

// Chart is a computed chart ready to be drawn. *Histogram and *Scatter are
// the only implementations, dispatched from New.
type Chart interface {
	// AxisFits returns the display units of the X and Y axes.
	AxisFits() [2]axis.BestFit

	// drawInto sets the ranges, ticks and series of c.
	drawInto(c *chart.Chart) error
}

// New computes the chart described by plot over data.
func New(data extract.ChartableData, plot Plot, d axis.Descriptors) (Chart, error) {
	switch p := plot.(type) {
	case HistogramPlot:
		h, err := NewHistogram(data, p.Bins, d)
		if err != nil {
			return nil, err
		}
		return h, nil
	case ScatterPlot:
		s, err := NewScatter(data, d)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("charting: %w: unsupported plot %T", ErrIncompatibleDataShape, plot)
}

// Range is a closed interval on one axis.
type Range struct {
	Min int64
	Max int64
}

// Span is Max minus Min.
func (r Range) Span() int64 { return r.Max - r.Min }

// drawable widens an empty range so it can be mapped onto pixels.
func (r Range) drawable() Range {
	if r.Max <= r.Min {
		return Range{Min: r.Min, Max: r.Min + 1}
	}
	return r
}

func (r Range) continuous() *chart.ContinuousRange {
	return &chart.ContinuousRange{Min: float64(r.Min), Max: float64(r.Max)}
}

func samplesOf(data extract.ChartableData) ([]int64, error) {
	switch data.Kind {
	case extract.KindI64:
		return data.I64, nil
	}
	return nil, fmt.Errorf("charting: %w: %v samples", ErrIncompatibleDataShape, data.Kind)
}

// bounds returns the smallest and largest sample, or (0,0) for no samples.
func bounds(samples []int64) Range {
	if len(samples) == 0 {
		return Range{}
	}
	r := Range{Min: samples[0], Max: samples[0]}
	for _, s := range samples[1:] {
		r.Min = min(r.Min, s)
		r.Max = max(r.Max, s)
	}
	return r
}

func checkRange(name string, r Range) error {
	if r.Max <= r.Min {
		return fmt.Errorf("charting: %w: empty %s range [%d, %d]", ErrInvalidCoordinateSystem, name, r.Min, r.Max)
	}
	return nil
}

// linearTicks spreads n ticks evenly over r, both ends included.
func linearTicks(r Range, n int, fit axis.BestFit) []chart.Tick {
	ticks := make([]chart.Tick, 0, n)
	step := float64(r.Span()) / float64(n-1)
	for i := range n {
		v := float64(r.Min) + step*float64(i)
		if i == n-1 {
			v = float64(r.Max)
		}
		ticks = append(ticks, chart.Tick{Value: v, Label: axis.FormatTick(fit, v)})
	}
	return ticks
}

// logTicks marks the lower bound, each power of ten inside r and the upper
// bound.
func logTicks(r Range, fit axis.BestFit) []chart.Tick {
	ticks := []chart.Tick{{Value: float64(r.Min), Label: axis.FormatTick(fit, float64(r.Min))}}
	for p := int64(1); p < r.Max && p <= math.MaxInt64/10; p *= 10 {
		if p > r.Min {
			ticks = append(ticks, chart.Tick{Value: float64(p), Label: axis.FormatTick(fit, float64(p))})
		}
	}
	return append(ticks, chart.Tick{Value: float64(r.Max), Label: axis.FormatTick(fit, float64(r.Max))})
}

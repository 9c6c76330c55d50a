package charting

import (
	"fmt"
	"math"
	"sort"

	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"

	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

// DefaultBins is the bin count used when none is requested.
const DefaultBins = 50

// MaxSampleMagnitude bounds the samples a histogram accepts. Alignment and
// padding widen the range by up to five bin widths past the samples, and
// its midpoint is computed from the span, all of which must fit in int64.
const MaxSampleMagnitude = math.MaxInt64 / 64

// Histogram is a binned sample distribution. Bucket b counts the samples
// in [Min + b*BinWidth, Min + (b+1)*BinWidth), with the last bucket also
// absorbing everything above it.
type Histogram struct {
	Bins     int
	BinWidth int64
	// Min is the smallest sample and the left edge of bucket 0.
	Min    int64
	XRange Range
	// YRange runs from zero to the fullest bucket's count.
	YRange  Range
	Buckets map[int]int64

	fits [2]axis.BestFit
}

// NewHistogram bins data into at most bins buckets. A non-positive bins
// selects DefaultBins.
func NewHistogram(data extract.ChartableData, bins int, d axis.Descriptors) (*Histogram, error) {
	samples, err := samplesOf(data)
	if err != nil {
		return nil, err
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	b := bounds(samples)
	if b.Min < -MaxSampleMagnitude || b.Max > MaxSampleMagnitude {
		return nil, fmt.Errorf("charting: %w: samples [%d, %d] exceed ±%d", ErrInvalidCoordinateSystem, b.Min, b.Max, int64(MaxSampleMagnitude))
	}
	width, xr := Bin(b.Min, b.Max, bins)

	buckets := make(map[int]int64)
	for _, s := range samples {
		i := min((s-b.Min)/width, int64(bins-1))
		buckets[int(max(i, 0))]++
	}

	var fullest int64
	for _, n := range buckets {
		fullest = max(fullest, n)
	}

	h := &Histogram{
		Bins:     bins,
		BinWidth: width,
		Min:      b.Min,
		XRange:   xr,
		YRange:   Range{Min: 0, Max: fullest},
		Buckets:  buckets,
		fits: [2]axis.BestFit{
			d.X.BestFit(xr.Min + xr.Span()/2),
			d.Y.Quantity.Fixed(),
		},
	}

	zap.L().Debug("binned samples",
		zap.Int("samples", len(samples)),
		zap.Int("bins", bins),
		zap.Int("occupied", len(buckets)),
		zap.Int64("bin_width", width),
		zap.Int64("x_start", xr.Min),
		zap.Int64("x_end", xr.Max),
		zap.Int64("y_max", fullest),
	)
	return h, nil
}

func (h *Histogram) AxisFits() [2]axis.BestFit { return h.fits }

// Bin picks the bin width for samples spanning [lo, hi] and the x range
// the histogram is drawn over.
//
// Equal bounds give a fixed window of width eight around the value, never
// starting below zero. Otherwise the width is a nice number near
// (hi-lo)/bins and the range is aligned to it, then padded to a multiple of
// four bin widths.
func Bin(lo, hi int64, bins int) (int64, Range) {
	if lo == hi {
		return 1, Range{Min: max(lo-4, 0), Max: hi + 4}
	}
	// The span is taken in float64 so it cannot wrap.
	width := RoundBinWidth((float64(hi) - float64(lo)) / float64(bins))
	return width, padRange(alignRange(lo, hi, width), width)
}

// RoundBinWidth rounds v up to the nearest 1, 2, 5 or 10 times a power of
// ten. The result is never below 1.
func RoundBinWidth(v float64) int64 {
	if !(v > 0) || math.IsInf(v, 0) {
		return 1
	}
	magnitude := math.Pow(10, math.Floor(math.Log10(v)))
	normalized := v / magnitude

	var nice float64
	switch {
	case normalized <= 1:
		nice = 1
	case normalized <= 2:
		nice = 2
	case normalized <= 5:
		nice = 5
	default:
		nice = 10
	}

	width := int64(math.Round(nice * magnitude))
	if width < 1 {
		return 1
	}
	return width
}

// alignRange widens [lo, hi] outwards to multiples of width.
func alignRange(lo, hi, width int64) Range {
	r := Range{Min: floorDiv(lo, width) * width, Max: hi}
	if hi%width != 0 {
		r.Max = (floorDiv(hi, width) + 1) * width
	}
	return r
}

// padRange grows r until its span is a multiple of 4*width, splitting the
// extra span between both ends. A range starting at or above zero is not
// pushed below zero; the remainder goes to the right instead.
func padRange(r Range, width int64) Range {
	required := 4 * width
	rem := r.Span() % required
	if rem == 0 {
		return r
	}
	extra := required - rem
	left := extra / 2
	right := extra - left

	if r.Min >= 0 && r.Min-left < 0 {
		return Range{Min: 0, Max: r.Max + extra - r.Min}
	}
	return Range{Min: r.Min - left, Max: r.Max + right}
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (h *Histogram) drawInto(c *chart.Chart) error {
	if err := checkRange("x", h.XRange); err != nil {
		return err
	}
	yr := h.YRange.drawable()

	c.XAxis.Range = h.XRange.continuous()
	c.XAxis.Ticks = linearTicks(h.XRange, xTickCount, h.fits[0])
	c.YAxis.Range = &logRange{ContinuousRange: yr.continuous()}
	c.YAxis.Ticks = logTicks(yr, h.fits[1])

	keys := make([]int, 0, len(h.Buckets))
	for b := range h.Buckets {
		keys = append(keys, b)
	}
	sort.Ints(keys)

	bars := make([]bar, 0, len(keys))
	for _, b := range keys {
		start := h.Min + int64(b)*h.BinWidth
		bars = append(bars, bar{
			Start: float64(start),
			End:   float64(start + h.BinWidth),
			Count: float64(h.Buckets[b]),
		})
	}
	c.Series = []chart.Series{barSeries{
		Name:  "samples",
		Style: chart.Style{FillColor: chart.ColorBlue, StrokeColor: chart.ColorBlue, StrokeWidth: 1},
		Bars:  bars,
	}}
	return nil
}

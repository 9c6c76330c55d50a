package charting

import (
	"errors"
	"math"
	"testing"

	"r2ta/internal/analysis"
	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"

	"github.com/google/go-cmp/cmp"
)

func histogramDescriptors() axis.Descriptors {
	return ResolveDescriptors(analysis.CallbackDuration, HistogramPlot{})
}

func TestRoundBinWidth(t *testing.T) {
	tests := []struct {
		in   float64
		want int64
	}{
		{0.02, 1},
		{0.2, 1},
		{1, 1},
		{1.5, 2},
		{2, 2},
		{3, 5},
		{7, 10},
		{20, 20},
		{21, 50},
		{450, 500},
		{20000, 20000},
	}
	for _, tt := range tests {
		if got := RoundBinWidth(tt.in); got != tt.want {
			t.Errorf("RoundBinWidth(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func isNice(w int64) bool {
	for w >= 10 && w%10 == 0 {
		w /= 10
	}
	return w == 1 || w == 2 || w == 5
}

func TestRoundBinWidth_IsSmallestNiceValue(t *testing.T) {
	for _, v := range []float64{1.1, 2.7, 4.9, 6, 9.99, 13, 37, 99, 101, 640, 7777, 123456} {
		got := RoundBinWidth(v)
		if !isNice(got) {
			t.Errorf("RoundBinWidth(%v) = %d, not a nice number", v, got)
		}
		if float64(got) < v {
			t.Errorf("RoundBinWidth(%v) = %d, below the input", v, got)
		}
		// The next smaller nice number must already be below v.
		for smaller := got - 1; smaller >= 1; smaller-- {
			if isNice(smaller) {
				if float64(smaller) >= v {
					t.Errorf("RoundBinWidth(%v) = %d, but %d is nice and large enough", v, got, smaller)
				}
				break
			}
		}
	}
}

func TestBin_Degenerate(t *testing.T) {
	tests := []struct {
		value int64
		want  Range
	}{
		{10, Range{6, 14}},
		{2, Range{0, 6}},
		{0, Range{0, 4}},
	}
	for _, tt := range tests {
		width, r := Bin(tt.value, tt.value, DefaultBins)
		if width != 1 {
			t.Errorf("Bin(%d) width = %d, want 1", tt.value, width)
		}
		if r != tt.want {
			t.Errorf("Bin(%d) range = %+v, want %+v", tt.value, r, tt.want)
		}
	}
}

func TestBin_General(t *testing.T) {
	width, r := Bin(0, 100, DefaultBins)
	if width != 2 {
		t.Fatalf("width = %d, want 2", width)
	}
	if aligned := alignRange(0, 100, width); aligned != (Range{0, 100}) {
		t.Errorf("aligned range = %+v, want {0 100}", aligned)
	}
	if r != (Range{0, 104}) {
		t.Errorf("padded range = %+v, want {0 104}", r)
	}
}

func TestAlignAndPad(t *testing.T) {
	tests := []struct {
		name  string
		got   Range
		want  Range
	}{
		{"align negative", alignRange(-3, 7, 2), Range{-4, 8}},
		{"align exact", alignRange(4, 10, 2), Range{4, 10}},
		{"pad negative start is symmetric", padRange(Range{-4, 8}, 2), Range{-6, 10}},
		{"pad symmetric", padRange(Range{2, 12}, 1), Range{1, 13}},
		{"pad clamps at zero", padRange(Range{2, 12}, 2), Range{0, 16}},
		{"pad already aligned", padRange(Range{0, 16}, 2), Range{0, 16}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %+v, want %+v", tt.got, tt.want)
			}
		})
	}
}

func TestBin_SpanIsMultipleOfFourWidths(t *testing.T) {
	bounds := [][2]int64{
		{0, 1}, {0, 100}, {1, 100}, {3, 17}, {-50, 50}, {-1234, -7},
		{999, 1001}, {100_000, 2_500_000}, {0, math.MaxInt32},
	}
	for _, b := range bounds {
		for _, bins := range []int{1, 2, 3, 7, 10, 50, 100, 1000} {
			width, r := Bin(b[0], b[1], bins)
			if width <= 0 {
				t.Fatalf("Bin(%v, %d) width = %d", b, bins, width)
			}
			if r.Span() <= 0 || r.Span()%(4*width) != 0 {
				t.Errorf("Bin(%v, %d) = %d %+v: span not a positive multiple of %d", b, bins, width, r, 4*width)
			}
			if r.Min > b[0] || r.Max < b[1] {
				t.Errorf("Bin(%v, %d) range %+v does not cover the samples", b, bins, r)
			}
		}
	}
}

func TestNewHistogram_Degenerate(t *testing.T) {
	h, err := NewHistogram(extract.I64([]int64{10, 10, 10, 10}), 0, histogramDescriptors())
	if err != nil {
		t.Fatalf("NewHistogram failed: %v", err)
	}
	if h.Bins != DefaultBins {
		t.Errorf("Bins = %d, want %d", h.Bins, DefaultBins)
	}
	if h.BinWidth != 1 {
		t.Errorf("BinWidth = %d, want 1", h.BinWidth)
	}
	if h.XRange != (Range{6, 14}) {
		t.Errorf("XRange = %+v, want {6 14}", h.XRange)
	}
	if diff := cmp.Diff(map[int]int64{0: 4}, h.Buckets); diff != "" {
		t.Errorf("Buckets mismatch (-want +got):\n%s", diff)
	}
	if h.YRange != (Range{0, 4}) {
		t.Errorf("YRange = %+v, want {0 4}", h.YRange)
	}
}

func TestNewHistogram_ClampsLastBucket(t *testing.T) {
	h, err := NewHistogram(extract.I64([]int64{0, 100}), 50, histogramDescriptors())
	if err != nil {
		t.Fatalf("NewHistogram failed: %v", err)
	}
	if diff := cmp.Diff(map[int]int64{0: 1, 49: 1}, h.Buckets); diff != "" {
		t.Errorf("Buckets mismatch (-want +got):\n%s", diff)
	}
	if h.XRange != (Range{0, 104}) {
		t.Errorf("XRange = %+v, want {0 104}", h.XRange)
	}
}

func TestNewHistogram_CountsEverySample(t *testing.T) {
	samples := make([]int64, 0, 1000)
	for i := range 1000 {
		samples = append(samples, int64(i*i%977))
	}
	for _, bins := range []int{1, 5, 50, 200} {
		h, err := NewHistogram(extract.I64(samples), bins, histogramDescriptors())
		if err != nil {
			t.Fatalf("NewHistogram failed: %v", err)
		}
		var total int64
		for b, n := range h.Buckets {
			if b < 0 || b >= bins {
				t.Errorf("bins=%d: bucket %d out of range", bins, b)
			}
			total += n
		}
		if total != int64(len(samples)) {
			t.Errorf("bins=%d: buckets hold %d samples, want %d", bins, total, len(samples))
		}
	}
}

func TestNewHistogram_AxisFits(t *testing.T) {
	h, err := NewHistogram(extract.I64([]int64{0, 1_000_000}), 50, histogramDescriptors())
	if err != nil {
		t.Fatalf("NewHistogram failed: %v", err)
	}
	if h.BinWidth != 20_000 || h.XRange != (Range{0, 1_040_000}) {
		t.Fatalf("BinWidth = %d, XRange = %+v", h.BinWidth, h.XRange)
	}
	fits := h.AxisFits()
	if fits[0].Target != axis.Millisecond {
		t.Errorf("x fit = %v, want ms", fits[0].Target)
	}
	if fits[1].Target != axis.Base {
		t.Errorf("y fit = %v, want base", fits[1].Target)
	}
}

func TestNewHistogram_Empty(t *testing.T) {
	h, err := NewHistogram(extract.I64(nil), 0, histogramDescriptors())
	if err != nil {
		t.Fatalf("NewHistogram failed: %v", err)
	}
	if len(h.Buckets) != 0 {
		t.Errorf("Buckets = %v, want none", h.Buckets)
	}
	if h.XRange != (Range{0, 4}) || h.YRange != (Range{0, 0}) {
		t.Errorf("ranges = %+v %+v", h.XRange, h.YRange)
	}
}

func TestNewHistogram_RejectsOverflowingSpans(t *testing.T) {
	tests := [][]int64{
		{math.MinInt64, math.MaxInt64},
		{0, math.MaxInt64},
		{math.MinInt64, 0},
		{MaxSampleMagnitude + 1},
	}
	for _, samples := range tests {
		_, err := NewHistogram(extract.I64(samples), 0, histogramDescriptors())
		if !errors.Is(err, ErrInvalidCoordinateSystem) {
			t.Errorf("NewHistogram(%v) error = %v, want ErrInvalidCoordinateSystem", samples, err)
		}
	}
}

func TestNewHistogram_WidestAcceptedSpan(t *testing.T) {
	lo, hi := int64(-MaxSampleMagnitude), int64(MaxSampleMagnitude)
	for _, bins := range []int{1, 3, 50} {
		h, err := NewHistogram(extract.I64([]int64{lo, 0, hi}), bins, histogramDescriptors())
		if err != nil {
			t.Fatalf("bins=%d: NewHistogram failed: %v", bins, err)
		}
		if h.BinWidth <= 0 {
			t.Fatalf("bins=%d: BinWidth = %d", bins, h.BinWidth)
		}
		if h.XRange.Min > lo || h.XRange.Max < hi {
			t.Errorf("bins=%d: XRange %+v does not cover [%d, %d]", bins, h.XRange, lo, hi)
		}
		if span := h.XRange.Span(); span <= 0 || span%(4*h.BinWidth) != 0 {
			t.Errorf("bins=%d: span %d is not a positive multiple of %d", bins, span, 4*h.BinWidth)
		}
		var total int64
		for _, n := range h.Buckets {
			total += n
		}
		if total != 3 {
			t.Errorf("bins=%d: buckets hold %d samples, want 3: %v", bins, total, h.Buckets)
		}
	}
}

package charting

import (
	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"

	"github.com/wcharczuk/go-chart/v2"
)

// Scatter plots sample i at (i, sample).
type Scatter struct {
	// XRange is (0, N) for N samples.
	XRange  Range
	YRange  Range
	Samples []int64

	fits [2]axis.BestFit
}

// NewScatter builds a scatter chart. The index axis is never rescaled and
// the value axis unit is fitted to the largest sample.
func NewScatter(data extract.ChartableData, d axis.Descriptors) (*Scatter, error) {
	samples, err := samplesOf(data)
	if err != nil {
		return nil, err
	}
	yr := bounds(samples)
	return &Scatter{
		XRange:  Range{Min: 0, Max: int64(len(samples))},
		YRange:  yr,
		Samples: samples,
		fits: [2]axis.BestFit{
			d.X.Quantity.Fixed(),
			d.Y.BestFit(yr.Max),
		},
	}, nil
}

func (s *Scatter) AxisFits() [2]axis.BestFit { return s.fits }

func (s *Scatter) drawInto(c *chart.Chart) error {
	xr, yr := s.XRange.drawable(), s.YRange.drawable()

	c.XAxis.Range = xr.continuous()
	c.XAxis.Ticks = linearTicks(xr, xTickCount, s.fits[0])
	c.YAxis.Range = yr.continuous()
	c.YAxis.Ticks = linearTicks(yr, yTickCount, s.fits[1])

	xs := make([]float64, len(s.Samples))
	ys := make([]float64, len(s.Samples))
	for i, v := range s.Samples {
		xs[i] = float64(i)
		ys[i] = float64(v)
	}
	c.Series = []chart.Series{chart.ContinuousSeries{
		Name: "samples",
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    2,
			DotColor:    chart.ColorBlue,
		},
		XValues: xs,
		YValues: ys,
	}}
	return nil
}

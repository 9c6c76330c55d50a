package charting

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
)

// logRange maps values onto pixels by log(1+v), so a zero count still has
// a position at the bottom of the axis.
type logRange struct {
	*chart.ContinuousRange
}

func (r logRange) Translate(value float64) int {
	lo, hi := math.Log1p(r.Min), math.Log1p(r.Max)
	if hi <= lo {
		return 0
	}
	ratio := (math.Log1p(math.Max(value, r.Min)) - lo) / (hi - lo)
	return int(math.Ceil(ratio * float64(r.Domain)))
}

type bar struct {
	Start float64
	End   float64
	Count float64
}

// barSeries draws filled rectangles from the bottom of the y range up to
// each bar's count.
type barSeries struct {
	Name  string
	Style chart.Style
	Bars  []bar
}

func (bs barSeries) GetName() string            { return bs.Name }
func (bs barSeries) GetYAxis() chart.YAxisType { return chart.YAxisPrimary }
func (bs barSeries) GetStyle() chart.Style      { return bs.Style }

func (bs barSeries) Validate() error {
	for _, b := range bs.Bars {
		if b.End <= b.Start {
			return fmt.Errorf("bar [%v, %v) has no width", b.Start, b.End)
		}
		if b.Count < 0 {
			return fmt.Errorf("bar [%v, %v) has negative height %v", b.Start, b.End, b.Count)
		}
	}
	return nil
}

func (bs barSeries) Render(r chart.Renderer, canvasBox chart.Box, xrange, yrange chart.Range, defaults chart.Style) {
	style := bs.Style.InheritFrom(defaults)
	r.SetFillColor(style.FillColor)
	r.SetStrokeColor(style.StrokeColor)
	r.SetStrokeWidth(style.StrokeWidth)
	defer r.ResetStyle()

	bottom := canvasBox.Bottom - yrange.Translate(yrange.GetMin())
	for _, b := range bs.Bars {
		left := canvasBox.Left + xrange.Translate(b.Start)
		right := canvasBox.Left + xrange.Translate(b.End)
		top := canvasBox.Bottom - yrange.Translate(b.Count)

		r.MoveTo(left, top)
		r.LineTo(right, top)
		r.LineTo(right, bottom)
		r.LineTo(left, bottom)
		r.LineTo(left, top)
		r.FillStroke()
	}
}

package charting

import (
	"fmt"
	"strings"

	"r2ta/internal/analysis"
	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"
	"r2ta/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
)

// previewHeight is the plot height of terminal previews in rows.
const previewHeight = 12

// Preview renders the chart as text for a terminal width columns wide.
// Histograms plot the count per bin, scatters plot samples in order.
func Preview(data extract.ChartableData, property analysis.Property, plot Plot, width int) (string, error) {
	if plot == nil {
		plot = HistogramPlot{}
	}
	d := ResolveDescriptors(property, plot)
	c, err := New(data, plot, d)
	if err != nil {
		return "", err
	}
	fits := c.AxisFits()

	header := styles.Title.Render(property.Description()) + " " + styles.Subtitle.Render(plot.Slug())
	if data.Len() == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, styles.MutedText.Render("no data")), nil
	}

	var (
		series  []float64
		caption string
		value   axis.BestFit
		summary []string
	)
	switch ch := c.(type) {
	case *Histogram:
		last := 0
		for b := range ch.Buckets {
			last = max(last, b)
		}
		series = make([]float64, last+1)
		for b, n := range ch.Buckets {
			series[b] = float64(n)
		}
		value = fits[0]
		caption = fmt.Sprintf("%s per %s bin", d.Y.Title(fits[1]), withUnit(d.X, value, float64(ch.BinWidth)))
	case *Scatter:
		series = make([]float64, len(ch.Samples))
		for i, v := range ch.Samples {
			series[i] = fits[1].Convert(float64(v))
		}
		value = fits[1]
		caption = fmt.Sprintf("%s by %s", d.Y.Title(fits[1]), strings.ToLower(d.X.Label))
	}

	plotWidth := width - 9
	if plotWidth < 10 {
		plotWidth = 10
	}
	graph := asciigraph.Plot(series,
		asciigraph.Height(previewHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(asciigraph.DodgerBlue),
		asciigraph.LabelColor(asciigraph.Default),
		asciigraph.Caption(caption),
	)

	b := bounds(data.I64)
	valueAxis := d.X
	if _, ok := plot.(ScatterPlot); ok {
		valueAxis = d.Y
	}
	summary = append(summary,
		"samples: "+humanize.Comma(int64(data.Len())),
		"min: "+withUnit(valueAxis, value, float64(b.Min)),
		"max: "+withUnit(valueAxis, value, float64(b.Max)),
	)
	footer := styles.MutedText.Render("  " + strings.Join(summary, "  "))

	return lipgloss.JoinVertical(lipgloss.Left, header, graph, footer), nil
}

func withUnit(d axis.Descriptor, fit axis.BestFit, v float64) string {
	unit := fit.Target.Symbol() + d.Quantity.UnitName()
	if unit == "" {
		return axis.FormatTick(fit, v)
	}
	return axis.FormatTick(fit, v) + " " + unit
}

package charting

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"r2ta/internal/analysis"
	"r2ta/internal/charting/axis"
	"r2ta/internal/extract"

	"github.com/wcharczuk/go-chart/v2"
	"go.uber.org/zap"
)

const (
	xTickCount = 9
	yTickCount = 7
)

// Request describes one chart to render.
type Request struct {
	Property analysis.Property
	Plot     Plot
	// Size is the width and height of the square image in pixels.
	Size   int
	Format Format
}

// Render draws data as requested and writes the image to path. The image
// is built in memory first, so a failed render leaves no file behind.
func Render(path string, data extract.ChartableData, req Request) error {
	var buf bytes.Buffer
	if err := Draw(&buf, data, req); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("charting: %w: failed to create directory %s: %w", ErrDrawing, dir, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("charting: %w: failed to write %s: %w", ErrDrawing, path, err)
	}

	zap.L().Debug("rendered chart",
		zap.String("path", path),
		zap.String("plot", req.Plot.Slug()),
		zap.Stringer("format", req.Format),
		zap.Int("bytes", buf.Len()),
	)
	return nil
}

// Draw renders data as requested into w.
func Draw(w io.Writer, data extract.ChartableData, req Request) error {
	provider, err := req.Format.provider()
	if err != nil {
		return err
	}
	if req.Size <= 0 {
		return fmt.Errorf("charting: %w: image size must be positive, got %d", ErrInvalidCoordinateSystem, req.Size)
	}
	if req.Plot == nil {
		req.Plot = HistogramPlot{}
	}

	descriptors := ResolveDescriptors(req.Property, req.Plot)
	c, err := New(data, req.Plot, descriptors)
	if err != nil {
		return err
	}

	graph := canvas(req.Size)
	if err := c.drawInto(&graph); err != nil {
		return err
	}
	label(&graph, c.AxisFits(), descriptors)

	for _, s := range graph.Series {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("charting: %w: %w", ErrSeriesInsertion, err)
		}
	}
	if err := graph.Render(provider, w); err != nil {
		return fmt.Errorf("charting: %w: %w", ErrDrawing, err)
	}
	return nil
}

func (f Format) provider() (chart.RendererProvider, error) {
	switch f {
	case FormatSVG:
		return chart.SVG, nil
	case FormatPNG:
		return chart.PNG, nil
	}
	return nil, fmt.Errorf("charting: no image backend for %q output", string(f))
}

// canvas returns a square chart with margins of a tenth of its size.
func canvas(size int) chart.Chart {
	margin := size / 10
	return chart.Chart{
		Width:  size,
		Height: size,
		Background: chart.Style{
			FillColor: chart.ColorWhite,
			Padding:   chart.Box{Top: margin, Left: margin, Right: margin, Bottom: margin},
		},
	}
}

func label(graph *chart.Chart, fits [2]axis.BestFit, d axis.Descriptors) {
	graph.XAxis.Name = d.X.Title(fits[0])
	graph.YAxis.Name = d.Y.Title(fits[1])
}

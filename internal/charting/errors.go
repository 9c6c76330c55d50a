package charting

import "errors"

// Sentinel errors, one per rendering stage. Each is wrapped together with
// the backend's message, so callers can match with errors.Is and still
// report what went wrong.
var (
	ErrIncompatibleDataShape   = errors.New("chart type is not compatible with the values")
	ErrInvalidCoordinateSystem = errors.New("invalid coordinate system")
	ErrSeriesInsertion         = errors.New("series cannot be inserted into the chart")
	ErrDrawing                 = errors.New("failed to render the image")
)

package charting

import (
	"r2ta/internal/analysis"
	"r2ta/internal/charting/axis"
)

var (
	nanoseconds = axis.Duration{Base: axis.Nanosecond}
	counts      = axis.SimpleSI{Base: axis.Base}
)

type labels struct {
	value string // what one sample measures
	count string // what one sample is
	nth   string // index axis of a scatter
}

var propertyLabels = map[analysis.Property]labels{
	analysis.CallbackDuration:  {"Duration", "Samples", "Nth Sample"},
	analysis.ActivationsDelay:  {"Delay", "Activations", "Nth Activation"},
	analysis.PublicationsDelay: {"Delay", "Publications", "Nth Publication"},
	analysis.MessagesDelay:     {"Delay", "Messages", "Nth Message"},
	analysis.MessagesLatency:   {"Latency", "Messages", "Nth Message"},
}

// ResolveDescriptors returns the axis labels and quantities for charting
// property as plot. Sample values are always nanosecond durations; counts
// and indices are plain numbers.
func ResolveDescriptors(property analysis.Property, plot Plot) axis.Descriptors {
	l, ok := propertyLabels[property]
	if !ok {
		l = labels{"Value", "Samples", "Nth Sample"}
	}
	value := axis.Descriptor{Label: l.value, Quantity: nanoseconds}

	switch plot.(type) {
	case ScatterPlot:
		return axis.Descriptors{
			X: axis.Descriptor{Label: l.nth, Quantity: counts},
			Y: value,
		}
	default:
		return axis.Descriptors{
			X: value,
			Y: axis.Descriptor{Label: l.count, Quantity: counts},
		}
	}
}

package axis

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Quantity describes what an axis measures and the unit its raw values
// are stored in. It is either a Duration or a SimpleSI.
type Quantity interface {
	// BestFit picks the display unit for a representative value.
	BestFit(value int64) BestFit
	// Fixed returns a no-op fit that displays values in their base unit.
	Fixed() BestFit
	// UnitName is appended to the prefix symbol in axis titles.
	UnitName() string

	isQuantity()
}

// Duration is a time quantity stored in Base units.
type Duration struct {
	Base DurationUnit
}

// SimpleSI is a dimensionless count stored in Base units, optionally with
// a unit Name (e.g. "B" for bytes).
type SimpleSI struct {
	Name string
	Base SIPrefix
}

func (Duration) isQuantity() {}
func (SimpleSI) isQuantity() {}

func (Duration) UnitName() string   { return "" }
func (q SimpleSI) UnitName() string { return q.Name }

func (q Duration) Fixed() BestFit { return BestFit{Base: q.Base, Target: q.Base} }
func (q SimpleSI) Fixed() BestFit { return BestFit{Base: q.Base, Target: q.Base} }

// BestFit scans the duration ladder and returns the first unit in which
// value reads within (0.1, 10]. Values outside every window fall back to
// nanoseconds.
func (q Duration) BestFit(value int64) BestFit {
	units := make([]Unit, len(DurationLadder))
	for i, u := range DurationLadder {
		units[i] = u
	}
	return findOrLast(value, q.Base, units, func(v float64) bool { return v > 0.1 && v <= 10 })
}

// BestFit scans the SI ladder and returns the first prefix in which value
// reads within [0.1, 10). Values outside every window fall back to nano.
func (q SimpleSI) BestFit(value int64) BestFit {
	units := make([]Unit, len(SILadder))
	for i, u := range SILadder {
		units[i] = u
	}
	return findOrLast(value, q.Base, units, func(v float64) bool { return v >= 0.1 && v < 10 })
}

func findOrLast(value int64, base Unit, ladder []Unit, accept func(float64) bool) BestFit {
	log := zap.L()
	for _, u := range ladder {
		v := Express(float64(value), base, u)
		ok := accept(math.Abs(v))
		log.Debug("best fit candidate",
			zap.Int64("value", value),
			zap.String("base", base.Symbol()),
			zap.String("unit", u.Symbol()),
			zap.Float64("expressed", v),
			zap.Bool("accepted", ok),
		)
		if ok {
			return BestFit{Base: base, Target: u}
		}
	}
	last := ladder[len(ladder)-1]
	log.Debug("best fit fell back to smallest unit", zap.Int64("value", value), zap.String("unit", last.Symbol()))
	return BestFit{Base: base, Target: last}
}

// BestFit pins the unit values are stored in (Base) and the unit they are
// displayed in (Target).
type BestFit struct {
	Base   Unit
	Target Unit
}

// Convert expresses a raw value in the target unit.
func (f BestFit) Convert(value float64) float64 {
	return Express(value, f.Base, f.Target)
}

// Descriptor names an axis and the quantity it measures.
type Descriptor struct {
	Label    string
	Quantity Quantity
}

// BestFit delegates to the descriptor's quantity.
func (d Descriptor) BestFit(value int64) BestFit {
	return d.Quantity.BestFit(value)
}

// Title renders "Label [unit]", or just the label when the unit is empty.
func (d Descriptor) Title(fit BestFit) string {
	unit := fit.Target.Symbol() + d.Quantity.UnitName()
	if unit == "" {
		return d.Label
	}
	return d.Label + " [" + unit + "]"
}

// Descriptors holds both axes of a chart.
type Descriptors struct {
	X Descriptor
	Y Descriptor
}

// FormatTick renders v in the fit's target unit with at most two decimals,
// trimming trailing zeros and a trailing decimal point.
func FormatTick(fit BestFit, v float64) string {
	s := strconv.FormatFloat(fit.Convert(v), 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}

// Package axis picks readable display units for chart axes.
//
// Two unit ladders are supported, durations (hour down to nanosecond) and
// SI magnitudes (mega down to nano). A BestFit pins the unit values are
// stored in together with the unit they are displayed in.
package axis

import "fmt"

// Unit is one rung of a unit ladder.
type Unit interface {
	// Ratio is the number of this unit in one reference unit (second or
	// base count).
	Ratio() float64
	// Symbol is the short display form, e.g. "ms" or "k".
	Symbol() string
}

// Express converts value given in base into target.
func Express(value float64, base, target Unit) float64 {
	return value * (target.Ratio() / base.Ratio())
}

// DurationUnit is a unit of time.
type DurationUnit int

const (
	Hour DurationUnit = iota
	Minute
	Second
	Millisecond
	Microsecond
	Nanosecond
)

// DurationLadder lists duration units from largest to smallest.
var DurationLadder = []DurationUnit{Hour, Minute, Second, Millisecond, Microsecond, Nanosecond}

func (u DurationUnit) Ratio() float64 {
	switch u {
	case Hour:
		return 1. / 3600.
	case Minute:
		return 1. / 60.
	case Second:
		return 1e0
	case Millisecond:
		return 1e3
	case Microsecond:
		return 1e6
	case Nanosecond:
		return 1e9
	}
	panic(fmt.Sprintf("axis: unknown duration unit %d", int(u)))
}

func (u DurationUnit) Symbol() string {
	switch u {
	case Hour:
		return "h"
	case Minute:
		return "m"
	case Second:
		return "s"
	case Millisecond:
		return "ms"
	case Microsecond:
		return "μs"
	case Nanosecond:
		return "ns"
	}
	return "?"
}

func (u DurationUnit) String() string { return u.Symbol() }

// SIPrefix is a decimal magnitude prefix.
type SIPrefix int

const (
	Mega SIPrefix = iota
	Kilo
	Base
	Milli
	Micro
	Nano
)

// SILadder lists SI prefixes from largest to smallest.
var SILadder = []SIPrefix{Mega, Kilo, Base, Milli, Micro, Nano}

func (p SIPrefix) Ratio() float64 {
	switch p {
	case Mega:
		return 1e-6
	case Kilo:
		return 1e-3
	case Base:
		return 1e0
	case Milli:
		return 1e3
	case Micro:
		return 1e6
	case Nano:
		return 1e9
	}
	panic(fmt.Sprintf("axis: unknown SI prefix %d", int(p)))
}

func (p SIPrefix) Symbol() string {
	switch p {
	case Mega:
		return "M"
	case Kilo:
		return "k"
	case Base:
		return ""
	case Milli:
		return "m"
	case Micro:
		return "μ"
	case Nano:
		return "n"
	}
	return "?"
}

func (p SIPrefix) String() string {
	if p == Base {
		return "base"
	}
	return p.Symbol()
}

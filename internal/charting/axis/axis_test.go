package axis

import (
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Abs(b))
}

func TestDurationBestFit_Nanoseconds(t *testing.T) {
	fit := Duration{Base: Nanosecond}.BestFit(500)

	if fit.Target != Microsecond {
		t.Fatalf("Target = %v, want μs", fit.Target)
	}
	if got := fit.Convert(500); !approx(got, 0.5) {
		t.Errorf("Convert(500) = %v, want 0.5", got)
	}
}

func TestSIBestFit_Kilo(t *testing.T) {
	fit := SimpleSI{Base: Base}.BestFit(1500)

	if fit.Target != Kilo {
		t.Fatalf("Target = %v, want k", fit.Target)
	}
	if got := fit.Convert(1500); !approx(got, 1.5) {
		t.Errorf("Convert(1500) = %v, want 1.5", got)
	}
}

func TestBestFit_Windows(t *testing.T) {
	tests := []struct {
		name  string
		q     Quantity
		value int64
		want  Unit
	}{
		// 10 μs reads exactly 10, inside the closed upper bound.
		{"duration upper bound inclusive", Duration{Base: Nanosecond}, 10_000, Microsecond},
		{"duration seconds", Duration{Base: Nanosecond}, 2_500_000_000, Second},
		{"duration hours", Duration{Base: Second}, 7200, Hour},
		// Anything past 6 minutes already reads above 0.1 h.
		{"duration wide hour window", Duration{Base: Second}, 600, Hour},
		{"si mega", SimpleSI{Base: Base}, 250_000, Mega},
		// 50 reads 0.05 k and 50 in base, so nothing fits.
		{"si falls through", SimpleSI{Base: Base}, 50, Nano},
		{"si base", SimpleSI{Base: Base}, 7, Base},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.q.BestFit(tt.value).Target
			if got != tt.want {
				t.Errorf("BestFit(%d).Target = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestBestFit_FallsBackToLast(t *testing.T) {
	for _, v := range []int64{0, 1 << 62} {
		if got := (Duration{Base: Nanosecond}).BestFit(v).Target; got != Nanosecond {
			t.Errorf("Duration BestFit(%d) = %v, want ns", v, got)
		}
		if got := (SimpleSI{Base: Base}).BestFit(v).Target; got != Nano {
			t.Errorf("SimpleSI BestFit(%d) = %v, want n", v, got)
		}
	}
}

// Every fit lands in its window or on the last rung.
func TestBestFit_Property(t *testing.T) {
	values := []int64{1, 3, 9, 10, 11, 99, 100, 101, 999, 1000, 1001, 59_999, 3_600_000_000_000, 123_456_789}
	for _, v := range values {
		d := Duration{Base: Nanosecond}.BestFit(v)
		if c := math.Abs(d.Convert(float64(v))); !(c > 0.1 && c <= 10) && d.Target != Nanosecond {
			t.Errorf("Duration fit for %d gives %v in %v", v, c, d.Target)
		}
		s := SimpleSI{Base: Base}.BestFit(v)
		if c := math.Abs(s.Convert(float64(v))); !(c >= 0.1 && c < 10) && s.Target != Nano {
			t.Errorf("SI fit for %d gives %v in %v", v, c, s.Target)
		}
	}
}

func TestFixed(t *testing.T) {
	fit := SimpleSI{Base: Base}.Fixed()
	if fit.Target != Base || fit.Convert(1234) != 1234 {
		t.Errorf("Fixed() = %+v, want no-op", fit)
	}
	dfit := Duration{Base: Nanosecond}.Fixed()
	if dfit.Target != Nanosecond || dfit.Convert(42) != 42 {
		t.Errorf("Fixed() = %+v, want no-op", dfit)
	}
}

func TestFormatTick(t *testing.T) {
	fit := SimpleSI{Base: Base}.Fixed()
	tests := []struct {
		in   float64
		want string
	}{
		{2.5, "2.5"},
		{3, "3"},
		{0, "0"},
		{100, "100"},
		{1.234, "1.23"},
		{-0.001, "0"},
	}
	for _, tt := range tests {
		if got := FormatTick(fit, tt.in); got != tt.want {
			t.Errorf("FormatTick(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}

	us := Duration{Base: Nanosecond}.BestFit(500)
	if got := FormatTick(us, 1500); got != "1.5" {
		t.Errorf("FormatTick(μs, 1500) = %q, want %q", got, "1.5")
	}
}

func TestTitle(t *testing.T) {
	d := Descriptor{Label: "Duration", Quantity: Duration{Base: Nanosecond}}
	if got := d.Title(d.BestFit(500)); got != "Duration [μs]" {
		t.Errorf("Title = %q", got)
	}

	counts := Descriptor{Label: "Samples", Quantity: SimpleSI{Base: Base}}
	if got := counts.Title(counts.Quantity.Fixed()); got != "Samples" {
		t.Errorf("Title = %q", got)
	}

	bytes := Descriptor{Label: "Size", Quantity: SimpleSI{Name: "B", Base: Base}}
	if got := bytes.Title(bytes.BestFit(2048)); got != "Size [kB]" {
		t.Errorf("Title = %q", got)
	}
}

func TestBestFit_LogsCandidates(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	Duration{Base: Nanosecond}.BestFit(500)

	entries := logs.FilterMessage("best fit candidate").All()
	// h, m, s, ms rejected; μs accepted.
	if len(entries) != 5 {
		t.Fatalf("logged %d candidates, want 5", len(entries))
	}
	last := entries[len(entries)-1].ContextMap()
	if last["unit"] != "μs" || last["accepted"] != true {
		t.Errorf("last candidate = %v, want accepted μs", last)
	}
}

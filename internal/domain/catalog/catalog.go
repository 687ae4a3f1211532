// Package catalog expands decade tables into the concrete component values
// available across every magnitude of interest.
package catalog

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/series"
)

// Catalog is a flat list of realizable component values in base units.
// Order is (multiplier, table position) followed by any extras.
type Catalog []float64

// Validate reports ErrInvalidCatalog for an empty catalog or a non-positive,
// NaN or infinite value.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: empty", domain.ErrInvalidCatalog)
	}
	for i, v := range c {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %g at position %d", domain.ErrInvalidCatalog, v, i)
		}
	}
	return nil
}

// Scale describes how a decade table is spread over magnitudes.
type Scale struct {
	// Multipliers are applied to every table value, in order.
	Multipliers []float64
	// Precision is the number of decimal digits kept after scaling. It keeps
	// float noise from producing distinct entries for equal values.
	Precision int
	// Extras are appended verbatim after the scaled values.
	Extras []float64
}

// ResistorScale covers roughly 0.1 Ω to 100 MΩ, rounded to 0.01 Ω.
func ResistorScale() Scale {
	return Scale{
		Multipliers: []float64{0.01, 0.1, 1, 10, 100, 1e3, 1e4, 1e5, 1e6},
		Precision:   2,
	}
}

// CapacitorScale covers 1 pF to 9.1 nF from the table (E24 mantissas) and
// 100 nF to 680 µF from a fixed list of commonly stocked values.
func CapacitorScale() Scale {
	return Scale{
		Multipliers: []float64{0.1e-12, 1e-12, 10e-12, 100e-12},
		Precision:   15,
		Extras: []float64{
			100e-9, 150e-9, 220e-9, 330e-9, 470e-9, 680e-9,
			1e-6, 1.5e-6, 2.2e-6, 3.3e-6, 4.7e-6, 6.8e-6,
			10e-6, 15e-6, 22e-6, 33e-6, 47e-6, 68e-6,
			100e-6, 150e-6, 220e-6, 330e-6, 470e-6, 680e-6,
		},
	}
}

// Build expands table over scale. The result has
// len(table)*len(scale.Multipliers)+len(scale.Extras) entries.
func Build(table []float64, scale Scale) Catalog {
	out := make(Catalog, 0, len(table)*len(scale.Multipliers)+len(scale.Extras))
	for _, m := range scale.Multipliers {
		for _, v := range table {
			out = append(out, Round(v*m, scale.Precision))
		}
	}
	return append(out, scale.Extras...)
}

// Resistors builds the resistor catalog for s.
func Resistors(s series.Series) Catalog {
	return Build(s.Values(), ResistorScale())
}

// Capacitors builds the capacitor catalog for s.
func Capacitors(s series.Series) Catalog {
	return Build(s.Values(), CapacitorScale())
}

// Round rounds v to the given number of decimal digits, halves away from zero.
func Round(v float64, digits int) float64 {
	p := math.Pow(10, float64(digits))
	return math.Round(v*p) / p
}

// CheckAll builds the resistor and capacitor catalogs of every series and validates them.
func CheckAll() error {
	for _, s := range series.All() {
		if err := Resistors(s).Validate(); err != nil {
			return fmt.Errorf("%s resistors: %w", s.Name(), err)
		}
		if err := Capacitors(s).Validate(); err != nil {
			return fmt.Errorf("%s capacitors: %w", s.Name(), err)
		}
	}
	return nil
}

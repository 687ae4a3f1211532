package objective

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/eseries/internal/domain"
)

// Kind is the derived quantity being matched.
type Kind string

// Objective kinds.
const (
	// TimeConstant matches R*C against a target in seconds.
	TimeConstant Kind = "rc"
	// Ratio matches R1/R2 against a dimensionless target.
	Ratio Kind = "ratio"
)

// Func is a binary target function evaluated over a pair of catalog values.
type Func func(a, b float64) float64

// Product returns a*b (RC time constant).
func Product(a, b float64) float64 { return a * b }

// Quotient returns a/b (resistor ratio).
func Quotient(a, b float64) float64 { return a / b }

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k == TimeConstant || k == Ratio
}

// Func returns the target function for k, or nil for an unknown kind.
func (k Kind) Func() Func {
	switch k {
	case TimeConstant:
		return Product
	case Ratio:
		return Quotient
	default:
		return nil
	}
}

// Labels names the output columns for k: first axis, second axis, value.
type Labels struct {
	A, B, Value             string
	UnitA, UnitB, UnitValue string
}

// Labels returns the column labels and units for k.
func (k Kind) Labels() Labels {
	if k == Ratio {
		return Labels{A: "R1", B: "R2", Value: "Ratio", UnitA: "Ω", UnitB: "Ω"}
	}
	return Labels{A: "R", B: "C", Value: "Tau", UnitA: "Ω", UnitB: "F", UnitValue: "s"}
}

// Unit returns the unit of the target quantity ("s" or "").
func (k Kind) Unit() string { return k.Labels().UnitValue }

// CheckTarget rejects targets the search cannot rank against. A zero target
// leaves percent error undefined and is reported as ErrUndefinedPercent.
func CheckTarget(target float64) error {
	switch {
	case target == 0:
		return domain.ErrUndefinedPercent
	case math.IsNaN(target) || math.IsInf(target, 0):
		return fmt.Errorf("%w: %v is not finite", domain.ErrInvalidTarget, target)
	case target < 0:
		return fmt.Errorf("%w: %g is negative", domain.ErrInvalidTarget, target)
	}
	return nil
}

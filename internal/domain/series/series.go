// Package series exposes the standard decade tables (E12, E24, E96, E192) and
// the mapping from a component tolerance class to the table it is sold in.
package series

import (
	"math"
	"slices"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/kailas-cloud/eseries/internal/domain"
)

// maxSuggestDistance bounds how far a mistyped name may be from a known one
// before no suggestion is offered.
const maxSuggestDistance = 2

// Series is a named decade table.
type Series struct {
	name      string
	tolerance string
	values    []float64
}

// Name returns the series name, e.g. "E96".
func (s Series) Name() string { return s.name }

// Tolerance describes the tolerance classes the series serves.
func (s Series) Tolerance() string { return s.tolerance }

// Values returns a copy of the decade mantissas.
func (s Series) Values() []float64 { return slices.Clone(s.values) }

// Len returns the number of values per decade.
func (s Series) Len() int { return len(s.values) }

// IsZero reports whether s is the zero Series.
func (s Series) IsZero() bool { return s.name == "" }

// E192 is used for 0.1%, 0.25% and 0.5% parts.
func E192() Series { return Series{name: "E192", tolerance: "0.1%, 0.25%, 0.5%", values: e192[:]} }

// E96 is used for 1% parts.
func E96() Series { return Series{name: "E96", tolerance: "1%", values: e96[:]} }

// E24 is used for 2% and 5% parts.
func E24() Series { return Series{name: "E24", tolerance: "2%, 5%", values: e24[:]} }

// E12 is used for 10% parts.
func E12() Series { return Series{name: "E12", tolerance: "10%", values: e12[:]} }

// All returns every series, finest first.
func All() []Series {
	return []Series{E192(), E96(), E24(), E12()}
}

// toleranceClasses lists the tolerances, in percent, accepted from users.
var toleranceClasses = [...]float64{0.1, 0.25, 0.5, 1, 2, 5, 10}

// ToleranceClasses returns the supported tolerance classes in percent.
func ToleranceClasses() []float64 { return slices.Clone(toleranceClasses[:]) }

// ValidTolerance reports whether pct is one of the supported tolerance classes.
func ValidTolerance(pct float64) bool {
	return slices.Contains(toleranceClasses[:], pct)
}

// ForTolerance maps a tolerance in percent to its decade table:
// <=0.5 -> E192, ==1 -> E96, <=5 -> E24, anything wider -> E12.
func ForTolerance(pct float64) (Series, error) {
	if pct <= 0 || math.IsNaN(pct) || math.IsInf(pct, 0) {
		return Series{}, domain.ErrUnknownTolerance
	}
	switch {
	case pct <= 0.5:
		return E192(), nil
	case pct == 1:
		return E96(), nil
	case pct <= 5:
		return E24(), nil
	default:
		return E12(), nil
	}
}

// Lookup finds a series by name, case-insensitively.
// Unknown names return an *domain.UnknownSeriesError with the nearest known name.
func Lookup(name string) (Series, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for _, s := range All() {
		if s.name == want {
			return s, nil
		}
	}
	return Series{}, domain.NewUnknownSeries(name, suggest(want))
}

func suggest(name string) string {
	if name == "" {
		return ""
	}
	best, bestDist := "", maxSuggestDistance+1
	for _, s := range All() {
		if d := levenshtein.Distance(name, s.name, nil); d < bestDist {
			best, bestDist = s.name, d
		}
	}
	return best
}

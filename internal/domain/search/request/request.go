package request

import (
	"fmt"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/series"
)

// Request is a validated combination search.
type Request struct {
	kind      objective.Kind
	target    float64
	count     int
	tolerance float64
	resistors series.Series
}

// New validates search parameters and resolves the resistor series.
// seriesName, when set, overrides the series implied by tolerance.
// A count of zero is valid and yields no results.
func New(
	kind objective.Kind,
	target float64,
	count int,
	tolerance float64,
	seriesName string,
) (Request, error) {
	if !kind.IsValid() {
		return Request{}, fmt.Errorf("%w: %q", domain.ErrInvalidObjective, kind)
	}
	if err := objective.CheckTarget(target); err != nil {
		return Request{}, err
	}
	if count < 0 {
		return Request{}, fmt.Errorf("%w: %d", domain.ErrInvalidCount, count)
	}

	var (
		s   series.Series
		err error
	)
	if seriesName != "" {
		s, err = series.Lookup(seriesName)
	} else {
		if !series.ValidTolerance(tolerance) {
			return Request{}, fmt.Errorf("%w: %g%% (supported: %v)",
				domain.ErrUnknownTolerance, tolerance, series.ToleranceClasses())
		}
		s, err = series.ForTolerance(tolerance)
	}
	if err != nil {
		return Request{}, err
	}

	return Request{
		kind:      kind,
		target:    target,
		count:     count,
		tolerance: tolerance,
		resistors: s,
	}, nil
}

// Kind returns the objective being matched.
func (r *Request) Kind() objective.Kind { return r.kind }

// Target returns the target value in base units.
func (r *Request) Target() float64 { return r.target }

// Count returns the number of results requested.
func (r *Request) Count() int { return r.count }

// Tolerance returns the requested tolerance in percent (informational when a series was named).
func (r *Request) Tolerance() float64 { return r.tolerance }

// Resistors returns the resistor decade table.
func (r *Request) Resistors() series.Series { return r.resistors }

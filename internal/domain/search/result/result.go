package result

// Result is one ranked component pair.
type Result struct {
	a, b         float64
	value        float64
	err          float64
	percentError float64
	row, col     int
}

// New creates a search result for the pair at (row, col) of the evaluated grid.
func New(a, b, value, absErr, percentError float64, row, col int) Result {
	return Result{
		a: a, b: b, value: value,
		err: absErr, percentError: percentError,
		row: row, col: col,
	}
}

// A returns the value taken from the first catalog (R or R1).
func (r *Result) A() float64 { return r.a }

// B returns the value taken from the second catalog (C or R2).
func (r *Result) B() float64 { return r.b }

// Value returns the target function evaluated at the pair.
func (r *Result) Value() float64 { return r.value }

// AbsError returns the absolute deviation from the target.
func (r *Result) AbsError() float64 { return r.err }

// PercentError returns the absolute deviation as a percentage of the target.
func (r *Result) PercentError() float64 { return r.percentError }

// Row returns the index of A in the first catalog.
func (r *Result) Row() int { return r.row }

// Col returns the index of B in the second catalog.
func (r *Result) Col() int { return r.col }

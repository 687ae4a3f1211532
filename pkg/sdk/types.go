package eseries

// Objective selects the quantity being matched.
type Objective string

// Objective constants.
const (
	ObjectiveRC    Objective = "rc"    // R*C in seconds
	ObjectiveRatio Objective = "ratio" // R1/R2, dimensionless
)

// Result is one ranked component pair.
type Result struct {
	A            float64 // R (rc) or R1 (ratio), ohms
	B            float64 // C in farads (rc) or R2 in ohms (ratio)
	Value        float64 // achieved time constant or ratio
	Error        float64 // |Value - target|
	PercentError float64 // 100 * Error / target
	Row, Col     int     // catalog positions of A and B
}

// SeriesInfo describes a decade table.
type SeriesInfo struct {
	Name      string
	Tolerance string
	Values    []float64
}

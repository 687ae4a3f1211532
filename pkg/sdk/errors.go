package eseries

import "github.com/kailas-cloud/eseries/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidTarget    = domain.ErrInvalidTarget
	ErrUndefinedPercent = domain.ErrUndefinedPercent
	ErrInvalidCount     = domain.ErrInvalidCount
	ErrInvalidObjective = domain.ErrInvalidObjective
	ErrUnknownTolerance = domain.ErrUnknownTolerance
	ErrUnknownSeries    = domain.ErrUnknownSeries
	ErrInvalidQuantity  = domain.ErrInvalidQuantity
)

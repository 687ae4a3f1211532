package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget signals a negative, NaN or infinite target.
	ErrInvalidTarget = errors.New("invalid target")
	// ErrUndefinedPercent signals a zero target, for which percent error is undefined.
	ErrUndefinedPercent = errors.New("percent error undefined for zero target")
	// ErrInvalidCatalog signals an empty catalog or one holding non-positive values.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrInvalidCount signals a negative result count.
	ErrInvalidCount = errors.New("invalid result count")
	// ErrInvalidObjective signals an unknown or missing target function.
	ErrInvalidObjective = errors.New("invalid objective")
	// ErrUnknownTolerance signals a tolerance outside the supported classes.
	ErrUnknownTolerance = errors.New("unknown tolerance class")
	// ErrUnknownSeries signals an unknown decade table name.
	ErrUnknownSeries = errors.New("unknown series")
	// ErrInvalidQuantity signals text that cannot be read as a number.
	ErrInvalidQuantity = errors.New("invalid quantity")
)

// UnknownSeriesError wraps ErrUnknownSeries with the closest known name, if any.
type UnknownSeriesError struct {
	Name       string
	Suggestion string
}

func (e *UnknownSeriesError) Error() string {
	if e.Suggestion == "" {
		return fmt.Sprintf("%s %q", ErrUnknownSeries.Error(), e.Name)
	}
	return fmt.Sprintf("%s %q (did you mean %q?)", ErrUnknownSeries.Error(), e.Name, e.Suggestion)
}

func (e *UnknownSeriesError) Unwrap() error { return ErrUnknownSeries }

// NewUnknownSeries creates an unknown series error.
func NewUnknownSeries(name, suggestion string) error {
	return &UnknownSeriesError{Name: name, Suggestion: suggestion}
}

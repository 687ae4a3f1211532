// Package format parses and renders physical quantities and result tables.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/kailas-cloud/eseries/internal/domain"
)

// siDigits is the number of decimals kept when rendering with a metric prefix.
const siDigits = 3

// ParseQuantity converts text such as "10ms", "4.7u", "2.2e-3" or "100 ms" into a
// value in base units. A trailing unit, when present, must equal unit.
func ParseQuantity(text, unit string) (float64, error) {
	s := normalizeMicro(strings.TrimSpace(text))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", domain.ErrInvalidQuantity)
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	if unit != "" {
		if v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, unit)), 64); err == nil {
			return v, nil
		}
	}

	v, got, err := humanize.ParseSI(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidQuantity, text)
	}
	if got = strings.TrimSpace(got); got != "" && got != unit {
		if unit == "" {
			return 0, fmt.Errorf("%w: %q has unexpected unit %q", domain.ErrInvalidQuantity, text, got)
		}
		return 0, fmt.Errorf("%w: %q is not in %s", domain.ErrInvalidQuantity, text, unit)
	}
	return clean(v), nil
}

// SI renders value with a metric prefix and unit, e.g. "10 ms" or "4.7 kΩ".
func SI(value float64, unit string) string {
	return strings.TrimSpace(humanize.SIWithDigits(value, siDigits, unit))
}

// normalizeMicro accepts the ASCII "u" and the Greek mu for micro.
func normalizeMicro(s string) string {
	return strings.NewReplacer("u", "µ", "μ", "µ").Replace(s)
}

// clean drops binary noise left by prefix scaling (10 * 1e-3).
func clean(v float64) float64 {
	out, err := strconv.ParseFloat(strconv.FormatFloat(v, 'g', 15, 64), 64)
	if err != nil {
		return v
	}
	return out
}

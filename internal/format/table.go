package format

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
)

const tableWidth = 70

// Title returns the table heading for a search of kind asking for count results.
func Title(kind objective.Kind, target float64, count int) string {
	if kind == objective.Ratio {
		return fmt.Sprintf("Top %d results for target Ratio = %.4f", count, target)
	}
	return fmt.Sprintf("Top %d results for target Tau = %s", count, SI(target, kind.Unit()))
}

// WriteTable writes the ranked results as a fixed-width text table.
func WriteTable(w io.Writer, kind objective.Kind, target float64, count int, results []result.Result) error {
	l := kind.Labels()

	var b strings.Builder
	b.WriteString(center(Title(kind, target, count), tableWidth))
	b.WriteByte('\n')
	fmt.Fprintf(&b, "%10s %10s %15s %15s %10s\n", l.A, l.B, l.Value, "Error", "% Error")
	b.WriteString(strings.Repeat("-", tableWidth))
	b.WriteByte('\n')
	for i := range results {
		r := &results[i]
		fmt.Fprintf(&b, "%10s %10s %15s %15s %10.4f\n",
			SI(r.A(), l.UnitA),
			SI(r.B(), l.UnitB),
			SI(r.Value(), l.UnitValue),
			SI(r.AbsError(), l.UnitValue),
			r.PercentError(),
		)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// center pads s with spaces to width, counting runes. Odd padding goes right.
func center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

package eseries

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/request"
)

const (
	defaultLimit     = 5
	defaultTolerance = 1.0
)

// SearchBuilder is a fluent builder for combination searches.
type SearchBuilder struct {
	client *Client

	objective Objective
	target    float64
	tolerance float64
	series    string
	limit     int
}

func (c *Client) newBuilder(o Objective, target float64) *SearchBuilder {
	return &SearchBuilder{
		client:    c,
		objective: o,
		target:    target,
		tolerance: defaultTolerance,
		limit:     defaultLimit,
	}
}

// Tolerance picks the resistor series from a tolerance class in percent:
// 0.1, 0.25, 0.5, 1, 2, 5 or 10. Default: 1 (E96).
func (b *SearchBuilder) Tolerance(pct float64) *SearchBuilder {
	b.tolerance = pct
	return b
}

// Series names the resistor series directly (E12, E24, E96, E192).
// It takes precedence over Tolerance.
func (b *SearchBuilder) Series(name string) *SearchBuilder {
	b.series = name
	return b
}

// Limit sets the number of results. Zero returns none. Default: 5.
func (b *SearchBuilder) Limit(n int) *SearchBuilder {
	b.limit = n
	return b
}

// Do executes the search. Results are ordered by ascending error.
func (b *SearchBuilder) Do(ctx context.Context) (results []Result, err error) {
	start := time.Now()
	defer func() {
		b.client.obs.observe(string(b.objective), start, err,
			"target", b.target, "results", len(results))
	}()

	req, err := request.New(objective.Kind(b.objective), b.target, b.limit, b.tolerance, b.series)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", b.objective, err)
	}

	found, err := b.client.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("%s search: %w", b.objective, err)
	}

	results = make([]Result, len(found))
	for i := range found {
		results[i] = resultFromDomain(&found[i])
	}
	return results, nil
}

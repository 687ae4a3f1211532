package search

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/catalog"
	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
	"github.com/kailas-cloud/eseries/internal/domain/series"
)

// bruteForce ranks every cell with a stable sort over the row-major error grid.
func bruteForce(a, b catalog.Catalog, target float64, fn objective.Func) []cell {
	cells := make([]cell, 0, len(a)*len(b))
	for i, x := range a {
		for j, y := range b {
			cells = append(cells, cell{index: i*len(b) + j, err: math.Abs(fn(x, y) - target)})
		}
	}
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].err < cells[j].err })
	return cells
}

func TestRank_RatioExactMatchFirst(t *testing.T) {
	c := catalog.Catalog{10, 20}

	results, err := Rank(c, c, 2.0, objective.Quotient, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.A() != 20 || r.B() != 10 {
		t.Errorf("pair = (%v, %v), want (20, 10)", r.A(), r.B())
	}
	if r.Value() != 2 || r.AbsError() != 0 || r.PercentError() != 0 {
		t.Errorf("value=%v error=%v pct=%v", r.Value(), r.AbsError(), r.PercentError())
	}
	if r.Row() != 1 || r.Col() != 0 {
		t.Errorf("cell = (%d, %d), want (1, 0)", r.Row(), r.Col())
	}
}

func TestRank_TimeConstantSingleCell(t *testing.T) {
	results, err := Rank(catalog.Catalog{1e6}, catalog.Catalog{1e-6}, 0.001, objective.Product, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if math.Abs(r.Value()-1.0) > 1e-12 {
		t.Errorf("Value() = %v, want 1.0", r.Value())
	}
	if math.Abs(r.AbsError()-0.999) > 1e-12 {
		t.Errorf("AbsError() = %v, want 0.999", r.AbsError())
	}
	if math.Abs(r.PercentError()-99900) > 1e-8 {
		t.Errorf("PercentError() = %v, want 99900", r.PercentError())
	}
}

func TestRank_TieBreakByRowMajorIndex(t *testing.T) {
	c := catalog.Catalog{10, 20}

	// Ratios 1, 0.5, 2, 1 against 1.5: errors 0.5, 1, 0.5, 0.5.
	results, err := Rank(c, c, 1.5, objective.Quotient, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := [][2]int{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if got := resultCells(results); !reflect.DeepEqual(got, want) {
		t.Errorf("cells = %v, want %v", got, want)
	}
}

func TestRank_CountCappedAtCells(t *testing.T) {
	results, err := Rank(catalog.Catalog{1, 2, 3}, catalog.Catalog{1, 2}, 1, objective.Quotient, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 6 {
		t.Fatalf("expected 6 results, got %d", len(results))
	}
}

func TestRank_ZeroCount(t *testing.T) {
	results, err := Rank(catalog.Catalog{1}, catalog.Catalog{1}, 1, objective.Quotient, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", results)
	}
}

func TestRank_Errors(t *testing.T) {
	ok := catalog.Catalog{10, 20}
	tests := []struct {
		name   string
		a, b   catalog.Catalog
		target float64
		fn     objective.Func
		count  int
		want   error
	}{
		{"zero target", ok, ok, 0, objective.Quotient, 1, domain.ErrUndefinedPercent},
		{"negative target", ok, ok, -2, objective.Quotient, 1, domain.ErrInvalidTarget},
		{"inf target", ok, ok, math.Inf(1), objective.Product, 1, domain.ErrInvalidTarget},
		{"empty first axis", nil, ok, 1, objective.Product, 1, domain.ErrInvalidCatalog},
		{"empty second axis", ok, catalog.Catalog{}, 1, objective.Product, 1, domain.ErrInvalidCatalog},
		{"zero in catalog", ok, catalog.Catalog{0}, 1, objective.Quotient, 1, domain.ErrInvalidCatalog},
		{"negative count", ok, ok, 1, objective.Quotient, -1, domain.ErrInvalidCount},
		{"nil func", ok, ok, 1, nil, 1, domain.ErrInvalidObjective},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results, err := Rank(tc.a, tc.b, tc.target, tc.fn, tc.count)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if results != nil {
				t.Errorf("expected no results on error, got %d", len(results))
			}
		})
	}
}

func TestRank_MatchesStableSortOfFullGrid(t *testing.T) {
	r := catalog.Resistors(series.E12())
	c := catalog.Capacitors(series.E12())
	target := 0.0047

	results, err := Rank(r, c, target, objective.Product, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := bruteForce(r, c, target, objective.Product)[:50]
	for n, res := range results {
		if got := res.Row()*len(c) + res.Col(); got != want[n].index {
			t.Fatalf("results[%d] index = %d, want %d", n, got, want[n].index)
		}
		if res.AbsError() != want[n].err {
			t.Fatalf("results[%d] error = %v, want %v", n, res.AbsError(), want[n].err)
		}
	}
}

func TestRank_SortedAndGlobalMinimumFirst(t *testing.T) {
	r := catalog.Resistors(series.E24())
	target := 3.3

	results, err := Rank(r, r, target, objective.Quotient, 25)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(results); i++ {
		if results[i].AbsError() < results[i-1].AbsError() {
			t.Fatalf("not sorted at %d: %v < %v", i, results[i].AbsError(), results[i-1].AbsError())
		}
	}

	best := math.Inf(1)
	for _, a := range r {
		for _, b := range r {
			best = math.Min(best, math.Abs(a/b-target))
		}
	}
	if results[0].AbsError() != best {
		t.Errorf("first error = %v, global minimum = %v", results[0].AbsError(), best)
	}
}

func TestRank_Idempotent(t *testing.T) {
	r := catalog.Resistors(series.E24())
	c := catalog.Capacitors(series.E24())

	first, err := Rank(r, c, 0.02, objective.Product, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Rank(r, c, 0.02, objective.Product, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated searches returned different results")
	}
}

func TestRankParallel_IndependentOfWorkers(t *testing.T) {
	r := catalog.Resistors(series.E96())
	target := 1.0 / 3.0

	// Exact ties (same ratio in every decade) exercise the cross-block merge.
	want, err := Rank(r, r, target, objective.Quotient, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, workers := range []int{0, 2, 3, 7, 64, len(r) + 5} {
		got, err := RankParallel(context.Background(), r, r, target, objective.Quotient, 200, workers)
		if err != nil {
			t.Fatalf("workers=%d: unexpected error: %v", workers, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("workers=%d: results differ from single-worker ranking", workers)
		}
	}
}

func TestRankParallel_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := catalog.Resistors(series.E12())
	_, err := RankParallel(ctx, r, r, 2, objective.Quotient, 5, 4)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestSplitRows(t *testing.T) {
	tests := []struct {
		n, workers int
		want       []rowBlock
	}{
		{5, 1, []rowBlock{{0, 5}}},
		{5, 2, []rowBlock{{0, 3}, {3, 5}}},
		{3, 10, []rowBlock{{0, 1}, {1, 2}, {2, 3}}},
		{4, 0, []rowBlock{{0, 4}}},
	}
	for _, tc := range tests {
		if got := splitRows(tc.n, tc.workers); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("splitRows(%d, %d) = %v, want %v", tc.n, tc.workers, got, tc.want)
		}
	}
}

func TestMergeTopK(t *testing.T) {
	lists := [][]cell{
		{{index: 0, err: 0.1}, {index: 1, err: 0.5}},
		{{index: 4, err: 0.1}, {index: 5, err: 0.2}},
		{},
	}

	got := mergeTopK(lists, 3)
	want := []cell{{index: 0, err: 0.1}, {index: 4, err: 0.1}, {index: 5, err: 0.2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("mergeTopK() = %v, want %v", got, want)
	}
}

func TestBoundedTop_KeepsBest(t *testing.T) {
	top := newBoundedTop(2)
	for i, e := range []float64{0.9, 0.3, 0.3, 0.1, 0.7} {
		top.offer(cell{index: i, err: e})
	}

	got := top.sorted()
	want := []cell{{index: 3, err: 0.1}, {index: 1, err: 0.3}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sorted() = %v, want %v", got, want)
	}
}

func resultCells(rs []result.Result) [][2]int {
	out := make([][2]int, len(rs))
	for i := range rs {
		out[i] = [2]int{rs[i].Row(), rs[i].Col()}
	}
	return out
}

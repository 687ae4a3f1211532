package search

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/catalog"
	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
)

// Rank evaluates fn over every (axisA[i], axisB[j]) pair and returns the count
// pairs closest to target, ordered by absolute error and then by row-major
// cell index. At most len(axisA)*len(axisB) results are returned.
func Rank(
	axisA, axisB catalog.Catalog, target float64, fn objective.Func, count int,
) ([]result.Result, error) {
	return RankParallel(context.Background(), axisA, axisB, target, fn, count, 1)
}

// RankParallel is Rank with the rows of axisA split into blocks evaluated by up
// to workers goroutines. The output does not depend on workers.
func RankParallel(
	ctx context.Context,
	axisA, axisB catalog.Catalog,
	target float64, fn objective.Func,
	count, workers int,
) ([]result.Result, error) {
	if err := validate(axisA, axisB, target, fn, count); err != nil {
		return nil, err
	}

	k := min(count, len(axisA)*len(axisB))
	if k == 0 {
		return []result.Result{}, nil
	}

	blocks := splitRows(len(axisA), workers)
	partials := make([][]cell, len(blocks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))
	for n, b := range blocks {
		n, b := n, b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			partials[n] = evalBlock(axisA, axisB, b, target, fn, k)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluate blocks: %w", err)
	}

	cols := len(axisB)
	top := mergeTopK(partials, k)
	results := make([]result.Result, len(top))
	for n, c := range top {
		i, j := c.index/cols, c.index%cols
		a, b := axisA[i], axisB[j]
		results[n] = result.New(a, b, fn(a, b), c.err, 100*c.err/target, i, j)
	}
	return results, nil
}

func validate(axisA, axisB catalog.Catalog, target float64, fn objective.Func, count int) error {
	if fn == nil {
		return fmt.Errorf("%w: nil target function", domain.ErrInvalidObjective)
	}
	if err := objective.CheckTarget(target); err != nil {
		return err
	}
	if err := axisA.Validate(); err != nil {
		return fmt.Errorf("first axis: %w", err)
	}
	if err := axisB.Validate(); err != nil {
		return fmt.Errorf("second axis: %w", err)
	}
	if count < 0 {
		return fmt.Errorf("%w: %d", domain.ErrInvalidCount, count)
	}
	return nil
}

// rowBlock is the half-open row range [lo, hi) of axisA.
type rowBlock struct {
	lo, hi int
}

// splitRows cuts n rows into at most workers contiguous, non-empty blocks.
func splitRows(n, workers int) []rowBlock {
	workers = max(min(workers, n), 1)
	size := (n + workers - 1) / workers
	blocks := make([]rowBlock, 0, workers)
	for lo := 0; lo < n; lo += size {
		blocks = append(blocks, rowBlock{lo: lo, hi: min(lo+size, n)})
	}
	return blocks
}

// evalBlock fills a dense matrix with |fn(a, b) - target| for the rows of b
// and returns its k best cells in rank order.
func evalBlock(
	axisA, axisB catalog.Catalog, b rowBlock, target float64, fn objective.Func, k int,
) []cell {
	rows, cols := b.hi-b.lo, len(axisB)
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		row := m.RawRowView(i)
		a := axisA[b.lo+i]
		for j, v := range axisB {
			row[j] = fn(a, v)
		}
	}
	m.Apply(func(_, _ int, v float64) float64 { return math.Abs(v - target) }, m)

	top := newBoundedTop(k)
	for i := 0; i < rows; i++ {
		for j, e := range m.RawRowView(i) {
			top.offer(cell{index: (b.lo+i)*cols + j, err: e})
		}
	}
	return top.sorted()
}

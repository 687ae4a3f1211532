package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eseries/internal/domain"
	"github.com/kailas-cloud/eseries/internal/domain/catalog"
	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/request"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
	"github.com/kailas-cloud/eseries/internal/domain/series"
	logpkg "github.com/kailas-cloud/eseries/internal/logger"
	"github.com/kailas-cloud/eseries/internal/metrics"
)

// cacheKey identifies a search whose result list can be reused.
type cacheKey struct {
	kind       objective.Kind
	target     float64
	count      int
	resistors  string
	capacitors string
}

// Service builds catalogs for a request and ranks the combinations.
type Service struct {
	workers    int
	capacitors series.Series
	cache      *lru.Cache[cacheKey, []result.Result]
}

// New creates a single-worker search service using E24 capacitors and no cache.
func New() *Service {
	return &Service{workers: 1, capacitors: series.E24()}
}

// WithWorkers sets how many goroutines evaluate row blocks. Values below 1 mean 1.
func (s *Service) WithWorkers(n int) *Service {
	s.workers = max(n, 1)
	return s
}

// WithCapacitorSeries sets the decade table used for capacitors.
func (s *Service) WithCapacitorSeries(cs series.Series) *Service {
	if !cs.IsZero() {
		s.capacitors = cs
	}
	return s
}

// WithCache keeps up to size result lists. A size below 1 disables caching.
func (s *Service) WithCache(size int) *Service {
	if size < 1 {
		s.cache = nil
		return s
	}
	cache, err := lru.New[cacheKey, []result.Result](size)
	if err != nil {
		panic(fmt.Sprintf("search: result cache: %v", err))
	}
	s.cache = cache
	return s
}

// CapacitorSeries returns the decade table used for capacitors.
func (s *Service) CapacitorSeries() series.Series { return s.capacitors }

// Search runs an RC time constant or resistor ratio search.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Result, error) {
	start := time.Now()
	kind := string(req.Kind())

	key := cacheKey{
		kind:       req.Kind(),
		target:     req.Target(),
		count:      req.Count(),
		resistors:  req.Resistors().Name(),
		capacitors: s.capacitors.Name(),
	}
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			metrics.SearchCacheTotal.WithLabelValues("hit").Inc()
			metrics.SearchRequestsTotal.WithLabelValues(kind, "ok").Inc()
			return slices.Clone(cached), nil
		}
		metrics.SearchCacheTotal.WithLabelValues("miss").Inc()
	}

	axisA, axisB, err := s.axes(req)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}

	results, err := RankParallel(ctx, axisA, axisB, req.Target(), req.Kind().Func(), req.Count(), s.workers)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(kind, "error").Inc()
		return nil, fmt.Errorf("rank %s: %w", kind, err)
	}

	cells := len(axisA) * len(axisB)
	metrics.SearchRequestsTotal.WithLabelValues(kind, "ok").Inc()
	metrics.SearchCellsTotal.WithLabelValues(kind).Add(float64(cells))
	metrics.SearchDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	logpkg.FromContext(ctx).Debug("search completed",
		zap.String("objective", kind),
		zap.Float64("target", req.Target()),
		zap.String("resistors", req.Resistors().Name()),
		zap.Int("cells", cells),
		zap.Int("results", len(results)),
		zap.Int("workers", s.workers),
		zap.Duration("latency", time.Since(start)),
	)

	if s.cache != nil {
		s.cache.Add(key, slices.Clone(results))
	}
	return results, nil
}

// axes builds the two catalogs searched for req.
// Ratio searches pair the resistor catalog with itself.
func (s *Service) axes(req *request.Request) (catalog.Catalog, catalog.Catalog, error) {
	resistors := catalog.Resistors(req.Resistors())
	switch req.Kind() {
	case objective.TimeConstant:
		return resistors, catalog.Capacitors(s.capacitors), nil
	case objective.Ratio:
		return resistors, resistors, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidObjective, req.Kind())
	}
}

// Probe runs a ratio search whose answer is known: E24 holds exact 2:1 pairs.
func (s *Service) Probe(ctx context.Context) error {
	r := catalog.Resistors(series.E24())
	results, err := RankParallel(ctx, r, r, 2, objective.Quotient, 1, s.workers)
	if err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	if len(results) != 1 || results[0].AbsError() != 0 {
		return errors.New("probe: no exact 2:1 pair found in E24")
	}
	return nil
}

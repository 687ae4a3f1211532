package eseries

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/eseries/internal/domain/catalog"
	"github.com/kailas-cloud/eseries/internal/domain/search/request"
	"github.com/kailas-cloud/eseries/internal/domain/search/result"
	"github.com/kailas-cloud/eseries/internal/domain/series"
	"github.com/kailas-cloud/eseries/internal/format"
	healthuc "github.com/kailas-cloud/eseries/internal/usecase/health"
	searchuc "github.com/kailas-cloud/eseries/internal/usecase/search"
)

// Internal interfaces, swapped for fakes in tests.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Result, error)
	CapacitorSeries() series.Series
}

// Client is the eseries SDK entry point. It is safe for concurrent use.
type Client struct {
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{workers: 1}
	for _, o := range opts {
		o.apply(cfg)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	return wireClient(cfg, obs)
}

func wireClient(cfg *clientConfig, obs *observer) (*Client, error) {
	svc := searchuc.New().WithWorkers(cfg.workers).WithCache(cfg.cacheSize)
	if cfg.capacitorSeries != "" {
		cs, err := series.Lookup(cfg.capacitorSeries)
		if err != nil {
			return nil, fmt.Errorf("eseries: capacitor series: %w", err)
		}
		svc.WithCapacitorSeries(cs)
	}

	health := healthuc.New().
		WithCheck("search", svc).
		WithCheck("catalogs", healthuc.ProberFunc(func(context.Context) error { return catalog.CheckAll() }))

	return &Client{searchSvc: svc, healthSvc: health, obs: obs}, nil
}

// CapacitorSeries returns the name of the decade table used for capacitors.
func (c *Client) CapacitorSeries() string {
	return c.searchSvc.CapacitorSeries().Name()
}

// RC starts an RC time constant search for target seconds.
func (c *Client) RC(target float64) *SearchBuilder {
	return c.newBuilder(ObjectiveRC, target)
}

// Ratio starts a resistor ratio search for target R1/R2.
func (c *Client) Ratio(target float64) *SearchBuilder {
	return c.newBuilder(ObjectiveRatio, target)
}

// Series lists the supported decade tables.
func Series() []SeriesInfo {
	all := series.All()
	out := make([]SeriesInfo, len(all))
	for i, s := range all {
		out[i] = SeriesInfo{Name: s.Name(), Tolerance: s.Tolerance(), Values: s.Values()}
	}
	return out
}

// ParseQuantity reads text such as "10ms", "4.7u" or "2.2e-3" in base units of unit.
func ParseQuantity(text, unit string) (float64, error) {
	v, err := format.ParseQuantity(text, unit)
	if err != nil {
		return 0, fmt.Errorf("parse quantity: %w", err)
	}
	return v, nil
}

func resultFromDomain(r *result.Result) Result {
	return Result{
		A:            r.A(),
		B:            r.B(),
		Value:        r.Value(),
		Error:        r.AbsError(),
		PercentError: r.PercentError(),
		Row:          r.Row(),
		Col:          r.Col(),
	}
}

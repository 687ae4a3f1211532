package eseries

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	workers         int
	capacitorSeries string
	cacheSize       int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithWorkers sets how many goroutines evaluate a search. Default: 1.
func WithWorkers(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.workers = n
	})
}

// WithCapacitorSeries sets the decade table used for capacitors in RC searches.
// Default: E24.
func WithCapacitorSeries(name string) Option {
	return optionFunc(func(c *clientConfig) {
		c.capacitorSeries = name
	})
}

// WithCache keeps up to size result lists for repeated searches.
// Default: 0 (disabled).
func WithCache(size int) Option {
	return optionFunc(func(c *clientConfig) {
		c.cacheSize = size
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

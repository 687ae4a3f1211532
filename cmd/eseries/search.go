package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eseries/internal/domain/search/objective"
	"github.com/kailas-cloud/eseries/internal/domain/search/request"
	"github.com/kailas-cloud/eseries/internal/domain/series"
	"github.com/kailas-cloud/eseries/internal/format"
	logpkg "github.com/kailas-cloud/eseries/internal/logger"
	searchuc "github.com/kailas-cloud/eseries/internal/usecase/search"
)

// searchFlags are the options shared by rc and ratio.
type searchFlags struct {
	tolerance       float64
	series          string
	capacitorSeries string
	count           int
	workers         int
}

func (f *searchFlags) bind(cmd *cobra.Command, withCapacitors bool) {
	fl := cmd.Flags()
	fl.Float64VarP(&f.tolerance, "resistor-tolerance", "r", 1,
		fmt.Sprintf("resistor tolerance in percent, one of %v", series.ToleranceClasses()))
	fl.StringVarP(&f.series, "series", "s", "", "resistor series (E12, E24, E96, E192); overrides --resistor-tolerance")
	fl.IntVarP(&f.count, "num-results", "n", 5, "number of results to display")
	fl.IntVar(&f.workers, "workers", 0, "goroutines evaluating the search (0 = config or GOMAXPROCS)")
	if withCapacitors {
		fl.StringVarP(&f.capacitorSeries, "capacitor-series", "c", "E24", "capacitor series (E12, E24, E96, E192)")
	}
}

// resolve fills options the user did not set from configuration.
func (f searchFlags) resolve(cmd *cobra.Command, a *app) searchFlags {
	fl := cmd.Flags()
	if !fl.Changed("resistor-tolerance") {
		f.tolerance = a.cfg.Search.DefaultTolerance
	}
	if !fl.Changed("num-results") {
		f.count = a.cfg.Search.DefaultCount
	}
	if !fl.Changed("workers") || f.workers <= 0 {
		f.workers = a.cfg.Search.Workers
	}
	if fl.Lookup("capacitor-series") != nil && !fl.Changed("capacitor-series") {
		f.capacitorSeries = a.cfg.Search.CapacitorSeries
	}
	return f
}

func newRCCmd(a *app) *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "rc <tau>",
		Short: "Find R and C pairs closest to a target time constant",
		Example: "  eseries rc 10ms\n" +
			"  eseries rc 0.5s -r 0.1 -n 10\n" +
			"  eseries rc 2.2e-3 -s E24 -c E12",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, objective.TimeConstant, args[0], flags.resolve(cmd, a))
		},
	}
	flags.bind(cmd, true)
	return cmd
}

func newRatioCmd(a *app) *cobra.Command {
	var flags searchFlags
	cmd := &cobra.Command{
		Use:   "ratio <ratio>",
		Short: "Find R1 and R2 pairs closest to a target ratio R1/R2",
		Example: "  eseries ratio 2.1\n" +
			"  eseries ratio 0.25 -r 5 -n 3",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSearch(cmd, objective.Ratio, args[0], flags.resolve(cmd, a))
		},
	}
	flags.bind(cmd, false)
	return cmd
}

func (a *app) runSearch(cmd *cobra.Command, kind objective.Kind, arg string, f searchFlags) error {
	target, err := format.ParseQuantity(arg, kind.Unit())
	if err != nil {
		return err
	}

	req, err := request.New(kind, target, f.count, f.tolerance, f.series)
	if err != nil {
		return err
	}

	svc := searchuc.New().WithWorkers(f.workers)
	if kind == objective.TimeConstant {
		cs, err := series.Lookup(f.capacitorSeries)
		if err != nil {
			return fmt.Errorf("capacitor series: %w", err)
		}
		svc.WithCapacitorSeries(cs)
	}

	ctx := logpkg.ContextWithLogger(cmd.Context(), a.logger)
	results, err := svc.Search(ctx, &req)
	if err != nil {
		return err
	}

	a.logger.Debug("rendering results",
		zap.String("objective", string(kind)),
		zap.String("resistors", req.Resistors().Name()),
		zap.Int("results", len(results)),
	)
	return format.WriteTable(cmd.OutOrStdout(), kind, target, req.Count(), results)
}

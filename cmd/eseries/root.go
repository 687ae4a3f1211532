package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/eseries/internal/config"
	logpkg "github.com/kailas-cloud/eseries/internal/logger"
)

// cliLogLevel keeps one-shot commands quiet unless asked otherwise.
const cliLogLevel = "warn"

// app carries state shared by every subcommand after the root pre-run.
type app struct {
	env      string
	logLevel string
	cfg      config.Config
	logger   *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "eseries",
		Short: "Pick standard E-series component values for an RC time constant or resistor ratio",
		Long: "eseries searches every pairing of standard-value resistors and capacitors (E12, E24,\n" +
			"E96, E192) and lists the combinations closest to a target time constant or ratio.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "configuration environment (reads config/<env>.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")

	root.AddCommand(
		newRCCmd(a),
		newRatioCmd(a),
		newSeriesCmd(),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.env)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	level := a.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if level == "" && cmd.Name() != "serve" {
		level = cliLogLevel
	}

	logger, err := logpkg.NewLogger(a.env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

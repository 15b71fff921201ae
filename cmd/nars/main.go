package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Harshitk-cp/nars/internal/buildconfig"
	"github.com/Harshitk-cp/nars/internal/config"
)

// cli carries what the persistent pre-run resolves for every subcommand.
type cli struct {
	params  config.Params
	logger  *zap.Logger
	seed    uint64
	verbose bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:          "nars",
		Short:        "Run the non-axiomatic reasoner on Narsese input",
		Version:      buildconfig.Version(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			params, err := config.LoadParams()
			if err != nil {
				return err
			}
			c.params = params

			logCfg := zap.NewDevelopmentConfig()
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if c.verbose {
				level, err := zap.ParseAtomicLevel(config.LogLevel())
				if err != nil {
					return err
				}
				logCfg.Level = level
			}
			logger, err := logCfg.Build()
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}
	root.PersistentFlags().Uint64Var(&c.seed, "seed", 0, "random seed (0 picks one from the clock)")
	root.PersistentFlags().BoolVar(&c.verbose, "verbose", false, "log at LOG_LEVEL instead of warn")

	root.AddCommand(newRunCmd(c), newShellCmd(c))
	return root
}

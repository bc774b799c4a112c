package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hupe1980/sovereign"
	"github.com/hupe1980/sovereign/config"
	"github.com/hupe1980/sovereign/logging"
)

// app carries global flags and the process logger.
type app struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sovereign",
		Short: "Sovereign - multi-personality, multi-model answer orchestration",
		Long: `Sovereign answers questions through a council of personalities and several
model backends, then reshapes the answer for its audience.

Every query returns a complete response; failures surface as fallback
responses with the cause in processing_metadata.fallback_reason.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			if a.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (default: sovereign.yaml if present)")

	root.AddCommand(
		newQueryCmd(a),
		newBatchCmd(a),
		newStatusCmd(a),
		newSummaryCmd(a),
		newServeCmd(a),
		newInitConfigCmd(a),
	)
	return root
}

// open loads the configuration and builds an orchestrator. The returned
// close function runs Shutdown and must be called.
func (a *app) open() (*sovereign.Sovereign, func() error, error) {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, nil, err
	}

	logger := a.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s, err := sovereign.FromConfig(cfg, logging.NewZapAdapter(logger.Named("sovereign")))
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return s.Shutdown(context.Background()) }, nil
}

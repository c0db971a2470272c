// csrecover measures a synthetic sparse signal and recovers it with the
// block and Kronecker SL0 engines.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/hammal/compsens/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "csrecover",
	Short: "Compressive sensing recovery with the smoothed L0 solver",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// runCmd generates, measures and recovers a test signal
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Measure and recover a synthetic sparse signal",
	Long: `Draws a signal that is sparse in the DCT dictionary, measures it block by
block and recovers it twice:
  1. Block recovery with the per-block dictionary
  2. Kronecker recovery of groups of kron_factor blocks
The SNR of each recovery is reported.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, cfg); err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		report, err := runPipeline(ctx, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), report)
		return nil
	},
}

// initCmd writes the default configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config %s already exists", configPath)
		}
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		logger.Info("config written", zap.String("path", configPath))
		return nil
	},
}

var (
	seed    int64
	workers int
	kron    int
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "compsens.yaml", "Configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Recovery timeout")

	runCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (overrides config)")
	runCmd.Flags().IntVar(&workers, "workers", 0, "Concurrent blocks (overrides config)")
	runCmd.Flags().IntVar(&kron, "kron", 0, "Blocks per Kronecker group (overrides config)")

	rootCmd.AddCommand(runCmd, initCmd)
}

// applyFlags overrides cfg with the flags set on the command line.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("kron") {
		cfg.KronFactor = kron
	}
	return cfg.Validate()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

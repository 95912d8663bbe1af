package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/kinelab/internal/config"
	"github.com/san-kum/kinelab/internal/observability"
)

var (
	configFile string
	logLevel   string

	cfg    = config.NewDefaultConfig()
	logger = zap.NewNop()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("command failed", zap.String("command", commandPath(rootCmd)), zap.Error(err))
		_ = logger.Sync()
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "kinelab",
		Short: "2D kinematics lab",
		Long: `kinelab simulates projectile, free fall, vertical throw, Newton's second
law, spring and inclined plane motion. Runs can be described in plain
English, watched live in the terminal, plotted, swept and exported.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(
		newRunCmd(),
		newLiveCmd(),
		newParseCmd(),
		newPresetsCmd(),
		newExportCmd(),
		newPlotCmd(),
		newSweepCmd(),
		newBatchCmd(),
		newAnalyzeCmd(),
		newConfigCmd(),
	)
	return rootCmd
}

// setup loads the configuration and builds the logger before any command.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.Logger.Level = logLevel
	}
	cfg = loaded

	l, err := observability.NewStderr(cfg.Logger)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	logger = l
	logger.Debug("configuration loaded", zap.String("file", configFile), zap.String("command", cmd.Name()))
	return nil
}

func commandPath(root *cobra.Command) string {
	cmd, _, err := root.Find(os.Args[1:])
	if err != nil || cmd == nil {
		return root.Name()
	}
	return cmd.CommandPath()
}

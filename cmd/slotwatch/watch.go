package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jpalmerr/slotwatch/config"
	"github.com/spf13/cobra"
)

// watchCmd starts the watcher from a YAML config file.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start watching for open appointment slots",
	Long: `Start the slot watcher using a YAML configuration file.

The watcher polls the scheduler on the configured interval and notifies
once per distinct slot. It runs until interrupted (Ctrl+C) or until the
process receives SIGTERM, then shuts down gracefully.

Example:
  slotwatch watch -c slotwatch.yaml`,
	RunE: runWatch,
}

var watchConfigPath string

func init() {
	watchCmd.Flags().StringVarP(&watchConfigPath, "config", "c", "slotwatch.yaml",
		"path to YAML configuration file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	// Structured JSON logging to stderr; stdout stays clean for piping.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load(watchConfigPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	watcher, err := config.Build(cfg, logger)
	if err != nil {
		return fmt.Errorf("building watcher: %w", err)
	}

	// Cancel the watcher context on SIGINT/SIGTERM for graceful shutdown.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting slotwatch",
		"config", watchConfigPath,
		"version", version)

	if err := watcher.Start(ctx); err != nil {
		return fmt.Errorf("watcher: %w", err)
	}

	logger.Info("slotwatch stopped")
	return nil
}

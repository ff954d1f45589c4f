package main

import (
	"fmt"

	"github.com/jpalmerr/slotwatch/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a config file without starting the watcher.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a config file",
	Long: `Validate a slotwatch configuration file without starting the watcher.

This command parses the YAML, expands environment variables, and validates
all fields. It's useful for checking a config before leaving the watcher
running unattended.

Exit codes:
  0 - Config is valid
  1 - Config is invalid (error details printed to stderr)

Example:
  slotwatch validate -c slotwatch.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Criteria construction is where location and party rules are enforced,
	// so run it here too instead of just the YAML-level checks.
	criteria, err := config.BuildCriteria(cfg)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Location:      %s\n", criteria.Location())
	fmt.Printf("  Radius:        %d miles\n", criteria.RadiusMiles())
	fmt.Printf("  Party:         %d adult(s), %d minor(s)\n", criteria.Adults(), criteria.Minors())
	fmt.Printf("  Poll interval: %s\n", cfg.PollInterval.Duration())
	if cfg.DiscordWebhook != "" {
		fmt.Printf("  Notifier:      discord webhook\n")
	} else {
		fmt.Printf("  Notifier:      log only\n")
	}
	if cfg.Booking.Auto {
		fmt.Printf("  Auto-booking:  enabled (experimental)\n")
	}

	return nil
}

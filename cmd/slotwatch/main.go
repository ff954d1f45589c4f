// Package main is the entry point for the slotwatch CLI.
//
// Slotwatch can be run either as a library (SDK) or as a standalone binary
// with YAML configuration. This CLI provides the standalone binary
// approach.
//
// Usage:
//
//	slotwatch watch -c config.yaml    # Start watching for slots
//	slotwatch validate -c config.yaml # Validate configuration
//	slotwatch version                 # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "slotwatch",
	Short: "Watch a scheduling provider for open appointment slots",
	Long: `Slotwatch continuously polls the USPS appointment scheduler for open
slots within a date window and a geographic area, and notifies the first
time each distinct slot appears.

Quick start:
  1. Create a config file (slotwatch.yaml)
  2. Run: slotwatch watch -c slotwatch.yaml
  3. Wait for a notification

Example config:
  location:
    zip: "78701"
  radius_miles: 25
  poll_interval: 3s
  discord_webhook: ${DISCORD_WEBHOOK}`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this slotwatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("slotwatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}

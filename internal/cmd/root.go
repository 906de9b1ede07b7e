// Package cmd implements the buttongroup command line.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "buttongroup",
	Short: "Button groups coordinated over an event bus",
	Long: `buttongroup mounts the button groups declared in a layout file and
keeps each group and its member buttons in sync over a publish/subscribe
event bus. Pressing a button selects its value in the group; the group
broadcasts its state back so exactly one member is pressed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Global flags
var (
	configPath string
	layoutPath string
	logLevel   string
)

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "settings file (TOML)")
	rootCmd.PersistentFlags().StringVarP(&layoutPath, "layout", "l", "", "layout file (.toml, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Package util provides diagnostic and informational CLI commands for beamscheck.
// Includes: detect, os, version, sauce
package util

import (
	"github.com/spf13/cobra"
)

// Register adds all utility commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(osCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(sauceCmd)
}

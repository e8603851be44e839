// Package push provides the CLI commands that exercise web push end to end.
// Includes: serve, subscribe, notify-test
package push

import (
	"github.com/spf13/cobra"
)

// Register adds all push testing commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(subscribeCmd)
	rootCmd.AddCommand(notifyTestCmd)
}

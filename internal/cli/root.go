// beamscheck - Web push / Pusher Beams notification tester
// Author: Ariel Frischer
// Source: https://github.com/ariel-frischer/beamscheck

// Package cli provides Cobra-based CLI commands for beamscheck.
// It defines the push testing commands (serve, subscribe, notify-test),
// diagnostics (detect, os), and configuration and utility commands
// (config, doctor, version).
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/config"
	"github.com/ariel-frischer/beamscheck/internal/cli/push"
	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/cli/util"
	configpkg "github.com/ariel-frischer/beamscheck/internal/config"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupGettingStarted = shared.GroupGettingStarted
	GroupPushTesting    = shared.GroupPushTesting
	GroupDiagnostics    = shared.GroupDiagnostics
	GroupConfiguration  = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "beamscheck",
	Short: "Pusher Beams notification tester",
	Long: `beamscheck - Pusher Beams notification tester

Check whether a client can take web push notifications delivered through
Pusher Beams, subscribe it to an interest, and fire a local test notification.

Source: https://github.com/ariel-frischer/beamscheck`,
	Example: `  # Serve the browser tester page
  beamscheck serve --instance-id <instance-id>

  # Subscribe this host as a push device
  beamscheck subscribe --instance-id <instance-id>

  # Show a local test notification
  beamscheck notify-test

  # Classify a user agent
  beamscheck detect --ua "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"

  # Host OS report served at /api/os
  beamscheck os --output json`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and reports any error on stderr.
// The returned error carries the exit code; see ExitCode.
func Execute() error {
	return execute(context.Background(), rootCmd.ErrOrStderr())
}

func execute(ctx context.Context, errOut io.Writer) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	// Commands return CLIErrors or exit codes; anything else comes from flag
	// and argument parsing.
	if !shared.IsExitError(err) && !apperrors.IsCLIError(err) {
		err = apperrors.Wrap(err, apperrors.Argument, "Run 'beamscheck --help' for usage")
	}
	reportError(errOut, err)
	return err
}

func reportError(w io.Writer, err error) {
	if shared.IsExitError(err) {
		return
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		apperrors.FprintError(w, cliErr)
		return
	}
	fmt.Fprintln(w, err)
}

func init() {
	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupGettingStarted, Title: "Getting Started:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupPushTesting, Title: "Push Testing:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupDiagnostics, Title: "Diagnostics:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", configpkg.DefaultLocalConfigPath, "Path to config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	// Register commands from subpackages
	push.Register(rootCmd)
	util.Register(rootCmd)
	config.Register(rootCmd)
}

package config

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/health"
	"github.com/ariel-frischer/beamscheck/internal/notify"
	"github.com/ariel-frischer/beamscheck/internal/osinfo"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Run health checks for beamscheck (doc)",
	Long: `Run health checks to verify this host can run the tester.

This command checks:
  - Desktop notifications (notify-send, osascript, PowerShell or the fallback sender)
  - Pusher Beams instance ID is configured
  - Device state directory is writable
  - Config files parse as JSON
  - Host OS information is readable

Each check will display a checkmark if passed or an X with an error message if failed.`,
	Example: `  # Check everything
  beamscheck doctor

  # Run before subscribing
  beamscheck doctor && beamscheck subscribe`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}

		return runDoctor(cmd.Context(), cmd.OutOrStdout(), health.Options{
			Sender:      notify.NewSender(),
			OS:          osinfo.NewCollector(),
			InstanceID:  cfg.InstanceID,
			StateDir:    cfg.StateDir,
			ConfigFiles: health.DefaultConfigFiles(shared.ConfigPath(cmd)),
		})
	},
}

func init() {
	doctorCmd.GroupID = shared.GroupConfiguration
}

// runDoctor prints the report and fails with ExitFailed when any check failed
func runDoctor(ctx context.Context, out io.Writer, opts health.Options) error {
	report := health.RunHealthChecks(ctx, opts)
	fmt.Fprint(out, health.FormatReport(report))

	if !report.Passed {
		return shared.NewExitError(shared.ExitFailed)
	}
	return nil
}

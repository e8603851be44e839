package util

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/osinfo"
)

var osCmd = &cobra.Command{
	Use:   "os",
	Short: "Show the host OS report served at /api/os",
	Long: `Print the platform, kernel release and kernel version of this host.

This is the same report 'beamscheck serve' returns from GET /api/os.`,
	Example: `  # Human-readable
  beamscheck os

  # Same JSON body as the HTTP endpoint
  beamscheck os --output json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, err := shared.ParseOutputFormat(output)
		if err != nil {
			return err
		}
		return runOS(cmd.Context(), cmd.OutOrStdout(), osinfo.NewCollector(), format)
	},
}

func init() {
	osCmd.GroupID = shared.GroupDiagnostics
	osCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
}

func runOS(ctx context.Context, out io.Writer, source osinfo.Source, format shared.OutputFormat) error {
	report, err := source.Collect(ctx)
	if err != nil {
		return apperrors.WrapWithMessage(err, apperrors.Runtime, "failed to read host OS information")
	}

	if format.IsStructured() {
		return shared.WriteStructured(out, format, report)
	}

	shared.PrintField(out, "Platform", report.Platform)
	shared.PrintField(out, "Release", report.Release)
	shared.PrintField(out, "Version", report.Version)
	return nil
}

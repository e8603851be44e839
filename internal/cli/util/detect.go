package util

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/capability"
	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/device"
	"github.com/ariel-frischer/beamscheck/internal/useragent"
)

// DetectReport is the structured output of 'beamscheck detect'
type DetectReport struct {
	UserAgent   string            `json:"user_agent" yaml:"user_agent"`
	OS          string            `json:"os" yaml:"os"`
	OSIcon      string            `json:"os_icon" yaml:"os_icon"`
	Browser     string            `json:"browser" yaml:"browser"`
	BrowserIcon string            `json:"browser_icon" yaml:"browser_icon"`
	Capability  capability.Result `json:"capability" yaml:"capability"`
}

type detectOptions struct {
	userAgent string
	features  capability.Features
	format    shared.OutputFormat
}

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Classify a user agent and check web push support",
	Long: `Classify a user-agent string into OS and browser labels and decide whether
the client can take web push notifications.

iPad, iPhone and iPod clients are always reported as not supported. Other
clients need both service workers and the Push API; use --no-service-worker
or --no-push-manager to simulate a browser without them.

Without --ua the CLI host's own user agent is classified.`,
	Example: `  # Classify a desktop Chrome user agent
  beamscheck detect --ua "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/126.0 Safari/537.36"

  # Machine-readable output
  beamscheck detect --ua "..." --output json

  # Simulate a browser without the Push API
  beamscheck detect --ua "..." --no-push-manager`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, err := shared.ParseOutputFormat(output)
		if err != nil {
			return err
		}

		ua, _ := cmd.Flags().GetString("ua")
		if ua == "" {
			ua = device.DefaultUserAgent(shared.Version)
		}
		noWorker, _ := cmd.Flags().GetBool("no-service-worker")
		noPush, _ := cmd.Flags().GetBool("no-push-manager")

		return runDetect(cmd.OutOrStdout(), detectOptions{
			userAgent: ua,
			features: capability.Features{
				ServiceWorker: !noWorker,
				PushManager:   !noPush,
			},
			format: format,
		})
	},
}

func init() {
	detectCmd.GroupID = shared.GroupDiagnostics
	detectCmd.Flags().String("ua", "", "User-agent string to classify")
	detectCmd.Flags().Bool("no-service-worker", false, "Treat the client as lacking service worker support")
	detectCmd.Flags().Bool("no-push-manager", false, "Treat the client as lacking the Push API")
	detectCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
}

// buildDetectReport classifies ua and evaluates push support for it
func buildDetectReport(ua string, features capability.Features) DetectReport {
	env := useragent.Detect(ua)
	return DetectReport{
		UserAgent:   ua,
		OS:          env.OS,
		OSIcon:      env.OSIcon,
		Browser:     env.Browser,
		BrowserIcon: env.BrowserIcon,
		Capability:  capability.Evaluate(ua, features),
	}
}

func runDetect(out io.Writer, opts detectOptions) error {
	report := buildDetectReport(opts.userAgent, opts.features)
	if opts.format.IsStructured() {
		return shared.WriteStructured(out, opts.format, report)
	}

	shared.PrintField(out, "OS", fmt.Sprintf("%s (%s)", report.OS, report.OSIcon))
	shared.PrintField(out, "Browser", fmt.Sprintf("%s (%s)", report.Browser, report.BrowserIcon))
	fmt.Fprintln(out, shared.SupportSentence(report.Capability.Supported))

	switch report.Capability.Reason {
	case capability.ReasonMobileRestricted:
		shared.PrintHint(out, "iPad, iPhone and iPod browsers are not offered web push.")
	case capability.ReasonMissingFeatures:
		shared.PrintHint(out, "Service workers and the Push API are both required.")
	}
	return nil
}

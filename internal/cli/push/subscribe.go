package push

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/beams"
	"github.com/ariel-frischer/beamscheck/internal/capability"
	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/config"
	"github.com/ariel-frischer/beamscheck/internal/device"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/notify"
	"github.com/ariel-frischer/beamscheck/internal/progress"
	"github.com/ariel-frischer/beamscheck/internal/subscribe"
	"github.com/ariel-frischer/beamscheck/internal/useragent"
)

// SubscribedBanner is printed once the workflow reaches Subscribed
const SubscribedBanner = "Yayy! The notification is working!"

// NotSubscribedBanner is printed for every other outcome
const NotSubscribedBanner = "Not Subscribed"

// SubscribeReport is the structured output of 'beamscheck subscribe'
type SubscribeReport struct {
	InstanceID   string            `json:"instance_id" yaml:"instance_id"`
	Interest     string            `json:"interest" yaml:"interest"`
	UserAgent    string            `json:"user_agent" yaml:"user_agent"`
	OS           string            `json:"os" yaml:"os"`
	Browser      string            `json:"browser" yaml:"browser"`
	Supported    bool              `json:"supported" yaml:"supported"`
	Reason       capability.Reason `json:"reason,omitempty" yaml:"reason,omitempty"`
	State        subscribe.State   `json:"state" yaml:"state"`
	Unsubscribed bool              `json:"unsubscribed" yaml:"unsubscribed"`
	FailedStage  string            `json:"failed_stage,omitempty" yaml:"failed_stage,omitempty"`
	Error        string            `json:"error,omitempty" yaml:"error,omitempty"`
	DeviceID     string            `json:"device_id,omitempty" yaml:"device_id,omitempty"`
	StateFile    string            `json:"state_file" yaml:"state_file"`
}

// workflowHooks receives workflow outcomes for desktop notification hooks
type workflowHooks interface {
	OnSubscribed(interest string)
	OnWorkflowError(stage string, err error)
}

type subscribeOptions struct {
	userAgent string
	reset     bool
	format    shared.OutputFormat
	verbose   bool
	observer  subscribe.Observer
	hooks     workflowHooks
}

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Subscribe this host as a web push device",
	Long: `Run the subscription workflow with this host as the push device.

The host plays the browser's part: it tears down any subscription it holds,
registers the service worker served by the tester site, starts a Beams
device with the configured instance ID and subscribes it to the interest.

Stages: cleanup, register, start, interest. A failing stage is logged and
stops the run; nothing is retried. The command exits 1 unless the device
ends up subscribed.

Device state is kept in <state_dir>/device.json.`,
	Example: `  # Subscribe against a local 'beamscheck serve'
  beamscheck subscribe --instance-id 0e5a6b1c-0000-4000-8000-000000000000

  # Start from a clean device
  beamscheck subscribe --reset

  # Pretend to be an iPhone (always unsupported)
  beamscheck subscribe --user-agent "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		applySubscribeFlags(cmd, cfg)

		output, _ := cmd.Flags().GetString("output")
		format, err := shared.ParseOutputFormat(output)
		if err != nil {
			return err
		}

		logger, err := shared.NewLogger(cmd, cfg)
		if err != nil {
			return err
		}

		ua, _ := cmd.Flags().GetString("user-agent")
		if ua == "" {
			ua = device.DefaultUserAgent(shared.Version)
		}
		reset, _ := cmd.Flags().GetBool("reset")

		opts := subscribeOptions{
			userAgent: ua,
			reset:     reset,
			format:    format,
			verbose:   shared.Verbose(cmd),
			hooks:     notify.NewHandler(cfg.Hooks),
		}
		if cfg.ShowProgress && !format.IsStructured() {
			display := progress.NewProgressDisplayWithWriter(progress.DetectTerminalCapabilities(), cmd.OutOrStdout())
			defer display.StopSpinner()
			opts.observer = progress.NewWorkflowObserver(display)
		}

		ctx, stop := shared.SignalContext(cmd.Context())
		defer stop()

		return runSubscribe(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg, logger, opts)
	},
}

func init() {
	subscribeCmd.GroupID = shared.GroupPushTesting
	subscribeCmd.Flags().String("instance-id", "", "Pusher Beams instance ID (overrides instance_id)")
	subscribeCmd.Flags().String("interest", "", "Interest to subscribe to (overrides interest)")
	subscribeCmd.Flags().String("site-url", "", "Tester site serving the service worker (overrides site_url)")
	subscribeCmd.Flags().String("state-dir", "", "Device state directory (overrides state_dir)")
	subscribeCmd.Flags().String("user-agent", "", "User agent to report for this device")
	subscribeCmd.Flags().Bool("reset", false, "Discard saved device state before subscribing")
	subscribeCmd.Flags().StringP("output", "o", "text", "Output format: text, json, yaml")
}

func applySubscribeFlags(cmd *cobra.Command, cfg *config.Configuration) {
	overrides := map[string]*string{
		"instance-id": &cfg.InstanceID,
		"interest":    &cfg.Interest,
		"site-url":    &cfg.SiteURL,
		"state-dir":   &cfg.StateDir,
	}
	for flag, target := range overrides {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			*target = v
		}
	}
}

func runSubscribe(ctx context.Context, out, errOut io.Writer, cfg *config.Configuration, logger zerolog.Logger, opts subscribeOptions) error {
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return apperrors.StateDirNotWritable(cfg.StateDir, err)
	}

	store := device.NewStore(cfg.StateDir)
	if opts.reset {
		if err := store.Reset(); err != nil {
			return apperrors.StateDirNotWritable(cfg.StateDir, err)
		}
	}

	container := device.NewContainer(cfg.SiteURL, store)
	newClient := func(instanceID string) subscribe.Client {
		clientOpts := []beams.Option{
			beams.WithRecorder(container),
			beams.WithUserAgent(opts.userAgent),
		}
		if cfg.BeamsBaseURL != "" {
			clientOpts = append(clientOpts, beams.WithBaseURL(cfg.BeamsBaseURL))
		}
		return beams.New(instanceID, container, clientOpts...)
	}

	wf := subscribe.New(container, newClient, subscribe.Config{
		InstanceID: cfg.InstanceID,
		Interest:   cfg.Interest,
		WorkerPath: cfg.ServiceWorkerPath,
	}, subscribe.WithLogger(logger), subscribe.WithObserver(opts.observer))

	res := wf.Run(ctx, subscribe.Platform{
		UserAgent: opts.userAgent,
		Features:  capability.AllFeatures(),
	})

	if opts.hooks != nil {
		switch {
		case res.Subscribed():
			opts.hooks.OnSubscribed(cfg.Interest)
		case res.Err != nil:
			opts.hooks.OnWorkflowError(res.FailedStage, res.Err)
		}
	}

	report := buildSubscribeReport(cfg, opts.userAgent, res, store)
	if opts.format.IsStructured() {
		if err := shared.WriteStructured(out, opts.format, report); err != nil {
			return err
		}
	} else {
		printSubscribeReport(out, report, opts.verbose)
		if res.Err != nil {
			apperrors.FprintError(errOut, apperrors.SubscriptionFailed(res.FailedStage, res.Err))
		}
	}

	if !res.Subscribed() {
		return shared.NewExitError(shared.ExitFailed)
	}
	return nil
}

func buildSubscribeReport(cfg *config.Configuration, ua string, res subscribe.Result, store *device.Store) SubscribeReport {
	env := useragent.Detect(ua)
	report := SubscribeReport{
		InstanceID:   cfg.InstanceID,
		Interest:     cfg.Interest,
		UserAgent:    ua,
		OS:           env.OS,
		Browser:      env.Browser,
		Supported:    res.Capability.Supported,
		Reason:       res.Capability.Reason,
		State:        res.State,
		Unsubscribed: res.Unsubscribed,
		FailedStage:  res.FailedStage,
		StateFile:    store.Path(),
	}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}
	if rec, err := store.Load(); err == nil {
		report.DeviceID = rec.DeviceID
	}
	return report
}

func printSubscribeReport(out io.Writer, r SubscribeReport, verbose bool) {
	shared.PrintField(out, "OS", r.OS)
	shared.PrintField(out, "Browser", r.Browser)
	fmt.Fprintln(out, shared.SupportSentence(r.Supported))

	if r.State == subscribe.Subscribed {
		shared.PrintSuccess(out, SubscribedBanner)
	} else {
		shared.PrintFailure(out, NotSubscribedBanner)
	}

	if !verbose {
		return
	}
	shared.PrintField(out, "State", r.State.String())
	if r.Unsubscribed {
		shared.PrintHint(out, "Unsubscribed from existing push notification.")
	}
	if r.DeviceID != "" {
		shared.PrintField(out, "Device", r.DeviceID)
	}
	shared.PrintField(out, "Interest", r.Interest)
	shared.PrintField(out, "State file", r.StateFile)
}

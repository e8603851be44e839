package push

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	"github.com/ariel-frischer/beamscheck/internal/config"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/osinfo"
	"github.com/ariel-frischer/beamscheck/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser notification tester page",
	Long: `Serve the Pusher Beams Notification Tester page.

Opening the page in a browser classifies the browser, decides whether it can
take web push notifications, and if so clears any stale subscription,
registers the service worker, starts the Beams client and subscribes to the
configured interest. The page also has a button that shows a local test
notification.

The server also answers:
  GET  /api/os           host platform, kernel release and version
  GET  /api/environment  user-agent classification
  GET  /healthz          liveness
  POST /push/:id         push endpoint for 'beamscheck subscribe' devices

Browsers only allow service workers on https or localhost origins.`,
	Example: `  # Serve on the configured address (default :3000)
  beamscheck serve --instance-id 0e5a6b1c-0000-4000-8000-000000000000

  # Another port
  beamscheck serve --addr 127.0.0.1:8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}
		applyServeFlags(cmd, cfg)

		logger, err := shared.NewLogger(cmd, cfg)
		if err != nil {
			return err
		}

		ctx, stop := shared.SignalContext(cmd.Context())
		defer stop()

		return runServe(ctx, cmd.OutOrStdout(), cfg, osinfo.NewCollector(), logger)
	},
}

func init() {
	serveCmd.GroupID = shared.GroupPushTesting
	serveCmd.Flags().String("addr", "", "Listen address (overrides listen_addr)")
	serveCmd.Flags().String("instance-id", "", "Pusher Beams instance ID (overrides instance_id)")
	serveCmd.Flags().String("interest", "", "Interest to subscribe to (overrides interest)")
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if v, _ := cmd.Flags().GetString("addr"); v != "" {
		cfg.ListenAddr = v
	}
	if v, _ := cmd.Flags().GetString("instance-id"); v != "" {
		cfg.InstanceID = v
	}
	if v, _ := cmd.Flags().GetString("interest"); v != "" {
		cfg.Interest = v
	}
}

func runServe(ctx context.Context, out io.Writer, cfg *config.Configuration, source osinfo.Source, logger zerolog.Logger) error {
	if cfg.InstanceID == "" {
		logger.Warn().Msg("no instance ID configured; browsers will stop at the start stage")
	}

	srv, err := server.New(server.Config{
		InstanceID: cfg.InstanceID,
		Interest:   cfg.Interest,
		WorkerPath: cfg.ServiceWorkerPath,
	}, source, logger)
	if err != nil {
		return apperrors.Wrap(err, apperrors.Runtime)
	}

	shared.PrintBanner(out)
	fmt.Fprintf(out, "Serving on %s (Ctrl+C to stop)\n", cfg.ListenAddr)

	if err := srv.Run(ctx, cfg.ListenAddr); err != nil {
		return apperrors.ServerStartFailed(cfg.ListenAddr, err)
	}
	return nil
}

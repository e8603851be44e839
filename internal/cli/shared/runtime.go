package shared

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/config"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/logging"
)

// ConfigPath returns the --config value, falling back to the default local path
func ConfigPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return config.DefaultLocalConfigPath
	}
	return path
}

// LoadConfig loads the layered configuration for cmd.
// An explicitly passed --config must exist; the default local file is optional.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	path := ConfigPath(cmd)
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(path); err != nil {
			return nil, apperrors.ConfigFileNotFound(path)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, apperrors.ConfigParseError(path, err)
	}
	return cfg, nil
}

// NewLogger builds the diagnostic logger. --debug wins over log_level.
func NewLogger(cmd *cobra.Command, cfg *config.Configuration) (zerolog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Debug: debug})
	if err != nil {
		return logger, apperrors.WrapWithMessage(err, apperrors.Configuration, "invalid log level")
	}
	return logger.With().Str("command", cmd.Name()).Logger(), nil
}

// Verbose reports whether --verbose was passed
func Verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// SignalContext derives a context canceled on interrupt or terminate
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

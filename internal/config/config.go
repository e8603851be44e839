package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/beamscheck/internal/notify"
)

// EnvPrefix is the prefix for environment variable overrides
const EnvPrefix = "BEAMSCHECK_"

// NotificationConfig is the content of the manual test notification
type NotificationConfig struct {
	Title string `koanf:"title" json:"title" yaml:"title" validate:"required"`
	Body  string `koanf:"body" json:"body" yaml:"body" validate:"required"`
	Icon  string `koanf:"icon" json:"icon" yaml:"icon"`
}

// Configuration represents the beamscheck configuration
type Configuration struct {
	// InstanceID is the Pusher Beams instance. It is passed through unvalidated.
	InstanceID        string             `koanf:"instance_id" json:"instance_id" yaml:"instance_id"`
	Interest          string             `koanf:"interest" json:"interest" yaml:"interest" validate:"required"`
	ListenAddr        string             `koanf:"listen_addr" json:"listen_addr" yaml:"listen_addr" validate:"required"`
	SiteURL           string             `koanf:"site_url" json:"site_url" yaml:"site_url" validate:"required,url"`
	ServiceWorkerPath string             `koanf:"service_worker_path" json:"service_worker_path" yaml:"service_worker_path" validate:"required,startswith=/"`
	BeamsBaseURL      string             `koanf:"beams_base_url" json:"beams_base_url" yaml:"beams_base_url" validate:"omitempty,url"`
	StateDir          string             `koanf:"state_dir" json:"state_dir" yaml:"state_dir" validate:"required"`
	LogLevel          string             `koanf:"log_level" json:"log_level" yaml:"log_level" validate:"oneof=debug info warn error"`
	ShowProgress      bool               `koanf:"show_progress" json:"show_progress" yaml:"show_progress"`
	Notification      NotificationConfig `koanf:"notification" json:"notification" yaml:"notification"`
	Hooks             notify.HookConfig  `koanf:"hooks" json:"hooks" yaml:"hooks"`
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to apply default %s: %w", key, err)
		}
	}

	if globalPath, err := GlobalConfigPath(); err == nil {
		if err := loadFile(k, globalPath); err != nil {
			return nil, fmt.Errorf("failed to load global config: %w", err)
		}
	}

	if localConfigPath != "" {
		if err := loadFile(k, localConfigPath); err != nil {
			return nil, fmt.Errorf("failed to load local config: %w", err)
		}
	}

	// Environment variables have the highest priority
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.StateDir = expandHomePath(cfg.StateDir)
	cfg.Notification.Icon = expandHomePath(cfg.Notification.Icon)

	return &cfg, nil
}

// loadFile merges a JSON config file into k. A missing file is skipped.
func loadFile(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := ValidateJSONSyntax(path); err != nil {
		return err
	}
	return k.Load(file.Provider(path), json.Parser())
}

// GlobalConfigPath returns ~/.beamscheck/config.json
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".beamscheck", "config.json"), nil
}

// envTransform converts environment variable names to config keys.
// A double underscore separates nesting levels.
// Example: BEAMSCHECK_HOOKS__ON_ERROR -> hooks.on_error
func envTransform(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}

package config

import (
	"github.com/ariel-frischer/beamscheck/internal/notify"
	"github.com/ariel-frischer/beamscheck/internal/subscribe"
)

// DefaultLocalConfigPath is the project-level config file
const DefaultLocalConfigPath = ".beamscheck/config.json"

// GetDefaults returns the default configuration values keyed by dotted path
func GetDefaults() map[string]interface{} {
	hooks := notify.DefaultHookConfig()
	return map[string]interface{}{
		"instance_id":         "",
		"interest":            subscribe.DefaultInterest,
		"listen_addr":         ":3000",
		"site_url":            "http://localhost:3000",
		"service_worker_path": subscribe.DefaultWorkerPath,
		"beams_base_url":      "",
		"state_dir":           "~/.beamscheck/state",
		"log_level":           "info",
		"show_progress":       true,
		"notification.title":  notify.DefaultTestTitle,
		"notification.body":   notify.DefaultTestBody,
		"notification.icon":   "",
		"hooks.enabled":       hooks.Enabled,
		"hooks.on_subscribed": hooks.OnSubscribed,
		"hooks.on_error":      hooks.OnError,
	}
}

// Package config_test tests configuration loading, merging hierarchy, and environment variable overrides.
// Related: internal/config/config.go
// Tags: config, loading, merging, env-vars, json, precedence
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points HOME at a temp dir so real global config files are never read.
// Tests using it cannot run in parallel.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.InstanceID)
	assert.Equal(t, "hello", cfg.Interest)
	assert.Equal(t, ":3000", cfg.ListenAddr)
	assert.Equal(t, "http://localhost:3000", cfg.SiteURL)
	assert.Equal(t, "/service-worker.js", cfg.ServiceWorkerPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.ShowProgress)
	assert.Equal(t, filepath.Join(home, ".beamscheck", "state"), cfg.StateDir)
	assert.Equal(t, "Beams test notification", cfg.Notification.Title)
	assert.False(t, cfg.Hooks.Enabled)
	assert.True(t, cfg.Hooks.OnSubscribed)
	assert.True(t, cfg.Hooks.OnError)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolateHome(t)

	writeConfig(t, filepath.Join(home, ".beamscheck", "config.json"), `{
		"instance_id": "global-id",
		"interest": "global-interest",
		"listen_addr": ":4000"
	}`)
	localPath := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, localPath, `{
		"interest": "local-interest",
		"notification": {"title": "Local title"}
	}`)
	t.Setenv("BEAMSCHECK_LISTEN_ADDR", ":5000")

	cfg, err := Load(localPath)
	require.NoError(t, err)

	assert.Equal(t, "global-id", cfg.InstanceID, "global overrides defaults")
	assert.Equal(t, "local-interest", cfg.Interest, "local overrides global")
	assert.Equal(t, ":5000", cfg.ListenAddr, "env overrides everything")
	assert.Equal(t, "Local title", cfg.Notification.Title)
	assert.Equal(t, "If you can read this, notifications work on this device.", cfg.Notification.Body,
		"nested defaults survive a partial override")
}

func TestLoad_EnvOverride(t *testing.T) {
	isolateHome(t)

	t.Setenv("BEAMSCHECK_INSTANCE_ID", "env-instance")
	t.Setenv("BEAMSCHECK_SHOW_PROGRESS", "false")
	t.Setenv("BEAMSCHECK_HOOKS__ENABLED", "true")
	t.Setenv("BEAMSCHECK_NOTIFICATION__BODY", "from env")
	t.Setenv("BEAMSCHECK_LOG_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-instance", cfg.InstanceID)
	assert.False(t, cfg.ShowProgress)
	assert.True(t, cfg.Hooks.Enabled)
	assert.Equal(t, "from env", cfg.Notification.Body)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_MissingLocalFileIsIgnored(t *testing.T) {
	isolateHome(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, "hello", cfg.Interest)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := map[string]struct {
		content string
		field   string
	}{
		"site_url not a url": {
			content: `{"site_url": "not a url"}`,
			field:   "SiteURL",
		},
		"worker path relative": {
			content: `{"service_worker_path": "service-worker.js"}`,
			field:   "ServiceWorkerPath",
		},
		"unknown log level": {
			content: `{"log_level": "verbose"}`,
			field:   "LogLevel",
		},
		"empty interest": {
			content: `{"interest": ""}`,
			field:   "Interest",
		},
		"empty notification title": {
			content: `{"notification": {"title": ""}}`,
			field:   "Title",
		},
		"bad beams base url": {
			content: `{"beams_base_url": "::::"}`,
			field:   "BeamsBaseURL",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateHome(t)
			path := filepath.Join(t.TempDir(), "config.json")
			writeConfig(t, path, tt.content)

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config validation failed")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfig(t, path, "{\n  \"interest\": \n}")

	_, err := Load(path)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, path, verr.FilePath)
	assert.Equal(t, 3, verr.Line)
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"BEAMSCHECK_INSTANCE_ID":          "instance_id",
		"BEAMSCHECK_HOOKS__ON_SUBSCRIBED": "hooks.on_subscribed",
		"BEAMSCHECK_NOTIFICATION__TITLE":  "notification.title",
		"BEAMSCHECK_SERVICE_WORKER_PATH":  "service_worker_path",
	}
	for input, want := range tests {
		assert.Equal(t, want, envTransform(input), input)
	}
}

func TestExpandHomePath(t *testing.T) {
	home := isolateHome(t)

	assert.Equal(t, filepath.Join(home, "state"), expandHomePath("~/state"))
	assert.Equal(t, "/abs/path", expandHomePath("/abs/path"))
	assert.Equal(t, "relative", expandHomePath("relative"))
}

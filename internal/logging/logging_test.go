package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InvalidLevel(t *testing.T) {
	t.Parallel()

	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNew_DebugOverridesLevel(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Level: "error", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, logger.GetLevel())
}

func TestNew_ParsesLevel(t *testing.T) {
	t.Parallel()

	logger, err := New(Config{Level: "warn"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
}

func TestNewWithWriter_EmitsJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewWithWriter(&buf, zerolog.InfoLevel)

	logger.Debug().Msg("hidden")
	logger.Info().Str("stage", "register").Msg("stage completed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "stage completed", entry["message"])
	assert.Equal(t, "register", entry["stage"])
	assert.Equal(t, "info", entry["level"])
	assert.Contains(t, entry, "time")
}

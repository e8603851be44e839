// Package progress_test tests progress display rendering, stage counters, checkmarks, and spinner lifecycle.
// Related: internal/progress/display.go
// Tags: progress, display, rendering, stages, spinner, tty
package progress_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/beamscheck/internal/progress"
)

var plainCaps = progress.TerminalCapabilities{}

var unicodeCaps = progress.TerminalCapabilities{
	SupportsUnicode: true,
	SupportsColor:   true,
	Width:           80,
}

func TestProgressDisplay_StartStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		stage        progress.StageInfo
		wantContains []string
		wantErr      bool
	}{
		"first stage": {
			stage:        progress.StageInfo{Name: "cleanup", Number: 1, TotalStages: 4},
			wantContains: []string{"[1/4]", "Running Cleanup stage"},
		},
		"last stage": {
			stage:        progress.StageInfo{Name: "interest", Number: 4, TotalStages: 4},
			wantContains: []string{"[4/4]", "Interest"},
		},
		"empty name": {
			stage:   progress.StageInfo{Number: 1, TotalStages: 4},
			wantErr: true,
		},
		"number exceeds total": {
			stage:   progress.StageInfo{Name: "start", Number: 5, TotalStages: 4},
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplayWithWriter(plainCaps, &buf)

			err := display.StartStage(tt.stage)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, buf.String())
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, buf.String(), want)
			}

			current, ok := display.CurrentStage()
			require.True(t, ok)
			assert.Equal(t, progress.StageInProgress, current.Status)
		})
	}
}

func TestProgressDisplay_CompleteStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps progress.TerminalCapabilities
		want string
	}{
		"ascii":   {caps: plainCaps, want: "[OK] [2/4] Register stage complete\n"},
		"unicode": {caps: unicodeCaps, want: "\033[32m✓\033[0m [2/4] Register stage complete\n"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplayWithWriter(tt.caps, &buf)
			stage := progress.StageInfo{Name: "register", Number: 2, TotalStages: 4}

			require.NoError(t, display.StartStage(stage))
			buf.Reset()
			require.NoError(t, display.CompleteStage(stage))

			assert.Equal(t, tt.want, buf.String())
			_, ok := display.CurrentStage()
			assert.False(t, ok)
		})
	}
}

func TestProgressDisplay_FailStage(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps progress.TerminalCapabilities
		want string
	}{
		"ascii":   {caps: plainCaps, want: "[FAIL] [3/4] Start stage failed: 401 unauthorized\n"},
		"unicode": {caps: unicodeCaps, want: "\033[31m✗\033[0m [3/4] Start stage failed: 401 unauthorized\n"},
		"unicode without color": {
			caps: progress.TerminalCapabilities{SupportsUnicode: true},
			want: "✗ [3/4] Start stage failed: 401 unauthorized\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			display := progress.NewProgressDisplayWithWriter(tt.caps, &buf)
			stage := progress.StageInfo{Name: "start", Number: 3, TotalStages: 4}

			require.NoError(t, display.FailStage(stage, errors.New("401 unauthorized")))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestProgressDisplay_StopSpinnerIsIdempotent(t *testing.T) {
	t.Parallel()

	display := progress.NewProgressDisplayWithWriter(plainCaps, &bytes.Buffer{})
	assert.NotPanics(t, func() {
		display.StopSpinner()
		display.StopSpinner()
	})
}

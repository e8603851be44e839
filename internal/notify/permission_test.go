package notify

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePermission(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    Permission
		wantErr bool
	}{
		"granted":          {input: "granted", want: PermissionGranted},
		"denied uppercase": {input: "DENIED", want: PermissionDenied},
		"default padded":   {input: "  default ", want: PermissionDefault},
		"invalid":          {input: "maybe", wantErr: true},
		"empty":            {input: "", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, err := ParsePermission(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStaticPermission(t *testing.T) {
	t.Parallel()
	assert.Equal(t, PermissionDenied, StaticPermission(PermissionDenied).RequestPermission(context.Background()))
}

func TestTerminalPrompter(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input       string
		interactive bool
		want        Permission
		wantPrompt  bool
	}{
		"yes":             {input: "y\n", interactive: true, want: PermissionGranted, wantPrompt: true},
		"YES":             {input: "YES\n", interactive: true, want: PermissionGranted, wantPrompt: true},
		"no":              {input: "n\n", interactive: true, want: PermissionDenied, wantPrompt: true},
		"empty answer":    {input: "\n", interactive: true, want: PermissionDefault, wantPrompt: true},
		"eof":             {input: "", interactive: true, want: PermissionDefault, wantPrompt: true},
		"no newline":      {input: "y", interactive: true, want: PermissionGranted, wantPrompt: true},
		"non-interactive": {input: "y\n", interactive: false, want: PermissionDefault, wantPrompt: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			p := NewTerminalPrompterWithCheck(strings.NewReader(tt.input), &out, func() bool { return tt.interactive })

			assert.Equal(t, tt.want, p.RequestPermission(context.Background()))
			if tt.wantPrompt {
				assert.Equal(t, PromptText, out.String())
			} else {
				assert.Empty(t, out.String())
			}
		})
	}
}

func TestTerminalPrompter_Canceled(t *testing.T) {
	t.Parallel()

	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewTerminalPrompterWithCheck(r, io.Discard, func() bool { return true })
	assert.Equal(t, PermissionDefault, p.RequestPermission(ctx))

	// The input was closed, so the pending read has ended and late answers are rejected
	_, err := w.Write([]byte("y\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

func TestTerminalPrompter_CanceledWhileWaiting(t *testing.T) {
	t.Parallel()

	r, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	prompted := make(chan string, 1)
	out := writerFunc(func(b []byte) (int, error) {
		prompted <- string(b)
		return len(b), nil
	})
	p := NewTerminalPrompterWithCheck(r, out, func() bool { return true })

	done := make(chan Permission, 1)
	go func() { done <- p.RequestPermission(ctx) }()

	assert.Equal(t, PromptText, <-prompted)
	cancel()

	select {
	case got := <-done:
		assert.Equal(t, PermissionDefault, got)
	case <-time.After(time.Second):
		t.Fatal("RequestPermission did not return after cancel")
	}

	_, err := w.Write([]byte("y\n"))
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(b []byte) (int, error) { return f(b) }

// Package push tests the notify-test command wiring.
// Related: internal/cli/push/notify_cmd.go
// Tags: push, cli, notify, permission, trigger

package push

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/notify"
)

type fakeSender struct {
	available bool
	err       error
	sent      []notify.Notification
}

func (s *fakeSender) SendVisual(n notify.Notification) error {
	s.sent = append(s.sent, n)
	return s.err
}

func (s *fakeSender) VisualAvailable() bool { return s.available }

func TestNewPermissioner(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value   string
		want    notify.Permission
		prompt  bool
		wantErr bool
	}{
		"prompt":           {value: "prompt", prompt: true},
		"prompt uppercase": {value: "PROMPT", prompt: true},
		"granted":          {value: "granted", want: notify.PermissionGranted},
		"denied":           {value: "denied", want: notify.PermissionDenied},
		"default":          {value: "default", want: notify.PermissionDefault},
		"unknown":          {value: "maybe", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := newPermissioner(tt.value, strings.NewReader(""), &bytes.Buffer{})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperrors.Argument, apperrors.AsCLIError(err).Category)
				assert.Equal(t, shared.ExitInvalidArguments, shared.ExitCode(err))
				return
			}
			require.NoError(t, err)
			if tt.prompt {
				assert.IsType(t, &notify.TerminalPrompter{}, p)
				return
			}
			assert.Equal(t, tt.want, p.RequestPermission(context.Background()))
		})
	}
}

func TestRunNotifyTest(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		sender     *fakeSender
		permission notify.Permission
		wantOut    string
		wantSent   int
		wantErr    bool
	}{
		"granted": {
			sender:     &fakeSender{available: true},
			permission: notify.PermissionGranted,
			wantOut:    notify.MsgSent,
			wantSent:   1,
		},
		"denied": {
			sender:     &fakeSender{available: true},
			permission: notify.PermissionDenied,
			wantOut:    notify.MsgPermissionDenied,
			wantErr:    true,
		},
		"dismissed": {
			sender:     &fakeSender{available: true},
			permission: notify.PermissionDefault,
			wantOut:    notify.MsgPermissionDefault,
			wantErr:    true,
		},
		"no notification support": {
			sender:     &fakeSender{},
			permission: notify.PermissionGranted,
			wantOut:    notify.MsgUnsupported,
			wantErr:    true,
		},
		"sender failure": {
			sender:     &fakeSender{available: true, err: errors.New("dbus unavailable")},
			permission: notify.PermissionGranted,
			wantOut:    "Failed to show notification: dbus unavailable",
			wantSent:   1,
			wantErr:    true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			build := func() notify.Notification { return notify.TestNotification("Hi", "", "") }

			err := runNotifyTest(context.Background(), tt.sender, notify.StaticPermission(tt.permission), consoleReporter{out: &out}, build)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, shared.IsExitError(err))
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, 1, strings.Count(out.String(), "\n"), "exactly one feedback line")
			assert.Contains(t, out.String(), tt.wantOut)
			require.Len(t, tt.sender.sent, tt.wantSent)
			if tt.wantSent > 0 {
				assert.Equal(t, "Hi", tt.sender.sent[0].Title)
				assert.Equal(t, notify.DefaultTestBody, tt.sender.sent[0].Message)
			}
		})
	}
}

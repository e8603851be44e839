package notify

import (
	"context"
	"errors"
	"fmt"
)

// User-visible messages produced by Trigger.Fire
const (
	MsgUnsupported       = "Notifications are not supported on this device."
	MsgPermissionDenied  = "Notification permission was denied."
	MsgPermissionDefault = "Notification permission was not granted."
	MsgSent              = "Test notification sent."
)

var (
	// ErrUnsupported is returned when this device cannot show notifications
	ErrUnsupported = errors.New("notifications not supported")
	// ErrPermissionDenied is returned when the user denied the permission
	ErrPermissionDenied = errors.New("notification permission denied")
	// ErrPermissionDismissed is returned when the permission stayed at default
	ErrPermissionDismissed = errors.New("notification permission not granted")
)

// Reporter surfaces user-visible feedback for the trigger
type Reporter interface {
	Success(msg string)
	Error(msg string)
}

// Trigger sends the manual test notification after checking capability and permission
type Trigger struct {
	sender       Sender
	permissioner Permissioner
	reporter     Reporter
	build        func() Notification
}

// NewTrigger creates a Trigger. build is only called once permission is granted.
func NewTrigger(sender Sender, permissioner Permissioner, reporter Reporter, build func() Notification) *Trigger {
	return &Trigger{
		sender:       sender,
		permissioner: permissioner,
		reporter:     reporter,
		build:        build,
	}
}

// Fire runs the trigger once. Every branch reports exactly one message.
func (t *Trigger) Fire(ctx context.Context) error {
	if !t.sender.VisualAvailable() {
		t.reporter.Error(MsgUnsupported)
		return ErrUnsupported
	}

	switch t.permissioner.RequestPermission(ctx) {
	case PermissionGranted:
		if err := t.sender.SendVisual(t.build()); err != nil {
			t.reporter.Error(fmt.Sprintf("Failed to show notification: %v", err))
			return fmt.Errorf("sending test notification: %w", err)
		}
		t.reporter.Success(MsgSent)
		return nil
	case PermissionDenied:
		t.reporter.Error(MsgPermissionDenied)
		return ErrPermissionDenied
	default:
		t.reporter.Error(MsgPermissionDefault)
		return ErrPermissionDismissed
	}
}

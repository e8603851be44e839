//go:build linux

package notify

import (
	"os"
	"os/exec"
)

// linuxSender implements Sender for Linux using notify-send
type linuxSender struct {
	visualAvailable bool
}

// newLinuxSender creates a new Linux notification sender
func newLinuxSender() Sender {
	return &linuxSender{
		visualAvailable: toolAvailable("notify-send") && hasDisplay(),
	}
}

// newDarwinSender returns a no-op sender on linux
func newDarwinSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on linux
func newWindowsSender() Sender {
	return &noopSender{}
}

// hasDisplay reports whether an X11 or Wayland display is present
func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// SendVisual sends a visual notification using notify-send
func (s *linuxSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}

	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}

	args := []string{"-u", urgency, "-a", AppName}
	if icon := ValidateIcon(n.Icon); icon != "" {
		args = append(args, "-i", icon)
	}
	args = append(args, n.Title, n.Message)

	return exec.Command("notify-send", args...).Run()
}

// VisualAvailable returns true if notify-send is available and display is present
func (s *linuxSender) VisualAvailable() bool {
	return s.visualAvailable
}

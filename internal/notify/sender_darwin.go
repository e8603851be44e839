//go:build darwin

package notify

import (
	"fmt"
	"os/exec"
)

// darwinSender implements Sender for macOS using osascript
type darwinSender struct {
	visualAvailable bool
}

// newDarwinSender creates a new macOS notification sender
func newDarwinSender() Sender {
	return &darwinSender{
		visualAvailable: toolAvailable("osascript"),
	}
}

// newLinuxSender returns a no-op sender on darwin
func newLinuxSender() Sender {
	return &noopSender{}
}

// newWindowsSender returns a no-op sender on darwin
func newWindowsSender() Sender {
	return &noopSender{}
}

// SendVisual sends a visual notification using osascript.
// Notification Center ignores custom icons from scripts, so Icon is unused.
func (s *darwinSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}

	script := fmt.Sprintf(`display notification %q with title %q`, n.Message, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}

// VisualAvailable returns true if osascript is available
func (s *darwinSender) VisualAvailable() bool {
	return s.visualAvailable
}

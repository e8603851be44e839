package notify

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gen2brain/beeep"
	"github.com/rs/zerolog/log"
)

// Sender defines the interface for platform-specific notification senders
type Sender interface {
	// SendVisual sends a visual notification to the OS notification system
	SendVisual(n Notification) error

	// VisualAvailable returns true if visual notifications are supported
	VisualAvailable() bool
}

// NewSender creates a platform-specific notification sender based on the current OS.
// It returns a sender appropriate for darwin (macOS), linux, or windows.
// Other platforms go through beeep.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return newDarwinSender()
	case "linux":
		return newLinuxSender()
	case "windows":
		return newWindowsSender()
	default:
		return newBeeepSender()
	}
}

// Platform returns the current operating system name
func Platform() string {
	return runtime.GOOS
}

// toolAvailable checks if a command-line tool is available in PATH
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is a sender that does nothing
type noopSender struct{}

func (s *noopSender) SendVisual(_ Notification) error { return nil }
func (s *noopSender) VisualAvailable() bool           { return false }

// beeepSender sends notifications through github.com/gen2brain/beeep
type beeepSender struct {
	notify func(title, message string, icon any) error
}

func newBeeepSender() Sender {
	beeep.AppName = AppName
	return &beeepSender{notify: func(title, message string, icon any) error {
		return beeep.Notify(title, message, icon)
	}}
}

func (s *beeepSender) SendVisual(n Notification) error {
	return s.notify(n.Title, n.Message, ValidateIcon(n.Icon))
}

func (s *beeepSender) VisualAvailable() bool { return true }

// supportedIconExtensions contains file extensions supported for notification icons
var supportedIconExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".ico":  true,
	".svg":  true,
}

// ValidateIcon checks if the icon file exists and has a supported format.
// Returns the path to use (original if valid, or empty to fall back to no icon).
// If the file is invalid, logs a warning and returns empty string.
func ValidateIcon(icon string) string {
	if icon == "" {
		return ""
	}

	info, err := os.Stat(icon)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("icon", icon).Msg("icon not found, sending without icon")
		} else {
			log.Warn().Err(err).Str("icon", icon).Msg("cannot access icon, sending without icon")
		}
		return ""
	}

	if info.IsDir() {
		log.Warn().Str("icon", icon).Msg("icon path is a directory, sending without icon")
		return ""
	}

	ext := strings.ToLower(filepath.Ext(icon))
	if !supportedIconExtensions[ext] {
		log.Warn().Str("icon", icon).Str("ext", ext).Msg("unsupported icon format, sending without icon")
		return ""
	}

	return icon
}

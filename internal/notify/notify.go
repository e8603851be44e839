package notify

// NotificationType represents the type of notification event
type NotificationType string

const (
	// TypeSuccess indicates a successful operation
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a failed operation
	TypeFailure NotificationType = "failure"
	// TypeInfo indicates an informational notification
	TypeInfo NotificationType = "info"
)

// Default content of the manual test notification
const (
	DefaultTestTitle = "Beams test notification"
	DefaultTestBody  = "If you can read this, notifications work on this device."
)

// AppName identifies beamscheck to the OS notification system
const AppName = "beamscheck"

// HookConfig holds user preferences for workflow notifications.
// Configuration is loaded from the config hierarchy (env > local > global > defaults).
type HookConfig struct {
	// Enabled is the master switch for hook notifications (default: false, opt-in)
	Enabled bool `koanf:"enabled" yaml:"enabled" json:"enabled"`

	// OnSubscribed notifies when the subscription workflow completes (default: true when enabled)
	OnSubscribed bool `koanf:"on_subscribed" yaml:"on_subscribed" json:"on_subscribed"`

	// OnError notifies when a workflow stage fails (default: true when enabled)
	OnError bool `koanf:"on_error" yaml:"on_error" json:"on_error"`
}

// DefaultHookConfig returns a HookConfig with default values
func DefaultHookConfig() HookConfig {
	return HookConfig{
		Enabled:      false,
		OnSubscribed: true,
		OnError:      true,
	}
}

// Notification represents a single notification event to dispatch
type Notification struct {
	// Title is the notification title
	Title string

	// Message is the notification body text
	Message string

	// Icon is an optional image path shown where the platform supports it
	Icon string

	// NotificationType indicates the event type: success, failure, or info
	NotificationType NotificationType
}

// NewNotification creates a new Notification with the given parameters
func NewNotification(title, message string, notificationType NotificationType) Notification {
	return Notification{
		Title:            title,
		Message:          message,
		NotificationType: notificationType,
	}
}

// TestNotification builds the fixed manual test notification. Empty title or
// body fall back to the defaults.
func TestNotification(title, body, icon string) Notification {
	if title == "" {
		title = DefaultTestTitle
	}
	if body == "" {
		body = DefaultTestBody
	}
	n := NewNotification(title, body, TypeInfo)
	n.Icon = icon
	return n
}

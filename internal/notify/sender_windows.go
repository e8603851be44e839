//go:build windows

package notify

import (
	"fmt"
	"os/exec"
	"strings"
)

// windowsSender implements Sender for Windows using PowerShell
type windowsSender struct {
	visualAvailable bool
}

// newWindowsSender creates a new Windows notification sender
func newWindowsSender() Sender {
	return &windowsSender{
		visualAvailable: toolAvailable("powershell"),
	}
}

// newDarwinSender returns a no-op sender on windows
func newDarwinSender() Sender {
	return &noopSender{}
}

// newLinuxSender returns a no-op sender on windows
func newLinuxSender() Sender {
	return &noopSender{}
}

// SendVisual sends a toast notification using PowerShell
func (s *windowsSender) SendVisual(n Notification) error {
	if !s.visualAvailable {
		return nil // graceful degradation
	}

	script := fmt.Sprintf(`
[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
$template = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::ToastText02)
$textNodes = $template.GetElementsByTagName('text')
$textNodes.Item(0).AppendChild($template.CreateTextNode('%s')) | Out-Null
$textNodes.Item(1).AppendChild($template.CreateTextNode('%s')) | Out-Null
$toast = [Windows.UI.Notifications.ToastNotification]::new($template)
[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('%s').Show($toast)
`, escapeForPowerShell(n.Title), escapeForPowerShell(n.Message), AppName)

	return exec.Command("powershell", "-ExecutionPolicy", "Bypass", "-NoProfile", "-Command", script).Run()
}

// VisualAvailable returns true if PowerShell is available
func (s *windowsSender) VisualAvailable() bool {
	return s.visualAvailable
}

// escapeForPowerShell escapes special characters for single-quoted PowerShell strings
func escapeForPowerShell(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '\'':
			b.WriteString("''")
		case '`', '$':
			b.WriteRune('`')
			b.WriteRune(c)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

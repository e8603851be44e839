// Package notify provides local desktop notifications for beamscheck.
//
// It backs two features: the manual test trigger, which proves this device can
// display a notification once the user grants permission, and optional
// workflow hooks that announce subscription results.
//
// # Platform Support
//
//   - macOS: osascript
//   - Linux: notify-send (requires DISPLAY or WAYLAND_DISPLAY)
//   - Windows: PowerShell toast notifications
//   - Other platforms: github.com/gen2brain/beeep
//
// # Permission model
//
// The trigger asks a Permissioner before showing anything. Answers map to the
// web Notification permission states: granted, denied and default (the
// prompt was dismissed or could not be shown).
//
// # Usage
//
//	trigger := notify.NewTrigger(
//		notify.NewSender(),
//		notify.NewTerminalPrompter(os.Stdin, os.Stderr),
//		reporter,
//		func() notify.Notification { return notify.TestNotification("", "", "") },
//	)
//	if err := trigger.Fire(ctx); err != nil {
//		// the reporter has already shown the message
//	}
package notify

package push

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
	"github.com/ariel-frischer/beamscheck/internal/notify"
)

// PermissionPrompt asks the user on the terminal instead of using a fixed answer
const PermissionPrompt = "prompt"

// consoleReporter prints trigger feedback as colored status lines
type consoleReporter struct {
	out io.Writer
}

func (r consoleReporter) Success(msg string) { shared.PrintSuccess(r.out, msg) }
func (r consoleReporter) Error(msg string)   { shared.PrintFailure(r.out, msg) }

var notifyTestCmd = &cobra.Command{
	Use:   "notify-test",
	Short: "Show a local test notification",
	Long: `Show a test notification on this desktop.

The command checks that the host can display notifications, then asks for
permission. Only a granted permission shows the notification; a denied or
dismissed request is reported and nothing is shown.

--permission prompt asks on the terminal (anything but y/yes/n/no counts as
dismissed). granted, denied and default answer without asking.`,
	Example: `  # Ask, then notify
  beamscheck notify-test

  # Non-interactive
  beamscheck notify-test --permission granted --title "Hello" --body "From beamscheck"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := shared.LoadConfig(cmd)
		if err != nil {
			return err
		}

		permission, _ := cmd.Flags().GetString("permission")
		permissioner, err := newPermissioner(permission, cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil {
			return err
		}

		content := cfg.Notification
		if v, _ := cmd.Flags().GetString("title"); v != "" {
			content.Title = v
		}
		if v, _ := cmd.Flags().GetString("body"); v != "" {
			content.Body = v
		}
		if v, _ := cmd.Flags().GetString("icon"); v != "" {
			content.Icon = v
		}

		build := func() notify.Notification {
			return notify.TestNotification(content.Title, content.Body, notify.ValidateIcon(content.Icon))
		}
		return runNotifyTest(cmd.Context(), notify.NewSender(), permissioner, consoleReporter{out: cmd.OutOrStdout()}, build)
	},
}

func init() {
	notifyTestCmd.GroupID = shared.GroupPushTesting
	notifyTestCmd.Flags().String("permission", PermissionPrompt, "Permission answer: prompt, granted, denied, default")
	notifyTestCmd.Flags().String("title", "", "Notification title (overrides notification.title)")
	notifyTestCmd.Flags().String("body", "", "Notification body (overrides notification.body)")
	notifyTestCmd.Flags().String("icon", "", "Notification icon path (overrides notification.icon)")
}

// newPermissioner maps a --permission value to its permission source
func newPermissioner(value string, in io.Reader, out io.Writer) (notify.Permissioner, error) {
	if strings.EqualFold(strings.TrimSpace(value), PermissionPrompt) {
		return notify.NewTerminalPrompter(in, out), nil
	}
	p, err := notify.ParsePermission(value)
	if err != nil {
		return nil, apperrors.InvalidPermission(value)
	}
	return notify.StaticPermission(p), nil
}

// runNotifyTest fires the trigger once. The trigger has already reported any
// failure, so only the exit code is returned for it.
func runNotifyTest(ctx context.Context, sender notify.Sender, permissioner notify.Permissioner, reporter notify.Reporter, build func() notify.Notification) error {
	trigger := notify.NewTrigger(sender, permissioner, reporter, build)
	if err := trigger.Fire(ctx); err != nil {
		return shared.NewExitError(shared.ExitFailed)
	}
	return nil
}

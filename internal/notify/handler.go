package notify

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// dispatchTimeout bounds how long a hook notification may block the caller
const dispatchTimeout = 5 * time.Second

// Handler sends opt-in desktop notifications for subscription workflow events.
// If hooks are disabled in config, the handler no-ops on all calls.
type Handler struct {
	config  HookConfig
	sender  Sender
	enabled func() bool
}

// NewHandler creates a new hook handler using the platform sender
func NewHandler(config HookConfig) *Handler {
	return NewHandlerWithSender(config, NewSender())
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
func NewHandlerWithSender(config HookConfig, sender Sender) *Handler {
	h := &Handler{config: config, sender: sender}
	h.enabled = h.isEnabled
	return h
}

// Config returns the handler's hook configuration
func (h *Handler) Config() HookConfig {
	return h.config
}

// isEnabled checks if notifications should be sent.
// Returns false if hooks are disabled, running in CI, or non-interactive.
func (h *Handler) isEnabled() bool {
	if !h.config.Enabled {
		return false
	}
	if isCI() {
		return false
	}
	return isInteractive()
}

// isCI checks for common CI environment variables.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
		"TF_BUILD",            // Azure DevOps
		"BITBUCKET_PIPELINES", // Bitbucket
		"CODEBUILD_BUILD_ID",  // AWS CodeBuild
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks if the session is interactive (has TTY).
// Checks stdout first because stdin is often piped.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// dispatch sends a notification asynchronously with a timeout.
// Failures are swallowed so hooks never break the workflow.
func (h *Handler) dispatch(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = h.sender.SendVisual(n)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// OnSubscribed is called when the workflow reaches Subscribed.
func (h *Handler) OnSubscribed(interest string) {
	if !h.enabled() || !h.config.OnSubscribed {
		return
	}

	h.dispatch(NewNotification(
		AppName,
		fmt.Sprintf("Subscribed to interest '%s'", interest),
		TypeSuccess,
	))
}

// OnWorkflowError is called when a workflow stage fails.
func (h *Handler) OnWorkflowError(stage string, err error) {
	if !h.enabled() || !h.config.OnError {
		return
	}

	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}

	h.dispatch(NewNotification(
		AppName,
		fmt.Sprintf("Subscription failed at '%s': %s", stage, errMsg),
		TypeFailure,
	))
}

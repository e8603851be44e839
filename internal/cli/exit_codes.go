package cli

import (
	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
)

// Exit codes for the beamscheck CLI (re-exported from shared)
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = shared.ExitSuccess

	// ExitFailed indicates the check or workflow did not succeed
	ExitFailed = shared.ExitFailed

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = shared.ExitInvalidArguments

	// ExitConfigError indicates the configuration could not be loaded
	ExitConfigError = shared.ExitConfigError

	// ExitMissingDependency indicates a host prerequisite is missing
	ExitMissingDependency = shared.ExitMissingDependency
)

// NewExitError creates a new exit error with the given code (re-exported from shared).
func NewExitError(code int) error {
	return shared.NewExitError(code)
}

// ExitCode returns the exit code from an error (re-exported from shared).
func ExitCode(err error) int {
	return shared.ExitCode(err)
}

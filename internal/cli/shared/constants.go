// Package shared provides constants and types used across CLI subpackages.
// This package has no dependencies on other CLI packages to avoid circular imports.
package shared

import (
	"errors"
	"fmt"

	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
)

// Command group IDs for organizing help output
const (
	GroupGettingStarted = "getting-started"
	GroupPushTesting    = "push-testing"
	GroupDiagnostics    = "diagnostics"
	GroupConfiguration  = "configuration"
)

// Exit codes for CLI commands
const (
	ExitSuccess           = 0
	ExitFailed            = 1
	ExitInvalidArguments  = 2
	ExitConfigError       = 3
	ExitMissingDependency = 4
)

// exitError is a custom error type that carries an exit code.
// The command has already reported the failure, so Execute prints nothing for it.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// NewExitError creates a new exit error with the given code.
func NewExitError(code int) error {
	return &exitError{code: code}
}

// IsExitError reports whether err only carries an exit code
func IsExitError(err error) bool {
	var e *exitError
	return errors.As(err, &e)
}

// ExitCode returns the exit code for an error.
// CLIErrors map by category; anything else is a plain failure.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	if cliErr := apperrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case apperrors.Argument:
			return ExitInvalidArguments
		case apperrors.Configuration:
			return ExitConfigError
		case apperrors.Prerequisite:
			return ExitMissingDependency
		}
	}
	return ExitFailed
}

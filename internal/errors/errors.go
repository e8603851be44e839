// Package errors provides categorized, user-facing CLI errors with usage
// hints and remediation steps.
package errors

import (
	stderrors "errors"
)

// ErrorCategory groups errors by where the fix lies
type ErrorCategory int

const (
	// Argument errors come from bad command-line input
	Argument ErrorCategory = iota
	// Configuration errors come from config files or environment
	Configuration
	// Prerequisite errors mean something required is missing on this machine
	Prerequisite
	// Runtime errors happen while doing the work
	Runtime
)

// String returns the display heading for the category
func (c ErrorCategory) String() string {
	switch c {
	case Argument:
		return "Argument Error"
	case Configuration:
		return "Configuration Error"
	case Prerequisite:
		return "Prerequisite Error"
	case Runtime:
		return "Runtime Error"
	default:
		return "Error"
	}
}

// CLIError is an error meant to be shown to the user
type CLIError struct {
	Category    ErrorCategory
	Message     string
	Usage       string
	Remediation []string
	Err         error
}

// Error implements error
func (e *CLIError) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewArgumentError creates an Argument error
func NewArgumentError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Remediation: remediation}
}

// NewArgumentErrorWithUsage creates an Argument error that shows command usage
func NewArgumentErrorWithUsage(message, usage string, remediation ...string) *CLIError {
	return &CLIError{Category: Argument, Message: message, Usage: usage, Remediation: remediation}
}

// NewConfigError creates a Configuration error
func NewConfigError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Configuration, Message: message, Remediation: remediation}
}

// NewPrerequisiteError creates a Prerequisite error
func NewPrerequisiteError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Prerequisite, Message: message, Remediation: remediation}
}

// NewRuntimeError creates a Runtime error
func NewRuntimeError(message string, remediation ...string) *CLIError {
	return &CLIError{Category: Runtime, Message: message, Remediation: remediation}
}

// Wrap converts err into a CLIError of the given category.
// Returns nil if err is nil.
func Wrap(err error, category ErrorCategory, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{Category: category, Message: err.Error(), Remediation: remediation, Err: err}
}

// WrapWithMessage is like Wrap but prefixes the message with context.
func WrapWithMessage(err error, category ErrorCategory, message string, remediation ...string) *CLIError {
	if err == nil {
		return nil
	}
	return &CLIError{
		Category:    category,
		Message:     message + ": " + err.Error(),
		Remediation: remediation,
		Err:         err,
	}
}

// IsCLIError reports whether err is or wraps a CLIError
func IsCLIError(err error) bool {
	return AsCLIError(err) != nil
}

// AsCLIError returns the first CLIError in err's chain, or nil
func AsCLIError(err error) *CLIError {
	var cliErr *CLIError
	if stderrors.As(err, &cliErr) {
		return cliErr
	}
	return nil
}

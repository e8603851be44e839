// Package progress renders subscription workflow stages in the terminal,
// with a spinner on interactive terminals and plain lines otherwise.
package progress

import apperrors "github.com/ariel-frischer/beamscheck/internal/errors"

// StageStatus is where a workflow stage stands. The zero value means no
// event has been seen for the stage.
type StageStatus int

const (
	// StageInProgress indicates the stage is currently running
	StageInProgress StageStatus = iota + 1
	// StageCompleted indicates the stage finished successfully
	StageCompleted
	// StageFailed indicates the stage failed with an error
	StageFailed
)

// String returns the string representation of StageStatus
func (s StageStatus) String() string {
	switch s {
	case StageInProgress:
		return "in_progress"
	case StageCompleted:
		return "completed"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// StageInfo describes a workflow stage for display
type StageInfo struct {
	// Name is the stage name (e.g., "cleanup", "register", "start", "interest")
	Name string
	// Number is the current stage number (1-based index)
	Number int
	// TotalStages is the total number of stages in the workflow
	TotalStages int
	// Status is the current execution status
	Status StageStatus
}

// Validate checks that all StageInfo fields meet validation requirements
func (p StageInfo) Validate() error {
	if p.Name == "" {
		return apperrors.NewArgumentError("stage name cannot be empty")
	}
	if p.Number <= 0 {
		return apperrors.NewArgumentError("stage number must be > 0")
	}
	if p.TotalStages <= 0 {
		return apperrors.NewArgumentError("total stages must be > 0")
	}
	if p.Number > p.TotalStages {
		return apperrors.NewArgumentError("stage number cannot exceed total stages")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// ProgressSymbols defines the character set for visual indicators
type ProgressSymbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}

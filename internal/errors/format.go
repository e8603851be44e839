package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	headingColor = color.New(color.FgRed, color.Bold)
	usageColor   = color.New(color.FgCyan)
	fixColor     = color.New(color.FgYellow)
)

// FormatError renders err with colors (when the terminal supports them).
// Returns an empty string for nil.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, headingColor.Sprint, usageColor.Sprint, fixColor.Sprint)
}

// FormatErrorPlain renders err without any ANSI escape codes
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return format(err, fmt.Sprint, fmt.Sprint, fmt.Sprint)
}

type sprintFunc func(a ...interface{}) string

func format(err *CLIError, heading, usage, fix sprintFunc) string {
	var b strings.Builder

	b.WriteString(heading(err.Category.String() + ":"))
	b.WriteString(" ")
	b.WriteString(err.Message)
	b.WriteString("\n")

	if err.Usage != "" {
		b.WriteString("\n")
		b.WriteString(usage("Usage:"))
		b.WriteString(" ")
		b.WriteString(err.Usage)
		b.WriteString("\n")
	}

	if len(err.Remediation) > 0 {
		b.WriteString("\n")
		b.WriteString(fix("To fix this:"))
		b.WriteString("\n")
		for i, step := range err.Remediation {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, step)
		}
	}

	return b.String()
}

// PrintError writes the formatted error to stderr
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError writes the formatted error to w
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a plain error under the given category heading
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return FormatError(cliErr)
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

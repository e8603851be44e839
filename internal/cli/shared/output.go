package shared

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	apperrors "github.com/ariel-frischer/beamscheck/internal/errors"
)

// OutputFormat selects how report commands render their result
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// ParseOutputFormat validates an --output flag value
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputText, OutputJSON, OutputYAML:
		return f, nil
	case "":
		return OutputText, nil
	default:
		return "", apperrors.InvalidOutputFormat(s)
	}
}

// IsStructured reports whether the format is machine-readable
func (f OutputFormat) IsStructured() bool {
	return f == OutputJSON || f == OutputYAML
}

// WriteStructured renders v as indented JSON or YAML
func WriteStructured(w io.Writer, format OutputFormat, v any) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("format %q is not structured", format)
	}
}

// Color helpers for command output
var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cRed    = color.New(color.FgRed).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
)

// PrintSuccess writes a green checkmark line
func PrintSuccess(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", cGreen("✓"), msg)
}

// PrintFailure writes a red cross line
func PrintFailure(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", cRed("✗"), msg)
}

// PrintWarning writes a yellow warning line
func PrintWarning(w io.Writer, msg string) {
	fmt.Fprintf(w, "%s %s\n", cYellow("!"), msg)
}

// PrintField writes an aligned "Label: value" line
func PrintField(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", cBold(fmt.Sprintf("%-10s", label+":")), value)
}

// PrintHint writes a dimmed line
func PrintHint(w io.Writer, msg string) {
	fmt.Fprintln(w, cDim(msg))
}

// SupportSentence renders the page's support line with the verdict colored
func SupportSentence(supported bool) string {
	if supported {
		return fmt.Sprintf("Web push notifications are %s in this browser.", cGreen("supported"))
	}
	return fmt.Sprintf("Web push notifications are %s in this browser.", cRed("not supported"))
}

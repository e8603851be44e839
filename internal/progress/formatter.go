package progress

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// stageHeading renders "[N/Total] <Stage> stage", e.g. "[2/4] Register stage"
func stageHeading(stage StageInfo) string {
	return fmt.Sprintf("[%d/%d] %s stage", stage.Number, stage.TotalStages, titleCase(stage.Name))
}

// runningLine renders "[N/Total] Running <Stage> stage"
func runningLine(stage StageInfo) string {
	return fmt.Sprintf("[%d/%d] Running %s stage", stage.Number, stage.TotalStages, titleCase(stage.Name))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// mark colors a unicode status symbol when the terminal supports it.
// ASCII fallbacks ("[OK]", "[FAIL]") are never colored.
func mark(symbol string, attr color.Attribute, caps TerminalCapabilities) string {
	if !caps.SupportsColor || !caps.SupportsUnicode {
		return symbol
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(symbol)
}

func successMark(symbols ProgressSymbols, caps TerminalCapabilities) string {
	return mark(symbols.Checkmark, color.FgGreen, caps)
}

func failureMark(symbols ProgressSymbols, caps TerminalCapabilities) string {
	return mark(symbols.Failure, color.FgRed, caps)
}

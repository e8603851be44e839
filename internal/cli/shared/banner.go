package shared

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Logo is the block-style ASCII logo. Both lines are 40 display characters wide.
var Logo = []string{
	"█▄▄ █▀▀ ▄▀█ █▀▄▀█ █▀ █▀▀ █ █ █▀▀ █▀▀ █▄▀",
	"█▄█ ██▄ █▀█ █ ▀ █ ▄█ █▄▄ █▀█ ██▄ █▄▄ █ █",
}

// LogoDisplayWidth is the visual width of the logo (for centering).
const LogoDisplayWidth = 40

// Tagline is the project tagline.
const Tagline = "Pusher Beams Notification Tester"

// Box drawing characters
const (
	BoxTopLeft     = "╭"
	BoxTopRight    = "╮"
	BoxBottomLeft  = "╰"
	BoxBottomRight = "╯"
	BoxHorizontal  = "─"
	BoxVertical    = "│"
)

// GetTerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func GetTerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

// CenterText centers text within a given width.
func CenterText(text string, width int) string {
	textLen := len([]rune(text))
	if textLen >= width {
		return text
	}
	padding := (width - textLen) / 2
	return strings.Repeat(" ", padding) + text
}

// PrintBanner prints the colored logo and tagline, left-aligned.
func PrintBanner(out io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(out)
	for _, line := range Logo {
		fmt.Fprintln(out, cyan(line))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, dim(Tagline))
	fmt.Fprintln(out)
}

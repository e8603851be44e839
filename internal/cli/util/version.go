package util

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/beamscheck/internal/cli/shared"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for beamscheck",
	Example: `  # Show version info
  beamscheck version

  # Plain output (for scripts)
  beamscheck version --plain`,
	Run: func(cmd *cobra.Command, args []string) {
		plain, _ := cmd.Flags().GetBool("plain")
		if plain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout(), shared.GetTerminalWidth())
		}
	},
}

var sauceCmd = &cobra.Command{
	Use:   "sauce",
	Short: "Display the source URL",
	Long:  "Display the source URL for the beamscheck project",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(shared.SourceURL)
	},
}

func init() {
	versionCmd.GroupID = shared.GroupGettingStarted
	versionCmd.Flags().Bool("plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(out io.Writer) {
	fmt.Fprintf(out, "beamscheck %s\n", shared.Version)
	fmt.Fprintf(out, "commit: %s\n", shared.Commit)
	fmt.Fprintf(out, "built: %s\n", shared.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints a styled version output with logo and box
func printPrettyVersion(out io.Writer, termWidth int) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	// Fixed display width for the unicode block logo
	fmt.Fprintln(out)
	logoPadding := max((termWidth-shared.LogoDisplayWidth)/2, 0)
	for _, line := range shared.Logo {
		fmt.Fprintln(out, cyan(strings.Repeat(" ", logoPadding)+line))
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, dim(shared.CenterText(shared.Tagline, termWidth)))
	fmt.Fprintln(out)

	info := []struct {
		label string
		value string
	}{
		{"Version", shared.Version},
		{"Commit", truncateCommit(shared.Commit)},
		{"Built", shared.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}

	boxWidth := 44
	if termWidth < 50 {
		boxWidth = max(termWidth-6, 24)
	}
	contentWidth := boxWidth - 4

	pad := strings.Repeat(" ", max((termWidth-boxWidth)/2, 0))

	fmt.Fprintln(out, pad+shared.BoxTopLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxTopRight)
	fmt.Fprintln(out, pad+shared.BoxVertical+strings.Repeat(" ", boxWidth-2)+shared.BoxVertical)

	for _, item := range info {
		label := yellow(fmt.Sprintf("%12s", item.label))
		line := fmt.Sprintf("  %s    %s", label, white(item.value))
		// label width + spacing + value + margin
		lineLen := 12 + 4 + len(item.value) + 2
		if lineLen < contentWidth {
			line += strings.Repeat(" ", contentWidth-lineLen)
		}
		fmt.Fprintln(out, pad+shared.BoxVertical+" "+line+" "+shared.BoxVertical)
	}

	fmt.Fprintln(out, pad+shared.BoxVertical+strings.Repeat(" ", boxWidth-2)+shared.BoxVertical)
	fmt.Fprintln(out, pad+shared.BoxBottomLeft+strings.Repeat(shared.BoxHorizontal, boxWidth-2)+shared.BoxBottomRight)
	fmt.Fprintln(out)
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}

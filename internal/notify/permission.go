package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Permission mirrors the web Notification permission states
type Permission string

const (
	// PermissionDefault means the user has not decided (prompt dismissed or unavailable)
	PermissionDefault Permission = "default"
	// PermissionGranted means notifications may be shown
	PermissionGranted Permission = "granted"
	// PermissionDenied means the user refused notifications
	PermissionDenied Permission = "denied"
)

// ValidPermissions lists accepted permission values
var ValidPermissions = []Permission{PermissionDefault, PermissionGranted, PermissionDenied}

// ParsePermission converts a string into a Permission.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParsePermission(s string) (Permission, error) {
	p := Permission(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range ValidPermissions {
		if p == v {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid permission %q: must be one of default, granted, denied", s)
}

// Permissioner resolves whether notifications may be shown
type Permissioner interface {
	RequestPermission(ctx context.Context) Permission
}

// StaticPermission always answers with the same permission
type StaticPermission Permission

// RequestPermission returns the fixed permission
func (p StaticPermission) RequestPermission(_ context.Context) Permission {
	return Permission(p)
}

// PromptText is shown by TerminalPrompter
const PromptText = "Allow beamscheck to show notifications? [y/N] "

// TerminalPrompter asks the user on the terminal
type TerminalPrompter struct {
	in          io.Reader
	out         io.Writer
	interactive func() bool
}

// NewTerminalPrompter creates a prompter reading answers from in and writing the prompt to out.
// Interactivity is checked on os.Stdin.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		in:  in,
		out: out,
		interactive: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
	}
}

// NewTerminalPrompterWithCheck creates a prompter with an explicit interactivity check (for testing).
func NewTerminalPrompterWithCheck(in io.Reader, out io.Writer, interactive func() bool) *TerminalPrompter {
	return &TerminalPrompter{in: in, out: out, interactive: interactive}
}

// RequestPermission prompts once. "y"/"yes" grants, "n"/"no" denies, and
// anything else (including a non-interactive session) leaves the default.
//
// When ctx ends first the input is closed if it is an io.Closer, which ends
// the pending read. Other readers keep one goroutine blocked until input
// arrives or the process exits.
func (p *TerminalPrompter) RequestPermission(ctx context.Context) Permission {
	if p.interactive == nil || !p.interactive() {
		return PermissionDefault
	}

	fmt.Fprint(p.out, PromptText)

	answer := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(p.in).ReadString('\n')
		if err != nil && line == "" {
			answer <- ""
			return
		}
		answer <- line
	}()

	select {
	case <-ctx.Done():
		if c, ok := p.in.(io.Closer); ok {
			_ = c.Close()
		}
		return PermissionDefault
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return PermissionGranted
		case "n", "no":
			return PermissionDenied
		default:
			return PermissionDefault
		}
	}
}

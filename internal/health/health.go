// Package health implements the checks behind 'beamscheck doctor'.
package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ariel-frischer/beamscheck/internal/config"
	"github.com/ariel-frischer/beamscheck/internal/notify"
	"github.com/ariel-frischer/beamscheck/internal/osinfo"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult `json:"checks"`
	Passed bool          `json:"passed"`
}

// Options holds what the checks inspect
type Options struct {
	Sender      notify.Sender
	OS          osinfo.Source
	InstanceID  string
	StateDir    string
	ConfigFiles []string
}

// RunHealthChecks runs all health checks and returns a report
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 5),
		Passed: true,
	}

	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed {
			report.Passed = false
		}
	}

	add(CheckNotifications(opts.Sender))
	add(CheckInstanceID(opts.InstanceID))
	add(CheckStateDir(opts.StateDir))
	add(CheckConfigFiles(opts.ConfigFiles))
	add(CheckHostInfo(ctx, opts.OS))

	return report
}

// CheckNotifications checks that this machine can show desktop notifications
func CheckNotifications(sender notify.Sender) CheckResult {
	name := "Notifications"
	if sender == nil || !sender.VisualAvailable() {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: fmt.Sprintf("no notification tool available on %s", notify.Platform()),
		}
	}
	return CheckResult{Name: name, Passed: true, Message: "desktop notifications available"}
}

// CheckInstanceID checks that a Beams instance ID is configured
func CheckInstanceID(instanceID string) CheckResult {
	name := "Instance ID"
	if strings.TrimSpace(instanceID) == "" {
		return CheckResult{
			Name:    name,
			Passed:  false,
			Message: "instance_id is not set; subscribe will fail when starting the Beams client",
		}
	}
	return CheckResult{Name: name, Passed: true, Message: instanceID}
}

// CheckStateDir checks that the device state directory can be created and written
func CheckStateDir(dir string) CheckResult {
	name := "State directory"
	if dir == "" {
		return CheckResult{Name: name, Passed: false, Message: "state_dir is not set"}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("cannot create %s: %v", dir, err)}
	}

	probe, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("%s is not writable: %v", dir, err)}
	}
	probe.Close()
	os.Remove(probe.Name())

	return CheckResult{Name: name, Passed: true, Message: dir}
}

// CheckConfigFiles checks that every existing config file is valid JSON
func CheckConfigFiles(paths []string) CheckResult {
	name := "Config files"
	checked := 0
	for _, path := range paths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := config.ValidateJSONSyntax(path); err != nil {
			return CheckResult{Name: name, Passed: false, Message: err.Error()}
		}
		checked++
	}
	if checked == 0 {
		return CheckResult{Name: name, Passed: true, Message: "no config files, using defaults"}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%d file(s) valid", checked)}
}

// CheckHostInfo checks that the OS report served at /api/os can be collected
func CheckHostInfo(ctx context.Context, source osinfo.Source) CheckResult {
	name := "Host info"
	if source == nil {
		return CheckResult{Name: name, Passed: false, Message: "no host info source"}
	}
	report, err := source.Collect(ctx)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: err.Error()}
	}
	return CheckResult{
		Name:    name,
		Passed:  true,
		Message: fmt.Sprintf("%s %s", report.Platform, report.Release),
	}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var b strings.Builder
	for _, check := range report.Checks {
		mark := "✓"
		if !check.Passed {
			mark = "✗"
		}
		fmt.Fprintf(&b, "%s %s: %s\n", mark, check.Name, check.Message)
	}
	return b.String()
}

// DefaultConfigFiles returns the global and local config paths doctor inspects
func DefaultConfigFiles(local string) []string {
	files := make([]string, 0, 2)
	if global, err := config.GlobalConfigPath(); err == nil {
		files = append(files, global)
	}
	if local != "" {
		files = append(files, filepath.Clean(local))
	}
	return files
}

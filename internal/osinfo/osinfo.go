// Package osinfo reports the serving host's platform and kernel identifiers.
package osinfo

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Unknown replaces values the host does not provide
const Unknown = "unknown"

// Report is the host OS description served at /api/os
type Report struct {
	Platform string `json:"platform" yaml:"platform"`
	Release  string `json:"release" yaml:"release"`
	Version  string `json:"version" yaml:"version"`
}

// Source produces an OS report
type Source interface {
	Collect(ctx context.Context) (Report, error)
}

// Collector reads the report from the running host on every call
type Collector struct {
	goos    string
	release func(ctx context.Context) (string, error)
	version func(ctx context.Context) (string, error)
}

// NewCollector returns a collector for the current host
func NewCollector() *Collector {
	return &Collector{
		goos:    runtime.GOOS,
		release: kernelRelease,
		version: kernelVersion,
	}
}

// Collect reads the host identifiers. Empty values are reported as Unknown.
func (c *Collector) Collect(ctx context.Context) (Report, error) {
	release, err := c.release(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read kernel release: %w", err)
	}

	version, err := c.version(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("read kernel version: %w", err)
	}

	return Report{
		Platform: orUnknown(Platform(c.goos)),
		Release:  orUnknown(release),
		Version:  orUnknown(version),
	}, nil
}

// Platform maps a GOOS value to the platform identifier web tooling expects
func Platform(goos string) string {
	if goos == "windows" {
		return "win32"
	}
	return goos
}

// kernelRelease asks gopsutil first and falls back to the raw uname release
func kernelRelease(ctx context.Context) (string, error) {
	release, err := host.KernelVersionWithContext(ctx)
	if err == nil && strings.TrimSpace(release) != "" {
		return strings.TrimSpace(release), nil
	}
	return unameRelease()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return Unknown
	}
	return s
}

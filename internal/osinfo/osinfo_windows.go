//go:build windows

package osinfo

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sys/windows"
)

func unameRelease() (string, error) {
	v := windows.RtlGetVersion()
	return formatVersion(v.MajorVersion, v.MinorVersion, v.BuildNumber), nil
}

// kernelVersion returns the Windows product version (e.g. "10.0.22631 Build 22631")
func kernelVersion(ctx context.Context) (string, error) {
	_, _, version, err := host.PlatformInformationWithContext(ctx)
	if err != nil {
		return "", err
	}
	return version, nil
}

func formatVersion(major, minor, build uint32) string {
	return fmt.Sprintf("%d.%d.%d", major, minor, build)
}

//go:build unix

package osinfo

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

func uname() (unix.Utsname, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return u, fmt.Errorf("uname: %w", err)
	}
	return u, nil
}

func unameRelease() (string, error) {
	u, err := uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Release[:]), nil
}

// kernelVersion returns the uname version string (uname -v)
func kernelVersion(_ context.Context) (string, error) {
	u, err := uname()
	if err != nil {
		return "", err
	}
	return unix.ByteSliceToString(u.Version[:]), nil
}

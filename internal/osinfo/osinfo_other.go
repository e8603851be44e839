//go:build !unix && !windows

package osinfo

import "context"

func unameRelease() (string, error) {
	return Unknown, nil
}

func kernelVersion(_ context.Context) (string, error) {
	return Unknown, nil
}

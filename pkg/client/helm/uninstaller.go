package helm

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrReleaseNameRequired is returned when an uninstall is requested without a release name.
	ErrReleaseNameRequired = errors.New("helm: release name is required")
	// ErrBinaryNotFound is returned when the helm executable cannot be located.
	ErrBinaryNotFound = errors.New("helm: binary not found")
)

// Uninstaller removes a single release from a namespace.
type Uninstaller interface {
	// Uninstall blocks until the release is gone or the attempt failed.
	Uninstall(ctx context.Context, release, namespace string) error
}

// UninstallError reports that helm ran but did not remove the release.
type UninstallError struct {
	Release   string
	Namespace string
	// ExitCode is the helm process exit status, or -1 when no process was involved.
	ExitCode int
	Err      error
}

// Error implements the error interface.
func (e *UninstallError) Error() string {
	if e.ExitCode >= 0 {
		return fmt.Sprintf(
			"helm uninstall failed for release '%s' in namespace '%s' (exit code %d)",
			e.Release, e.Namespace, e.ExitCode,
		)
	}

	if e.Err != nil {
		return fmt.Sprintf(
			"helm uninstall failed for release '%s' in namespace '%s': %v",
			e.Release, e.Namespace, e.Err,
		)
	}

	return fmt.Sprintf("helm uninstall failed for release '%s' in namespace '%s'", e.Release, e.Namespace)
}

// Unwrap exposes the underlying cause for errors.Is/errors.As consumers.
func (e *UninstallError) Unwrap() error {
	return e.Err
}

package helm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// DefaultBinary is the executable name looked up on PATH when none is configured.
const DefaultBinary = "helm"

// CLIUninstaller runs `helm uninstall <release> -n <namespace>` as a child process.
// The child's output streams are attached to Stdout and Stderr, never captured.
type CLIUninstaller struct {
	Binary      string
	KubeConfig  string
	KubeContext string
	Stdout      io.Writer
	Stderr      io.Writer
}

var _ Uninstaller = (*CLIUninstaller)(nil)

// NewCLIUninstaller creates a CLI uninstaller for the given binary.
// An empty binary falls back to DefaultBinary; nil writers fall back to os.Stdout and os.Stderr.
func NewCLIUninstaller(binary string, stdout, stderr io.Writer) *CLIUninstaller {
	if binary == "" {
		binary = DefaultBinary
	}

	if stdout == nil {
		stdout = os.Stdout
	}

	if stderr == nil {
		stderr = os.Stderr
	}

	return &CLIUninstaller{
		Binary: binary,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Args returns the argument list passed to the helm binary.
// Connection flags are appended only when set.
func (u *CLIUninstaller) Args(release, namespace string) []string {
	args := []string{"uninstall", release, "-n", namespace}

	if u.KubeConfig != "" {
		args = append(args, "--kubeconfig", u.KubeConfig)
	}

	if u.KubeContext != "" {
		args = append(args, "--kube-context", u.KubeContext)
	}

	return args
}

// CommandLine renders the command that Uninstall executes, for display.
func (u *CLIUninstaller) CommandLine(release, namespace string) string {
	return u.Binary + " " + strings.Join(u.Args(release, namespace), " ")
}

// Uninstall runs helm and waits for it to exit. A missing binary or spawn failure is
// returned wrapped; a non-zero exit is returned as *UninstallError.
func (u *CLIUninstaller) Uninstall(ctx context.Context, release, namespace string) error {
	if release == "" {
		return ErrReleaseNameRequired
	}

	cmd := exec.CommandContext(ctx, u.Binary, u.Args(release, namespace)...) //nolint:gosec // helm is a trusted tool
	cmd.Stdout = u.Stdout
	cmd.Stderr = u.Stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &UninstallError{
			Release:   release,
			Namespace: namespace,
			ExitCode:  exitErr.ExitCode(),
			Err:       err,
		}
	}

	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q: %w", ErrBinaryNotFound, u.Binary, err)
	}

	return fmt.Errorf("failed to run %s uninstall: %w", u.Binary, err)
}

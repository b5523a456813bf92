// Package confirm provides the confirmation prompt shown before releases are uninstalled.
package confirm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/devantler-tech/helm-cleaner/pkg/utils/notify"
	"golang.org/x/term"
)

// UninstallPreview describes what an accepted confirmation will remove.
type UninstallPreview struct {
	Namespace       string
	Releases        []string
	DeleteNamespace bool
}

// Test override variables with mutexes for thread safety.
var (
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	stdinReaderOverride io.Reader

	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerMu sync.RWMutex
	//nolint:gochecknoglobals // dependency injection for tests
	ttyCheckerOverride func() bool
)

// SetStdinReaderForTests overrides the stdin reader for testing.
// Returns a restore function that should be called to reset the override.
func SetStdinReaderForTests(reader io.Reader) func() {
	stdinReaderMu.Lock()

	previous := stdinReaderOverride
	stdinReaderOverride = reader

	stdinReaderMu.Unlock()

	return func() {
		stdinReaderMu.Lock()

		stdinReaderOverride = previous

		stdinReaderMu.Unlock()
	}
}

// SetTTYCheckerForTests overrides the TTY checker for testing.
// Returns a restore function that should be called to reset the override.
func SetTTYCheckerForTests(checker func() bool) func() {
	ttyCheckerMu.Lock()

	previous := ttyCheckerOverride
	ttyCheckerOverride = checker

	ttyCheckerMu.Unlock()

	return func() {
		ttyCheckerMu.Lock()

		ttyCheckerOverride = previous

		ttyCheckerMu.Unlock()
	}
}

func getStdinReader() io.Reader {
	stdinReaderMu.RLock()
	defer stdinReaderMu.RUnlock()

	if stdinReaderOverride != nil {
		return stdinReaderOverride
	}

	return os.Stdin
}

// IsTTY returns true if stdin is connected to a terminal.
func IsTTY() bool {
	ttyCheckerMu.RLock()

	override := ttyCheckerOverride

	ttyCheckerMu.RUnlock()

	if override != nil {
		return override()
	}

	return term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fd fits in int on supported platforms
}

// ShouldSkipPrompt returns true if the confirmation prompt should be skipped.
// Only --force skips it; piped input is still read so `echo y | helm-cleaner ...` works.
func ShouldSkipPrompt(force bool) bool {
	return force
}

// ShowUninstallPreview prints the impact summary for the selected releases.
func ShowUninstallPreview(writer io.Writer, preview UninstallPreview) {
	if len(preview.Releases) == 1 {
		notify.Infof(
			writer,
			"About to uninstall release '%s' in namespace '%s'.",
			preview.Releases[0],
			preview.Namespace,
		)
	} else {
		notify.Infof(
			writer,
			"About to uninstall all releases (%s) in namespace '%s'.",
			strings.Join(preview.Releases, ", "),
			preview.Namespace,
		)
	}

	if preview.DeleteNamespace {
		notify.Warningf(writer, "Namespace '%s' will also be deleted.", preview.Namespace)
	}
}

// PromptForConfirmation prints "Proceed? [y/N]" and reads one line from stdin.
// Returns true only if the line is "y" or "Y" after trimming whitespace.
// A read error other than EOF is returned; EOF counts as whatever was typed before it.
func PromptForConfirmation(writer io.Writer) (bool, error) {
	notify.Warningf(writer, "Proceed? [y/N]")

	reader := bufio.NewReader(getStdinReader())

	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	return strings.EqualFold(strings.TrimSpace(input), "y"), nil
}

// Confirmer asks whether the previewed uninstall may proceed.
type Confirmer interface {
	Confirm(preview UninstallPreview) (bool, error)
}

// Prompt confirms uninstalls interactively, writing to Writer.
type Prompt struct {
	Writer io.Writer
}

var _ Confirmer = Prompt{}

// Confirm shows the preview and asks for confirmation.
func (p Prompt) Confirm(preview UninstallPreview) (bool, error) {
	ShowUninstallPreview(p.Writer, preview)

	return PromptForConfirmation(p.Writer)
}

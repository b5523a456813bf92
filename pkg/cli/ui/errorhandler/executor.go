// Package errorhandler runs cobra commands and turns what cobra writes to stderr into errors.
package errorhandler

import (
	"bytes"
	"context"
	"strings"

	"github.com/spf13/cobra"
)

// Normalizer cleans up the text cobra wrote to its error stream.
type Normalizer interface {
	Normalize(raw string) string
}

// Executor runs a command with its error stream captured.
type Executor struct {
	normalizer Normalizer
}

// NewExecutor creates an Executor using DefaultNormalizer.
func NewExecutor() *Executor {
	return &Executor{normalizer: DefaultNormalizer{}}
}

// NewExecutorWithNormalizer creates an Executor using the given normalizer.
func NewExecutorWithNormalizer(normalizer Normalizer) *Executor {
	if normalizer == nil {
		normalizer = DefaultNormalizer{}
	}

	return &Executor{normalizer: normalizer}
}

// Execute runs cmd with a background context.
func (e *Executor) Execute(cmd *cobra.Command) error {
	return e.ExecuteContext(context.Background(), cmd)
}

// ExecuteContext runs cmd with ctx. On failure it returns a *CommandError carrying the
// normalised stderr text and the original error.
func (e *Executor) ExecuteContext(ctx context.Context, cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}

	var captured bytes.Buffer

	previous := cmd.ErrOrStderr()

	cmd.SetErr(&captured)
	defer cmd.SetErr(previous)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}

	return &CommandError{
		message: e.normalizer.Normalize(captured.String()),
		cause:   err,
	}
}

// CommandError is a failed command run.
type CommandError struct {
	message string
	cause   error
}

// Message returns the normalised stderr text, which may be empty.
func (e *CommandError) Message() string {
	if e == nil {
		return ""
	}

	return e.message
}

func (e *CommandError) Error() string {
	switch {
	case e == nil:
		return ""
	case e.cause == nil:
		return e.message
	case e.message == "", strings.Contains(e.message, e.cause.Error()):
		if e.message == "" {
			return e.cause.Error()
		}

		return e.message
	default:
		return e.message + ": " + e.cause.Error()
	}
}

// Unwrap returns the original error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.cause
}

// DefaultNormalizer strips cobra's "Error: " prefix and its "Run '... --help' for usage."
// hint, trimming surrounding blank lines.
type DefaultNormalizer struct{}

// Normalize implements Normalizer.
func (DefaultNormalizer) Normalize(raw string) string {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Run '") && strings.HasSuffix(trimmed, "for usage.") {
			continue
		}

		kept = append(kept, strings.TrimPrefix(line, "Error: "))
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

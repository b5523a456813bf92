// Package envvar expands environment references in configured values.
package envvar

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// pattern matches ${VAR_NAME} placeholders.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Expand replaces ${VAR_NAME} placeholders with their environment values. Unset
// variables expand to the empty string; bare $VAR is left untouched.
func Expand(value string) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// ExpandPath expands placeholders like Expand and then a leading "~" to the user's home
// directory. The value is returned unchanged when the home directory is unknown.
func ExpandPath(value string) string {
	expanded := Expand(value)

	if expanded != "~" && !strings.HasPrefix(expanded, "~/") {
		return expanded
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return expanded
	}

	return filepath.Join(home, strings.TrimPrefix(expanded, "~"))
}

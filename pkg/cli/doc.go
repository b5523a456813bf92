// Package cli holds helm-cleaner's command-line surface.
//
//   - cli/cmd: cobra commands
//   - cli/ui: terminal interaction (confirm, selector, errorhandler)
package cli

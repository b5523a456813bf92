// Package cmd provides the command-line interface for helm-cleaner.
//
// The root command carries the connection flags shared by every subcommand:
//   - uninstall: remove one or all Helm releases from a namespace
//   - list: print the Helm releases stored in a namespace
//   - completions: generate a shell completion script
package cmd

// Package cleaner orchestrates removal of Helm releases from a namespace.
//
// A run lists the releases stored in the namespace, resolves which of them to remove
// (from a supplied name or an interactive selection), asks for confirmation unless
// forced, uninstalls them one at a time and finally deletes the namespace if requested.
// The first failure ends the run; nothing already removed is restored.
package cleaner

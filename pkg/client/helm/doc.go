// Package helm removes Helm releases from a cluster.
//
// Two [Uninstaller] implementations are provided: [CLIUninstaller] shells out to the
// helm binary found on PATH, and [SDKUninstaller] drives the Helm v4 action API in-process.
package helm

// Package client contains clients for the external tools helm-cleaner drives.
//
//   - helm: release removal through the helm binary or the Helm SDK
package client

// Package svc contains the service layer that sits between the commands and the clients.
//
// Subpackages:
//   - cleaner: the list, select, confirm, uninstall and namespace-delete workflow
package svc

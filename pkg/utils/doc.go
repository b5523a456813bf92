// Package utils groups small helpers shared across helm-cleaner:
//
//   - notify: symbol-prefixed, coloured operator messages
//   - envvar: ${VAR} and ~ expansion for configured paths
package utils

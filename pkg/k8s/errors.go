package k8s

import "errors"

// ErrNamespaceRequired is returned when an operation is called with an empty namespace.
var ErrNamespaceRequired = errors.New("namespace is required")

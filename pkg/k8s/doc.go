// Package k8s provides Kubernetes client configuration and the cluster operations
// helm-cleaner performs.
//
// Key features:
//   - Clientset creation from a kubeconfig and optional context (NewClientset)
//   - Release discovery from Helm storage Secrets (ListReleases)
//   - Namespace removal (DeleteNamespace)
//   - Label value extraction (UniqueLabelValues)
package k8s

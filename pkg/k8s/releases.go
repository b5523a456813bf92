package k8s

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/labels"
	"k8s.io/client-go/kubernetes"
)

const (
	// OwnerLabel marks Secrets written by Helm's storage driver.
	OwnerLabel = "owner"
	// OwnerHelm is the OwnerLabel value Helm sets on its release Secrets.
	OwnerHelm = "helm"
	// ReleaseNameLabel carries the release name on each Helm storage Secret.
	ReleaseNameLabel = "name"
)

// ReleaseSelector returns the label selector matching Helm storage Secrets.
func ReleaseSelector() string {
	return labels.SelectorFromSet(labels.Set{OwnerLabel: OwnerHelm}).String()
}

// ListReleases returns the names of the Helm releases stored in namespace, deduplicated
// and sorted. Helm keeps one Secret per revision, so duplicates are expected.
func ListReleases(ctx context.Context, clientset kubernetes.Interface, namespace string) ([]string, error) {
	if namespace == "" {
		return nil, ErrNamespaceRequired
	}

	secrets, err := clientset.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{
		LabelSelector: ReleaseSelector(),
	})
	if err != nil {
		return nil, fmt.Errorf("list helm release secrets in namespace %q: %w", namespace, err)
	}

	return UniqueLabelValues(secrets.Items, ReleaseNameLabel, func(secret corev1.Secret) map[string]string {
		return secret.Labels
	}), nil
}

package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// DeleteNamespace requests deletion of the namespace. It returns once the API server
// accepted the request; it does not wait for the namespace to finish terminating.
func DeleteNamespace(ctx context.Context, clientset kubernetes.Interface, name string) error {
	if name == "" {
		return ErrNamespaceRequired
	}

	err := clientset.CoreV1().Namespaces().Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return fmt.Errorf("delete namespace %q: %w", name, err)
	}

	return nil
}

package di

import (
	"fmt"

	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/selector"
	"github.com/devantler-tech/helm-cleaner/pkg/client/helm"
	"github.com/devantler-tech/helm-cleaner/pkg/config"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/client-go/kubernetes"
)

// Dependency resolvers.

// resolve retrieves T from the injector, naming the dependency in the error.
func resolve[T any](injector Injector, name string) (T, error) {
	value, err := do.Invoke[T](injector)
	if err != nil {
		var zero T

		return zero, fmt.Errorf("resolve %s dependency: %w", name, err)
	}

	return value, nil
}

// ResolveConfig retrieves the resolved configuration.
func ResolveConfig(injector Injector) (*config.Config, error) {
	return resolve[*config.Config](injector, "config")
}

// ResolveIOStreams retrieves the command's IO streams.
func ResolveIOStreams(injector Injector) (genericiooptions.IOStreams, error) {
	return resolve[genericiooptions.IOStreams](injector, "io streams")
}

// ResolveLogger retrieves the diagnostic logger.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	return resolve[*logrus.Logger](injector, "logger")
}

// ResolveClientset retrieves the cluster client, constructing it on first use.
func ResolveClientset(injector Injector) (kubernetes.Interface, error) {
	return resolve[kubernetes.Interface](injector, "kubernetes client")
}

// ResolveUninstaller retrieves the configured Helm uninstaller.
func ResolveUninstaller(injector Injector) (helm.Uninstaller, error) {
	return resolve[helm.Uninstaller](injector, "uninstaller")
}

// ResolveSelector retrieves the release selector.
func ResolveSelector(injector Injector) (selector.Selector, error) {
	return resolve[selector.Selector](injector, "selector")
}

// ResolveConfirmer retrieves the confirmation prompt.
func ResolveConfirmer(injector Injector) (confirm.Confirmer, error) {
	return resolve[confirm.Confirmer](injector, "confirmer")
}

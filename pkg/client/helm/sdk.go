package helm

import (
	"context"
	"fmt"
	"os"
	"time"

	helmv4action "helm.sh/helm/v4/pkg/action"
	helmv4cli "helm.sh/helm/v4/pkg/cli"
)

// SDKUninstaller removes releases through the Helm v4 action API, using the same
// storage driver as the helm CLI (HELM_DRIVER, Secrets by default).
type SDKUninstaller struct {
	kubeConfig  string
	kubeContext string
	timeout     time.Duration
	debugLog    func(string, ...any)
}

var _ Uninstaller = (*SDKUninstaller)(nil)

// NewSDKUninstaller creates an in-process uninstaller. A zero timeout keeps Helm's default.
func NewSDKUninstaller(
	kubeConfig, kubeContext string,
	timeout time.Duration,
	debug func(string, ...any),
) *SDKUninstaller {
	debugLog := debug
	if debugLog == nil {
		debugLog = func(string, ...any) {}
	}

	return &SDKUninstaller{
		kubeConfig:  kubeConfig,
		kubeContext: kubeContext,
		timeout:     timeout,
		debugLog:    debugLog,
	}
}

// Uninstall removes the release and its history. Failures are returned as *UninstallError
// with ExitCode -1.
func (u *SDKUninstaller) Uninstall(ctx context.Context, release, namespace string) error {
	if release == "" {
		return ErrReleaseNameRequired
	}

	ctxErr := ctx.Err()
	if ctxErr != nil {
		return fmt.Errorf("uninstall release context cancelled: %w", ctxErr)
	}

	actionConfig, err := u.actionConfig(namespace)
	if err != nil {
		return err
	}

	client := helmv4action.NewUninstall(actionConfig)
	client.KeepHistory = false

	if u.timeout > 0 {
		client.Timeout = u.timeout
	}

	u.debugLog("uninstalling release %s from namespace %s", release, namespace)

	_, runErr := client.Run(release)
	if runErr != nil {
		return &UninstallError{
			Release:   release,
			Namespace: namespace,
			ExitCode:  -1,
			Err:       runErr,
		}
	}

	return nil
}

func (u *SDKUninstaller) actionConfig(namespace string) (*helmv4action.Configuration, error) {
	settings := helmv4cli.New()
	if u.kubeConfig != "" {
		settings.KubeConfig = u.kubeConfig
	}

	if u.kubeContext != "" {
		settings.KubeContext = u.kubeContext
	}

	settings.SetNamespace(namespace)

	driver := os.Getenv("HELM_DRIVER")
	u.debugLog("initialising helm action config (namespace=%s, driver=%q)", namespace, driver)

	actionConfig := new(helmv4action.Configuration)

	initErr := actionConfig.Init(settings.RESTClientGetter(), namespace, driver)
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize helm v4 action config: %w", initErr)
	}

	return actionConfig, nil
}

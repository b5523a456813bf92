package di

import (
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/selector"
	"github.com/devantler-tech/helm-cleaner/pkg/client/helm"
	"github.com/devantler-tech/helm-cleaner/pkg/config"
	"github.com/devantler-tech/helm-cleaner/pkg/k8s"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"k8s.io/client-go/kubernetes"
)

// Dependency providers.

// NewRuntime constructs the runtime used by the root command. It registers the default
// logger, cluster client, uninstaller, selector and confirmer; extra modules are applied
// afterwards and may override any of them with do.Override.
//
// Every default provider depends on *config.Config and genericiooptions.IOStreams,
// supplied per command through ProvideConfig and ProvideIOStreams.
func NewRuntime(extra ...Module) *Runtime {
	return New(append([]Module{
		provideLogger,
		provideClientset,
		provideUninstaller,
		provideSelector,
		provideConfirmer,
	}, extra...)...)
}

// ProvideConfig returns a module registering the resolved configuration.
func ProvideConfig(cfg *config.Config) Module {
	return func(i Injector) error {
		do.ProvideValue(i, cfg)

		return nil
	}
}

// ProvideIOStreams returns a module registering the command's IO streams.
func ProvideIOStreams(streams genericiooptions.IOStreams) Module {
	return func(i Injector) error {
		do.ProvideValue(i, streams)

		return nil
	}
}

func provideLogger(i Injector) error {
	do.Provide(i, func(i Injector) (*logrus.Logger, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		streams, err := ResolveIOStreams(i)
		if err != nil {
			return nil, err
		}

		logger := logrus.New()
		logger.SetOutput(streams.ErrOut)
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
			DisableQuote:     true,
		})
		logger.SetLevel(logrus.WarnLevel)

		if cfg.Verbose {
			logger.SetLevel(logrus.DebugLevel)
		}

		return logger, nil
	})

	return nil
}

// provideClientset registers the single cluster client. It is built on first use, so
// commands that never talk to the cluster never load a kubeconfig.
func provideClientset(i Injector) error {
	do.Provide(i, func(i Injector) (kubernetes.Interface, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		clientset, err := k8s.NewClientset(cfg.Kubeconfig, cfg.Context)
		if err != nil {
			return nil, err
		}

		return clientset, nil
	})

	return nil
}

func provideUninstaller(i Injector) error {
	do.Provide(i, func(i Injector) (helm.Uninstaller, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		if cfg.Driver == config.DriverSDK {
			return helm.NewSDKUninstaller(cfg.Kubeconfig, cfg.Context, cfg.Timeout, logger.Debugf), nil
		}

		streams, err := ResolveIOStreams(i)
		if err != nil {
			return nil, err
		}

		uninstaller := helm.NewCLIUninstaller(cfg.HelmBinary, streams.Out, streams.ErrOut)
		uninstaller.KubeConfig = cfg.Kubeconfig
		uninstaller.KubeContext = cfg.Context

		return uninstaller, nil
	})

	return nil
}

func provideSelector(i Injector) error {
	do.Provide(i, func(Injector) (selector.Selector, error) {
		return selector.NewHuhSelector(), nil
	})

	return nil
}

func provideConfirmer(i Injector) error {
	do.Provide(i, func(i Injector) (confirm.Confirmer, error) {
		streams, err := ResolveIOStreams(i)
		if err != nil {
			return nil, err
		}

		return confirm.Prompt{Writer: streams.Out}, nil
	})

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/errorhandler"
	"github.com/devantler-tech/helm-cleaner/pkg/config"
	"github.com/devantler-tech/helm-cleaner/pkg/di"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

const configFlag = "config"

// NewRootCmd creates the root command wired to the process's standard streams.
func NewRootCmd(version, commit, date string) *cobra.Command {
	streams := genericiooptions.IOStreams{In: os.Stdin, Out: os.Stdout, ErrOut: os.Stderr}

	return NewRootCmdWithRuntime(di.NewRuntime(), streams, version, commit, date)
}

// NewRootCmdWithRuntime creates the root command using the given runtime and streams.
// Cobra's own error stream is left alone so Execute can capture it.
func NewRootCmdWithRuntime(
	runtime *di.Runtime,
	streams genericiooptions.IOStreams,
	version, commit, date string,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "helm-cleaner",
		Short: "Remove Helm releases from a Kubernetes namespace",
		Long: "helm-cleaner lists the Helm releases stored in a namespace, lets you pick one " +
			"or all of them, uninstalls them and optionally deletes the namespace afterwards.",
		RunE:         handleRootRunE,
		SilenceUsage: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)
	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.SetIn(streams.In)
	cmd.SetOut(streams.Out)

	cmd.PersistentFlags().String(config.KeyKubeconfig, "", "Path to the kubeconfig file")
	cmd.PersistentFlags().String(config.KeyContext, "", "Kubeconfig context to use")
	cmd.PersistentFlags().String(configFlag, "", "Path to a helm-cleaner config file")
	cmd.PersistentFlags().BoolP(config.KeyVerbose, "v", false, "Print debug logs to stderr")

	cmd.AddCommand(NewUninstallCmd(runtime, streams))
	cmd.AddCommand(NewListCmd(runtime, streams))
	cmd.AddCommand(NewCompletionsCmd())

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	executor := errorhandler.NewExecutor()

	err := executor.ExecuteContext(ctx, cmd)
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help only fails when writing to stdout fails.
	_ = cmd.Help()

	return nil
}

// commandModule loads configuration for the invoked command and provides it together
// with the streams.
func commandModule(streams genericiooptions.IOStreams) di.ModuleFactory {
	return func(cmd *cobra.Command) (di.Module, error) {
		configFile, err := cmd.Flags().GetString(configFlag)
		if err != nil {
			return nil, fmt.Errorf("read --%s flag: %w", configFlag, err)
		}

		viperInstance := config.InitializeViper()

		err = config.BindFlags(viperInstance, cmd.Flags())
		if err != nil {
			return nil, err
		}

		cfg, err := config.Load(viperInstance, configFile)
		if err != nil {
			return nil, err
		}

		return func(injector di.Injector) error {
			err := di.ProvideConfig(cfg)(injector)
			if err != nil {
				return err
			}

			return di.ProvideIOStreams(streams)(injector)
		}, nil
	}
}

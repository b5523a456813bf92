package cmd

import (
	"github.com/devantler-tech/helm-cleaner/pkg/config"
	"github.com/devantler-tech/helm-cleaner/pkg/di"
	"github.com/devantler-tech/helm-cleaner/pkg/svc/cleaner"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

const (
	namespaceFlag       = "namespace"
	releaseFlag         = "release"
	deleteNamespaceFlag = "delete-namespace"
	forceFlag           = "force"
)

// NewUninstallCmd creates the uninstall command.
func NewUninstallCmd(runtime *di.Runtime, streams genericiooptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Uninstall Helm releases from a namespace",
		Long: `Uninstall one or all Helm releases from a namespace.

Without --release an interactive menu lists the releases found in the namespace, plus an
entry selecting all of them. The selection is confirmed before anything is removed unless
--force is set. Releases are uninstalled one at a time and the first failure stops the run.`,
		Example: `  helm-cleaner uninstall -n demo
  helm-cleaner uninstall -n demo --release app-a --force
  helm-cleaner uninstall -n demo --delete-namespace`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().StringP(namespaceFlag, "n", "", "Namespace holding the releases (required)")
	cmd.Flags().StringP(releaseFlag, "r", "", "Release to uninstall; prompts when omitted")
	cmd.Flags().Bool(deleteNamespaceFlag, false, "Delete the namespace after all releases are uninstalled")
	cmd.Flags().BoolP(forceFlag, "f", false, "Skip the confirmation prompt")
	cmd.Flags().String(config.KeyHelmBinary, config.DefaultHelmBinary, "Helm executable used by the cli driver")
	cmd.Flags().String(config.KeyDriver, string(config.DriverCLI), "Uninstall driver: cli or sdk")
	cmd.Flags().Duration(config.KeyTimeout, 0, "Per-release timeout for the sdk driver (0 uses Helm's default)")

	_ = cmd.MarkFlagRequired(namespaceFlag)
	_ = cmd.RegisterFlagCompletionFunc(releaseFlag, completeReleases(runtime, streams))
	_ = cmd.RegisterFlagCompletionFunc(config.KeyDriver, cobra.FixedCompletions(
		[]string{string(config.DriverCLI), string(config.DriverSDK)},
		cobra.ShellCompDirectiveNoFileComp,
	))

	cmd.RunE = di.RunEWithRuntime(runtime, handleUninstallRunE, commandModule(streams))

	return cmd
}

func handleUninstallRunE(cmd *cobra.Command, injector di.Injector) error {
	opts, err := uninstallOptions(cmd)
	if err != nil {
		return err
	}

	clientset, err := di.ResolveClientset(injector)
	if err != nil {
		return err
	}

	uninstaller, err := di.ResolveUninstaller(injector)
	if err != nil {
		return err
	}

	picker, err := di.ResolveSelector(injector)
	if err != nil {
		return err
	}

	confirmer, err := di.ResolveConfirmer(injector)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	streams, err := di.ResolveIOStreams(injector)
	if err != nil {
		return err
	}

	runner, err := cleaner.New(cleaner.Deps{
		Clientset:   clientset,
		Selector:    picker,
		Confirmer:   confirmer,
		Uninstaller: uninstaller,
		Out:         streams.Out,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	outcome, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	logger.Debugf("uninstall finished: %s", outcome)

	return nil
}

func uninstallOptions(cmd *cobra.Command) (cleaner.Options, error) {
	flags := cmd.Flags()

	var (
		opts cleaner.Options
		err  error
	)

	opts.Namespace, err = flags.GetString(namespaceFlag)
	if err != nil {
		return opts, err
	}

	opts.Release, err = flags.GetString(releaseFlag)
	if err != nil {
		return opts, err
	}

	opts.DeleteNamespace, err = flags.GetBool(deleteNamespaceFlag)
	if err != nil {
		return opts, err
	}

	opts.Force, err = flags.GetBool(forceFlag)
	if err != nil {
		return opts, err
	}

	return opts, nil
}

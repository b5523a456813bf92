package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/devantler-tech/helm-cleaner/pkg/di"
	"github.com/devantler-tech/helm-cleaner/pkg/k8s"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
)

// ErrUnsupportedShell is returned for a shell cobra cannot generate completions for.
var ErrUnsupportedShell = errors.New("unsupported shell")

var supportedShells = []string{"bash", "zsh", "fish", "powershell"}

// NewCompletionsCmd creates the completions command. It never talks to the cluster.
func NewCompletionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "completions [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a shell completion script and print it to stdout. Bash is used when
no shell is given.

  source <(helm-cleaner completions)
  helm-cleaner completions zsh > "${fpath[1]}/_helm-cleaner"`,
		Args:                  cobra.MaximumNArgs(1),
		ValidArgs:             supportedShells,
		DisableFlagsInUseLine: true,
		SilenceUsage:          true,
		RunE:                  handleCompletionsRunE,
	}
}

func handleCompletionsRunE(cmd *cobra.Command, args []string) error {
	shell := "bash"
	if len(args) == 1 {
		shell = strings.ToLower(args[0])
	}

	root := cmd.Root()
	out := cmd.OutOrStdout()

	var err error

	switch shell {
	case "bash":
		err = root.GenBashCompletionV2(out, true)
	case "zsh":
		err = root.GenZshCompletion(out)
	case "fish":
		err = root.GenFishCompletion(out, true)
	case "powershell":
		err = root.GenPowerShellCompletionWithDesc(out)
	default:
		return fmt.Errorf("%w %q (expected one of %s)", ErrUnsupportedShell, shell, strings.Join(supportedShells, ", "))
	}

	if err != nil {
		return fmt.Errorf("generate %s completion: %w", shell, err)
	}

	return nil
}

// completeReleases suggests the releases stored in the namespace given by --namespace.
// Any failure yields no suggestions.
func completeReleases(runtime *di.Runtime, streams genericiooptions.IOStreams) cobra.CompletionFunc {
	return func(cmd *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		namespace, _ := cmd.Flags().GetString(namespaceFlag)
		if namespace == "" {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		module, err := commandModule(streams)(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		var suggestions []string

		_ = runtime.Invoke(func(injector di.Injector) error {
			clientset, err := di.ResolveClientset(injector)
			if err != nil {
				return err
			}

			releases, err := k8s.ListReleases(ctx, clientset, namespace)
			if err != nil {
				return err
			}

			for _, release := range releases {
				if strings.HasPrefix(release, toComplete) {
					suggestions = append(suggestions, release)
				}
			}

			return nil
		}, module)

		return suggestions, cobra.ShellCompDirectiveNoFileComp
	}
}

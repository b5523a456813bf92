package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/helm-cleaner/pkg/di"
	"github.com/devantler-tech/helm-cleaner/pkg/k8s"
	"github.com/devantler-tech/helm-cleaner/pkg/utils/notify"
	"github.com/spf13/cobra"
	"k8s.io/cli-runtime/pkg/genericiooptions"
	"sigs.k8s.io/yaml"
)

const outputFlag = "output"

// Output formats accepted by list.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ErrUnsupportedOutput is returned for an unknown --output value.
var ErrUnsupportedOutput = errors.New("unsupported output format")

// ReleaseList is the structured form printed by list.
type ReleaseList struct {
	Namespace string   `json:"namespace"`
	Releases  []string `json:"releases"`
}

// NewListCmd creates the list command.
func NewListCmd(runtime *di.Runtime, streams genericiooptions.IOStreams) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Aliases:      []string{"ls"},
		Short:        "List the Helm releases in a namespace",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.Flags().StringP(namespaceFlag, "n", "", "Namespace holding the releases (required)")
	cmd.Flags().StringP(outputFlag, "o", OutputText, "Output format: text, json or yaml")

	_ = cmd.MarkFlagRequired(namespaceFlag)
	_ = cmd.RegisterFlagCompletionFunc(outputFlag, cobra.FixedCompletions(
		[]string{OutputText, OutputJSON, OutputYAML},
		cobra.ShellCompDirectiveNoFileComp,
	))

	cmd.RunE = di.RunEWithRuntime(runtime, handleListRunE, commandModule(streams))

	return cmd
}

func handleListRunE(cmd *cobra.Command, injector di.Injector) error {
	namespace, err := cmd.Flags().GetString(namespaceFlag)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString(outputFlag)
	if err != nil {
		return err
	}

	output = strings.ToLower(output)
	if output != OutputText && output != OutputJSON && output != OutputYAML {
		return fmt.Errorf("%w %q (expected %s, %s or %s)", ErrUnsupportedOutput, output, OutputText, OutputJSON, OutputYAML)
	}

	clientset, err := di.ResolveClientset(injector)
	if err != nil {
		return err
	}

	streams, err := di.ResolveIOStreams(injector)
	if err != nil {
		return err
	}

	releases, err := k8s.ListReleases(cmd.Context(), clientset, namespace)
	if err != nil {
		return err
	}

	return printReleases(streams.Out, output, ReleaseList{Namespace: namespace, Releases: releases})
}

func printReleases(out io.Writer, output string, list ReleaseList) error {
	switch output {
	case OutputJSON:
		data, err := json.MarshalIndent(list, "", "  ")
		if err != nil {
			return fmt.Errorf("encode releases as json: %w", err)
		}

		_, err = fmt.Fprintln(out, string(data))

		return err
	case OutputYAML:
		data, err := yaml.Marshal(list)
		if err != nil {
			return fmt.Errorf("encode releases as yaml: %w", err)
		}

		_, err = out.Write(data)

		return err
	default:
		if len(list.Releases) == 0 {
			notify.Infof(out, "No Helm releases found in namespace '%s'", list.Namespace)

			return nil
		}

		for _, release := range list.Releases {
			_, err := fmt.Fprintln(out, release)
			if err != nil {
				return err
			}
		}

		return nil
	}
}

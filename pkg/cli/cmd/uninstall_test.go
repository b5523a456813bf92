package cmd_test

import (
	"context"
	"strings"
	"testing"

	"github.com/devantler-tech/helm-cleaner/pkg/cli/cmd"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/selector"
	"github.com/devantler-tech/helm-cleaner/pkg/client/helm"
	"github.com/devantler-tech/helm-cleaner/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func namespaceDeleteRequested(clientset *fake.Clientset) bool {
	for _, action := range clientset.Actions() {
		if action.GetVerb() == "delete" && action.GetResource().Resource == "namespaces" {
			return true
		}
	}

	return false
}

func TestUninstall_ForcedRelease(t *testing.T) {
	t.Parallel()

	clientset := demoCluster()
	uninstaller := &recordingUninstaller{}
	root := newTestRoot(t, clientset, uninstaller, "uninstall", "-n", "demo", "--release", "app-a", "--force")

	require.NoError(t, root.cmd.Execute())

	assert.Equal(t, []string{"demo/app-a"}, uninstaller.calls)
	assert.Contains(t, root.out.String(), "✔ Release 'app-a' uninstalled from 'demo'")
	assert.NotContains(t, root.out.String(), "Proceed?")
	assert.False(t, namespaceDeleteRequested(clientset))
}

func TestUninstall_DeleteNamespace(t *testing.T) {
	t.Parallel()

	clientset := demoCluster()
	uninstaller := &recordingUninstaller{}
	root := newTestRoot(
		t, clientset, uninstaller,
		"uninstall", "-n", "demo", "-r", "app-b", "-f", "--delete-namespace",
	)

	require.NoError(t, root.cmd.Execute())

	assert.Equal(t, []string{"demo/app-b"}, uninstaller.calls)
	assert.True(t, namespaceDeleteRequested(clientset))

	_, err := clientset.CoreV1().Namespaces().Get(context.Background(), "demo", metav1.GetOptions{})
	require.Error(t, err)
	assert.Contains(t, root.out.String(), "✔ Namespace 'demo' deleted")
}

func TestUninstall_FailureSkipsNamespaceDeletion(t *testing.T) {
	t.Parallel()

	clientset := demoCluster()
	uninstaller := &recordingUninstaller{failOn: "app-a"}
	root := newTestRoot(
		t, clientset, uninstaller,
		"uninstall", "-n", "demo", "-r", "app-a", "--force", "--delete-namespace",
	)

	err := root.cmd.Execute()

	var uninstallErr *helm.UninstallError
	require.ErrorAs(t, err, &uninstallErr)
	assert.Equal(t, "app-a", uninstallErr.Release)
	assert.False(t, namespaceDeleteRequested(clientset))
}

func TestUninstall_EmptyNamespace(t *testing.T) {
	t.Parallel()

	clientset := fake.NewClientset(&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "empty"}})
	uninstaller := &recordingUninstaller{}
	root := newTestRoot(t, clientset, uninstaller, "uninstall", "-n", "empty", "--delete-namespace", "--force")

	require.NoError(t, root.cmd.Execute())

	assert.Contains(t, root.out.String(), "No Helm releases found in namespace 'empty'")
	assert.Empty(t, uninstaller.calls)
	assert.False(t, namespaceDeleteRequested(clientset))
}

func TestUninstall_UnknownDriver(t *testing.T) {
	t.Parallel()

	uninstaller := &recordingUninstaller{}
	root := newTestRoot(
		t, demoCluster(), uninstaller,
		"uninstall", "-n", "demo", "-r", "app-a", "--force", "--driver", "bogus",
	)

	err := root.cmd.Execute()

	require.ErrorIs(t, err, config.ErrUnknownDriver)
	assert.Empty(t, uninstaller.calls)
}

func TestUninstall_RejectsArguments(t *testing.T) {
	t.Parallel()

	root := newTestRoot(t, demoCluster(), &recordingUninstaller{}, "uninstall", "-n", "demo", "app-a")

	require.Error(t, root.cmd.Execute())
}

//nolint:paralleltest // overrides stdin
func TestUninstall_DeclinedPrompt(t *testing.T) {
	restore := confirm.SetStdinReaderForTests(strings.NewReader("n\n"))
	defer restore()

	clientset := demoCluster()
	uninstaller := &recordingUninstaller{}
	root := newTestRoot(t, clientset, uninstaller, "uninstall", "-n", "demo", "-r", "app-a", "--delete-namespace")

	require.NoError(t, root.cmd.Execute())

	out := root.out.String()
	assert.Contains(t, out, "About to uninstall release 'app-a' in namespace 'demo'.")
	assert.Contains(t, out, "Namespace 'demo' will also be deleted.")
	assert.Contains(t, out, "Proceed? [y/N]")
	assert.Contains(t, out, "Aborted.")
	assert.Empty(t, uninstaller.calls)
	assert.False(t, namespaceDeleteRequested(clientset))
}

//nolint:paralleltest // overrides stdin
func TestUninstall_AcceptedPrompt(t *testing.T) {
	restore := confirm.SetStdinReaderForTests(strings.NewReader("Y\n"))
	defer restore()

	uninstaller := &recordingUninstaller{}
	root := newTestRoot(t, demoCluster(), uninstaller, "uninstall", "-n", "demo", "-r", "app-a")

	require.NoError(t, root.cmd.Execute())

	assert.Equal(t, []string{"demo/app-a"}, uninstaller.calls)
}

//nolint:paralleltest // overrides the TTY checker
func TestUninstall_SelectionNeedsTerminal(t *testing.T) {
	restore := confirm.SetTTYCheckerForTests(func() bool { return false })
	defer restore()

	uninstaller := &recordingUninstaller{}
	root := newTestRoot(t, demoCluster(), uninstaller, "uninstall", "-n", "demo", "--force")

	err := root.cmd.Execute()

	require.ErrorIs(t, err, selector.ErrNonInteractive)
	assert.Empty(t, uninstaller.calls)
}

func TestUninstall_CompletesReleaseNames(t *testing.T) {
	t.Parallel()

	root := newTestRoot(
		t, demoCluster(), &recordingUninstaller{},
		"__complete", "uninstall", "-n", "demo", "--release", "app",
	)

	require.NoError(t, root.cmd.Execute())

	lines := strings.Split(strings.TrimSpace(root.out.String()), "\n")
	assert.Equal(t, []string{"app-a", "app-b", ":4"}, lines)
}

func TestNewUninstallCmdFlags(t *testing.T) {
	t.Parallel()

	root := cmd.NewRootCmd("test", "test", "test")

	uninstall, _, err := root.Find([]string{"uninstall"})
	require.NoError(t, err)

	for _, name := range []string{"namespace", "release", "delete-namespace", "force", "helm-binary", "driver", "timeout"} {
		assert.NotNil(t, uninstall.Flags().Lookup(name), "missing flag %q", name)
	}

	assert.Equal(t, "n", uninstall.Flags().Lookup("namespace").Shorthand)
	assert.Equal(t, "helm", uninstall.Flags().Lookup("helm-binary").DefValue)
}

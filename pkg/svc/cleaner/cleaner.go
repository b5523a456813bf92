package cleaner

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/selector"
	"github.com/devantler-tech/helm-cleaner/pkg/client/helm"
	"github.com/devantler-tech/helm-cleaner/pkg/k8s"
	"github.com/devantler-tech/helm-cleaner/pkg/utils/notify"
	"github.com/sirupsen/logrus"
	"k8s.io/client-go/kubernetes"
)

// ErrMissingDependency is returned when a required collaborator is nil.
var ErrMissingDependency = errors.New("cleaner: missing dependency")

// Outcome reports how a run ended without error.
type Outcome int

const (
	// OutcomeCompleted means every selected release was uninstalled.
	OutcomeCompleted Outcome = iota
	// OutcomeNoReleases means the namespace held no releases.
	OutcomeNoReleases
	// OutcomeDeclined means the operator did not confirm.
	OutcomeDeclined
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeNoReleases:
		return "no-releases"
	case OutcomeDeclined:
		return "declined"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Options selects what a run removes.
type Options struct {
	Namespace string
	// Release skips interactive selection when set. It is not checked against the listing.
	Release         string
	DeleteNamespace bool
	Force           bool
}

// Deps are the collaborators a run uses. Selector and Confirmer are only consulted when
// needed, so callers that always pass Release and Force may leave them nil.
type Deps struct {
	Clientset   kubernetes.Interface
	Selector    selector.Selector
	Confirmer   confirm.Confirmer
	Uninstaller helm.Uninstaller
	Out         io.Writer
	Logger      logrus.FieldLogger
}

// commandLiner is implemented by uninstallers that run an external command.
type commandLiner interface {
	CommandLine(release, namespace string) string
}

// Cleaner removes Helm releases from a namespace.
type Cleaner struct {
	deps Deps
}

// New creates a Cleaner. Out defaults to io.Discard and Logger to a silent logger.
func New(deps Deps) (*Cleaner, error) {
	if deps.Clientset == nil || deps.Uninstaller == nil {
		return nil, fmt.Errorf("%w: clientset and uninstaller are required", ErrMissingDependency)
	}

	if deps.Out == nil {
		deps.Out = io.Discard
	}

	if deps.Logger == nil {
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		deps.Logger = logger
	}

	return &Cleaner{deps: deps}, nil
}

// Run executes one cleanup. Declining the prompt and finding no releases are not errors;
// the returned Outcome tells them apart.
func (c *Cleaner) Run(ctx context.Context, opts Options) (Outcome, error) {
	if opts.Namespace == "" {
		return OutcomeCompleted, k8s.ErrNamespaceRequired
	}

	releases, err := k8s.ListReleases(ctx, c.deps.Clientset, opts.Namespace)
	if err != nil {
		return OutcomeCompleted, err
	}

	c.deps.Logger.Debugf("found %d release(s) in namespace %q: %v", len(releases), opts.Namespace, releases)

	if len(releases) == 0 {
		notify.Infof(c.deps.Out, "No Helm releases found in namespace '%s'", opts.Namespace)

		return OutcomeNoReleases, nil
	}

	selected, err := c.selectReleases(ctx, opts, releases)
	if err != nil {
		return OutcomeCompleted, err
	}

	if !confirm.ShouldSkipPrompt(opts.Force) {
		accepted, err := c.askConfirmation(opts, selected)
		if err != nil {
			return OutcomeCompleted, err
		}

		if !accepted {
			notify.Infof(c.deps.Out, "Aborted.")

			return OutcomeDeclined, nil
		}
	}

	for _, release := range selected {
		err := c.uninstall(ctx, release, opts.Namespace)
		if err != nil {
			return OutcomeCompleted, err
		}
	}

	if opts.DeleteNamespace {
		err := k8s.DeleteNamespace(ctx, c.deps.Clientset, opts.Namespace)
		if err != nil {
			return OutcomeCompleted, err
		}

		notify.Successf(c.deps.Out, "Namespace '%s' deleted", opts.Namespace)
	}

	return OutcomeCompleted, nil
}

func (c *Cleaner) selectReleases(ctx context.Context, opts Options, releases []string) ([]string, error) {
	if opts.Release != "" {
		return []string{opts.Release}, nil
	}

	if c.deps.Selector == nil {
		return nil, fmt.Errorf("%w: selector is required without a release name", ErrMissingDependency)
	}

	selection, err := c.deps.Selector.Select(ctx, releases)
	if err != nil {
		return nil, err
	}

	c.deps.Logger.Debugf("selected %s", selection)

	return selection.Resolve(releases), nil
}

func (c *Cleaner) askConfirmation(opts Options, selected []string) (bool, error) {
	if c.deps.Confirmer == nil {
		return false, fmt.Errorf("%w: confirmer is required without --force", ErrMissingDependency)
	}

	return c.deps.Confirmer.Confirm(confirm.UninstallPreview{
		Namespace:       opts.Namespace,
		Releases:        selected,
		DeleteNamespace: opts.DeleteNamespace,
	})
}

func (c *Cleaner) uninstall(ctx context.Context, release, namespace string) error {
	if liner, ok := c.deps.Uninstaller.(commandLiner); ok {
		notify.Activityf(c.deps.Out, "Running: %s", liner.CommandLine(release, namespace))
	} else {
		notify.Activityf(c.deps.Out, "Uninstalling release '%s' from '%s'", release, namespace)
	}

	err := c.deps.Uninstaller.Uninstall(ctx, release, namespace)
	if err != nil {
		return err
	}

	notify.Successf(c.deps.Out, "Release '%s' uninstalled from '%s'", release, namespace)

	return nil
}

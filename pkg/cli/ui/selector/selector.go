// Package selector lets the operator pick which Helm release to uninstall.
package selector

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/huh"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
)

// AllReleasesLabel is the menu entry that selects every listed release.
const AllReleasesLabel = "<ALL RELEASES>"

var (
	// ErrNonInteractive is returned when a choice is needed but stdin is not a terminal.
	ErrNonInteractive = errors.New("--release is required when stdin is not a terminal")
	// ErrNoReleases is returned when there is nothing to choose from.
	ErrNoReleases = errors.New("no releases to select from")
)

// Selection is the operator's choice: one named release or all of them.
type Selection struct {
	all     bool
	release string
}

// SelectAll returns the selection covering every listed release.
func SelectAll() Selection {
	return Selection{all: true}
}

// SelectRelease returns the selection of a single release.
func SelectRelease(name string) Selection {
	return Selection{release: name}
}

// IsAll reports whether every listed release was chosen.
func (s Selection) IsAll() bool {
	return s.all
}

// Resolve expands the selection against the listed releases, keeping their order.
func (s Selection) Resolve(releases []string) []string {
	if s.all {
		return slices.Clone(releases)
	}

	return []string{s.release}
}

// String implements fmt.Stringer.
func (s Selection) String() string {
	if s.all {
		return AllReleasesLabel
	}

	return s.release
}

// Selector asks the operator to choose among releases.
type Selector interface {
	Select(ctx context.Context, releases []string) (Selection, error)
}

// Options builds the menu: each release in order, then the all-releases entry.
func Options(releases []string) []huh.Option[Selection] {
	options := make([]huh.Option[Selection], 0, len(releases)+1)

	for _, release := range releases {
		options = append(options, huh.NewOption(release, SelectRelease(release)))
	}

	return append(options, huh.NewOption(AllReleasesLabel, SelectAll()))
}

// HuhSelector presents the releases as a single-choice huh form.
type HuhSelector struct {
	Title string
}

var _ Selector = (*HuhSelector)(nil)

// NewHuhSelector creates the interactive selector.
func NewHuhSelector() *HuhSelector {
	return &HuhSelector{Title: "Select a release to uninstall"}
}

// Select blocks until the operator picks an entry. The first release is preselected.
func (s *HuhSelector) Select(ctx context.Context, releases []string) (Selection, error) {
	if len(releases) == 0 {
		return Selection{}, ErrNoReleases
	}

	if !confirm.IsTTY() {
		return Selection{}, ErrNonInteractive
	}

	choice := SelectRelease(releases[0])

	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[Selection]().
				Title(s.Title).
				Options(Options(releases)...).
				Value(&choice),
		),
	).
		WithAccessible(os.Getenv("ACCESSIBLE") != "").
		RunWithContext(ctx)
	if err != nil {
		return Selection{}, fmt.Errorf("select release: %w", err)
	}

	return choice, nil
}

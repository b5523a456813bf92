package selector_test

import (
	"context"
	"testing"

	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/confirm"
	"github.com/devantler-tech/helm-cleaner/pkg/cli/ui/selector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelection_Resolve(t *testing.T) {
	t.Parallel()

	releases := []string{"app-a", "app-b", "app-c"}

	tests := []struct {
		name      string
		selection selector.Selection
		expected  []string
	}{
		{name: "single release", selection: selector.SelectRelease("app-b"), expected: []string{"app-b"}},
		{name: "all releases keep order", selection: selector.SelectAll(), expected: releases},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.selection.Resolve(releases))
		})
	}
}

func TestSelection_ResolveAllCopies(t *testing.T) {
	t.Parallel()

	releases := []string{"app-a", "app-b"}

	resolved := selector.SelectAll().Resolve(releases)
	resolved[0] = "mutated"

	assert.Equal(t, []string{"app-a", "app-b"}, releases)
}

func TestSelection_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "app-a", selector.SelectRelease("app-a").String())
	assert.Equal(t, selector.AllReleasesLabel, selector.SelectAll().String())
	assert.True(t, selector.SelectAll().IsAll())
	assert.False(t, selector.SelectRelease("app-a").IsAll())
}

func TestOptions(t *testing.T) {
	t.Parallel()

	options := selector.Options([]string{"app-a", "app-b"})

	require.Len(t, options, 3)
	assert.Equal(t, "app-a", options[0].Key)
	assert.Equal(t, selector.SelectRelease("app-a"), options[0].Value)
	assert.Equal(t, "app-b", options[1].Key)
	assert.Equal(t, selector.AllReleasesLabel, options[2].Key)
	assert.Equal(t, selector.SelectAll(), options[2].Value)
}

func TestHuhSelector_NoReleases(t *testing.T) {
	t.Parallel()

	_, err := selector.NewHuhSelector().Select(context.Background(), nil)

	require.ErrorIs(t, err, selector.ErrNoReleases)
}

//nolint:paralleltest // overrides the shared TTY checker
func TestHuhSelector_NonInteractive(t *testing.T) {
	restoreTTY := confirm.SetTTYCheckerForTests(func() bool { return false })
	defer restoreTTY()

	_, err := selector.NewHuhSelector().Select(context.Background(), []string{"app-a"})

	require.ErrorIs(t, err, selector.ErrNonInteractive)
}

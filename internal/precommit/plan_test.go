package precommit

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droverhq/drover/internal/clock"
	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
)

// fixedClock returns a clock pinned to a known date for stable branch names.
func fixedClock() clock.Clock {
	return clock.FixedClock{T: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)}
}

// completeIdentity is a signing identity that passes the GPG check.
func completeIdentity() git.Identity {
	return git.Identity{Email: "dev@example.com", SigningKey: "ABCDEF123456"}
}

func newTestDecider() *Decider {
	return NewDecider(NewClassifier(""), WithClock(fixedClock()))
}

func TestDecideGPGCheckComesFirst(t *testing.T) {
	t.Parallel()

	d := newTestDecider()

	tests := []struct {
		name     string
		identity git.Identity
	}{
		{"missing both", git.Identity{}},
		{"missing signing key", git.Identity{Email: "dev@example.com"}},
		{"missing email", git.Identity{SigningKey: "ABCDEF123456"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Even with an empty change set the GPG error wins: the check
			// runs before anything else.
			plan, err := d.Decide(RepositoryState{
				Branch:   "main",
				Identity: tt.identity,
			}, "")
			require.Error(t, err)
			assert.Nil(t, plan)
			assert.True(t, stderrors.Is(err, droverrors.ErrGPGNotConfigured))
		})
	}
}

func TestDecideNothingToCommit(t *testing.T) {
	t.Parallel()

	d := newTestDecider()
	plan, err := d.Decide(RepositoryState{
		Branch:   "main",
		Identity: completeIdentity(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ActionNothingToCommit, plan.Action)
	assert.Empty(t, plan.BranchName)
}

func TestDecideOnFeatureBranchNoAction(t *testing.T) {
	t.Parallel()

	d := newTestDecider()
	plan, err := d.Decide(RepositoryState{
		Branch:       "update/20260301-earlier",
		ChangedFiles: []string{"src/main.go"},
		Identity:     completeIdentity(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, plan.Action)
	assert.Equal(t, "update/20260301-earlier", plan.CurrentBranch)
}

func TestDecideOnProtectedBranchCreatesBranch(t *testing.T) {
	t.Parallel()

	d := newTestDecider()

	for _, branch := range []string{"main", "master"} {
		t.Run(branch, func(t *testing.T) {
			t.Parallel()

			plan, err := d.Decide(RepositoryState{
				Branch:       branch,
				ChangedFiles: []string{"skills/search/SKILL.md"},
				Identity:     completeIdentity(),
			}, "")
			require.NoError(t, err)
			assert.Equal(t, ActionCreateBranch, plan.Action)
			assert.Equal(t, ChangeSkill, plan.ChangeType)
			assert.Equal(t, "skill/20260314-skill", plan.BranchName)
		})
	}
}

func TestDecideDetachedHeadCreatesBranch(t *testing.T) {
	t.Parallel()

	d := newTestDecider()
	plan, err := d.Decide(RepositoryState{
		Branch:       "",
		Detached:     true,
		ChangedFiles: []string{"docs/guide.md"},
		Identity:     completeIdentity(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ActionCreateBranch, plan.Action)
	assert.Equal(t, ChangeDocs, plan.ChangeType)
}

func TestDecideOverrideBranchName(t *testing.T) {
	t.Parallel()

	d := newTestDecider()
	plan, err := d.Decide(RepositoryState{
		Branch:       "main",
		ChangedFiles: []string{"src/main.go"},
		Identity:     completeIdentity(),
	}, "hotfix/custom")
	require.NoError(t, err)
	assert.Equal(t, "hotfix/custom", plan.BranchName)
}

func TestDecideCustomProtectedBranches(t *testing.T) {
	t.Parallel()

	d := NewDecider(NewClassifier(""),
		WithClock(fixedClock()),
		WithProtectedBranches([]string{"develop"}))

	plan, err := d.Decide(RepositoryState{
		Branch:       "develop",
		ChangedFiles: []string{"src/main.go"},
		Identity:     completeIdentity(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ActionCreateBranch, plan.Action)

	// main is no longer protected under the custom list.
	plan, err = d.Decide(RepositoryState{
		Branch:       "main",
		ChangedFiles: []string{"src/main.go"},
		Identity:     completeIdentity(),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, ActionNone, plan.Action)
}

func TestActionString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", ActionNone.String())
	assert.Equal(t, "create_branch", ActionCreateBranch.String())
	assert.Equal(t, "nothing_to_commit", ActionNothingToCommit.String())
}

package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/scan"
	"github.com/droverhq/drover/internal/testutil"
)

// staticDiff returns a DiffFunc serving a fixed diff.
func staticDiff(diff string) DiffFunc {
	return func(context.Context) (string, error) {
		return diff, nil
	}
}

// addedLineDiff builds a one-file diff with the given added lines.
func addedLineDiff(lines ...string) string {
	diff := "diff --git a/file.go b/file.go\n+++ b/file.go\n"
	for _, l := range lines {
		diff += "+" + l + "\n"
	}
	return diff
}

func TestCommitStepSkipsCleanTree(t *testing.T) {
	t.Parallel()

	runner := &git.MockRunner{StatusResult: &git.Status{Branch: "update/x"}}
	step := NewCommitStep(runner, true)

	result, err := step.Run(context.Background(), &State{CommitMessage: "msg"})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
	assert.NotContains(t, runner.Calls, "Commit(sign=true)")
}

func TestCommitStepCommitsWithSigning(t *testing.T) {
	t.Parallel()

	runner := &git.MockRunner{
		StatusResult: &git.Status{
			Branch:   "update/x",
			Unstaged: []git.FileChange{{Path: "a.go", Status: git.StatusModified}},
		},
	}
	step := NewCommitStep(runner, true)

	result, err := step.Run(context.Background(), &State{CommitMessage: "change a"})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, runner.Calls, "Commit(sign=true)")
}

func TestCommitStepStagesAllChanges(t *testing.T) {
	t.Parallel()

	// Stage-all is an empty path list; a flag-like pathspec such as "-A"
	// fails against a real repository.
	runner := &git.MockRunner{
		StatusResult: &git.Status{
			Branch:    "update/x",
			Unstaged:  []git.FileChange{{Path: "a.go", Status: git.StatusModified}},
			Untracked: []string{"b.go"},
		},
	}
	step := NewCommitStep(runner, false)

	result, err := step.Run(context.Background(), &State{CommitMessage: "change a and b"})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, runner.Calls, "Add(0)")
}

func TestCommitStepSkipsWhenCommitFindsNothing(t *testing.T) {
	t.Parallel()

	runner := &git.MockRunner{
		StatusResult: &git.Status{
			Branch:   "update/x",
			Unstaged: []git.FileChange{{Path: "a.go", Status: git.StatusModified}},
		},
		ErrCommit: droverrors.Wrap(droverrors.ErrNoChanges, "nothing to commit"),
	}
	step := NewCommitStep(runner, false)

	result, err := step.Run(context.Background(), &State{CommitMessage: "msg"})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}

func TestCommitStepRequiresMessage(t *testing.T) {
	t.Parallel()

	runner := &git.MockRunner{
		StatusResult: &git.Status{
			Branch:   "update/x",
			Unstaged: []git.FileChange{{Path: "a.go", Status: git.StatusModified}},
		},
	}
	step := NewCommitStep(runner, false)

	result, err := step.Run(context.Background(), &State{})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
	assert.ErrorIs(t, err, droverrors.ErrEmptyValue)
}

func TestReviewStepBlocksOnSecret(t *testing.T) {
	t.Parallel()

	diff := addedLineDiff("key = sk-ant-REDACTED")
	step := NewReviewStep(scan.NewDefaultScanner(), staticDiff(diff))

	state := &State{}
	result, err := step.Run(context.Background(), state)
	require.Error(t, err)
	assert.Equal(t, StatusBlocked, result.Status)
	assert.ErrorIs(t, err, droverrors.ErrScanFindings)
	assert.Positive(t, state.FindingCount)
}

func TestReviewStepWarningsDoNotBlock(t *testing.T) {
	t.Parallel()

	diff := addedLineDiff("See https://example.com for details.")
	step := NewReviewStep(scan.NewDefaultScanner(), staticDiff(diff))

	state := &State{}
	result, err := step.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, 1, state.FindingCount)
}

func TestReviewStepSkipsEmptyDiff(t *testing.T) {
	t.Parallel()

	step := NewReviewStep(scan.NewDefaultScanner(), staticDiff(""))
	result, err := step.Run(context.Background(), &State{})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}

func TestPushStepPushesBranch(t *testing.T) {
	t.Parallel()

	runner := &git.MockRunner{}
	step := NewPushStep(runner)

	result, err := step.Run(context.Background(), &State{Remote: "origin", Branch: "update/x"})
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, runner.Calls, "Push(origin,update/x)")
}

func TestCreatePRStepSetsState(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{
		CreateResult: &git.PRResult{Number: 42, URL: "https://github.com/x/y/pull/42", State: "open"},
	}
	step := NewCreatePRStep(github, "title", "body", false)

	state := &State{Branch: "update/x", BaseBranch: "main"}
	result, err := step.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Equal(t, 42, state.PRNumber)
	assert.Equal(t, "https://github.com/x/y/pull/42", state.PRURL)
}

func TestCreatePRStepSkipsKnownPR(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{}
	step := NewCreatePRStep(github, "", "", false)

	state := &State{PRNumber: 7}
	result, err := step.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
	assert.Empty(t, github.Calls)
}

func TestMergeStepMergesReadyPR(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{}
	step := NewMergeStep(github, "squash", true, AlwaysConfirm)

	state := &State{PRNumber: 7, BaseBranch: "main"}
	result, err := step.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, StatusOK, result.Status)
	assert.Contains(t, github.Calls, "MergePR(7,squash)")
}

func TestMergeStepBlocksOnFailingChecks(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{
		ViewResult: &git.PRStatus{Number: 7, State: "OPEN", Mergeable: true, ChecksPass: false, CIStatus: "failure"},
	}
	step := NewMergeStep(github, "squash", true, AlwaysConfirm)

	result, err := step.Run(context.Background(), &State{PRNumber: 7, BaseBranch: "main"})
	require.Error(t, err)
	assert.Equal(t, StatusBlocked, result.Status)
	assert.ErrorIs(t, err, droverrors.ErrChecksNotPassing)
	assert.NotContains(t, github.Calls, "MergePR(7,squash)")
}

func TestMergeStepBlocksOnConflicts(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{
		ViewResult: &git.PRStatus{Number: 7, State: "OPEN", Mergeable: false, ChecksPass: true, CIStatus: "success"},
	}
	step := NewMergeStep(github, "squash", true, AlwaysConfirm)

	result, err := step.Run(context.Background(), &State{PRNumber: 7, BaseBranch: "main"})
	require.Error(t, err)
	assert.Equal(t, StatusBlocked, result.Status)
	assert.ErrorIs(t, err, droverrors.ErrPRNotMergeable)
}

func TestMergeStepSkipsMergedPR(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{
		ViewResult: &git.PRStatus{Number: 7, State: "MERGED", Mergeable: true, ChecksPass: true},
	}
	step := NewMergeStep(github, "squash", true, AlwaysConfirm)

	result, err := step.Run(context.Background(), &State{PRNumber: 7})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, result.Status)
}

func TestMergeStepDeclinedConfirmation(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{}
	declined := func(string) (bool, error) { return false, nil }
	step := NewMergeStep(github, "squash", true, declined)

	result, err := step.Run(context.Background(), &State{PRNumber: 7, BaseBranch: "main"})
	require.Error(t, err)
	assert.Equal(t, StatusBlocked, result.Status)
	assert.ErrorIs(t, err, droverrors.ErrOperationCanceled)
	assert.NotContains(t, github.Calls, "MergePR(7,squash)")
}

func TestMergeStepViewFailure(t *testing.T) {
	t.Parallel()

	github := &git.MockGitHubRunner{ErrView: testutil.ErrMockGHFailed}
	step := NewMergeStep(github, "squash", true, AlwaysConfirm)

	result, err := step.Run(context.Background(), &State{PRNumber: 7})
	require.Error(t, err)
	assert.Equal(t, StatusFailed, result.Status)
}

package workflow

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"

	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/scan"
)

// DiffFunc supplies the diff the review step examines.
type DiffFunc func(ctx context.Context) (string, error)

// ConfirmFunc asks the user to approve an action. It returns true to proceed.
type ConfirmFunc func(prompt string) (bool, error)

// AlwaysConfirm approves without prompting, for --yes runs.
func AlwaysConfirm(string) (bool, error) {
	return true, nil
}

// CommitStep stages all changes and commits them.
type CommitStep struct {
	runner git.Runner
	sign   bool
}

// NewCommitStep creates the commit step.
func NewCommitStep(runner git.Runner, sign bool) *CommitStep {
	return &CommitStep{runner: runner, sign: sign}
}

// Name identifies the step.
func (s *CommitStep) Name() string { return "commit" }

// Run stages everything and commits. A clean tree means the commit already
// happened; the step skips.
func (s *CommitStep) Run(ctx context.Context, state *State) (StepResult, error) {
	status, err := s.runner.Status(ctx)
	if err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	if status.IsClean() {
		return StepResult{Status: StatusSkipped, Detail: "working tree clean"}, nil
	}

	// An empty path list stages everything; paths are literal pathspecs.
	if err := s.runner.Add(ctx, nil); err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	if state.CommitMessage == "" {
		return StepResult{Status: StatusFailed},
			droverrors.Wrap(droverrors.ErrEmptyValue, "commit message is required")
	}
	if err := s.runner.Commit(ctx, state.CommitMessage, s.sign); err != nil {
		if stderrors.Is(err, droverrors.ErrNoChanges) {
			return StepResult{Status: StatusSkipped, Detail: "nothing to commit"}, nil
		}
		return StepResult{Status: StatusFailed}, err
	}
	return StepResult{Status: StatusOK, Detail: "committed all changes"}, nil
}

// ReviewStep scans the outgoing diff for findings before anything is pushed.
type ReviewStep struct {
	scanner scan.DiffScanner
	diff    DiffFunc
}

// NewReviewStep creates the review step.
func NewReviewStep(scanner scan.DiffScanner, diff DiffFunc) *ReviewStep {
	return &ReviewStep{scanner: scanner, diff: diff}
}

// Name identifies the step.
func (s *ReviewStep) Name() string { return "review" }

// Run scans the diff. Blocking findings halt the run; warnings are noted
// and the run continues.
func (s *ReviewStep) Run(ctx context.Context, state *State) (StepResult, error) {
	diff, err := s.diff(ctx)
	if err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	if strings.TrimSpace(diff) == "" {
		return StepResult{Status: StatusSkipped, Detail: "no outgoing diff"}, nil
	}

	findings, err := s.scanner.Scan(ctx, diff)
	if err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	state.FindingCount = len(findings)

	if scan.HasBlocking(findings) {
		return StepResult{
				Status: StatusBlocked,
				Detail: fmt.Sprintf("%d finding(s) require review", len(findings)),
			},
			fmt.Errorf("%d finding(s): %w", len(findings), droverrors.ErrScanFindings)
	}
	if len(findings) > 0 {
		return StepResult{
			Status: StatusOK,
			Detail: fmt.Sprintf("%d warning(s), none blocking", len(findings)),
		}, nil
	}
	return StepResult{Status: StatusOK, Detail: "no findings"}, nil
}

// PushStep pushes the branch to the remote with an upstream.
type PushStep struct {
	runner git.Runner
}

// NewPushStep creates the push step.
func NewPushStep(runner git.Runner) *PushStep {
	return &PushStep{runner: runner}
}

// Name identifies the step.
func (s *PushStep) Name() string { return "push" }

// Run pushes the branch. Pushing an up-to-date branch is a no-op on the
// remote side, so the step runs unconditionally.
func (s *PushStep) Run(ctx context.Context, state *State) (StepResult, error) {
	if err := s.runner.Push(ctx, state.Remote, state.Branch, true); err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	return StepResult{Status: StatusOK, Detail: "pushed " + state.Branch}, nil
}

// CreatePRStep opens a pull request for the branch.
type CreatePRStep struct {
	github git.GitHubRunner
	title  string
	body   string
	draft  bool
}

// NewCreatePRStep creates the PR creation step.
func NewCreatePRStep(github git.GitHubRunner, title, body string, draft bool) *CreatePRStep {
	return &CreatePRStep{github: github, title: title, body: body, draft: draft}
}

// Name identifies the step.
func (s *CreatePRStep) Name() string { return "create-pr" }

// Run opens the PR. A PR that already exists for the branch counts as done.
func (s *CreatePRStep) Run(ctx context.Context, state *State) (StepResult, error) {
	if state.PRNumber != 0 {
		return StepResult{Status: StatusSkipped, Detail: fmt.Sprintf("PR #%d already known", state.PRNumber)}, nil
	}

	title := s.title
	if title == "" {
		title = state.CommitMessage
	}
	body := s.body
	if body == "" {
		body = title
	}

	result, err := s.github.CreatePR(ctx, git.PRCreateOptions{
		Title:      title,
		Body:       body,
		BaseBranch: state.BaseBranch,
		HeadBranch: state.Branch,
		Draft:      s.draft,
	})
	if err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return StepResult{Status: StatusSkipped, Detail: "PR already exists for branch"}, nil
		}
		return StepResult{Status: StatusFailed}, err
	}

	state.PRNumber = result.Number
	state.PRURL = result.URL
	return StepResult{Status: StatusOK, Detail: result.URL}, nil
}

// MergeStep merges the pull request after checking its state and asking
// for confirmation.
type MergeStep struct {
	github       git.GitHubRunner
	method       string
	deleteBranch bool
	confirm      ConfirmFunc
}

// NewMergeStep creates the merge step.
func NewMergeStep(github git.GitHubRunner, method string, deleteBranch bool, confirm ConfirmFunc) *MergeStep {
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &MergeStep{github: github, method: method, deleteBranch: deleteBranch, confirm: confirm}
}

// Name identifies the step.
func (s *MergeStep) Name() string { return "merge" }

// Run checks mergeability and CI, confirms, and merges. An already-merged
// PR skips; failing checks or conflicts block rather than fail, since the
// remedy is human action, not a retry.
func (s *MergeStep) Run(ctx context.Context, state *State) (StepResult, error) {
	if state.PRNumber == 0 {
		return StepResult{Status: StatusFailed},
			droverrors.Wrap(droverrors.ErrPRNotFound, "no PR number for merge")
	}

	status, err := s.github.ViewPR(ctx, state.PRNumber)
	if err != nil {
		return StepResult{Status: StatusFailed}, err
	}

	if strings.EqualFold(status.State, "merged") {
		return StepResult{Status: StatusSkipped, Detail: fmt.Sprintf("PR #%d already merged", state.PRNumber)}, nil
	}
	if !status.Mergeable {
		return StepResult{Status: StatusBlocked, Detail: "PR has conflicts"},
			droverrors.Wrapf(droverrors.ErrPRNotMergeable, "PR #%d", state.PRNumber)
	}
	if !status.ChecksPass {
		return StepResult{Status: StatusBlocked, Detail: "checks " + status.CIStatus},
			droverrors.Wrapf(droverrors.ErrChecksNotPassing, "PR #%d checks are %s", state.PRNumber, status.CIStatus)
	}

	ok, err := s.confirm(fmt.Sprintf("Merge PR #%d into %s?", state.PRNumber, state.BaseBranch))
	if err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	if !ok {
		return StepResult{Status: StatusBlocked, Detail: "merge declined"},
			droverrors.Wrap(droverrors.ErrOperationCanceled, "merge declined")
	}

	if err := s.github.MergePR(ctx, state.PRNumber, s.method, s.deleteBranch); err != nil {
		return StepResult{Status: StatusFailed}, err
	}
	return StepResult{Status: StatusOK, Detail: fmt.Sprintf("merged PR #%d", state.PRNumber)}, nil
}

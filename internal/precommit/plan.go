// Package precommit implements the pre-commit branch classifier.
// This file defines the decision procedure over explicit repository state.
package precommit

import (
	"fmt"

	"github.com/droverhq/drover/internal/clock"
	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/git"
)

// Action is the decision produced by the classifier.
type Action int

const (
	// ActionNone means the current branch is already a feature branch;
	// no branch change is needed.
	ActionNone Action = iota
	// ActionCreateBranch means a new feature branch must be created
	// before committing.
	ActionCreateBranch
	// ActionNothingToCommit means the working tree is clean; no branch is
	// created and execution ends successfully.
	ActionNothingToCommit
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionCreateBranch:
		return "create_branch"
	case ActionNothingToCommit:
		return "nothing_to_commit"
	}
	return "unknown"
}

// RepositoryState is the explicit input to the decision procedure.
// Callers collect it from a git.Runner; tests construct it directly.
type RepositoryState struct {
	// Branch is the current branch name, empty when detached.
	Branch string
	// Detached is true when HEAD does not point at a named branch.
	Detached bool
	// HeadSHA is the abbreviated HEAD SHA, used in the detached warning.
	HeadSHA string
	// ChangedFiles are the changed paths in diff order.
	ChangedFiles []string
	// Identity is the git signing identity.
	Identity git.Identity
}

// Plan is the outcome of Decide: what to do and, for branch creation,
// the computed name and detected change type.
type Plan struct {
	// Action is the decision.
	Action Action
	// BranchName is the branch to create when Action is ActionCreateBranch.
	BranchName string
	// ChangeType is the detected change category.
	ChangeType ChangeType
	// CurrentBranch is the branch the repository was on when deciding.
	CurrentBranch string
}

// Decider runs the pre-commit decision procedure.
type Decider struct {
	classifier *Classifier
	clock      clock.Clock
	protected  []string
}

// DeciderOption configures a Decider.
type DeciderOption func(*Decider)

// WithClock sets the clock used for the branch name date component.
func WithClock(c clock.Clock) DeciderOption {
	return func(d *Decider) {
		d.clock = c
	}
}

// WithProtectedBranches sets the branches treated as protected.
func WithProtectedBranches(branches []string) DeciderOption {
	return func(d *Decider) {
		if len(branches) > 0 {
			d.protected = branches
		}
	}
}

// NewDecider creates a Decider with the given classifier and options.
func NewDecider(classifier *Classifier, opts ...DeciderOption) *Decider {
	d := &Decider{
		classifier: classifier,
		clock:      clock.RealClock{},
		protected:  []string{"main", "master"},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Decide applies the decision procedure to the given state.
//
// Fails with ErrGPGNotConfigured before anything else when the signing
// identity is incomplete: no branch or commit operation may proceed.
// An empty changed set yields ActionNothingToCommit. A detached HEAD is
// treated identically to being on a protected branch: a new branch is
// always created.
func (d *Decider) Decide(state RepositoryState, override string) (*Plan, error) {
	if !state.Identity.IsComplete() {
		return nil, fmt.Errorf(
			"set git config user.email and user.signingkey: %w",
			droverrors.ErrGPGNotConfigured,
		)
	}

	if len(state.ChangedFiles) == 0 {
		return &Plan{
			Action:        ActionNothingToCommit,
			CurrentBranch: state.Branch,
		}, nil
	}

	if !state.Detached && !d.isProtected(state.Branch) {
		return &Plan{
			Action:        ActionNone,
			CurrentBranch: state.Branch,
		}, nil
	}

	changeType := d.classifier.Classify(state.ChangedFiles)
	name := d.classifier.BranchName(changeType, state.ChangedFiles, override, d.clock.Now())

	return &Plan{
		Action:        ActionCreateBranch,
		BranchName:    name,
		ChangeType:    changeType,
		CurrentBranch: state.Branch,
	}, nil
}

// isProtected reports whether the branch is one drover never commits to directly.
func (d *Decider) isProtected(branch string) bool {
	for _, p := range d.protected {
		if branch == p {
			return true
		}
	}
	return false
}

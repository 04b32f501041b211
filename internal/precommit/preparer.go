// Package precommit implements the pre-commit branch classifier.
// This file glues the pure decision procedure to a git.Runner.
package precommit

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/droverhq/drover/internal/ctxutil"
	"github.com/droverhq/drover/internal/git"
	"github.com/droverhq/drover/internal/logging"
)

// Runner is the subset of git operations the preparer performs.
// It is satisfied by git.Runner.
type Runner interface {
	Identity(ctx context.Context) (git.Identity, error)
	CurrentBranch(ctx context.Context) (branch string, detached bool, err error)
	ChangedFiles(ctx context.Context) ([]string, error)
	HeadShortSHA(ctx context.Context) (string, error)
	CreateBranch(ctx context.Context, name string) error
}

// Preparer collects repository state, decides, and applies the plan.
type Preparer struct {
	runner  Runner
	decider *Decider
	logger  zerolog.Logger
}

// NewPreparer creates a Preparer.
func NewPreparer(runner Runner, decider *Decider, logger zerolog.Logger) *Preparer {
	return &Preparer{runner: runner, decider: decider, logger: logger}
}

// Run collects state from the repository, runs the decision procedure, and
// creates the branch when the plan calls for one. The returned plan reports
// what was decided and done.
func (p *Preparer) Run(ctx context.Context, override string) (*Plan, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	state, err := p.collectState(ctx)
	if err != nil {
		return nil, err
	}

	if state.Detached {
		p.logger.Warn().
			Str("head", state.HeadSHA).
			Msg("detached HEAD detected, a feature branch will be created")
	}

	plan, err := p.decider.Decide(state, override)
	if err != nil {
		return nil, err
	}

	if plan.Action == ActionCreateBranch {
		if err := p.runner.CreateBranch(ctx, plan.BranchName); err != nil {
			return nil, fmt.Errorf("failed to create branch: %w", err)
		}
		p.logger.Info().
			Str("branch", plan.BranchName).
			Str("change_type", string(plan.ChangeType)).
			Msg("created and switched to feature branch")
	}

	return plan, nil
}

// collectState reads the repository state needed by the decision procedure.
func (p *Preparer) collectState(ctx context.Context) (RepositoryState, error) {
	identity, err := p.runner.Identity(ctx)
	if err != nil {
		return RepositoryState{}, fmt.Errorf("failed to read git identity: %w", err)
	}
	p.logger.Debug().
		Str("email", identity.Email).
		Str("signingkey", logging.RedactIfSensitive("signingkey", identity.SigningKey)).
		Msg("read git identity")

	branch, detached, err := p.runner.CurrentBranch(ctx)
	if err != nil {
		return RepositoryState{}, err
	}

	files, err := p.runner.ChangedFiles(ctx)
	if err != nil {
		return RepositoryState{}, err
	}

	sha, err := p.runner.HeadShortSHA(ctx)
	if err != nil {
		sha = "unknown"
	}

	return RepositoryState{
		Branch:       branch,
		Detached:     detached,
		HeadSHA:      sha,
		ChangedFiles: files,
		Identity:     identity,
	}, nil
}

// Package git provides git and gh CLI operations for drover.
// This file defines the Runner interface for git CLI operations.
package git

import "context"

// Runner defines operations for git repository management.
// All operations run in the specified working directory and use context for cancellation.
type Runner interface {
	// Status returns the current working tree status including staged, unstaged, and untracked files.
	Status(ctx context.Context) (*Status, error)

	// Identity returns the git signing identity (user.email, user.signingkey).
	// Unset keys yield empty strings, not errors.
	Identity(ctx context.Context) (Identity, error)

	// CurrentBranch returns the name of the currently checked out branch.
	// Returns an empty string and detached=true in detached HEAD state.
	CurrentBranch(ctx context.Context) (branch string, detached bool, err error)

	// ChangedFiles returns the paths of changed files in diff order:
	// staged, then unstaged, then untracked.
	ChangedFiles(ctx context.Context) ([]string, error)

	// Add stages files for commit. If paths is empty, stages all changes.
	Add(ctx context.Context, paths []string) error

	// Commit creates a commit with the given message.
	// If sign is true, the commit is GPG-signed (git commit -S).
	Commit(ctx context.Context, message string, sign bool) error

	// Push pushes commits to the remote repository.
	// If setUpstream is true, sets the upstream tracking reference.
	Push(ctx context.Context, remote, branch string, setUpstream bool) error

	// CreateBranch creates a new branch from HEAD and checks it out.
	// Returns an error if the branch already exists.
	CreateBranch(ctx context.Context, name string) error

	// BranchExists checks if a branch exists in the repository.
	BranchExists(ctx context.Context, name string) (bool, error)

	// DiffStaged returns the diff of staged (cached) changes.
	DiffStaged(ctx context.Context) (string, error)

	// DiffUnstaged returns the diff of unstaged changes in the working tree.
	DiffUnstaged(ctx context.Context) (string, error)

	// HeadShortSHA returns the abbreviated SHA of HEAD, or "initial" when
	// the repository has no commits yet.
	HeadShortSHA(ctx context.Context) (string, error)
}

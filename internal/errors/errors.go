// Package errors provides centralized error handling for drover.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrGPGNotConfigured indicates that git signing identity is incomplete:
	// user.email or user.signingkey is unset. No repository mutation may
	// happen after this error.
	ErrGPGNotConfigured = errors.New("gpg signing is not configured")

	// ErrNoChanges indicates there is nothing to commit. This is reported
	// and execution ends cleanly with exit code 0.
	ErrNoChanges = errors.New("no changes to commit")

	// ErrGitOperation indicates that a git command failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrGitHubOperation indicates that a gh CLI operation (PR creation,
	// status check, merge) failed.
	ErrGitHubOperation = errors.New("github operation failed")

	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigInvalidGit indicates an invalid git configuration value.
	ErrConfigInvalidGit = errors.New("invalid git configuration")

	// ErrConfigInvalidScan indicates an invalid scan configuration value.
	ErrConfigInvalidScan = errors.New("invalid scan configuration")

	// ErrScanFindings indicates the diff scanner reported one or more
	// findings that block the workflow until a human reviews them.
	ErrScanFindings = errors.New("diff scan reported findings")

	// ErrPRNotFound indicates that the requested PR was not found.
	ErrPRNotFound = errors.New("pr not found")

	// ErrPRNotMergeable indicates the PR cannot be merged in its current state.
	ErrPRNotMergeable = errors.New("pr is not mergeable")

	// ErrChecksNotPassing indicates that one or more CI checks have not passed.
	ErrChecksNotPassing = errors.New("ci checks not passing")

	// ErrGHAuthFailed indicates that GitHub authentication failed.
	ErrGHAuthFailed = errors.New("github authentication failed")

	// ErrGHRateLimited indicates that the GitHub API rate limit was exceeded.
	ErrGHRateLimited = errors.New("github api rate limited")

	// ErrSkillNotFound indicates the requested skill document does not exist.
	ErrSkillNotFound = errors.New("skill not found")

	// ErrStatsParse indicates agent usage output could not be parsed.
	ErrStatsParse = errors.New("stats output could not be parsed")

	// ErrStepBlocked indicates a workflow step is blocked waiting on a
	// human decision or an external gate.
	ErrStepBlocked = errors.New("workflow step blocked")

	// ErrOperationCanceled indicates the user declined a confirmation prompt.
	ErrOperationCanceled = errors.New("operation canceled by user")
)

// ExitCode2Error wraps an error to indicate exit code 2 should be used.
type ExitCode2Error struct {
	Err error
}

// NewExitCode2Error wraps an error to indicate exit code 2.
func NewExitCode2Error(err error) *ExitCode2Error {
	return &ExitCode2Error{Err: err}
}

// Error implements the error interface.
func (e *ExitCode2Error) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitCode2Error) Unwrap() error {
	return e.Err
}

// IsExitCode2Error checks if an error should result in exit code 2.
func IsExitCode2Error(err error) bool {
	var e *ExitCode2Error
	return errors.As(err, &e)
}

// Package git provides git and gh CLI operations for drover.
// This file defines the GitHubRunner interface and gh error classification.
package git

import (
	"context"
	"errors"
	"strings"
)

// GHErrorType classifies gh CLI failures so the operator knows what went wrong.
// Drover never retries on its own; classification only shapes the error message.
type GHErrorType int

const (
	// GHErrorNone indicates no error occurred.
	GHErrorNone GHErrorType = iota
	// GHErrorAuth indicates authentication or permission failure.
	GHErrorAuth
	// GHErrorRateLimit indicates the GitHub API rate limit was hit.
	GHErrorRateLimit
	// GHErrorNetwork indicates a network issue or timeout.
	GHErrorNetwork
	// GHErrorNotFound indicates the resource does not exist.
	GHErrorNotFound
	// GHErrorOther indicates an unclassified failure.
	GHErrorOther
)

// String returns a string representation of the error type.
func (t GHErrorType) String() string {
	switch t {
	case GHErrorNone:
		return "none"
	case GHErrorAuth:
		return "auth"
	case GHErrorRateLimit:
		return "rate_limit"
	case GHErrorNetwork:
		return "network"
	case GHErrorNotFound:
		return "not_found"
	case GHErrorOther:
		return "other"
	}
	return "other"
}

// PRCreateOptions configures the PR creation operation.
type PRCreateOptions struct {
	// Title is the PR title (required).
	Title string
	// Body is the PR description/body (required).
	Body string
	// BaseBranch is the target branch (default: "main").
	BaseBranch string
	// HeadBranch is the source branch with changes (required).
	HeadBranch string
	// Draft creates the PR as a draft if true.
	Draft bool
}

// PRResult contains the outcome of a PR creation.
type PRResult struct {
	// Number is the PR number.
	Number int
	// URL is the full URL to the PR.
	URL string
	// State is the PR state ("open" or "draft").
	State string
}

// PRStatus contains PR and CI check status.
type PRStatus struct {
	// Number is the PR number.
	Number int
	// State is the PR state (OPEN, CLOSED, MERGED).
	State string
	// Mergeable indicates if the PR can be merged.
	Mergeable bool
	// ChecksPass indicates if all CI checks have passed.
	ChecksPass bool
	// CIStatus is the overall CI status (pending, success, failure).
	CIStatus string
	// URL is the full URL to the PR.
	URL string
}

// GitHubRunner defines GitHub operations performed via the gh CLI.
type GitHubRunner interface {
	// CreatePR creates a pull request.
	CreatePR(ctx context.Context, opts PRCreateOptions) (*PRResult, error)

	// ViewPR returns PR state including the CI check rollup.
	ViewPR(ctx context.Context, prNumber int) (*PRStatus, error)

	// MergePR merges a pull request using the given method (squash, merge, rebase).
	MergePR(ctx context.Context, prNumber int, mergeMethod string, deleteBranch bool) error
}

// classifyGHError inspects a gh CLI failure and buckets it.
func classifyGHError(err error) GHErrorType {
	if err == nil {
		return GHErrorNone
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return GHErrorNetwork
	}

	errStr := strings.ToLower(err.Error())

	if matchesAny(errStr, []string{
		"rate limit exceeded",
		"api rate limit",
		"secondary rate limit",
		"too many requests",
	}) {
		return GHErrorRateLimit
	}

	if matchesAny(errStr, []string{
		"authentication failed",
		"must authenticate",
		"gh auth login",
		"permission denied",
		"403",
		"401",
	}) {
		return GHErrorAuth
	}

	if matchesAny(errStr, []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"timeout",
		"tls handshake",
	}) {
		return GHErrorNetwork
	}

	if matchesAny(errStr, []string{
		"not found",
		"could not resolve",
		"no pull requests found",
		"404",
	}) {
		return GHErrorNotFound
	}

	return GHErrorOther
}

// matchesAny reports whether s contains any of the given substrings.
func matchesAny(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

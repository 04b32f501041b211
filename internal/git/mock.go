// Package git provides git and gh CLI operations for drover.
// This file provides in-memory mocks of Runner and GitHubRunner for tests
// in this and other packages.
package git

import (
	"context"
	"fmt"
	"strings"

	droverrors "github.com/droverhq/drover/internal/errors"
)

// MockRunner is an in-memory Runner for tests. Fields configure returned
// values; Err* fields force errors; Calls records method invocations.
type MockRunner struct {
	StatusResult   *Status
	IdentityResult Identity
	Branch         string
	Detached       bool
	Files          []string
	Branches       map[string]bool
	StagedDiff     string
	UnstagedDiff   string
	ShortSHA       string

	ErrStatus   error
	ErrIdentity error
	ErrAdd      error
	ErrCommit   error
	ErrPush     error
	ErrCreate   error

	Calls []string
}

// Ensure MockRunner implements Runner.
var _ Runner = (*MockRunner)(nil)

// Status returns the configured status.
func (m *MockRunner) Status(_ context.Context) (*Status, error) {
	m.Calls = append(m.Calls, "Status")
	if m.ErrStatus != nil {
		return nil, m.ErrStatus
	}
	if m.StatusResult != nil {
		return m.StatusResult, nil
	}
	return &Status{Branch: m.Branch, Detached: m.Detached}, nil
}

// Identity returns the configured identity.
func (m *MockRunner) Identity(_ context.Context) (Identity, error) {
	m.Calls = append(m.Calls, "Identity")
	return m.IdentityResult, m.ErrIdentity
}

// CurrentBranch returns the configured branch and detached state.
func (m *MockRunner) CurrentBranch(_ context.Context) (string, bool, error) {
	m.Calls = append(m.Calls, "CurrentBranch")
	return m.Branch, m.Detached, nil
}

// ChangedFiles returns the configured file list.
func (m *MockRunner) ChangedFiles(_ context.Context) ([]string, error) {
	m.Calls = append(m.Calls, "ChangedFiles")
	return m.Files, nil
}

// Add records the call and returns the configured error. Paths are literal
// pathspecs, matching the real runner: only an empty list stages everything,
// and a flag-like entry fails the same way git does.
func (m *MockRunner) Add(_ context.Context, paths []string) error {
	m.Calls = append(m.Calls, fmt.Sprintf("Add(%d)", len(paths)))
	if m.ErrAdd != nil {
		return m.ErrAdd
	}
	for _, p := range paths {
		if strings.HasPrefix(p, "-") {
			return fmt.Errorf("pathspec '%s' did not match any files: %w", p, droverrors.ErrGitOperation)
		}
	}
	return nil
}

// Commit records the call and returns the configured error.
func (m *MockRunner) Commit(_ context.Context, message string, sign bool) error {
	m.Calls = append(m.Calls, fmt.Sprintf("Commit(sign=%t)", sign))
	if message == "" {
		return droverrors.ErrEmptyValue
	}
	return m.ErrCommit
}

// Push records the call and returns the configured error.
func (m *MockRunner) Push(_ context.Context, remote, branch string, _ bool) error {
	m.Calls = append(m.Calls, fmt.Sprintf("Push(%s,%s)", remote, branch))
	return m.ErrPush
}

// CreateBranch records the call, updates the current branch on success.
func (m *MockRunner) CreateBranch(_ context.Context, name string) error {
	m.Calls = append(m.Calls, "CreateBranch("+name+")")
	if m.ErrCreate != nil {
		return m.ErrCreate
	}
	if m.Branches[name] {
		return fmt.Errorf("branch '%s' already exists: %w", name, droverrors.ErrBranchExists)
	}
	m.Branch = name
	m.Detached = false
	return nil
}

// BranchExists reports whether the branch was configured to exist.
func (m *MockRunner) BranchExists(_ context.Context, name string) (bool, error) {
	m.Calls = append(m.Calls, "BranchExists("+name+")")
	return m.Branches[name], nil
}

// DiffStaged returns the configured staged diff.
func (m *MockRunner) DiffStaged(_ context.Context) (string, error) {
	m.Calls = append(m.Calls, "DiffStaged")
	return m.StagedDiff, nil
}

// DiffUnstaged returns the configured unstaged diff.
func (m *MockRunner) DiffUnstaged(_ context.Context) (string, error) {
	m.Calls = append(m.Calls, "DiffUnstaged")
	return m.UnstagedDiff, nil
}

// HeadShortSHA returns the configured SHA, or "abc1234" by default.
func (m *MockRunner) HeadShortSHA(_ context.Context) (string, error) {
	m.Calls = append(m.Calls, "HeadShortSHA")
	if m.ShortSHA == "" {
		return "abc1234", nil
	}
	return m.ShortSHA, nil
}

// MockGitHubRunner is an in-memory GitHubRunner for tests.
type MockGitHubRunner struct {
	CreateResult *PRResult
	ViewResult   *PRStatus

	ErrCreate error
	ErrView   error
	ErrMerge  error

	Calls []string
}

// Ensure MockGitHubRunner implements GitHubRunner.
var _ GitHubRunner = (*MockGitHubRunner)(nil)

// CreatePR returns the configured result.
func (m *MockGitHubRunner) CreatePR(_ context.Context, opts PRCreateOptions) (*PRResult, error) {
	m.Calls = append(m.Calls, "CreatePR("+opts.HeadBranch+")")
	if m.ErrCreate != nil {
		return nil, m.ErrCreate
	}
	if m.CreateResult != nil {
		return m.CreateResult, nil
	}
	return &PRResult{Number: 1, URL: "https://github.com/example/repo/pull/1", State: "open"}, nil
}

// ViewPR returns the configured status.
func (m *MockGitHubRunner) ViewPR(_ context.Context, prNumber int) (*PRStatus, error) {
	m.Calls = append(m.Calls, fmt.Sprintf("ViewPR(%d)", prNumber))
	if m.ErrView != nil {
		return nil, m.ErrView
	}
	if m.ViewResult != nil {
		return m.ViewResult, nil
	}
	return &PRStatus{Number: prNumber, State: "OPEN", Mergeable: true, ChecksPass: true, CIStatus: "success"}, nil
}

// MergePR records the call and returns the configured error.
func (m *MockGitHubRunner) MergePR(_ context.Context, prNumber int, mergeMethod string, _ bool) error {
	m.Calls = append(m.Calls, fmt.Sprintf("MergePR(%d,%s)", prNumber, mergeMethod))
	return m.ErrMerge
}

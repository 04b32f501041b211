package git

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	droverrors "github.com/droverhq/drover/internal/errors"
	"github.com/droverhq/drover/internal/testutil"
)

func TestClassifyGHError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want GHErrorType
	}{
		{"nil", nil, GHErrorNone},
		{"deadline", context.DeadlineExceeded, GHErrorNetwork},
		{"rate limit", errors.New("API rate limit exceeded for user"), GHErrorRateLimit},
		{"secondary rate limit", errors.New("you have exceeded a secondary rate limit"), GHErrorRateLimit},
		{"auth login", errors.New("To get started with GitHub CLI, please run: gh auth login"), GHErrorAuth},
		{"permission", errors.New("permission denied (403)"), GHErrorAuth},
		{"network", errors.New("dial tcp: no such host"), GHErrorNetwork},
		{"timeout", errors.New("request timeout after 30s"), GHErrorNetwork},
		{"not found", errors.New("GraphQL: Could not resolve to a PullRequest (404)"), GHErrorNotFound},
		{"other", testutil.ErrMockGHFailed, GHErrorOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classifyGHError(tt.err))
		})
	}
}

func TestGHErrorTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", GHErrorNone.String())
	assert.Equal(t, "auth", GHErrorAuth.String())
	assert.Equal(t, "rate_limit", GHErrorRateLimit.String())
	assert.Equal(t, "network", GHErrorNetwork.String())
	assert.Equal(t, "not_found", GHErrorNotFound.String())
	assert.Equal(t, "other", GHErrorOther.String())
}

func TestParsePRNumberFromURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 123, parsePRNumberFromURL("https://github.com/owner/repo/pull/123"))
	assert.Equal(t, 0, parsePRNumberFromURL("https://github.com/owner/repo"))
	assert.Equal(t, 0, parsePRNumberFromURL(""))
}

func TestLastNonEmptyLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://github.com/o/r/pull/9",
		lastNonEmptyLine("Creating pull request...\n\nhttps://github.com/o/r/pull/9\n\n"))
	assert.Equal(t, "only", lastNonEmptyLine("only"))
	assert.Empty(t, lastNonEmptyLine("  \n\n"))
}

func TestValidatePROptions(t *testing.T) {
	t.Parallel()

	logger := zerolog.Nop()

	opts := PRCreateOptions{Title: "t", Body: "b", HeadBranch: "update/x"}
	require.NoError(t, validatePROptions(&opts, logger))
	assert.Equal(t, "main", opts.BaseBranch)

	for _, tc := range []PRCreateOptions{
		{Body: "b", HeadBranch: "h"},
		{Title: "t", HeadBranch: "h"},
		{Title: "t", Body: "b"},
	} {
		err := validatePROptions(&tc, logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, droverrors.ErrEmptyValue)
	}
}

func TestParsePRStatusOutput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		json       string
		mergeable  bool
		checksPass bool
		ciStatus   string
	}{
		{
			name:       "clean and green",
			json:       `{"number":7,"state":"OPEN","url":"u","mergeable":"MERGEABLE","statusCheckRollup":[{"conclusion":"SUCCESS","state":"SUCCESS"}]}`,
			mergeable:  true,
			checksPass: true,
			ciStatus:   "success",
		},
		{
			name:       "no checks counts as success",
			json:       `{"number":7,"state":"OPEN","url":"u","mergeable":"MERGEABLE","statusCheckRollup":[]}`,
			mergeable:  true,
			checksPass: true,
			ciStatus:   "success",
		},
		{
			name:       "failing check",
			json:       `{"number":7,"state":"OPEN","url":"u","mergeable":"MERGEABLE","statusCheckRollup":[{"conclusion":"FAILURE","state":"COMPLETED"}]}`,
			mergeable:  true,
			checksPass: false,
			ciStatus:   "failure",
		},
		{
			name:       "pending check",
			json:       `{"number":7,"state":"OPEN","url":"u","mergeable":"MERGEABLE","statusCheckRollup":[{"conclusion":"","state":"IN_PROGRESS"}]}`,
			mergeable:  true,
			checksPass: false,
			ciStatus:   "pending",
		},
		{
			name:       "conflicting",
			json:       `{"number":7,"state":"OPEN","url":"u","mergeable":"CONFLICTING","statusCheckRollup":[]}`,
			mergeable:  false,
			checksPass: true,
			ciStatus:   "success",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			status, err := parsePRStatusOutput(tt.json)
			require.NoError(t, err)
			assert.Equal(t, 7, status.Number)
			assert.Equal(t, tt.mergeable, status.Mergeable)
			assert.Equal(t, tt.checksPass, status.ChecksPass)
			assert.Equal(t, tt.ciStatus, status.CIStatus)
		})
	}
}

func TestParsePRStatusOutputInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := parsePRStatusOutput("not json")
	require.Error(t, err)
}

func TestSummarizeChecksMixed(t *testing.T) {
	t.Parallel()

	// A failure anywhere wins over pending checks.
	status, pass := summarizeChecks([]ghStatusCheckEntry{
		{Conclusion: "", State: "IN_PROGRESS"},
		{Conclusion: "TIMED_OUT", State: "COMPLETED"},
	})
	assert.Equal(t, "failure", status)
	assert.False(t, pass)
}

func TestMergePRInvalidNumber(t *testing.T) {
	t.Parallel()

	r := NewGitHubRunner(".", zerolog.Nop())
	err := r.MergePR(context.Background(), 0, "squash", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, droverrors.ErrEmptyValue)
}

func TestViewPRInvalidNumber(t *testing.T) {
	t.Parallel()

	r := NewGitHubRunner(".", zerolog.Nop())
	_, err := r.ViewPR(context.Background(), -1)
	require.Error(t, err)
	assert.ErrorIs(t, err, droverrors.ErrEmptyValue)
}

func TestMockRunnersSatisfyInterfaces(t *testing.T) {
	t.Parallel()

	var _ Runner = (*MockRunner)(nil)
	var _ GitHubRunner = (*MockGitHubRunner)(nil)

	m := &MockGitHubRunner{}
	result, err := m.CreatePR(context.Background(), PRCreateOptions{HeadBranch: "b"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Number)
	assert.Equal(t, []string{fmt.Sprintf("CreatePR(%s)", "b")}, m.Calls)
}

// Package git provides git and gh CLI operations for drover.
// This file implements PR creation, status, and merge via the gh CLI.
package git

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/droverhq/drover/internal/ctxutil"
	droverrors "github.com/droverhq/drover/internal/errors"
)

// CLIGitHubRunner implements GitHubRunner using the gh CLI.
type CLIGitHubRunner struct {
	workDir string
	logger  zerolog.Logger
}

// Ensure CLIGitHubRunner implements GitHubRunner.
var _ GitHubRunner = (*CLIGitHubRunner)(nil)

// NewGitHubRunner creates a new CLIGitHubRunner for the given working directory.
func NewGitHubRunner(workDir string, logger zerolog.Logger) *CLIGitHubRunner {
	return &CLIGitHubRunner{workDir: workDir, logger: logger}
}

// prURLRegex extracts the PR number from a PR URL printed by gh pr create.
var prURLRegex = regexp.MustCompile(`/pull/(\d+)`)

// ghPRViewResponse represents the JSON response from gh pr view.
type ghPRViewResponse struct {
	Number            int                  `json:"number"`
	State             string               `json:"state"`
	URL               string               `json:"url"`
	Mergeable         string               `json:"mergeable"`
	StatusCheckRollup []ghStatusCheckEntry `json:"statusCheckRollup"`
}

// ghStatusCheckEntry represents a single status check in the rollup.
type ghStatusCheckEntry struct {
	Conclusion string `json:"conclusion"`
	State      string `json:"state"`
}

// CreatePR creates a pull request via gh CLI.
func (r *CLIGitHubRunner) CreatePR(ctx context.Context, opts PRCreateOptions) (*PRResult, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if err := validatePROptions(&opts, r.logger); err != nil {
		return nil, err
	}

	r.logger.Info().
		Str("title", opts.Title).
		Str("base", opts.BaseBranch).
		Str("head", opts.HeadBranch).
		Bool("draft", opts.Draft).
		Msg("creating pull request")

	args := []string{
		"pr", "create",
		"--title", opts.Title,
		"--body", opts.Body,
		"--base", opts.BaseBranch,
		"--head", opts.HeadBranch,
	}
	if opts.Draft {
		args = append(args, "--draft")
	}

	output, err := RunGHCommand(ctx, r.workDir, args...)
	if err != nil {
		errType := classifyGHError(err)
		switch errType {
		case GHErrorAuth:
			return nil, fmt.Errorf("pr creation failed: %w: %w", droverrors.ErrGHAuthFailed, err)
		case GHErrorRateLimit:
			return nil, fmt.Errorf("pr creation failed: %w: %w", droverrors.ErrGHRateLimited, err)
		default:
			return nil, fmt.Errorf("pr creation failed (%s): %w", errType, err)
		}
	}

	// gh pr create prints the PR URL on the last line
	url := lastNonEmptyLine(output)
	number := parsePRNumberFromURL(url)

	state := "open"
	if opts.Draft {
		state = "draft"
	}

	r.logger.Info().Int("pr_number", number).Str("url", url).Msg("pull request created")

	return &PRResult{Number: number, URL: url, State: state}, nil
}

// ViewPR returns the status of an existing PR including its CI check rollup.
func (r *CLIGitHubRunner) ViewPR(ctx context.Context, prNumber int) (*PRStatus, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	if prNumber <= 0 {
		return nil, fmt.Errorf("invalid PR number %d: %w", prNumber, droverrors.ErrEmptyValue)
	}

	args := []string{"pr", "view", strconv.Itoa(prNumber), "--json", "number,state,url,mergeable,statusCheckRollup"}
	output, err := RunGHCommand(ctx, r.workDir, args...)
	if err != nil {
		if classifyGHError(err) == GHErrorNotFound {
			return nil, fmt.Errorf("pr #%d: %w", prNumber, droverrors.ErrPRNotFound)
		}
		return nil, fmt.Errorf("failed to get pr status: %w", err)
	}

	return parsePRStatusOutput(output)
}

// MergePR merges a pull request using the specified merge method.
func (r *CLIGitHubRunner) MergePR(ctx context.Context, prNumber int, mergeMethod string, deleteBranch bool) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if prNumber <= 0 {
		return fmt.Errorf("invalid PR number %d: %w", prNumber, droverrors.ErrEmptyValue)
	}

	args := []string{"pr", "merge", strconv.Itoa(prNumber)}

	switch mergeMethod {
	case "merge":
		args = append(args, "--merge")
	case "rebase":
		args = append(args, "--rebase")
	default:
		args = append(args, "--squash")
	}

	if deleteBranch {
		args = append(args, "--delete-branch")
	} else {
		args = append(args, "--delete-branch=false")
	}

	_, err := RunGHCommand(ctx, r.workDir, args...)
	if err != nil {
		errType := classifyGHError(err)
		//nolint:exhaustive // Other error types handled by default case
		switch errType {
		case GHErrorNotFound:
			return fmt.Errorf("pr #%d: %w", prNumber, droverrors.ErrPRNotFound)
		case GHErrorAuth:
			return fmt.Errorf("merge failed - permission denied: %w", droverrors.ErrGHAuthFailed)
		default:
			return fmt.Errorf("failed to merge pr #%d: %w", prNumber, err)
		}
	}

	r.logger.Info().Int("pr_number", prNumber).Str("method", mergeMethod).Msg("pull request merged")
	return nil
}

// validatePROptions validates PR creation options and sets defaults.
func validatePROptions(opts *PRCreateOptions, logger zerolog.Logger) error {
	if opts.Title == "" {
		return fmt.Errorf("pr title cannot be empty: %w", droverrors.ErrEmptyValue)
	}
	if opts.Body == "" {
		return fmt.Errorf("pr body cannot be empty: %w", droverrors.ErrEmptyValue)
	}
	if opts.HeadBranch == "" {
		return fmt.Errorf("head branch cannot be empty: %w", droverrors.ErrEmptyValue)
	}
	if opts.BaseBranch == "" {
		opts.BaseBranch = "main"
		logger.Debug().Msg("using default base branch 'main'")
	}
	return nil
}

// parsePRStatusOutput parses the JSON from gh pr view into a PRStatus.
func parsePRStatusOutput(output string) (*PRStatus, error) {
	var resp ghPRViewResponse
	if err := json.Unmarshal([]byte(output), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse pr status: %w", err)
	}

	status := &PRStatus{
		Number:    resp.Number,
		State:     resp.State,
		URL:       resp.URL,
		Mergeable: strings.EqualFold(resp.Mergeable, "MERGEABLE"),
	}

	status.CIStatus, status.ChecksPass = summarizeChecks(resp.StatusCheckRollup)
	return status, nil
}

// summarizeChecks reduces the status check rollup to an overall status.
// An empty rollup counts as success: repositories without CI should not
// block the workflow.
func summarizeChecks(checks []ghStatusCheckEntry) (string, bool) {
	if len(checks) == 0 {
		return "success", true
	}

	pending := false
	for _, c := range checks {
		conclusion := strings.ToUpper(c.Conclusion)
		state := strings.ToUpper(c.State)

		switch {
		case conclusion == "FAILURE" || conclusion == "TIMED_OUT" || conclusion == "CANCELLED":
			return "failure", false
		case conclusion == "" && state != "SUCCESS":
			pending = true
		}
	}

	if pending {
		return "pending", false
	}
	return "success", true
}

// parsePRNumberFromURL extracts the PR number from a gh-printed PR URL.
// Returns 0 if the URL does not contain a recognizable number.
func parsePRNumberFromURL(url string) int {
	matches := prURLRegex.FindStringSubmatch(url)
	if len(matches) < 2 {
		return 0
	}
	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0
	}
	return n
}

// lastNonEmptyLine returns the last non-empty line of s.
func lastNonEmptyLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}

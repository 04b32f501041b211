// Package git provides git and gh CLI operations for drover.
// This file provides shared command execution utilities.
package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	droverrors "github.com/droverhq/drover/internal/errors"
)

// RunCommand executes a git command in the specified directory and returns its output.
// All errors are wrapped with ErrGitOperation and include stderr for debugging.
func RunCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	return runTool(ctx, workDir, "git", droverrors.ErrGitOperation, args...)
}

// RunGHCommand executes a gh command in the specified directory and returns its output.
// All errors are wrapped with ErrGitHubOperation and include stderr for debugging.
func RunGHCommand(ctx context.Context, workDir string, args ...string) (string, error) {
	return runTool(ctx, workDir, "gh", droverrors.ErrGitHubOperation, args...)
}

// runTool executes an external tool and returns trimmed stdout.
// Errors from the tool are propagated verbatim to the caller with the
// sentinel attached; drover never retries on its own.
func runTool(ctx context.Context, workDir, tool string, sentinel error, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, tool, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Check for context cancellation
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		// Include stderr in error for debugging, wrap with the tool sentinel
		if stderr.Len() > 0 {
			return "", fmt.Errorf("%s %s failed: %s: %w", tool, args[0], strings.TrimSpace(stderr.String()), sentinel)
		}
		return "", fmt.Errorf("%s %s failed: %w", tool, args[0], sentinel)
	}

	return strings.TrimSpace(stdout.String()), nil
}

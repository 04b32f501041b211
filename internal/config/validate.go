package config

import (
	"fmt"

	"github.com/droverhq/drover/internal/errors"
)

// validMergeMethods are the merge methods gh accepts.
//
//nolint:gochecknoglobals // immutable lookup
var validMergeMethods = map[string]bool{
	"squash": true,
	"merge":  true,
	"rebase": true,
}

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Git.BaseBranch == "" {
		return fmt.Errorf("git.base_branch must not be empty: %w", errors.ErrConfigInvalidGit)
	}
	if cfg.Git.Remote == "" {
		return fmt.Errorf("git.remote must not be empty: %w", errors.ErrConfigInvalidGit)
	}
	if !validMergeMethods[cfg.Git.MergeMethod] {
		return fmt.Errorf("git.merge_method %q must be squash, merge, or rebase: %w",
			cfg.Git.MergeMethod, errors.ErrConfigInvalidGit)
	}
	if len(cfg.Git.ProtectedBranches) == 0 {
		return fmt.Errorf("git.protected_branches must not be empty: %w", errors.ErrConfigInvalidGit)
	}
	if !cfg.Scan.Secrets && !cfg.Scan.Injection && !cfg.Scan.URLs {
		return fmt.Errorf("at least one scanner must be enabled: %w", errors.ErrConfigInvalidScan)
	}
	if cfg.Skills.Root == "" {
		return fmt.Errorf("skills.root must not be empty: %w", errors.ErrConfigInvalidGit)
	}
	return nil
}

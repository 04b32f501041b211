package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droverhq/drover/internal/errors"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "defaults pass",
			mutate: func(*Config) {},
		},
		{
			name:    "empty base branch",
			mutate:  func(c *Config) { c.Git.BaseBranch = "" },
			wantErr: errors.ErrConfigInvalidGit,
		},
		{
			name:    "empty remote",
			mutate:  func(c *Config) { c.Git.Remote = "" },
			wantErr: errors.ErrConfigInvalidGit,
		},
		{
			name:    "bad merge method",
			mutate:  func(c *Config) { c.Git.MergeMethod = "fast-forward" },
			wantErr: errors.ErrConfigInvalidGit,
		},
		{
			name:    "no protected branches",
			mutate:  func(c *Config) { c.Git.ProtectedBranches = nil },
			wantErr: errors.ErrConfigInvalidGit,
		},
		{
			name: "all scanners disabled",
			mutate: func(c *Config) {
				c.Scan.Secrets = false
				c.Scan.Injection = false
				c.Scan.URLs = false
			},
			wantErr: errors.ErrConfigInvalidScan,
		},
		{
			name:    "empty skills root",
			mutate:  func(c *Config) { c.Skills.Root = "" },
			wantErr: errors.ErrConfigInvalidGit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidMergeMethods(t *testing.T) {
	t.Parallel()

	for _, method := range []string{"squash", "merge", "rebase"} {
		cfg := DefaultConfig()
		cfg.Git.MergeMethod = method
		assert.NoError(t, Validate(cfg), method)
	}
}

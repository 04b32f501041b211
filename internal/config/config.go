// Package config manages drover configuration.
//
// Configuration merges four layers, highest precedence first: environment
// variables (DROVER_*), project config (.drover/config.yaml), global config
// (~/.drover/config.yaml), and built-in defaults.
package config

import (
	"github.com/droverhq/drover/internal/constants"
)

// Config is the complete drover configuration.
type Config struct {
	// Git holds branch and commit settings.
	Git GitConfig `yaml:"git" mapstructure:"git"`
	// Skills holds skill discovery settings.
	Skills SkillsConfig `yaml:"skills" mapstructure:"skills"`
	// Scan holds diff review settings.
	Scan ScanConfig `yaml:"scan" mapstructure:"scan"`
	// Stats holds usage tracking settings.
	Stats StatsConfig `yaml:"stats" mapstructure:"stats"`
}

// GitConfig holds branch and commit settings.
type GitConfig struct {
	// BaseBranch is the PR base branch.
	BaseBranch string `yaml:"base_branch" mapstructure:"base_branch"`
	// ProtectedBranches are branches drover never commits to directly.
	ProtectedBranches []string `yaml:"protected_branches" mapstructure:"protected_branches"`
	// SignCommits enables GPG signing of commits.
	SignCommits bool `yaml:"sign_commits" mapstructure:"sign_commits"`
	// Remote is the push target.
	Remote string `yaml:"remote" mapstructure:"remote"`
	// MergeMethod is the PR merge method: squash, merge, or rebase.
	MergeMethod string `yaml:"merge_method" mapstructure:"merge_method"`
	// DeleteBranchOnMerge removes the head branch after a merge.
	DeleteBranchOnMerge bool `yaml:"delete_branch_on_merge" mapstructure:"delete_branch_on_merge"`
}

// SkillsConfig holds skill discovery settings.
type SkillsConfig struct {
	// Root is the directory containing skill directories.
	Root string `yaml:"root" mapstructure:"root"`
}

// ScanConfig holds diff review settings.
type ScanConfig struct {
	// Secrets enables the credential scanner.
	Secrets bool `yaml:"secrets" mapstructure:"secrets"`
	// Injection enables the prompt-injection scanner.
	Injection bool `yaml:"injection" mapstructure:"injection"`
	// URLs enables the external-URL scanner.
	URLs bool `yaml:"urls" mapstructure:"urls"`
}

// StatsConfig holds usage tracking settings.
type StatsConfig struct {
	// HistoryFile is the path of the JSON snapshot history.
	HistoryFile string `yaml:"history_file" mapstructure:"history_file"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			BaseBranch:          constants.DefaultBaseBranch,
			ProtectedBranches:   append([]string(nil), constants.DefaultProtectedBranches...),
			SignCommits:         true,
			Remote:              constants.DefaultRemote,
			MergeMethod:         "squash",
			DeleteBranchOnMerge: true,
		},
		Skills: SkillsConfig{
			Root: constants.DefaultSkillsRoot,
		},
		Scan: ScanConfig{
			Secrets:   true,
			Injection: true,
			URLs:      true,
		},
		Stats: StatsConfig{
			HistoryFile: constants.StatsHistoryFileName,
		},
	}
}

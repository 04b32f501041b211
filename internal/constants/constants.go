// Package constants provides centralized constant values used throughout drover.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

// Directory names and paths used by drover for organizing data.
const (
	// DroverHome is the hidden directory name where drover stores its data.
	// This directory is created in the user's home directory.
	DroverHome = ".drover"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// CLILogFileName is the name of the global CLI log file.
	CLILogFileName = "drover.log"

	// ConfigFileName is the name of the YAML configuration file.
	ConfigFileName = "config.yaml"

	// StatsHistoryFileName is the default name of the usage stats history file.
	StatsHistoryFileName = ".stats-history.json"
)

// Log rotation settings for the global CLI log file.
const (
	// LogMaxSizeMB is the maximum size of a log file before rotation, in megabytes.
	LogMaxSizeMB = 10

	// LogMaxBackups is the maximum number of rotated log files to keep.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age of rotated log files, in days.
	LogMaxAgeDays = 30

	// LogCompress enables gzip compression of rotated log files.
	LogCompress = true
)

// DateFormatCompact is the date-only format embedded in generated branch names.
const DateFormatCompact = "20060102"

// Git defaults.
const (
	// DefaultBaseBranch is the default base branch for pull requests.
	DefaultBaseBranch = "main"

	// DefaultRemote is the default git remote name.
	DefaultRemote = "origin"
)

// DefaultProtectedBranches are the branches drover never commits to directly.
// A pre-commit run on any of these always creates a feature branch first.
//
//nolint:gochecknoglobals // Package-level constant-like slice
var DefaultProtectedBranches = []string{"main", "master"}

// DefaultSkillsRoot is the default directory searched for skill documents.
const DefaultSkillsRoot = "skills"

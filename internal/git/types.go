// Package git provides git and gh CLI operations for drover.
// This file defines types used by the Runner.
package git

// Status represents the current state of a git working tree.
type Status struct {
	Staged    []FileChange // Files staged for commit
	Unstaged  []FileChange // Modified but not staged
	Untracked []string     // Untracked files
	Branch    string       // Current branch name, empty when detached
	Detached  bool         // True when HEAD does not point at a branch
	Ahead     int          // Commits ahead of upstream
	Behind    int          // Commits behind upstream
}

// FileChange represents a changed file in the working tree.
type FileChange struct {
	Path    string     // File path relative to repo root
	Status  FileStatus // Type of change (Added, Modified, Deleted, etc.)
	OldPath string     // For renamed files, the original path
}

// FileStatus represents the porcelain status letter for a file.
type FileStatus string

// File status constants for git status.
const (
	StatusAdded    FileStatus = "A"
	StatusModified FileStatus = "M"
	StatusDeleted  FileStatus = "D"
	StatusRenamed  FileStatus = "R"
	StatusCopied   FileStatus = "C"
	StatusUnmerged FileStatus = "U"
)

// Identity holds the git signing identity read from git config.
type Identity struct {
	// Email is the configured user.email.
	Email string
	// SigningKey is the configured user.signingkey.
	SigningKey string
}

// IsComplete returns true when both email and signing key are configured.
func (id Identity) IsComplete() bool {
	return id.Email != "" && id.SigningKey != ""
}

// IsClean returns true if the working tree has no changes.
func (s *Status) IsClean() bool {
	return len(s.Staged) == 0 && len(s.Unstaged) == 0 && len(s.Untracked) == 0
}

// HasStagedChanges returns true if there are staged changes ready to commit.
func (s *Status) HasStagedChanges() bool {
	return len(s.Staged) > 0
}

// HasUnstagedChanges returns true if there are unstaged changes.
func (s *Status) HasUnstagedChanges() bool {
	return len(s.Unstaged) > 0
}

// HasUntrackedFiles returns true if there are untracked files.
func (s *Status) HasUntrackedFiles() bool {
	return len(s.Untracked) > 0
}

// ChangedPaths returns every changed path in diff order: staged first,
// then unstaged, then untracked. Duplicates are removed preserving the
// first occurrence, matching the ordering the classifier expects.
func (s *Status) ChangedPaths() []string {
	seen := make(map[string]bool, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))
	paths := make([]string, 0, len(s.Staged)+len(s.Unstaged)+len(s.Untracked))

	appendPath := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		paths = append(paths, p)
	}

	for _, f := range s.Staged {
		appendPath(f.Path)
	}
	for _, f := range s.Unstaged {
		appendPath(f.Path)
	}
	for _, p := range s.Untracked {
		appendPath(p)
	}
	return paths
}

package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitStatus(t *testing.T) {
	t.Parallel()

	output := "## update/x...origin/update/x [ahead 2, behind 1]\n" +
		"M  staged.go\n" +
		" M unstaged.go\n" +
		"A  added.go\n" +
		"?? new.txt\n" +
		"R  old.go -> renamed.go\n"

	status := parseGitStatus(output)

	assert.Equal(t, "update/x", status.Branch)
	assert.False(t, status.Detached)
	assert.Equal(t, 2, status.Ahead)
	assert.Equal(t, 1, status.Behind)

	require.Len(t, status.Staged, 3)
	assert.Equal(t, FileChange{Path: "staged.go", Status: StatusModified}, status.Staged[0])
	assert.Equal(t, FileChange{Path: "added.go", Status: StatusAdded}, status.Staged[1])
	assert.Equal(t, FileChange{Path: "renamed.go", Status: StatusRenamed, OldPath: "old.go"}, status.Staged[2])

	require.Len(t, status.Unstaged, 1)
	assert.Equal(t, "unstaged.go", status.Unstaged[0].Path)

	require.Len(t, status.Untracked, 1)
	assert.Equal(t, "new.txt", status.Untracked[0])
}

func TestParseGitStatusDetachedHead(t *testing.T) {
	t.Parallel()

	status := parseGitStatus("## HEAD (no branch)\n M file.go\n")
	assert.True(t, status.Detached)
	assert.Empty(t, status.Branch)
	assert.Len(t, status.Unstaged, 1)
}

func TestParseGitStatusCleanTree(t *testing.T) {
	t.Parallel()

	status := parseGitStatus("## main...origin/main\n")
	assert.Equal(t, "main", status.Branch)
	assert.True(t, status.IsClean())
	assert.Zero(t, status.Ahead)
}

func TestParseGitStatusNoUpstream(t *testing.T) {
	t.Parallel()

	status := parseGitStatus("## skill/20260314-search\n?? skills/search/SKILL.md\n")
	assert.Equal(t, "skill/20260314-search", status.Branch)
	assert.Len(t, status.Untracked, 1)
}

func TestParseAheadBehind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		info   string
		prefix string
		want   int
	}{
		{"ahead 3, behind 2", "ahead ", 3},
		{"ahead 3, behind 2", "behind ", 2},
		{"ahead 5", "behind ", 0},
		{"behind 7", "behind ", 7},
		{"garbage", "ahead ", 0},
	}

	for _, tt := range tests {
		t.Run(tt.info+"/"+tt.prefix, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, parseAheadBehind(tt.info, tt.prefix))
		})
	}
}

func TestChangedPathsOrderAndDedup(t *testing.T) {
	t.Parallel()

	status := &Status{
		Staged: []FileChange{
			{Path: "a.go", Status: StatusModified},
			{Path: "b.go", Status: StatusAdded},
		},
		Unstaged: []FileChange{
			{Path: "a.go", Status: StatusModified}, // staged and unstaged
			{Path: "c.go", Status: StatusModified},
		},
		Untracked: []string{"d.txt", "c.go"},
	}

	assert.Equal(t, []string{"a.go", "b.go", "c.go", "d.txt"}, status.ChangedPaths())
}

func TestIdentityIsComplete(t *testing.T) {
	t.Parallel()

	assert.False(t, Identity{}.IsComplete())
	assert.False(t, Identity{Email: "a@b.c"}.IsComplete())
	assert.False(t, Identity{SigningKey: "KEY"}.IsComplete())
	assert.True(t, Identity{Email: "a@b.c", SigningKey: "KEY"}.IsComplete())
}

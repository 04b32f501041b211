package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatsFormatCompact(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats *Stats
		want  string
	}{
		{"nil", nil, ""},
		{"empty", &Stats{}, ""},
		{"modified only", &Stats{ModifiedFiles: 3, Additions: 120, Deletions: 45}, "3M +120/-45"},
		{"new only", &Stats{NewFiles: 2}, "2N"},
		{"new and modified", &Stats{NewFiles: 1, ModifiedFiles: 2, Additions: 10, Deletions: 0}, "1N 2M +10/-0"},
		{"lines only", &Stats{Additions: 5, Deletions: 1}, "+5/-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.stats.FormatCompact())
		})
	}
}

func TestStatsIsEmpty(t *testing.T) {
	t.Parallel()

	var nilStats *Stats
	assert.True(t, nilStats.IsEmpty())
	assert.True(t, (&Stats{}).IsEmpty())
	assert.False(t, (&Stats{NewFiles: 1}).IsEmpty())
}

func TestParseStatusForCounts(t *testing.T) {
	t.Parallel()

	output := "M  changed.go\n" +
		" M worktree.go\n" +
		"A  brand_new.go\n" +
		"?? untracked.txt\n" +
		"D  removed.go\n"

	newFiles, modified := parseStatusForCounts(output)
	assert.Equal(t, 2, newFiles)
	assert.Equal(t, 3, modified)
}

func TestParseNumstat(t *testing.T) {
	t.Parallel()

	output := "10\t2\tmain.go\n" +
		"-\t-\timage.png\n" +
		"5\t0\tREADME.md\n"

	add, del := parseNumstat(output)
	assert.Equal(t, 15, add)
	assert.Equal(t, 2, del)
}

func TestParseNumstatEmpty(t *testing.T) {
	t.Parallel()

	add, del := parseNumstat("")
	assert.Zero(t, add)
	assert.Zero(t, del)
}

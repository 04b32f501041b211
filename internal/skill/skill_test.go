package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	droverrors "github.com/droverhq/drover/internal/errors"
)

// writeSkill creates a skill directory with a SKILL.md under root.
func writeSkill(t *testing.T, root, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	require.NoError(t, os.MkdirAll(skillDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(skillDir, FileName), []byte(content), 0o600))
}

const searchSkill = `---
name: web-search
description: Search the web and summarize results
---

# Web Search

Use the search tool.
`

func TestStoreList(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkill(t, root, "search", searchSkill)
	writeSkill(t, root, "archive", "---\nname: archive\ndescription: Archive pages\n---\nBody.\n")
	// A stray file at the root is not a skill.
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.md"), []byte("x"), 0o600))

	store := NewStore(root)
	skills, err := store.List()
	require.NoError(t, err)
	require.Len(t, skills, 2)

	// Sorted by directory name.
	assert.Equal(t, "archive", skills[0].Dir)
	assert.Equal(t, "search", skills[1].Dir)
	assert.Equal(t, "web-search", skills[1].Metadata.Name)
	assert.Equal(t, "Search the web and summarize results", skills[1].Metadata.Description)
	assert.Contains(t, skills[1].Body, "# Web Search")
}

func TestStoreListMissingRoot(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "absent"))
	skills, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, skills)
}

func TestStoreListSkipsDirWithoutSkillFile(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o750))
	writeSkill(t, root, "real", searchSkill)

	store := NewStore(root)
	skills, err := store.List()
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "real", skills[0].Dir)
}

func TestStoreGetByDirOrName(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeSkill(t, root, "search", searchSkill)
	store := NewStore(root)

	byDir, err := store.Get("search")
	require.NoError(t, err)
	assert.Equal(t, "web-search", byDir.Metadata.Name)

	byName, err := store.Get("web-search")
	require.NoError(t, err)
	assert.Equal(t, "search", byName.Dir)

	_, err = store.Get("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, droverrors.ErrSkillNotFound)
}

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()

	t.Run("no frontmatter", func(t *testing.T) {
		t.Parallel()
		meta, body, err := splitFrontmatter([]byte("# Just markdown\n"))
		require.NoError(t, err)
		assert.Empty(t, meta.Name)
		assert.Equal(t, "# Just markdown\n", body)
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		t.Parallel()
		_, _, err := splitFrontmatter([]byte("---\nname: x\n"))
		require.Error(t, err)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()
		_, _, err := splitFrontmatter([]byte("---\n: : :\n---\nbody\n"))
		require.Error(t, err)
	})
}

func TestDisplayNameFallsBackToDir(t *testing.T) {
	t.Parallel()

	sk := &Skill{Dir: "search"}
	assert.Equal(t, "search", sk.DisplayName())

	sk.Metadata.Name = "web-search"
	assert.Equal(t, "web-search", sk.DisplayName())
}

func TestRenderPlain(t *testing.T) {
	t.Parallel()

	sk := &Skill{Body: "# Title\n\nText.\n"}
	out, err := Render(sk, 80, false)
	require.NoError(t, err)
	assert.Equal(t, sk.Body, out)
}

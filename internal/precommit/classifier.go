// Package precommit implements the pre-commit branch classifier.
//
// Given the repository state (current branch, signing identity, changed
// files), it decides whether a feature branch must be created before
// committing and computes a semantic branch name of the form
// "<type>/<YYYYMMDD>-<slug>". The logic is pure: callers pass state in
// rather than having this package read the ambient repository, which keeps
// it unit-testable without a real working tree.
package precommit

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/droverhq/drover/internal/constants"
)

// ChangeType categorizes a changed-file set for branch naming.
type ChangeType string

// Change type values in priority order: skill > test > docs > update.
const (
	// ChangeSkill is assigned when any path is under the skills root.
	ChangeSkill ChangeType = "skill"
	// ChangeTest is assigned when any path carries a .test. or .spec. marker.
	ChangeTest ChangeType = "test"
	// ChangeDocs is assigned when any path is under docs/ or is a README/CHANGELOG.
	ChangeDocs ChangeType = "docs"
	// ChangeUpdate is the default fallback.
	ChangeUpdate ChangeType = "update"
)

// testMarkerRegex matches test/spec markers in file names (foo.test.ts, bar.spec.js).
var testMarkerRegex = regexp.MustCompile(`\.(test|spec)\.`)

// slugStripRegex matches characters that are neither lowercase alphanumerics nor hyphens.
var slugStripRegex = regexp.MustCompile(`[^a-z0-9-]+`)

// Classifier assigns a ChangeType to a changed-file set and derives branch names.
type Classifier struct {
	// SkillsRoot is the directory whose contents classify as skill changes.
	SkillsRoot string
}

// NewClassifier creates a Classifier. An empty skillsRoot uses the default.
func NewClassifier(skillsRoot string) *Classifier {
	if skillsRoot == "" {
		skillsRoot = constants.DefaultSkillsRoot
	}
	return &Classifier{SkillsRoot: skillsRoot}
}

// Classify assigns a ChangeType to the changed-file set.
//
// Priority when multiple patterns match across the set:
// skill > test > docs > update. A single skills-root path anywhere in the
// set wins over test or docs matches on other paths.
func (c *Classifier) Classify(files []string) ChangeType {
	skillsPrefix := strings.TrimSuffix(c.SkillsRoot, "/") + "/"

	result := ChangeUpdate
	for _, f := range files {
		if f == "" {
			continue
		}
		switch {
		case strings.HasPrefix(f, skillsPrefix):
			// Highest priority, nothing can override it.
			return ChangeSkill
		case testMarkerRegex.MatchString(f):
			result = higherPriority(result, ChangeTest)
		case isDocsPath(f):
			result = higherPriority(result, ChangeDocs)
		}
	}
	return result
}

// BranchName derives the branch name for the given change type and file set.
// If override is non-empty it is returned verbatim, short-circuiting
// classification. Otherwise the name is "<type>/<YYYYMMDD>-<slug>" where the
// slug comes from the first changed file's basename, falling back to its
// parent directory name, falling back to "update".
//
// The date component means two runs on either side of midnight produce
// different names. That is intentional: branch names must be unique per run.
func (c *Classifier) BranchName(changeType ChangeType, files []string, override string, now time.Time) string {
	if override != "" {
		return override
	}

	date := now.Format(constants.DateFormatCompact)
	slug := "update"

	if len(files) > 0 && files[0] != "" {
		first := files[0]

		base := filepath.Base(first)
		base = strings.TrimSuffix(base, filepath.Ext(base))

		if s := Slugify(base); s != "" {
			slug = s
		} else if dir := filepath.Base(filepath.Dir(first)); dir != "." && dir != "/" {
			if s := Slugify(dir); s != "" {
				slug = s
			}
		}
	}

	return string(changeType) + "/" + date + "-" + slug
}

// Slugify converts a name into a branch-safe slug:
// unicode-normalized (diacritics stripped), lowercased, runs of
// non-alphanumerics collapsed into single hyphens, trimmed.
//
// Example: "My Féature v2.0!" -> "my-feature-v2-0"
func Slugify(name string) string {
	// NFKD decomposition separates base characters from combining marks
	// so accented letters survive as their ASCII base.
	decomposed := norm.NFKD.String(name)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue // drop combining marks
		}
		b.WriteRune(unicode.ToLower(r))
	}

	s := slugStripRegex.ReplaceAllString(b.String(), "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}

// higherPriority returns the higher-priority of two change types.
func higherPriority(a, b ChangeType) ChangeType {
	if priorityOf(a) <= priorityOf(b) {
		return a
	}
	return b
}

// priorityOf maps a change type to its rank; lower is higher priority.
func priorityOf(t ChangeType) int {
	switch t {
	case ChangeSkill:
		return 0
	case ChangeTest:
		return 1
	case ChangeDocs:
		return 2
	case ChangeUpdate:
		return 3
	}
	return 3
}

// isDocsPath reports whether the path classifies as documentation.
func isDocsPath(path string) bool {
	if strings.HasPrefix(path, "docs/") {
		return true
	}
	base := filepath.Base(path)
	return strings.HasPrefix(base, "README") || strings.HasPrefix(base, "CHANGELOG")
}

// Package skill discovers and renders skill documents.
//
// A skill is a SKILL.md file under the skills root, one directory per skill,
// with YAML frontmatter carrying its name and description.
package skill

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	droverrors "github.com/droverhq/drover/internal/errors"
)

// FileName is the canonical skill document name inside a skill directory.
const FileName = "SKILL.md"

// Metadata is the YAML frontmatter of a skill document.
type Metadata struct {
	// Name is the skill's identifier.
	Name string `yaml:"name"`
	// Description is a one-line summary shown in listings.
	Description string `yaml:"description"`
}

// Skill is a discovered skill document.
type Skill struct {
	// Metadata is the parsed frontmatter.
	Metadata Metadata
	// Dir is the skill's directory name under the skills root.
	Dir string
	// Path is the full path to the SKILL.md file.
	Path string
	// Body is the markdown content after the frontmatter.
	Body string
}

// DisplayName returns the frontmatter name, falling back to the directory name.
func (s *Skill) DisplayName() string {
	if s.Metadata.Name != "" {
		return s.Metadata.Name
	}
	return s.Dir
}

// Store discovers skills under a root directory.
type Store struct {
	root string
}

// NewStore creates a Store over the given skills root.
func NewStore(root string) *Store {
	return &Store{root: root}
}

// List discovers every skill under the root, sorted by directory name.
// A missing root yields an empty list, not an error: a repo without skills
// is a valid repo.
func (s *Store) List() ([]*Skill, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read skills root %q: %w", s.root, err)
	}

	var skills []*Skill
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(s.root, entry.Name(), FileName)
		sk, err := Load(path)
		if err != nil {
			// Skip directories without a parseable SKILL.md rather than
			// failing the whole listing.
			continue
		}
		sk.Dir = entry.Name()
		skills = append(skills, sk)
	}

	sort.Slice(skills, func(i, j int) bool {
		return skills[i].Dir < skills[j].Dir
	})
	return skills, nil
}

// Get returns the skill whose directory or frontmatter name matches.
func (s *Store) Get(name string) (*Skill, error) {
	skills, err := s.List()
	if err != nil {
		return nil, err
	}
	for _, sk := range skills {
		if sk.Dir == name || sk.Metadata.Name == name {
			return sk, nil
		}
	}
	return nil, fmt.Errorf("skill %q: %w", name, droverrors.ErrSkillNotFound)
}

// Load reads and parses a single skill document.
func Load(path string) (*Skill, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from directory walk
	if err != nil {
		return nil, fmt.Errorf("failed to read skill file: %w", err)
	}

	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &Skill{
		Metadata: meta,
		Dir:      filepath.Base(filepath.Dir(path)),
		Path:     path,
		Body:     body,
	}, nil
}

// splitFrontmatter separates the YAML frontmatter from the markdown body.
// A document without frontmatter parses as empty metadata plus full body.
func splitFrontmatter(data []byte) (Metadata, string, error) {
	var meta Metadata

	content := string(data)
	if !strings.HasPrefix(content, "---\n") && !strings.HasPrefix(content, "---\r\n") {
		return meta, content, nil
	}

	rest := content[strings.Index(content, "\n")+1:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx < 0 {
		return meta, "", fmt.Errorf("unterminated frontmatter")
	}

	front := rest[:endIdx+1]
	body := rest[endIdx+1:]
	if nl := strings.Index(body, "\n"); nl >= 0 {
		body = body[nl+1:]
	} else {
		body = ""
	}

	dec := yaml.NewDecoder(bytes.NewReader([]byte(front)))
	if err := dec.Decode(&meta); err != nil {
		return Metadata{}, "", fmt.Errorf("invalid frontmatter: %w", err)
	}
	return meta, body, nil
}

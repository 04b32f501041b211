package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Snapshot is one recorded set of entries with its capture time.
type Snapshot struct {
	// Timestamp records when the snapshot was taken, UTC.
	Timestamp time.Time `json:"timestamp"`
	// Entries are the usage entries at that moment.
	Entries []Entry `json:"entries"`
}

// Delta reports the change in one entry between two snapshots.
type Delta struct {
	// Name identifies the entry.
	Name string `json:"name"`
	// Tokens is the current token count.
	Tokens int64 `json:"tokens"`
	// CostCents is the current cost in cents.
	CostCents int64 `json:"cost_cents"`
	// TokensDelta is the change since the previous snapshot.
	// Zero for entries seen for the first time.
	TokensDelta int64 `json:"tokens_delta"`
	// CostCentsDelta is the cost change since the previous snapshot.
	CostCentsDelta int64 `json:"cost_cents_delta"`
	// New is true when the entry was not in the previous snapshot.
	New bool `json:"new"`
}

// History persists snapshots to a JSON file.
type History struct {
	path string
}

// NewHistory creates a History backed by the given file path.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Load reads all recorded snapshots. A missing file is an empty history.
func (h *History) Load() ([]Snapshot, error) {
	data, err := os.ReadFile(h.path) //nolint:gosec // path from config
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read stats history: %w", err)
	}

	var snapshots []Snapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("failed to parse stats history %q: %w", h.path, err)
	}
	return snapshots, nil
}

// Record appends a snapshot and returns per-entry deltas against the last
// recorded one. When the entries are identical to the latest snapshot the
// file is left untouched and saved is false.
func (h *History) Record(entries []Entry, now time.Time) (deltas []Delta, saved bool, err error) {
	snapshots, err := h.Load()
	if err != nil {
		return nil, false, err
	}

	var previous []Entry
	if len(snapshots) > 0 {
		previous = snapshots[len(snapshots)-1].Entries
	}

	deltas = Diff(previous, entries)

	if entriesEqual(previous, entries) {
		return deltas, false, nil
	}

	snapshots = append(snapshots, Snapshot{Timestamp: now.UTC(), Entries: entries})
	if err := h.save(snapshots); err != nil {
		return nil, false, err
	}
	return deltas, true, nil
}

// save writes the snapshots atomically: temp file in the same directory,
// then rename.
func (h *History) save(snapshots []Snapshot) error {
	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode stats history: %w", err)
	}

	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".stats-*")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write stats history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close stats history: %w", err)
	}
	if err := os.Rename(tmpName, h.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace stats history: %w", err)
	}
	return nil
}

// Diff computes per-entry deltas of current against previous, in current's
// order. Entries absent from previous are marked New with zero deltas.
func Diff(previous, current []Entry) []Delta {
	prevByName := make(map[string]Entry, len(previous))
	for _, e := range previous {
		prevByName[e.Name] = e
	}

	deltas := make([]Delta, 0, len(current))
	for _, e := range current {
		d := Delta{Name: e.Name, Tokens: e.Tokens, CostCents: e.CostCents}
		if prev, ok := prevByName[e.Name]; ok {
			d.TokensDelta = e.Tokens - prev.Tokens
			d.CostCentsDelta = e.CostCents - prev.CostCents
		} else {
			d.New = true
		}
		deltas = append(deltas, d)
	}
	return deltas
}

// entriesEqual reports whether two entry sets are identical in order and value.
func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

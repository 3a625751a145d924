// Package viewstate saves the panel's expansion state between sessions,
// one gzip'd gob snapshot per workspace
package viewstate

import (
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lumipallolabs/imagedive/internal/grouper"
	"github.com/zeebo/xxh3"
)

// ErrNoSnapshot is returned when a workspace has nothing saved yet
var ErrNoSnapshot = errors.New("no saved view state")

// Snapshot is the persisted expansion of projects and groups, by key ID
type Snapshot struct {
	Saved    time.Time
	Roots    []string
	Expanded map[uint64]bool
}

// FromState converts a live state for saving
func FromState(roots []string, state grouper.State) Snapshot {
	snap := Snapshot{
		Saved:    time.Now(),
		Roots:    append([]string(nil), roots...),
		Expanded: make(map[uint64]bool, len(state)),
	}
	for k, expanded := range state {
		snap.Expanded[k.ID()] = expanded
	}
	return snap
}

// State resolves the snapshot against a tree's keys. Keys of the tree that
// the snapshot does not know are left out.
func (s Snapshot) State(t *grouper.Tree) grouper.State {
	state := make(grouper.State)
	if t == nil {
		return state
	}
	add := func(k grouper.Key) {
		if expanded, ok := s.Expanded[k.ID()]; ok {
			state[k] = expanded
		}
	}
	for _, p := range t.Projects {
		add(p.Key)
		for _, g := range p.Groups {
			add(g.Key)
		}
	}
	return state
}

// Store handles saving and loading snapshots
type Store struct {
	dir string
}

// New creates a store in the given directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// DefaultDir returns the default state directory
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".imagedive"
	}
	return filepath.Join(home, ".imagedive", "state")
}

// WorkspaceID names a workspace by its sorted roots
func WorkspaceID(roots []string) string {
	sorted := append([]string(nil), roots...)
	sort.Strings(sorted)
	return fmt.Sprintf("%016x", xxh3.HashString(strings.Join(sorted, "\x00")))
}

func (s *Store) path(roots []string) string {
	return filepath.Join(s.dir, WorkspaceID(roots)+".gob.gz")
}

// Save writes the snapshot for its roots, replacing any previous one
func (s *Store) Save(snap Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	path := s.path(snap.Roots)
	tmp := path + ".tmp"

	file, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	gzWriter := gzip.NewWriter(file)
	encodeErr := gob.NewEncoder(gzWriter).Encode(snap)
	closeErr := errors.Join(gzWriter.Close(), file.Close())
	if encodeErr != nil || closeErr != nil {
		os.Remove(tmp)
		if encodeErr != nil {
			return fmt.Errorf("encode: %w", encodeErr)
		}
		return fmt.Errorf("close: %w", closeErr)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Load reads the snapshot saved for roots
func (s *Store) Load(roots []string) (Snapshot, error) {
	file, err := os.Open(s.path(roots))
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, ErrNoSnapshot
		}
		return Snapshot{}, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return Snapshot{}, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzReader.Close()

	var snap Snapshot
	if err := gob.NewDecoder(gzReader).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode: %w", err)
	}
	return snap, nil
}

// Timestamp returns when the snapshot for roots was saved
func (s *Store) Timestamp(roots []string) (time.Time, error) {
	snap, err := s.Load(roots)
	if err != nil {
		return time.Time{}, err
	}
	return snap.Saved, nil
}

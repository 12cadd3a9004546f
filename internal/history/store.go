package history

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/felixgeelhaar/airstrip/internal/domain/pipeline"
	"github.com/felixgeelhaar/airstrip/internal/ports"
)

// ErrNoRuns is returned when the store holds no entries.
var ErrNoRuns = errors.New("no runs recorded")

// DefaultDir returns the XDG state location for run reports.
func DefaultDir() string {
	return filepath.Join(xdg.StateHome, "airstrip", "runs")
}

// Store persists run reports as one JSON document per run.
type Store struct {
	fs  ports.FileSystem
	dir string
	mu  sync.Mutex
}

// NewStore creates a Store writing to dir through fs.
func NewStore(fs ports.FileSystem, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Save captures a finished run report.
func (s *Store) Save(_ context.Context, report pipeline.RunReport) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return Entry{}, err
	}

	entry := NewEntry(report)
	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return Entry{}, err
	}

	path := filepath.Join(s.dir, entry.ID+".json")
	if err := s.fs.WriteFile(path, data, 0o644); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// List returns all captured runs, newest first. Files that are not
// parseable run documents are skipped.
func (s *Store) List(_ context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.list()
}

// Latest returns the most recent run, or ErrNoRuns.
func (s *Store) Latest(_ context.Context) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.list()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNoRuns
	}
	return entries[0], nil
}

// Clear removes all captured runs and returns how many were removed.
func (s *Store) Clear(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.list()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if err := s.fs.Remove(filepath.Join(s.dir, entry.ID+".json")); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func (s *Store) list() ([]Entry, error) {
	if !s.fs.Exists(s.dir) {
		return nil, nil
	}

	dirEntries, err := s.fs.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir || !strings.HasSuffix(dirEntry.Name, ".json") {
			continue
		}
		data, err := s.fs.ReadFile(filepath.Join(s.dir, dirEntry.Name))
		if err != nil {
			continue
		}
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil || entry.ID == "" {
			continue
		}
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StartedAt.After(entries[j].StartedAt)
	})
	return entries, nil
}

package completion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/dith08/FinBits-sub000/internal/logger"
	"github.com/dith08/FinBits-sub000/internal/models"
)

// fileData is the on-disk layout: one table per kind under a stable,
// kind-specific key so habit and to-do completions never collide.
// Timestamps are RFC 3339 strings carrying the local offset at the time
// of the toggle.
type fileData struct {
	Habits map[int]string `json:"habit_completions"`
	Todos  map[int]string `json:"todo_completions"`
}

// FileStore keeps the completion table in a single JSON file. The file
// is read lazily on first access and rewritten in full on every Set;
// a corrupt or missing file reads as empty rather than failing.
type FileStore struct {
	path   string
	data   *fileData
	loaded bool
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Get(kind models.Kind) map[int]time.Time {
	s.load()

	out := make(map[int]time.Time)
	for id, raw := range s.table(kind) {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// A single bad entry is dropped, not fatal; the periodic
			// sweep re-creates state from user action.
			logger.Warn("Dropping malformed completion timestamp", "kind", kind, "id", id, "value", raw)
			continue
		}
		out[id] = ts
	}
	return out
}

func (s *FileStore) Set(kind models.Kind, itemID int, completedAt *time.Time) {
	s.load()

	table := s.table(kind)
	if completedAt == nil {
		delete(table, itemID)
	} else {
		table[itemID] = completedAt.Format(time.RFC3339)
	}
	s.save()
}

func (s *FileStore) table(kind models.Kind) map[int]string {
	if kind == models.KindTodo {
		return s.data.Todos
	}
	return s.data.Habits
}

func (s *FileStore) load() {
	if s.loaded {
		return
	}
	s.loaded = true
	s.data = &fileData{
		Habits: make(map[int]string),
		Todos:  make(map[int]string),
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Failed to read completion store, starting empty", "path", s.path, "error", err)
		}
		return
	}

	var parsed fileData
	if err := json.Unmarshal(raw, &parsed); err != nil {
		// Corrupted serialization is treated as an empty table, never
		// propagated to the caller.
		logger.Warn("Completion store is corrupt, starting empty", "path", s.path, "error", err)
		return
	}

	if parsed.Habits != nil {
		s.data.Habits = parsed.Habits
	}
	if parsed.Todos != nil {
		s.data.Todos = parsed.Todos
	}
}

func (s *FileStore) save() {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		logger.Error("Failed to create completion store directory", "dir", dir, "error", err)
		return
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		logger.Error("Failed to serialize completion store", "error", err)
		return
	}

	if err := os.WriteFile(s.path, raw, 0600); err != nil {
		logger.Error("Failed to write completion store", "path", s.path, "error", err)
	}
}

// Package completion persists the client-local completion timestamp
// table: one map of item ID to completed-at time per tracked-item kind.
// The table is the source of both the done flag and the time-remaining
// display, so entries must be removed the moment they expire, not merely
// ignored.
package completion

import (
	"sync"
	"time"

	"github.com/dith08/FinBits-sub000/internal/models"
)

// Store is the durable local table of completion timestamps. Both
// operations are total: Get returns an empty map when nothing has been
// stored (or stored data is unreadable), and Set persists best-effort,
// logging failures instead of surfacing them. Callers never handle
// storage errors.
type Store interface {
	// Get returns a copy of the completion map for a kind.
	Get(kind models.Kind) map[int]time.Time

	// Set records or clears a completion. A nil completedAt deletes the
	// entry. The full updated map is persisted immediately, so a crash
	// between toggles never loses more than the in-flight write.
	Set(kind models.Kind, itemID int, completedAt *time.Time)
}

// MemStore is an in-memory Store used by tests.
type MemStore struct {
	mu    sync.Mutex
	kinds map[models.Kind]map[int]time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{kinds: make(map[models.Kind]map[int]time.Time)}
}

func (s *MemStore) Get(kind models.Kind) map[int]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]time.Time, len(s.kinds[kind]))
	for id, ts := range s.kinds[kind] {
		out[id] = ts
	}
	return out
}

func (s *MemStore) Set(kind models.Kind, itemID int, completedAt *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if completedAt == nil {
		delete(s.kinds[kind], itemID)
		return
	}
	if s.kinds[kind] == nil {
		s.kinds[kind] = make(map[int]time.Time)
	}
	s.kinds[kind][itemID] = *completedAt
}

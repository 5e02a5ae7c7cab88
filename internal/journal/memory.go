package journal

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps journal entries in process memory. It backs tests and
// deployments that enable the journal without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore returns an empty in-memory journal.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Record(_ context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, ErrEntryRequired
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	copied := *entry

	s.mu.Lock()
	s.entries = append(s.entries, &copied)
	s.mu.Unlock()
	return &copied, nil
}

func (s *MemoryStore) Recent(_ context.Context, limit int) ([]*Entry, error) {
	if limit < 1 {
		return nil, ErrLimitInvalid
	}
	return s.collect(limit, func(*Entry) bool { return true }), nil
}

func (s *MemoryStore) ByResource(_ context.Context, resource string, limit int) ([]*Entry, error) {
	if limit < 1 {
		return nil, ErrLimitInvalid
	}
	resource = strings.ToLower(strings.TrimSpace(resource))
	return s.collect(limit, func(e *Entry) bool { return e.Resource == resource }), nil
}

func (s *MemoryStore) Prune(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.entries[:0]
	pruned := 0
	for _, entry := range s.entries {
		if entry.RecordedAt.Before(olderThan) {
			pruned++
			continue
		}
		kept = append(kept, entry)
	}
	s.entries = kept
	return pruned, nil
}

func (s *MemoryStore) collect(limit int, keep func(*Entry) bool) []*Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Entry, 0, limit)
	for _, entry := range s.entries {
		if keep(entry) {
			copied := *entry
			out = append(out, &copied)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

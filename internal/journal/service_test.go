package journal

import (
	"context"
	"testing"
	"time"
)

func TestServiceRecordsMutations(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	tick := 0
	service := NewService(store, WithActor("ops@consult.co"), WithClock(func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}))

	service.RecordMutation(context.Background(), "jobs", "create", "j1", map[string]any{"title": "Officer"})
	service.RecordMutation(context.Background(), "jobs", "toggle", "j1", nil)

	entries, err := service.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d", len(entries))
	}
	if entries[0].Kind != "toggle" {
		t.Fatalf("newest kind = %q", entries[0].Kind)
	}
	if entries[0].Actor != "ops@consult.co" {
		t.Fatalf("actor = %q", entries[0].Actor)
	}
	if entries[0].ID == entries[1].ID {
		t.Fatal("entry ids collided")
	}
}

func TestServicePruneOlderThan(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	now := base
	service := NewService(store, WithClock(func() time.Time { return now }))

	service.RecordMutation(context.Background(), "faqs", "update", "f1", nil)
	now = base.Add(48 * time.Hour)
	service.RecordMutation(context.Background(), "faqs", "update", "f2", nil)

	pruned, err := service.PruneOlderThan(context.Background(), 24*time.Hour)
	if err != nil {
		t.Fatalf("PruneOlderThan() error = %v", err)
	}
	if pruned != 1 {
		t.Fatalf("pruned = %d", pruned)
	}

	entries, err := service.ByResource(context.Background(), "faqs", 10)
	if err != nil {
		t.Fatalf("ByResource() error = %v", err)
	}
	if len(entries) != 1 || entries[0].TargetID != "f2" {
		t.Fatalf("survivors = %+v", entries)
	}
}

func TestServiceSwallowsStoreFailures(t *testing.T) {
	service := NewService(failingStore{})
	// Must not panic or propagate.
	service.RecordMutation(context.Background(), "jobs", "create", "j1", nil)
}

type failingStore struct{}

func (failingStore) Record(context.Context, *Entry) (*Entry, error) {
	return nil, ErrEntryRequired
}

func (failingStore) Recent(context.Context, int) ([]*Entry, error) {
	return nil, nil
}

func (failingStore) ByResource(context.Context, string, int) ([]*Entry, error) {
	return nil, nil
}

func (failingStore) Prune(context.Context, time.Time) (int, error) {
	return 0, nil
}

package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var (
	ErrEntryRequired = errors.New("journal: entry is required")
	ErrEntryNotFound = errors.New("journal: entry not found")
	ErrLimitInvalid  = errors.New("journal: limit must be positive")
)

// Entry is one confirmed admin mutation, recorded locally so operators can
// answer "who changed what, when" without access to the backend's logs.
// Rollbacks are recorded too, with a ".rollback" kind suffix.
type Entry struct {
	bun.BaseModel `bun:"table:journal_entries,alias:je"`

	ID         uuid.UUID      `bun:",pk,type:uuid" json:"id"`
	Resource   string         `bun:"resource,notnull" json:"resource"`
	Kind       string         `bun:"kind,notnull" json:"kind"`
	TargetID   string         `bun:"target_id,notnull" json:"target_id"`
	Actor      string         `bun:"actor" json:"actor,omitempty"`
	Payload    map[string]any `bun:"payload,type:jsonb" json:"payload,omitempty"`
	RecordedAt time.Time      `bun:"recorded_at,nullzero,default:current_timestamp" json:"recorded_at"`
}

// Store is the journal persistence contract. BunStore and MemoryStore
// implement it; the memory variant backs tests and journal-less setups.
type Store interface {
	Record(ctx context.Context, entry *Entry) (*Entry, error)
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	ByResource(ctx context.Context, resource string, limit int) ([]*Entry, error)
	Prune(ctx context.Context, olderThan time.Time) (int, error)
}

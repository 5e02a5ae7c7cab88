package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	cache "github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/uptrace/bun"
)

const journalNamespace = "journal_entry"

// BunStore persists journal entries through bun with optional read caching.
// List and prune queries go straight to the database; single-entry reads go
// through the (possibly cached) repository.
type BunStore struct {
	db           *bun.DB
	repo         repository.Repository[*Entry]
	cacheService cache.CacheService
	cachePrefix  string
}

// NewBunStore creates a journal store without caching.
func NewBunStore(db *bun.DB) *BunStore {
	return NewBunStoreWithCache(db, nil, nil)
}

// NewBunStoreWithCache creates a journal store with caching services.
func NewBunStoreWithCache(db *bun.DB, cacheService cache.CacheService, serializer cache.KeySerializer) *BunStore {
	base := NewEntryRepository(db)
	var svc cache.CacheService
	if cacheService != nil && serializer != nil {
		base = repositorycache.New(base, cacheService, serializer)
		svc = cacheService
	}
	prefix := ""
	if svc != nil {
		prefix = cachePrefix(journalNamespace)
	}
	return &BunStore{
		db:           db,
		repo:         base,
		cacheService: svc,
		cachePrefix:  prefix,
	}
}

// Record persists an entry. RecordedAt defaults to now when unset.
func (s *BunStore) Record(ctx context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, ErrEntryRequired
	}
	if entry.RecordedAt.IsZero() {
		entry.RecordedAt = time.Now().UTC()
	}
	record, err := s.repo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("journal: record entry: %w", err)
	}
	return record, nil
}

// GetByID fetches a single entry through the repository layer.
func (s *BunStore) GetByID(ctx context.Context, id string) (*Entry, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepositoryError(err, id)
	}
	return record, nil
}

// Recent returns up to limit entries, newest first.
func (s *BunStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	if limit < 1 {
		return nil, ErrLimitInvalid
	}
	var entries []*Entry
	err := s.db.NewSelect().
		Model(&entries).
		Order("recorded_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal: list recent: %w", err)
	}
	return entries, nil
}

// ByResource returns up to limit entries for one resource, newest first.
func (s *BunStore) ByResource(ctx context.Context, resource string, limit int) ([]*Entry, error) {
	if limit < 1 {
		return nil, ErrLimitInvalid
	}
	var entries []*Entry
	err := s.db.NewSelect().
		Model(&entries).
		Where("resource = ?", strings.ToLower(strings.TrimSpace(resource))).
		Order("recorded_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("journal: list by resource: %w", err)
	}
	return entries, nil
}

// Prune deletes entries recorded before olderThan and reports how many went.
func (s *BunStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	res, err := s.db.NewDelete().
		Model((*Entry)(nil)).
		Where("recorded_at < ?", olderThan).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("journal: prune: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	if s.cacheService != nil && s.cachePrefix != "" {
		_ = s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
	}
	return int(affected), nil
}

// InvalidateCache drops every cached journal read.
func (s *BunStore) InvalidateCache(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return fmt.Errorf("%w: %s", ErrEntryNotFound, key)
	}
	return fmt.Errorf("journal: repository error: %w", err)
}

func cachePrefix(namespace string) string {
	if namespace == "" {
		return ""
	}
	return namespace + cache.KeySeparator
}

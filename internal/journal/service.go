package journal

import (
	"context"
	"strconv"
	"time"

	"github.com/goliatone/go-backoffice/internal/identity"
	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

// ServiceOption customises the journal service.
type ServiceOption func(*Service)

// WithLogger injects the journal logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithActor stamps every recorded entry with the operator identity.
func WithActor(actor string) ServiceOption {
	return func(s *Service) {
		s.actor = actor
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// Service records confirmed mutations into a Store. It satisfies the list
// controller's recorder contract: recording is best-effort, a storage failure
// is logged and swallowed so it can never fail the mutation that triggered it.
type Service struct {
	store  Store
	logger interfaces.Logger
	actor  string
	now    func() time.Time
}

// NewService builds a journal service over the given store.
func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store:  store,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordMutation persists one confirmed mutation.
func (s *Service) RecordMutation(ctx context.Context, resource, kind, targetID string, payload map[string]any) {
	if s.store == nil {
		return
	}
	recordedAt := s.now().UTC()
	entry := &Entry{
		ID:         identity.JournalUUID(resource, kind, targetID, strconv.FormatInt(recordedAt.UnixNano(), 10)),
		Resource:   resource,
		Kind:       kind,
		TargetID:   targetID,
		Actor:      s.actor,
		Payload:    payload,
		RecordedAt: recordedAt,
	}
	logger := logging.WithResourceContext(s.logger, resource, targetID)
	if _, err := s.store.Record(ctx, entry); err != nil {
		logger.Error("journal.record.failed", "kind", kind, "error", err)
		return
	}
	logger.Debug("journal.record.ok", "kind", kind)
}

// Recent exposes the store's recent-first listing.
func (s *Service) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	return s.store.Recent(ctx, limit)
}

// ByResource exposes the store's per-resource listing.
func (s *Service) ByResource(ctx context.Context, resource string, limit int) ([]*Entry, error) {
	return s.store.ByResource(ctx, resource, limit)
}

// PruneOlderThan deletes entries past the retention window.
func (s *Service) PruneOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	return s.store.Prune(ctx, s.now().UTC().Add(-retention))
}

package listview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goliatone/go-backoffice/internal/gateway"
	"github.com/goliatone/go-backoffice/internal/identity"
	"github.com/goliatone/go-backoffice/internal/logging"
	"github.com/goliatone/go-backoffice/internal/resources"
	"github.com/goliatone/go-backoffice/pkg/interfaces"
)

var (
	ErrOperationPending  = errors.New("listview: operation already pending for record")
	ErrControllerClosed  = errors.New("listview: controller closed")
	ErrRecordUnknown     = errors.New("listview: record not present in list")
	ErrToggleUnsupported = errors.New("listview: resource has no toggle field")
)

// defaultToastTTL mirrors the upstream auto-dismiss window.
const defaultToastTTL = 2200 * time.Millisecond

// OpKind labels a pending mutation.
type OpKind string

const (
	OpCreate OpKind = "create"
	OpUpdate OpKind = "update"
	OpDelete OpKind = "delete"
	OpToggle OpKind = "toggle"
)

// PendingOp tracks an in-flight mutation. At most one exists per target id.
type PendingOp struct {
	TargetID  string
	Kind      OpKind
	StartedAt time.Time
}

// ToastKind distinguishes success notices from failures.
type ToastKind string

const (
	ToastOK    ToastKind = "ok"
	ToastError ToastKind = "error"
)

// Toast is the transient single-slot notice. A new toast replaces the current
// one; the replaced toast's dismiss timer can never clear its successor.
type Toast struct {
	Kind      ToastKind
	Message   string
	ExpiresAt time.Time
}

// Gateway is the subset of the HTTP client the controller drives. Declared
// here so tests can substitute scripted fakes.
type Gateway interface {
	List(ctx context.Context, route gateway.Route, query gateway.Query) (*gateway.ListPage, error)
	Create(ctx context.Context, route gateway.Route, payload map[string]any) (*gateway.Record, error)
	Update(ctx context.Context, route gateway.Route, id string, patch map[string]any, current *gateway.Record) (*gateway.Record, error)
	Toggle(ctx context.Context, route gateway.Route, id, field string, value bool) (*gateway.Record, error)
	Remove(ctx context.Context, route gateway.Route, id string) error
}

// MutationRecorder receives confirmed mutations for the local journal.
// Recording is best-effort and never fails the originating operation.
type MutationRecorder interface {
	RecordMutation(ctx context.Context, resource string, kind string, targetID string, payload map[string]any)
}

// Option customises a controller.
type Option func(*Controller)

// WithLogger injects the listview logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder wires the mutation journal.
func WithRecorder(recorder MutationRecorder) Option {
	return func(c *Controller) {
		c.recorder = recorder
	}
}

// WithClock overrides the time source for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.now = clock
		}
	}
}

// WithToastTTL overrides the toast auto-dismiss window.
func WithToastTTL(ttl time.Duration) Option {
	return func(c *Controller) {
		if ttl > 0 {
			c.toastTTL = ttl
		}
	}
}

// WithPageSize overrides the descriptor default page size.
func WithPageSize(size int) Option {
	return func(c *Controller) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// Controller owns the in-memory list state for one mounted admin screen:
// the authoritative item cache, search/filter/pagination, per-row pending
// operations, and the optimistic-update/rollback workflow. One controller
// instance exists per screen; there is no cross-screen cache.
type Controller struct {
	descriptor resources.Descriptor
	gw         Gateway
	recorder   MutationRecorder
	logger     interfaces.Logger
	now        func() time.Time
	toastTTL   time.Duration

	mu        sync.Mutex
	items     []*gateway.Record
	total     int
	page      int
	pageSize  int
	search    string
	status    string
	loading   bool
	lastError string
	pending   map[string]*PendingOp
	snapshots map[string]*gateway.Record
	toast     *Toast
	toastGen  uint64
	closed    bool
}

// New constructs a controller for one resource screen.
func New(descriptor resources.Descriptor, gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		descriptor: descriptor,
		gw:         gw,
		logger:     logging.NoOp(),
		now:        time.Now,
		toastTTL:   defaultToastTTL,
		page:       1,
		pageSize:   descriptor.PageSize,
		status:     StatusAll,
		pending:    map[string]*PendingOp{},
		snapshots:  map[string]*gateway.Record{},
	}
	if c.pageSize < 1 {
		c.pageSize = 10
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = logging.WithFields(c.logger, map[string]any{"resource": descriptor.Name})
	return c
}

// Load fetches the current page and replaces the item cache wholesale. On
// failure the stale cache is kept; blanking the screen is worse than showing
// last-good data with an error banner.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	c.loading = true
	c.lastError = ""
	query := c.listQueryLocked()
	c.mu.Unlock()

	page, err := c.gw.List(ctx, c.descriptor.Route, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrControllerClosed
	}
	c.loading = false
	if err != nil {
		c.lastError = gateway.DisplayMessage(err)
		c.logger.Error("listview.load.failed", "error", err)
		return err
	}
	c.items = dedupeByID(page.Items)
	c.total = page.Total
	c.logger.Debug("listview.load.ok", "items", len(c.items), "total", c.total)
	return nil
}

// Refresh re-issues the same load; it backs the banner's Retry action.
func (c *Controller) Refresh(ctx context.Context) error {
	return c.Load(ctx)
}

// SetSearch updates the search needle applied to the visible list.
func (c *Controller) SetSearch(text string) {
	c.mu.Lock()
	c.search = text
	c.mu.Unlock()
}

// SetStatusFilter updates the status filter. Empty means "all".
func (c *Controller) SetStatusFilter(status string) {
	c.mu.Lock()
	if status == "" {
		status = StatusAll
	}
	c.status = status
	c.mu.Unlock()
}

// SetPage moves to page n. Out-of-bounds values are a no-op. Server-paginated
// descriptors re-fetch; client-paginated descriptors reslice locally.
func (c *Controller) SetPage(ctx context.Context, n int) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if n < 1 || n > c.totalPagesLocked() {
		c.mu.Unlock()
		return nil
	}
	if n == c.page {
		c.mu.Unlock()
		return nil
	}
	c.page = n
	serverPaged := c.descriptor.Pagination == resources.PaginationServer
	c.mu.Unlock()

	if serverPaged {
		return c.Load(ctx)
	}
	return nil
}

// Create normalizes and validates the payload, posts it, and appends the
// server-confirmed record. The draft occupies a synthetic pending slot so a
// second create cannot start while one is in flight.
func (c *Controller) Create(ctx context.Context, payload map[string]any) (*gateway.Record, error) {
	normalized, err := c.descriptor.NormalizeCreatePayload(payload)
	if err != nil {
		c.showToast(ToastError, err.Error())
		return nil, err
	}

	draftID := identity.DraftUUID(c.descriptor.Name, "create").String()
	if err := c.beginOp(draftID, OpCreate); err != nil {
		return nil, err
	}

	record, err := c.gw.Create(ctx, c.descriptor.Route, normalized)

	c.mu.Lock()
	c.finishOpLocked(draftID)
	if c.closed {
		c.mu.Unlock()
		return nil, ErrControllerClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.showToast(ToastError, gateway.DisplayMessage(err))
		c.logger.Error("listview.create.failed", "error", err)
		return nil, err
	}
	c.upsertLocked(record)
	c.total++
	c.mu.Unlock()

	c.showToast(ToastOK, "Created")
	c.record(ctx, string(OpCreate), record.ID, normalized)
	return record, nil
}

// Update patches a record. The patch is applied locally for the optimistic
// window, then replaced wholesale by the server's response; on failure the
// pre-operation snapshot is restored byte for byte.
func (c *Controller) Update(ctx context.Context, id string, patch map[string]any) (*gateway.Record, error) {
	normalized, err := c.descriptor.NormalizeUpdatePayload(patch)
	if err != nil {
		c.showToast(ToastError, err.Error())
		return nil, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrControllerClosed
	}
	current := c.findLocked(id)
	if current == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrRecordUnknown, id)
	}
	if err := c.beginOpLocked(id, OpUpdate); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	c.snapshots[id] = current.Clone()
	applyPatchLocked(current, normalized)
	snapshot := c.snapshots[id]
	c.mu.Unlock()

	record, err := c.gw.Update(ctx, c.descriptor.Route, id, normalized, snapshot)
	return c.reconcile(ctx, id, OpUpdate, record, normalized, err)
}

// Toggle flips the descriptor's boolean flag using the per-resource strategy:
// optimistic screens pre-flip and roll back, pessimistic screens wait for the
// server and replace.
func (c *Controller) Toggle(ctx context.Context, id string) (*gateway.Record, error) {
	if c.descriptor.ToggleField == "" {
		return nil, ErrToggleUnsupported
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrControllerClosed
	}
	current := c.findLocked(id)
	if current == nil {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrRecordUnknown, id)
	}
	if err := c.beginOpLocked(id, OpToggle); err != nil {
		c.mu.Unlock()
		return nil, err
	}

	next := true
	if current.Active != nil {
		next = !*current.Active
	}
	c.snapshots[id] = current.Clone()
	if c.descriptor.Toggle == resources.ToggleOptimistic {
		flipped := next
		current.Active = &flipped
	}
	c.mu.Unlock()

	record, err := c.gw.Toggle(ctx, c.descriptor.Route, id, c.descriptor.ToggleField, next)
	return c.reconcile(ctx, id, OpToggle, record, map[string]any{c.descriptor.ToggleField: next}, err)
}

// Remove deletes a record after the shell's confirmation prompt. Deleting an
// id the backend no longer has surfaces a non-fatal toast and leaves the list
// unchanged.
func (c *Controller) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if err := c.beginOpLocked(id, OpDelete); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	err := c.gw.Remove(ctx, c.descriptor.Route, id)

	c.mu.Lock()
	c.finishOpLocked(id)
	if c.closed {
		c.mu.Unlock()
		return ErrControllerClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.showToast(ToastError, gateway.DisplayMessage(err))
		c.logger.Error("listview.remove.failed", "id", id, "error", err)
		return err
	}
	if c.dropLocked(id) {
		if c.total > 0 {
			c.total--
		}
	}
	c.mu.Unlock()

	c.showToast(ToastOK, "Deleted")
	c.record(ctx, string(OpDelete), id, nil)
	return nil
}

// Close marks the controller unmounted. In-flight completions after Close are
// discarded instead of mutating dead state.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.toast = nil
	c.mu.Unlock()
}

// Visible returns the filtered, sorted, page-sliced view of the cache.
func (c *Controller) Visible() []*gateway.Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := SortByOrder(c.descriptor, Filtered(c.descriptor, c.items, c.search, c.status))
	if c.descriptor.Pagination != resources.PaginationClient {
		return filtered
	}

	start := (c.page - 1) * c.pageSize
	if start >= len(filtered) {
		return []*gateway.Record{}
	}
	end := start + c.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// Items returns a copy of the raw cache.
func (c *Controller) Items() []*gateway.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]*gateway.Record{}, c.items...)
}

// Pending reports whether a mutation is in flight for the id; the shell
// disables that row's controls while true.
func (c *Controller) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

// Loading reports whether a list fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the banner message from the most recent failed load.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastError
}

// Page returns the current page, TotalCount the server-authoritative total.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

func (c *Controller) TotalCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// TotalPages derives the page count from the authoritative total.
func (c *Controller) TotalPages() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalPagesLocked()
}

// Toast returns the current notice, or nil once dismissed.
func (c *Controller) Toast() *Toast {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toast == nil {
		return nil
	}
	copied := *c.toast
	return &copied
}

// reconcile finishes a keyed mutation: replace from the server response on
// success, restore the snapshot on failure. Pending and snapshot state is
// keyed by id so out-of-order completions across rows cannot cross-corrupt.
func (c *Controller) reconcile(ctx context.Context, id string, kind OpKind, record *gateway.Record, payload map[string]any, err error) (*gateway.Record, error) {
	c.mu.Lock()
	snapshot := c.snapshots[id]
	delete(c.snapshots, id)
	c.finishOpLocked(id)
	if c.closed {
		c.mu.Unlock()
		return nil, ErrControllerClosed
	}
	if err != nil {
		if snapshot != nil {
			c.replaceLocked(id, snapshot)
		}
		c.mu.Unlock()
		c.showToast(ToastError, gateway.DisplayMessage(err))
		c.logger.Error("listview.save.failed", "id", id, "kind", string(kind), "error", err)
		c.record(ctx, string(kind)+".rollback", id, payload)
		return nil, err
	}
	c.replaceLocked(id, record)
	c.mu.Unlock()

	c.showToast(ToastOK, "Saved")
	c.record(ctx, string(kind), id, payload)
	return record, nil
}

func (c *Controller) beginOp(id string, kind OpKind) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrControllerClosed
	}
	return c.beginOpLocked(id, kind)
}

func (c *Controller) beginOpLocked(id string, kind OpKind) error {
	if _, exists := c.pending[id]; exists {
		return fmt.Errorf("%w: %s", ErrOperationPending, id)
	}
	c.pending[id] = &PendingOp{TargetID: id, Kind: kind, StartedAt: c.now()}
	return nil
}

func (c *Controller) finishOpLocked(id string) {
	delete(c.pending, id)
}

func (c *Controller) showToast(kind ToastKind, message string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.toastGen++
	gen := c.toastGen
	c.toast = &Toast{Kind: kind, Message: message, ExpiresAt: c.now().Add(c.toastTTL)}
	c.mu.Unlock()

	time.AfterFunc(c.toastTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		// A replacement toast bumps the generation; the stale timer must not
		// clear it early.
		if c.toastGen == gen {
			c.toast = nil
		}
	})
}

func (c *Controller) record(ctx context.Context, kind, targetID string, payload map[string]any) {
	if c.recorder == nil {
		return
	}
	c.recorder.RecordMutation(ctx, c.descriptor.Name, kind, targetID, payload)
}

func (c *Controller) listQueryLocked() gateway.Query {
	query := gateway.Query{
		Search:   c.search,
		Page:     c.page,
		PageSize: c.pageSize,
	}
	if c.descriptor.Pagination == resources.PaginationClient {
		// Client-paginated screens fetch the full list once and slice locally.
		query.Page = 1
		query.PageSize = maxClientFetch
	}
	if c.status != "" && c.status != StatusAll && c.descriptor.StatusField != "" {
		query.Filters = map[string]string{c.descriptor.StatusField: c.status}
	}
	return query
}

// maxClientFetch bounds the single fetch made by client-paginated screens.
const maxClientFetch = 500

func (c *Controller) totalPagesLocked() int {
	if c.total < 1 {
		return 1
	}
	pages := c.total / c.pageSize
	if c.total%c.pageSize != 0 {
		pages++
	}
	return pages
}

func (c *Controller) findLocked(id string) *gateway.Record {
	for _, item := range c.items {
		if item.ID == id {
			return item
		}
	}
	return nil
}

func (c *Controller) replaceLocked(id string, record *gateway.Record) {
	if record == nil {
		return
	}
	for i, item := range c.items {
		if item.ID == id {
			c.items[i] = record
			return
		}
	}
}

func (c *Controller) upsertLocked(record *gateway.Record) {
	if record == nil {
		return
	}
	for i, item := range c.items {
		if item.ID == record.ID {
			c.items[i] = record
			return
		}
	}
	c.items = append(c.items, record)
}

func (c *Controller) dropLocked(id string) bool {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

func dedupeByID(items []*gateway.Record) []*gateway.Record {
	seen := make(map[string]struct{}, len(items))
	out := make([]*gateway.Record, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

func applyPatchLocked(record *gateway.Record, patch map[string]any) {
	if record.Fields == nil {
		record.Fields = map[string]any{}
	}
	for key, value := range patch {
		switch key {
		case "isActive":
			if b, ok := value.(bool); ok {
				flipped := b
				record.Active = &flipped
			}
		case "order":
			switch n := value.(type) {
			case int:
				order := n
				record.Order = &order
			case float64:
				order := int(n)
				record.Order = &order
			}
		default:
			record.Fields[key] = value
		}
	}
}

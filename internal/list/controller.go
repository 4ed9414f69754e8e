// Package list keeps the in-memory mirror of the remote catalog and applies
// mutations to it once the catalog confirms them.
package list

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/compras/internal/catalog"
	"github.com/Veraticus/compras/internal/filter"
	"github.com/Veraticus/compras/internal/model"
)

// Sentinel errors.
var (
	// ErrLoad wraps any failure to fetch the collection.
	ErrLoad = errors.New("failed to load items")
	// ErrBusy rejects a mutation on an item that already has one in flight.
	ErrBusy = errors.New("operation already in progress")
)

// State is the load lifecycle of the collection.
type State int

// Load states.
const (
	StateIdle State = iota
	StateLoading
	StateLoaded
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateLoadFailed:
		return "load_failed"
	default:
		return "idle"
	}
}

// Op names a remote operation.
type Op string

// Mutations.
const (
	OpLoad   Op = "load"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpToggle Op = "toggle"
	OpDelete Op = "delete"
)

// OpState is the in-flight marker for one item.
type OpState int

// Per-item markers.
const (
	OpNone OpState = iota
	OpToggling
	OpDeleting
	OpUpdating
)

// MutationError reports a failed mutation. The mirror is left as it was.
type MutationError struct {
	Err    error
	Op     Op
	ItemID int
}

func (e *MutationError) Error() string {
	if e.Op == OpCreate {
		return fmt.Sprintf("create item: %v", e.Err)
	}
	return fmt.Sprintf("%s item %d: %v", e.Op, e.ItemID, e.Err)
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// Controller owns the mirror. It is safe for concurrent use; remote calls
// are made without holding the lock.
type Controller struct {
	service catalog.Service
	now     func() time.Time
	notify  NoticeFunc
	logger  *slog.Logger
	loadErr error
	markers map[int]OpState
	// reserved holds markers set by Reserve that no mutation has claimed yet.
	reserved map[int]OpState
	items   []model.ShoppingItem
	mu      sync.Mutex
	state   State
	// creating counts create calls in flight.
	creating int
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces the clock used to stamp updatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithNotices registers a hook for completed operations.
func WithNotices(fn NoticeFunc) Option {
	return func(c *Controller) { c.notify = fn }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// NewController creates a controller over service.
func NewController(service catalog.Service, opts ...Option) *Controller {
	c := &Controller{
		service: service,
		now:     time.Now,
		markers:  make(map[int]OpState),
		reserved: make(map[int]OpState),
		logger:  slog.Default().With("component", "list"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the whole collection. On failure the previous mirror is
// kept and the state becomes StateLoadFailed.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.loadErr = nil
	c.mu.Unlock()

	items, err := c.service.List(ctx)

	c.mu.Lock()
	if err != nil {
		c.state = StateLoadFailed
		c.loadErr = fmt.Errorf("%w: %w", ErrLoad, err)
		c.logger.Warn("Failed to load items", "error", err)
		loadErr := c.loadErr
		c.mu.Unlock()
		c.emit(Notice{Kind: NoticeError, Op: OpLoad, Message: errorMessages[OpLoad]})
		return loadErr
	}

	c.items = items
	c.state = StateLoaded
	c.mu.Unlock()
	c.logger.Debug("Loaded items", "count", len(items))
	return nil
}

// Create asks the catalog to store item and puts the result first.
func (c *Controller) Create(ctx context.Context, item model.CreateItem) (model.ShoppingItem, error) {
	c.mu.Lock()
	c.creating++
	c.mu.Unlock()

	created, err := c.service.Create(ctx, item)

	c.mu.Lock()
	c.creating--
	if err != nil {
		c.mu.Unlock()
		return model.ShoppingItem{}, c.fail(OpCreate, 0, err)
	}
	c.items = append([]model.ShoppingItem{created}, c.items...)
	c.mu.Unlock()

	c.succeed(OpCreate, created.ID)
	return created, nil
}

// Update replaces an item's fields and stamps updatedAt locally.
func (c *Controller) Update(ctx context.Context, id int, item model.UpdateItem) error {
	return c.mutate(OpUpdate, OpUpdating, id, func() error {
		return c.service.Update(ctx, id, item)
	}, func(i int, at time.Time) {
		c.items[i] = c.items[i].Apply(item, at)
	})
}

// Toggle flips the purchased flag.
func (c *Controller) Toggle(ctx context.Context, id int) error {
	return c.mutate(OpToggle, OpToggling, id, func() error {
		return c.service.TogglePurchased(ctx, id)
	}, func(i int, at time.Time) {
		c.items[i].Purchased = !c.items[i].Purchased
		c.items[i].UpdatedAt = &at
	})
}

// Delete removes an item.
func (c *Controller) Delete(ctx context.Context, id int) error {
	return c.mutate(OpDelete, OpDeleting, id, func() error {
		return c.service.Delete(ctx, id)
	}, func(i int, _ time.Time) {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	})
}

// Reserve sets marker on id before the mutation itself runs, for callers
// that issue it from another goroutine. It reports false when id is already
// busy. The next Update, Toggle or Delete of id with the same marker
// claims the reservation; Release drops one that will not be used.
func (c *Controller) Reserve(id int, marker OpState) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if marker == OpNone || c.markers[id] != OpNone {
		return false
	}
	c.markers[id] = marker
	c.reserved[id] = marker
	return true
}

// Release clears an unclaimed reservation on id.
func (c *Controller) Release(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.reserved[id]; ok {
		delete(c.reserved, id)
		delete(c.markers, id)
	}
}

// mutate marks id busy, runs call without the lock and patches the mirror
// on success. Items missing from the mirror are still sent to the catalog.
func (c *Controller) mutate(op Op, marker OpState, id int, call func() error, patch func(i int, at time.Time)) error {
	c.mu.Lock()
	switch held, ok := c.reserved[id]; {
	case ok && held == marker:
		delete(c.reserved, id)
	case c.markers[id] != OpNone:
		c.mu.Unlock()
		return &MutationError{Op: op, ItemID: id, Err: ErrBusy}
	default:
		c.markers[id] = marker
	}
	c.mu.Unlock()

	err := call()

	c.mu.Lock()
	delete(c.markers, id)
	if err != nil {
		c.mu.Unlock()
		return c.fail(op, id, err)
	}
	if i := c.indexOf(id); i >= 0 {
		patch(i, c.now())
	}
	c.mu.Unlock()

	c.succeed(op, id)
	return nil
}

func (c *Controller) indexOf(id int) int {
	for i, item := range c.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) fail(op Op, id int, err error) error {
	c.logger.Warn("Mutation failed", "op", op, "item_id", id, "error", err)
	c.emit(Notice{Kind: NoticeError, Op: op, ItemID: id, Message: errorMessages[op]})
	return &MutationError{Op: op, ItemID: id, Err: err}
}

func (c *Controller) succeed(op Op, id int) {
	c.logger.Debug("Mutation applied", "op", op, "item_id", id)
	c.emit(Notice{Kind: NoticeSuccess, Op: op, ItemID: id, Message: successMessages[op]})
}

func (c *Controller) emit(n Notice) {
	if c.notify != nil {
		c.notify(n)
	}
}

// Items returns a copy of the mirror in display order.
func (c *Controller) Items() []model.ShoppingItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.ShoppingItem, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the mirrored item with id.
func (c *Controller) Item(id int) (model.ShoppingItem, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	return model.ShoppingItem{}, false
}

// State returns the load state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LoadErr returns the last load failure, if the state is StateLoadFailed.
func (c *Controller) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}

// OpState returns the in-flight marker for id.
func (c *Controller) OpState(id int) OpState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.markers[id]
}

// Busy reports whether id has a mutation in flight.
func (c *Controller) Busy(id int) bool {
	return c.OpState(id) != OpNone
}

// Creating reports whether a create is in flight.
func (c *Controller) Creating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creating > 0
}

// View filters and partitions the mirror.
func (c *Controller) View(criteria filter.Criteria) filter.View {
	return filter.Derive(c.Items(), criteria)
}

// Stats aggregates the whole mirror, ignoring any filter.
func (c *Controller) Stats() model.Stats {
	return filter.Aggregate(c.Items())
}

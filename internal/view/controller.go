package view

import (
	"context"
	"sync"

	"makernet/internal/observability"
)

// State is the lifecycle state of a list view.
type State string

const (
	// StateIdle means no fetch has been issued yet.
	StateIdle State = "idle"
	// StateLoading means a fetch is in flight.
	StateLoading State = "loading"
	// StateSuccess means the last fetch committed a result.
	StateSuccess State = "success"
	// StateError means the last fetch failed.
	StateError State = "error"
)

// Page is one fetched page of a resource plus the server-side total.
type Page[T any] struct {
	Items []T
	Total int
}

// Fetcher loads one page of a resource for the given filter.
type Fetcher[T any] func(ctx context.Context, f Filter) (Page[T], error)

// Controller drives one paginated list view. Each triggered fetch carries a
// sequence token; only the most recently issued request may commit its
// result or clear the loading flag, so a slow stale response can never
// overwrite fresher state. Superseded requests are also cancelled via their
// context.
type Controller[T any] struct {
	mu       sync.Mutex
	fetch    Fetcher[T]
	idOf     func(T) uint
	resource string

	filter  Filter
	state   State
	items   []T
	total   int
	loading bool
	err     error

	seq    uint64
	cancel context.CancelFunc
}

// NewController creates a controller for one list view. idOf extracts the
// entity key used by Patch and Remove.
func NewController[T any](resource string, pageSize int, fetch Fetcher[T], idOf func(T) uint) *Controller[T] {
	return &Controller[T]{
		fetch:    fetch,
		idOf:     idOf,
		resource: resource,
		filter:   Filter{Limit: pageSize},
		state:    StateIdle,
	}
}

// SetFilter applies mutate to the filter, resets the offset to zero, and
// refetches. Resetting before the fetch keeps the user off an out-of-range
// page when the result set shrinks.
func (c *Controller[T]) SetFilter(ctx context.Context, mutate func(*Filter)) {
	c.mu.Lock()
	mutate(&c.filter)
	c.filter.Offset = 0
	c.mu.Unlock()
	c.load(ctx)
}

// SetPage moves to the given zero-based page and refetches. Negative pages
// clamp to zero.
func (c *Controller[T]) SetPage(ctx context.Context, page int) {
	if page < 0 {
		page = 0
	}
	c.mu.Lock()
	c.filter.Offset = page * c.filter.Limit
	c.mu.Unlock()
	c.load(ctx)
}

// Refresh refetches the current page with the current filter.
func (c *Controller[T]) Refresh(ctx context.Context) {
	c.load(ctx)
}

// Teardown cancels any in-flight fetch. The controller must not be used
// afterwards.
func (c *Controller[T]) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.loading = false
}

func (c *Controller[T]) load(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	token := c.seq
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = StateLoading
	c.loading = true
	c.err = nil
	filter := c.filter
	c.mu.Unlock()

	fctx, span := observability.TraceControllerFetch(fctx, c.resource)
	page, err := c.fetch(fctx, filter)
	observability.EndSpan(span, err)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.seq {
		// Superseded by a newer fetch; discard without touching state.
		return
	}
	c.cancel = nil
	c.loading = false
	if err != nil {
		c.state = StateError
		c.err = err
		return
	}
	c.state = StateSuccess
	c.items = page.Items
	c.total = page.Total
}

// Items returns the committed page content.
func (c *Controller[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Total returns the server-reported total count.
func (c *Controller[T]) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// PageCount returns ceil(total/limit) for the current filter.
func (c *Controller[T]) PageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.filter.Limit <= 0 {
		return 0
	}
	return (c.total + c.filter.Limit - 1) / c.filter.Limit
}

// State returns the view lifecycle state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Loading reports whether a fetch is in flight.
func (c *Controller[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the error from the last fetch, nil after a success.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Filter returns a copy of the active filter.
func (c *Controller[T]) Filter() Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Patch applies patch to the item with the given id, if present. Returns
// whether an item was patched. Used to reconcile a mutation response
// without a refetch.
func (c *Controller[T]) Patch(id uint, patch func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := ApplyPatch(c.items, id, c.idOf, patch)
	c.items = items
	return ok
}

// Remove drops the item with the given id and decrements the total. A
// missing id is a no-op, so a race with a concurrent deletion cannot
// corrupt the list.
func (c *Controller[T]) Remove(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	items, ok := RemoveByID(c.items, id, c.idOf)
	if !ok {
		return false
	}
	c.items = items
	if c.total > 0 {
		c.total--
	}
	return true
}

// Transform applies fn to every item in the committed page.
func (c *Controller[T]) Transform(fn func(*T)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = MapItems(c.items, fn)
}

// Replace swaps the item with the given id for the server-returned copy.
func (c *Controller[T]) Replace(id uint, item T) bool {
	return c.Patch(id, func(t *T) { *t = item })
}

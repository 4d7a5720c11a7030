// internal/core/services/list.go
package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

// ListState is the view state of a filtered list.
type ListState string

const (
	StateIdle    ListState = "idle"
	StateLoading ListState = "loading"
	StateLoaded  ListState = "loaded"
	StateEmpty   ListState = "empty"
	StateError   ListState = "error"
)

// FetchFunc loads one page of results for a filter snapshot.
type FetchFunc[F, T any] func(ctx context.Context, filter F, page domain.Page) ([]T, error)

// Snapshot is the renderable state of a list controller at one point in
// time. Items hold the last successful result even in the error state,
// so a failed refresh does not blank the screen.
type Snapshot[T any] struct {
	State ListState
	Items []T
	Err   error
}

// ListConfig tunes a list controller.
type ListConfig struct {
	// Settle is the debounce window: rapid filter edits inside it
	// collapse into a single request reflecting the latest snapshot.
	Settle time.Duration
	// PageSize is the fetch limit per page.
	PageSize int
}

const (
	defaultSettle   = 400 * time.Millisecond
	defaultPageSize = 50
)

// ListController drives a debounced, filtered, paginated list view.
// Every issued request carries a generation number; a response commits
// only while its generation is still the newest issued, so a slow
// response to a superseded filter can never overwrite a newer result.
type ListController[F, T any] struct {
	fetch  FetchFunc[F, T]
	settle time.Duration
	limit  int
	logger *slog.Logger

	mu         sync.Mutex
	ctx        context.Context
	filter     F
	skip       int
	timer      *time.Timer
	issued     uint64
	state      ListState
	items      []T
	err        error
	loadedOnce bool
	onChange   func(Snapshot[T])
}

// NewListController creates a controller in the Idle state. Call Start
// to issue the initial load.
func NewListController[F, T any](fetch FetchFunc[F, T], cfg ListConfig, logger *slog.Logger) *ListController[F, T] {
	settle := cfg.Settle
	if settle <= 0 {
		settle = defaultSettle
	}
	limit := cfg.PageSize
	if limit <= 0 {
		limit = defaultPageSize
	}

	return &ListController[F, T]{
		fetch:  fetch,
		settle: settle,
		limit:  limit,
		logger: logger.With(slog.String("controller", "list")),
		state:  StateIdle,
	}
}

// SetOnChange registers the redraw callback. It is invoked outside the
// controller lock with a snapshot.
func (c *ListController[F, T]) SetOnChange(fn func(Snapshot[T])) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// Start records the base context and issues the initial load without
// waiting for the settle window. A page offset set before Start rides
// along with the initial load instead of scheduling its own fetch.
func (c *ListController[F, T]) Start(ctx context.Context, initial F) {
	c.mu.Lock()
	c.ctx = ctx
	c.filter = initial
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.issueNow()
}

// UpdateFilter mutates the filter and arms the debounce timer. Any
// filter change resets pagination to the first page.
func (c *ListController[F, T]) UpdateFilter(mutate func(*F)) {
	c.mu.Lock()
	mutate(&c.filter)
	c.skip = 0
	c.scheduleLocked()
	c.mu.Unlock()
}

// SetPage moves the pagination offset, keeping the filter intact. Page
// changes ride the same debounce window as filter edits.
func (c *ListController[F, T]) SetPage(skip int) {
	c.mu.Lock()
	if skip < 0 {
		skip = 0
	}
	c.skip = skip
	c.scheduleLocked()
	c.mu.Unlock()
}

// NextPage advances the offset by one page.
func (c *ListController[F, T]) NextPage() {
	c.mu.Lock()
	c.skip += c.limit
	c.scheduleLocked()
	c.mu.Unlock()
}

// Refresh bypasses the debounce window and issues a request for the
// current filter immediately (reload button, post-bulk-action refresh).
func (c *ListController[F, T]) Refresh() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()
	c.issueNow()
}

// Snapshot returns the current renderable state.
func (c *ListController[F, T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[T]{State: c.state, Items: c.items, Err: c.err}
}

// Filter returns a copy of the current filter state.
func (c *ListController[F, T]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

func (c *ListController[F, T]) scheduleLocked() {
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.settle, c.issueNow)
}

func (c *ListController[F, T]) issueNow() {
	c.mu.Lock()
	c.issued++
	gen := c.issued
	filter := c.filter
	page := domain.Page{Limit: c.limit, Skip: c.skip}
	ctx := c.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	c.state = StateLoading
	cb := c.onChange
	snap := Snapshot[T]{State: c.state, Items: c.items, Err: c.err}
	c.mu.Unlock()

	if cb != nil {
		cb(snap)
	}

	go func() {
		items, err := c.fetch(ctx, filter, page)

		c.mu.Lock()
		if gen != c.issued {
			// Superseded while in flight; a newer request owns the view.
			latest := c.issued
			c.mu.Unlock()
			c.logger.Debug("discarded stale list response",
				slog.Uint64("generation", gen),
				slog.Uint64("latest", latest))
			return
		}

		if err != nil {
			c.err = err
			c.state = StateError
			if !c.loadedOnce {
				c.items = nil
			}
			// Previous successful data stays on screen for refreshes.
		} else {
			c.err = nil
			c.items = items
			c.loadedOnce = true
			if len(items) == 0 {
				c.state = StateEmpty
			} else {
				c.state = StateLoaded
			}
		}
		cb := c.onChange
		snap := Snapshot[T]{State: c.state, Items: c.items, Err: c.err}
		c.mu.Unlock()

		if cb != nil {
			cb(snap)
		}
	}()
}

package listing

import (
	"context"
	"sync"
	"time"

	"github.com/odyssey-erp/shopdesk/internal/query"
)

// Dispatcher starts a fetch for a query. Filters calls it with its lock held,
// so Dispatch must return promptly and never call back into the Filters.
type Dispatcher interface {
	Dispatch(ctx context.Context, q query.State)
}

// Filters owns a screen's QueryState. Every transition issues exactly one
// dispatch, including one that leaves the state as it was: a user pressing
// reset on an already clean screen still gets fresh rows.
type Filters struct {
	mu     sync.Mutex
	state  query.State
	target Dispatcher
}

// NewFilters starts from initial.
func NewFilters(initial query.State, target Dispatcher) *Filters {
	return &Filters{state: initial, target: target}
}

// State returns the current query.
func (f *Filters) State() query.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Seed replaces the current state without fetching. Call it before Mount to
// start from a restored query.
func (f *Filters) Seed(q query.State) {
	f.mu.Lock()
	f.state = q
	f.mu.Unlock()
}

// Mount issues the initial fetch.
func (f *Filters) Mount(ctx context.Context) {
	f.apply(ctx, func(q query.State) query.State { return q })
}

// SetField changes one filter and resets the page.
func (f *Filters) SetField(ctx context.Context, name, value string) {
	f.apply(ctx, func(q query.State) query.State { return q.With(name, value) })
}

// SetDateRange changes both date bounds in one transition.
func (f *Filters) SetDateRange(ctx context.Context, from, to time.Time) {
	f.apply(ctx, func(q query.State) query.State { return q.WithDateRange(from, to) })
}

// SetPage moves to page n and keeps every filter.
func (f *Filters) SetPage(ctx context.Context, n int) {
	f.apply(ctx, func(q query.State) query.State { return q.WithPage(n) })
}

// SetItemsPerPage changes the page size and resets the page.
func (f *Filters) SetItemsPerPage(ctx context.Context, n int) {
	f.apply(ctx, func(q query.State) query.State { return q.WithItemsPerPage(n) })
}

// Reset clears every filter and returns to the first page. The page size is
// a display preference and survives.
func (f *Filters) Reset(ctx context.Context) {
	f.apply(ctx, query.State.Reset)
}

// apply dispatches while holding mu so dispatches reach the target in the
// same order as the transitions that caused them.
func (f *Filters) apply(ctx context.Context, fn func(query.State) query.State) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = fn(f.state)
	f.target.Dispatch(ctx, f.state)
}

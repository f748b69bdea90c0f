// Package listing keeps a screen's displayed rows consistent with its query
// state: it tags every fetch, drops stale responses and applies optimistic
// deletions.
package listing

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/query"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// ErrSuperseded is returned by a fetch whose response arrived after a newer
// fetch was dispatched. Its result was discarded.
var ErrSuperseded = errors.New("listing: response superseded by a newer request")

// Source is the remote collection behind a screen.
type Source[T any] interface {
	List(ctx context.Context, q query.State) (remote.ListResult[T], error)
	Delete(ctx context.Context, id string, opts ...remote.DeleteOption) error
}

// View is a consistent snapshot of the controller.
type View[T any] struct {
	Rows       []T
	TotalCount int
	Query      query.State
	Pages      int
	Loading    bool
	Empty      bool
	Err        error
}

// Controller owns the authoritative ListResult of one screen.
type Controller[T any] struct {
	source   Source[T]
	idOf     func(T) string
	notifier notify.Notifier
	logger   *slog.Logger

	mu          sync.Mutex
	result      remote.ListResult[T]
	resultQuery query.State
	latest      query.State
	seq         uint64
	loading     bool
	err         error
	cancel      context.CancelFunc
	generation  uint64
	listeners   []func()
	closed      bool

	wg sync.WaitGroup
}

// Option customises a Controller.
type Option func(*controllerOptions)

type controllerOptions struct {
	notifier notify.Notifier
	logger   *slog.Logger
	initial  query.State
}

// WithNotifier sets where success toasts go.
func WithNotifier(n notify.Notifier) Option {
	return func(o *controllerOptions) { o.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *controllerOptions) { o.logger = l }
}

// WithInitialQuery sets the query reported before the first fetch.
func WithInitialQuery(q query.State) Option {
	return func(o *controllerOptions) { o.initial = q }
}

// NewController builds a controller over source. idOf extracts row identifiers.
func NewController[T any](source Source[T], idOf func(T) string, opts ...Option) *Controller[T] {
	o := controllerOptions{initial: query.New(0)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Controller[T]{
		source:      source,
		idOf:        idOf,
		notifier:    notify.OrDiscard(o.notifier),
		logger:      o.logger,
		result:      remote.ListResult[T]{Data: []T{}},
		resultQuery: o.initial,
		latest:      o.initial,
	}
}

// Subscribe registers fn to be called after every state change.
func (c *Controller[T]) Subscribe(fn func()) {
	if fn == nil {
		return
	}
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Refresh fetches q and makes it the displayed result, unless another fetch
// was dispatched meanwhile. A failed fetch keeps the previous rows.
func (c *Controller[T]) Refresh(ctx context.Context, q query.State) error {
	f, err := c.begin(ctx, q, false)
	if err != nil {
		return err
	}
	return f.run()
}

// Dispatch tags q as the latest query before returning and fetches it in the
// background. The last call to return always wins, whatever order the
// responses arrive in.
func (c *Controller[T]) Dispatch(ctx context.Context, q query.State) {
	f, err := c.begin(ctx, q, true)
	if err != nil {
		return
	}
	go func() {
		defer c.wg.Done()
		_ = f.run()
	}()
}

// Reload dispatches the most recently requested query again.
func (c *Controller[T]) Reload(ctx context.Context) {
	c.mu.Lock()
	q := c.latest
	c.mu.Unlock()
	c.Dispatch(ctx, q)
}

// fetch is one tagged request.
type fetch[T any] struct {
	c      *Controller[T]
	ctx    context.Context
	cancel context.CancelFunc
	q      query.State
	tag    uint64
}

// begin makes q the latest query: it assigns the tag, cancels the previous
// request and marks the controller loading. Background fetches join wg under
// the same lock Close takes, so Close never misses one.
func (c *Controller[T]) begin(ctx context.Context, q query.State, background bool) (*fetch[T], error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, context.Canceled
	}
	if background {
		c.wg.Add(1)
	}
	c.seq++
	f := &fetch[T]{c: c, q: q, tag: c.seq}
	c.latest = q
	if c.cancel != nil {
		c.cancel()
	}
	f.ctx, f.cancel = context.WithCancel(ctx)
	c.cancel = f.cancel
	c.loading = true
	c.mu.Unlock()
	c.changed()
	return f, nil
}

func (f *fetch[T]) run() error {
	c := f.c
	res, err := c.source.List(f.ctx, f.q)
	f.cancel()

	c.mu.Lock()
	if f.tag != c.seq {
		c.mu.Unlock()
		c.logger.Debug("discarding stale list response", slog.String("query", f.q.Key()))
		return ErrSuperseded
	}
	c.cancel = nil
	c.loading = false
	if err != nil {
		c.err = err
		c.mu.Unlock()
		c.changed()
		return err
	}
	if res.Data == nil {
		res.Data = []T{}
	}
	c.result = res
	c.resultQuery = f.q
	c.err = nil
	c.generation++
	c.mu.Unlock()
	c.changed()
	return nil
}

// Wait blocks until every dispatched fetch has returned.
func (c *Controller[T]) Wait() {
	c.wg.Wait()
}

// Close cancels the in-flight fetch and waits for background work.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	c.closed = true
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.mu.Unlock()
	c.wg.Wait()
}

// DeleteRow removes the row locally before asking the server to delete it.
// TotalCount is left as is until the next refresh. When the server refuses,
// the row is put back unless newer data replaced the rows in the meantime.
func (c *Controller[T]) DeleteRow(ctx context.Context, id string, opts ...remote.DeleteOption) error {
	c.mu.Lock()
	gen := c.generation
	idx := slices.IndexFunc(c.result.Data, func(row T) bool { return c.idOf(row) == id })
	var removed T
	if idx >= 0 {
		removed = c.result.Data[idx]
		rows := slices.Clone(c.result.Data)
		c.result.Data = slices.Delete(rows, idx, idx+1)
	}
	c.mu.Unlock()
	if idx >= 0 {
		c.changed()
	}

	if err := c.source.Delete(ctx, id, opts...); err != nil {
		if idx >= 0 {
			c.mu.Lock()
			restored := c.generation == gen
			if restored {
				at := min(idx, len(c.result.Data))
				c.result.Data = slices.Insert(slices.Clone(c.result.Data), at, removed)
			}
			c.mu.Unlock()
			if restored {
				c.changed()
			}
		}
		return err
	}
	c.notifier.Notify(notify.Success("Deleted successfully"))
	return nil
}

// View returns a snapshot.
func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return View[T]{
		Rows:       slices.Clone(c.result.Data),
		TotalCount: c.result.TotalCount,
		Query:      c.resultQuery,
		Pages:      c.resultQuery.Pages(c.result.TotalCount),
		Loading:    c.loading,
		Empty:      !c.loading && len(c.result.Data) == 0,
		Err:        c.err,
	}
}

// IsLoading reports whether the current fetch is unresolved.
func (c *Controller[T]) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// IsEmpty reports a settled, row-less result.
func (c *Controller[T]) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.loading && len(c.result.Data) == 0
}

func (c *Controller[T]) changed() {
	c.mu.Lock()
	listeners := slices.Clone(c.listeners)
	c.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

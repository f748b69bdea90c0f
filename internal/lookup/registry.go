package lookup

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknown is returned for a lookup name nobody registered.
var ErrUnknown = errors.New("lookup: unknown lookup")

// Entry is the type-erased view of a Cache used by the HTTP surface and the
// worker.
type Entry interface {
	Name() string
	Options(ctx context.Context) ([]Option, error)
	Invalidate(ctx context.Context) error
	Refresh(ctx context.Context) error
}

// Registry names the caches of a process.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry registers entries.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		r.Register(e)
	}
	return r
}

// Register adds or replaces e.
func (r *Registry) Register(e Entry) {
	r.mu.Lock()
	r.entries[e.Name()] = e
	r.mu.Unlock()
}

// Get returns the entry called name.
func (r *Registry) Get(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}
	return e, nil
}

// Names lists registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Refresh reloads name, or every lookup when name is empty.
func (r *Registry) Refresh(ctx context.Context, name string) error {
	if name != "" {
		e, err := r.Get(name)
		if err != nil {
			return err
		}
		return e.Refresh(ctx)
	}
	var errs []error
	for _, n := range r.Names() {
		e, err := r.Get(n)
		if err != nil {
			continue
		}
		if err := e.Refresh(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

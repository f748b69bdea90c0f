package form

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// ResourceBinding binds a model straight to a remote collection: the model
// itself is the create and update payload.
func ResourceBinding[M any, T any](r *remote.Resource[T], defaults func() M, hydrate func(T) M, id func(T) string) Binding[M, T] {
	return Binding[M, T]{
		Defaults: defaults,
		Hydrate:  hydrate,
		ID:       id,
		Get:      r.Get,
		Create: func(ctx context.Context, m M) (T, error) {
			return r.Create(ctx, m)
		},
		Update: func(ctx context.Context, id string, m M) (T, error) {
			return r.Update(ctx, id, m)
		},
	}
}

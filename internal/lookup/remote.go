package lookup

import (
	"context"
	"log/slog"

	"github.com/odyssey-erp/shopdesk/internal/query"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// PageSize is how many records a lookup asks the backend for in one call.
const PageSize = 1000

// FromResource loads the first PageSize records of r.
func FromResource[T any](r *remote.Resource[T]) Loader[T] {
	return func(ctx context.Context) ([]T, error) {
		res, err := r.List(ctx, query.New(PageSize))
		if err != nil {
			return nil, err
		}
		return res.Data, nil
	}
}

// InvalidateOnMutate drops e whenever the resource it is attached to changes.
func InvalidateOnMutate(e Entry, logger *slog.Logger) remote.ResourceOption {
	if logger == nil {
		logger = slog.Default()
	}
	return remote.OnMutate(func(ctx context.Context) {
		if err := e.Invalidate(ctx); err != nil {
			logger.Warn("lookup invalidation failed", slog.String("lookup", e.Name()), slog.Any("error", err))
		}
	})
}

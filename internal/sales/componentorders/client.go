package componentorders

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// Path is the backend collection.
const Path = "/component-orders"

// List filters besides keyword and the date range.
const (
	FilterComponent = "component_id"
	FilterStatus    = "status"
)

// NewResource binds the collection on client. Detail responses are wrapped.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[ComponentOrder] {
	return remote.NewResource[ComponentOrder](client, "componentorders", Path, append([]remote.ResourceOption{remote.Wrapped()}, opts...)...)
}

// ID returns the identifier of o.
func ID(o ComponentOrder) string { return o.ID }

// Binding sends the recomputed total with every create and update.
func Binding(res *remote.Resource[ComponentOrder]) form.Binding[Form, ComponentOrder] {
	b := form.ResourceBinding(res, Defaults, FromComponentOrder, ID)
	b.Create = func(ctx context.Context, f Form) (ComponentOrder, error) {
		return res.Create(ctx, f.Priced())
	}
	b.Update = func(ctx context.Context, id string, f Form) (ComponentOrder, error) {
		return res.Update(ctx, id, f.Priced())
	}
	return b
}

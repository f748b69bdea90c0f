package orders

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/orders"

// List filters besides keyword and the date range.
const (
	FilterCustomer = "customer_id"
	FilterStatus   = "status"
)

// NewResource binds the collection on client. Detail responses are wrapped.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Order] {
	return remote.NewResource[Order](client, "orders", Path, append([]remote.ResourceOption{remote.Wrapped()}, opts...)...)
}

// ID returns the identifier of o.
func ID(o Order) string { return o.ID }

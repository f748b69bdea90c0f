package products

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/products"

// List filters besides keyword and the date range.
const (
	FilterCategory    = "category_id"
	FilterSubCategory = "sub_category_id"
	FilterStatus      = "status"
)

// NewResource binds the collection on client. Detail responses are wrapped.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Product] {
	return remote.NewResource[Product](client, "products", Path, append([]remote.ResourceOption{remote.Wrapped()}, opts...)...)
}

// ID returns the identifier of p.
func ID(p Product) string { return p.ID }

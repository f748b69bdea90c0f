package categories

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/categories"

// NewResource binds the collection on client. Detail responses are bare.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Category] {
	return remote.NewResource[Category](client, "categories", Path, opts...)
}

// ID returns the identifier of c.
func ID(c Category) string { return c.ID }

// Label is how a category is shown in pickers.
func Label(c Category) string { return c.Name }

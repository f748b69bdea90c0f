package components

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/components"

// FilterSubCategory narrows the list to one sub-category.
const FilterSubCategory = "sub_category_id"

// NewResource binds the collection on client. Detail responses are wrapped
// and deletes need the passcode.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Component] {
	return remote.NewResource[Component](client, "components", Path, append([]remote.ResourceOption{remote.Wrapped()}, opts...)...)
}

// ID returns the identifier of c.
func ID(c Component) string { return c.ID }

// Label is how a component is shown in pickers.
func Label(c Component) string { return c.Name }

package subcategories

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/sub-categories"

// FilterCategory narrows the list to one category.
const FilterCategory = "category_id"

// NewResource binds the collection on client. Detail responses are bare.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[SubCategory] {
	return remote.NewResource[SubCategory](client, "subcategories", Path, opts...)
}

// ID returns the identifier of s.
func ID(s SubCategory) string { return s.ID }

// Label is how a sub-category is shown in pickers.
func Label(s SubCategory) string { return s.Name }

package subcategories

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/categories"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the sub-category list. Rows are labelled with their
// category name from cats.
func Screen(cats *lookup.Cache[categories.Category], hooks ...remote.ResourceOption) screen.Definition {
	return screen.Define("subcategories", "Sub-categories", func(client *remote.Client) screen.Config[SubCategory, Form] {
		res := NewResource(client, hooks...)
		return screen.Config[SubCategory, Form]{
			Noun:    "sub-category",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromSubCategory, ID),
			Filters: []string{FilterCategory},
			Label:   Label,
			Present: func(ctx context.Context, s SubCategory) any {
				return Row{SubCategory: s, CategoryName: cats.Label(ctx, s.CategoryID, "")}
			},
		}
	})
}

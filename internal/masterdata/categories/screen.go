package categories

import (
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the category list. hooks run after every mutation.
func Screen(hooks ...remote.ResourceOption) screen.Definition {
	return screen.Define("categories", "Categories", func(client *remote.Client) screen.Config[Category, Form] {
		res := NewResource(client, hooks...)
		return screen.Config[Category, Form]{
			Noun:    "category",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromCategory, ID),
			Label:   Label,
		}
	})
}

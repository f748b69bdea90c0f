package components

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/subcategories"
	"github.com/odyssey-erp/shopdesk/internal/platform/money"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Present labels a component with its sub-category and formatted price.
func Present(ctx context.Context, subs *lookup.Cache[subcategories.SubCategory], c Component) Row {
	return Row{
		Component:       c,
		SubCategoryName: subs.Label(ctx, c.SubCategoryID, ""),
		PriceText:       money.VND(c.Price),
		LowStock:        c.Quantity < LowStockThreshold,
	}
}

// Screen defines the component list. Deleting a component asks for the
// passcode.
func Screen(subs *lookup.Cache[subcategories.SubCategory]) screen.Definition {
	return screen.Define("components", "Components", func(client *remote.Client) screen.Config[Component, Form] {
		res := NewResource(client)
		return screen.Config[Component, Form]{
			Noun:     "component",
			Source:   res,
			Binding:  form.ResourceBinding(res, Defaults, FromComponent, ID),
			Filters:  []string{FilterSubCategory},
			Label:    Label,
			Passcode: true,
			Present: func(ctx context.Context, c Component) any {
				return Present(ctx, subs, c)
			},
		}
	})
}

package products

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/categories"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/subcategories"
	"github.com/odyssey-erp/shopdesk/internal/platform/money"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the device list.
func Screen(cats *lookup.Cache[categories.Category], subs *lookup.Cache[subcategories.SubCategory]) screen.Definition {
	return screen.Define("products", "Devices", func(client *remote.Client) screen.Config[Product, Form] {
		res := NewResource(client)
		return screen.Config[Product, Form]{
			Noun:    "device",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromProduct, ID),
			Filters: []string{FilterCategory, FilterSubCategory, FilterStatus},
			Label:   func(p Product) string { return p.Name },
			Present: func(ctx context.Context, p Product) any {
				return Row{
					Product:         p,
					CategoryName:    cats.Label(ctx, p.CategoryID, ""),
					SubCategoryName: subs.Label(ctx, p.SubCategoryID, ""),
					PriceText:       money.VND(p.Price),
				}
			},
		}
	})
}

package app

import (
	"log/slog"

	"github.com/odyssey-erp/shopdesk/internal/kanban/tasks"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/categories"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/components"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/products"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/staff"
	"github.com/odyssey-erp/shopdesk/internal/masterdata/subcategories"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/sales/componentorders"
	"github.com/odyssey-erp/shopdesk/internal/sales/customers"
	"github.com/odyssey-erp/shopdesk/internal/sales/orders"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Lookups holds the reference collections screens resolve labels from.
type Lookups struct {
	Categories    *lookup.Cache[categories.Category]
	SubCategories *lookup.Cache[subcategories.SubCategory]
	Customers     *lookup.Cache[customers.Customer]
	Registry      *lookup.Registry
}

// NewLookups builds the lookup caches over client. store may be nil, in which
// case every cache is process-local.
func NewLookups(client *remote.Client, store lookup.Store, logger *slog.Logger) *Lookups {
	opts := []lookup.CacheOption{lookup.WithLogger(logger)}
	if store != nil {
		opts = append(opts, lookup.WithStore(store))
	}

	l := &Lookups{
		Categories: lookup.New("categories",
			lookup.FromResource(categories.NewResource(client)),
			categories.ID, categories.Label, opts...),
		SubCategories: lookup.New("subcategories",
			lookup.FromResource(subcategories.NewResource(client)),
			subcategories.ID, subcategories.Label, opts...),
		Customers: lookup.New("customers",
			lookup.FromResource(customers.NewResource(client)),
			customers.ID, customers.Label, opts...),
	}
	l.Registry = lookup.NewRegistry(l.Categories, l.SubCategories, l.Customers)
	return l
}

// Screens returns every screen definition, wired to l. Screens that edit a
// looked-up collection invalidate it after each successful write.
func Screens(l *Lookups, logger *slog.Logger) []screen.Definition {
	return []screen.Definition{
		categories.Screen(lookup.InvalidateOnMutate(l.Categories, logger)),
		subcategories.Screen(l.Categories, lookup.InvalidateOnMutate(l.SubCategories, logger)),
		products.Screen(l.Categories, l.SubCategories),
		components.Screen(l.SubCategories),
		staff.Screen(),
		customers.Screen(lookup.InvalidateOnMutate(l.Customers, logger)),
		orders.Screen(l.Customers),
		componentorders.Screen(),
		tasks.Screen(),
	}
}

package orders

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/platform/money"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/sales/customers"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Present labels an order with its customer and formatted amounts.
func Present(ctx context.Context, custs *lookup.Cache[customers.Customer], o Order) Row {
	return Row{
		Order:        o,
		CustomerName: custs.Label(ctx, o.CustomerID, ""),
		TotalText:    money.VND(o.Total),
		BalanceText:  money.VND(o.Balance()),
	}
}

// Screen defines the order list.
func Screen(custs *lookup.Cache[customers.Customer]) screen.Definition {
	return screen.Define("orders", "Orders", func(client *remote.Client) screen.Config[Order, Form] {
		res := NewResource(client)
		return screen.Config[Order, Form]{
			Noun:    "order",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromOrder, ID),
			Filters: []string{FilterCustomer, FilterStatus},
			Label:   func(o Order) string { return o.Code },
			Present: func(ctx context.Context, o Order) any {
				return Present(ctx, custs, o)
			},
		}
	})
}

package componentorders

import (
	"context"

	"github.com/odyssey-erp/shopdesk/internal/platform/money"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the component purchase list.
func Screen() screen.Definition {
	return screen.Define("componentorders", "Component orders", func(client *remote.Client) screen.Config[ComponentOrder, Form] {
		res := NewResource(client)
		return screen.Config[ComponentOrder, Form]{
			Noun:    "component order",
			Source:  res,
			Binding: Binding(res),
			Filters: []string{FilterComponent, FilterStatus},
			Label:   func(o ComponentOrder) string { return o.Code },
			Present: func(_ context.Context, o ComponentOrder) any {
				return Row{ComponentOrder: o, TotalText: money.VND(o.Total)}
			},
		}
	})
}

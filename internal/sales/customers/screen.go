package customers

import (
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the customer list. hooks run after every mutation.
func Screen(hooks ...remote.ResourceOption) screen.Definition {
	return screen.Define("customers", "Customers", func(client *remote.Client) screen.Config[Customer, Form] {
		res := NewResource(client, hooks...)
		return screen.Config[Customer, Form]{
			Noun:    "customer",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromCustomer, ID),
			Label:   Label,
		}
	})
}

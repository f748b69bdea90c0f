package staff

import (
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// Screen defines the staff list.
func Screen() screen.Definition {
	return screen.Define("staff", "Staff", func(client *remote.Client) screen.Config[Member, Form] {
		res := NewResource(client)
		return screen.Config[Member, Form]{
			Noun:    "staff member",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromMember, ID),
			Filters: []string{FilterRole},
			Label:   func(m Member) string { return m.Name },
		}
	})
}

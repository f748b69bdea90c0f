package customers

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/customers"

// NewResource binds the collection on client. Detail responses are bare.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Customer] {
	return remote.NewResource[Customer](client, "customers", Path, opts...)
}

// ID returns the identifier of c.
func ID(c Customer) string { return c.ID }

// Label is how a customer is shown in pickers: name and phone, since names
// repeat.
func Label(c Customer) string {
	if c.Phone == "" {
		return c.Name
	}
	return c.Name + " (" + c.Phone + ")"
}

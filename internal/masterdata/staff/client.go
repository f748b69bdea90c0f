package staff

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/staff"

// FilterRole narrows the list to one role.
const FilterRole = "role"

// NewResource binds the collection on client. Detail responses are bare.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Member] {
	return remote.NewResource[Member](client, "staff", Path, opts...)
}

// ID returns the identifier of m.
func ID(m Member) string { return m.ID }

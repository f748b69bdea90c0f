package tasks

import "github.com/odyssey-erp/shopdesk/internal/remote"

// Path is the backend collection.
const Path = "/tasks"

// FilterAssignee narrows the board to one staff member.
const FilterAssignee = "assignee_id"

// NewResource binds the collection on client. Detail responses are bare.
func NewResource(client *remote.Client, opts ...remote.ResourceOption) *remote.Resource[Task] {
	return remote.NewResource[Task](client, "tasks", Path, opts...)
}

// ID returns the identifier of t.
func ID(t Task) string { return t.ID }

package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLookupRefresh reloads one lookup, or all of them.
	TaskLookupRefresh = "lookup:refresh"
)

// LookupRefreshPayload names the lookup to reload. Empty means every lookup.
type LookupRefreshPayload struct {
	Name string `json:"name,omitempty"`
}

// NewLookupRefreshTask constructs an Asynq task.
func NewLookupRefreshTask(payload LookupRefreshPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLookupRefresh, data), nil
}

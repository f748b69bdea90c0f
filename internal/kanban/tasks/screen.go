package tasks

import (
	"context"
	"fmt"
	"slices"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

// ActionMove moves a card to the column named by the command value.
const ActionMove = "move"

// Updater persists a task.
type Updater interface {
	Get(ctx context.Context, id string) (Task, error)
	Update(ctx context.Context, id string, payload any) (Task, error)
}

// Move sets the status of task id. The full form is sent back because the
// backend replaces the record on update.
func Move(ctx context.Context, res Updater, id, status string) (Task, error) {
	if !slices.Contains(Columns, status) {
		return Task{}, &form.ValidationError{Fields: form.FieldErrors{"status": fmt.Sprintf("Unknown column %q", status)}}
	}
	t, err := res.Get(ctx, id)
	if err != nil {
		return Task{}, err
	}
	if t.Status == status {
		return t, nil
	}
	f := FromTask(t)
	f.Status = status
	return res.Update(ctx, id, f)
}

// Screen defines the kanban board. The view carries the board in extra.
func Screen() screen.Definition {
	return screen.Define("tasks", "Tasks", func(client *remote.Client) screen.Config[Task, Form] {
		res := NewResource(client)
		return screen.Config[Task, Form]{
			Noun:    "task",
			Source:  res,
			Binding: form.ResourceBinding(res, Defaults, FromTask, ID),
			Filters: []string{FilterAssignee},
			Label:   func(t Task) string { return t.Title },
			Extra: func(_ context.Context, rows []Task) any {
				return map[string]any{"board": Board(rows)}
			},
			Actions: map[string]screen.Action[Task, Form]{
				ActionMove: func(ctx context.Context, s *screen.Screen[Task, Form], cmd screen.Command) error {
					if _, err := Move(ctx, res, cmd.ID, cmd.Value); err != nil {
						return err
					}
					s.Notify(notify.Success("Task moved"))
					s.Controller().Reload(s.Context())
					return nil
				},
			},
		}
	})
}

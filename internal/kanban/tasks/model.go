// Package tasks is the kanban board of repair work.
package tasks

// Task is one card on the board.
type Task struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assignee_id,omitempty"`
	OrderID     string `json:"order_id,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Priority    int    `json:"priority"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Board columns, left to right.
const (
	StatusTodo   = "todo"
	StatusDoing  = "doing"
	StatusReview = "review"
	StatusDone   = "done"
)

// Columns lists the board columns in display order.
var Columns = []string{StatusTodo, StatusDoing, StatusReview, StatusDone}

// Column is one board column.
type Column struct {
	Status string `json:"status"`
	Tasks  []Task `json:"tasks"`
}

// Board groups tasks by status. Tasks with an unknown status land in the
// first column so they stay visible.
func Board(tasks []Task) []Column {
	cols := make([]Column, len(Columns))
	at := make(map[string]int, len(Columns))
	for i, status := range Columns {
		cols[i] = Column{Status: status, Tasks: []Task{}}
		at[status] = i
	}
	for _, t := range tasks {
		i, ok := at[t.Status]
		if !ok {
			i = 0
		}
		cols[i].Tasks = append(cols[i].Tasks, t)
	}
	return cols
}

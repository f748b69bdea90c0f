package tasks

// Form is the editable projection of a Task.
type Form struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Status      string `json:"status" validate:"required,oneof=todo doing review done"`
	AssigneeID  string `json:"assignee_id"`
	OrderID     string `json:"order_id"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Priority    int    `json:"priority" validate:"gte=0,lte=3"`
}

// Defaults returns the form for a new card.
func Defaults() Form {
	return Form{Status: StatusTodo}
}

// FromTask hydrates a form for editing.
func FromTask(t Task) Form {
	return Form{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		AssigneeID:  t.AssigneeID,
		OrderID:     t.OrderID,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
	}
}

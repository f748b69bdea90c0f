package categories

// Form is the editable projection of a Category.
type Form struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// Defaults returns an empty form.
func Defaults() Form { return Form{} }

// FromCategory hydrates a form for editing.
func FromCategory(c Category) Form {
	return Form{Name: c.Name, Description: c.Description}
}

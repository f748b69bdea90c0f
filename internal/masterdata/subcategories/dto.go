package subcategories

// Form is the editable projection of a SubCategory.
type Form struct {
	Name       string `json:"name" validate:"required,max=100"`
	CategoryID string `json:"category_id" validate:"required"`
}

// Defaults returns an empty form.
func Defaults() Form { return Form{} }

// FromSubCategory hydrates a form for editing.
func FromSubCategory(s SubCategory) Form {
	return Form{Name: s.Name, CategoryID: s.CategoryID}
}

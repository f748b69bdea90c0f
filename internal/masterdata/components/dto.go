package components

// Form is the editable projection of a Component.
type Form struct {
	Name          string `json:"name" validate:"required,max=200"`
	SubCategoryID string `json:"sub_category_id" validate:"required"`
	Price         int64  `json:"price" validate:"gte=0"`
	Quantity      int    `json:"quantity" validate:"gte=0"`
	Supplier      string `json:"supplier" validate:"max=200"`
	Note          string `json:"note" validate:"max=1000"`
}

// Defaults returns an empty form.
func Defaults() Form { return Form{} }

// FromComponent hydrates a form for editing.
func FromComponent(c Component) Form {
	return Form{
		Name:          c.Name,
		SubCategoryID: c.SubCategoryID,
		Price:         c.Price,
		Quantity:      c.Quantity,
		Supplier:      c.Supplier,
		Note:          c.Note,
	}
}

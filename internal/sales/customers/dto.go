package customers

// Form is the editable projection of a Customer.
type Form struct {
	Name    string `json:"name" validate:"required,max=200"`
	Phone   string `json:"phone" validate:"required,numeric,min=9,max=11"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address" validate:"max=300"`
	Note    string `json:"note" validate:"max=1000"`
}

// Defaults returns an empty form.
func Defaults() Form { return Form{} }

// FromCustomer hydrates a form for editing.
func FromCustomer(c Customer) Form {
	return Form{Name: c.Name, Phone: c.Phone, Email: c.Email, Address: c.Address, Note: c.Note}
}

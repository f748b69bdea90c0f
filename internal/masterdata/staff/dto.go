package staff

// Form is the editable projection of a Member.
type Form struct {
	Name   string `json:"name" validate:"required,max=100"`
	Phone  string `json:"phone" validate:"required,numeric,min=9,max=11"`
	Email  string `json:"email" validate:"omitempty,email"`
	Role   string `json:"role" validate:"required,oneof=admin technician sales"`
	Salary int64  `json:"salary" validate:"gte=0"`
}

// Defaults returns the form for a new member.
func Defaults() Form {
	return Form{Role: RoleSales}
}

// FromMember hydrates a form for editing.
func FromMember(m Member) Form {
	return Form{Name: m.Name, Phone: m.Phone, Email: m.Email, Role: m.Role, Salary: m.Salary}
}

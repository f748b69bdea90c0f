package staff

// Member is an employee of the shop.
type Member struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	Salary    int64  `json:"salary"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Roles a member can have.
const (
	RoleAdmin      = "admin"
	RoleTechnician = "technician"
	RoleSales      = "sales"
)

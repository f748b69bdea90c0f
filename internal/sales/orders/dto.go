package orders

// Form is the editable projection of an Order.
type Form struct {
	CustomerID  string `json:"customer_id" validate:"required"`
	Device      string `json:"device" validate:"required,max=200"`
	Description string `json:"description" validate:"max=1000"`
	Total       int64  `json:"total" validate:"gte=0"`
	Deposit     int64  `json:"deposit" validate:"gte=0,ltefield=Total"`
	Status      string `json:"status" validate:"required,oneof=pending repairing done delivered cancelled"`
}

// Defaults returns the form for a new order.
func Defaults() Form {
	return Form{Status: StatusPending}
}

// FromOrder hydrates a form for editing. The code is assigned by the backend
// and is not editable.
func FromOrder(o Order) Form {
	return Form{
		CustomerID:  o.CustomerID,
		Device:      o.Device,
		Description: o.Description,
		Total:       o.Total,
		Deposit:     o.Deposit,
		Status:      o.Status,
	}
}

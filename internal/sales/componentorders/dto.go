package componentorders

// Form is the editable projection of a ComponentOrder. The total is derived.
type Form struct {
	ComponentID string `json:"component_id" validate:"required"`
	Supplier    string `json:"supplier" validate:"required,max=200"`
	Quantity    int    `json:"quantity" validate:"gt=0"`
	UnitPrice   int64  `json:"unit_price" validate:"gte=0"`
	Total       int64  `json:"total" validate:"gte=0"`
	Status      string `json:"status" validate:"required,oneof=pending ordered received cancelled"`
}

// Defaults returns the form for a new purchase.
func Defaults() Form {
	return Form{Quantity: 1, Status: StatusPending}
}

// FromComponentOrder hydrates a form for editing.
func FromComponentOrder(o ComponentOrder) Form {
	return Form{
		ComponentID: o.ComponentID,
		Supplier:    o.Supplier,
		Quantity:    o.Quantity,
		UnitPrice:   o.UnitPrice,
		Total:       o.Total,
		Status:      o.Status,
	}
}

// Priced returns f with Total recomputed from quantity and unit price.
func (f Form) Priced() Form {
	f.Total = int64(f.Quantity) * f.UnitPrice
	return f
}

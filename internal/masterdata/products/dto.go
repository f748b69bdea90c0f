package products

// Form is the editable projection of a Product.
type Form struct {
	Name          string `json:"name" validate:"required,max=200"`
	IMEI          string `json:"imei" validate:"omitempty,numeric,len=15"`
	CategoryID    string `json:"category_id" validate:"required"`
	SubCategoryID string `json:"sub_category_id"`
	Color         string `json:"color" validate:"max=50"`
	Storage       string `json:"storage" validate:"max=50"`
	Price         int64  `json:"price" validate:"gte=0"`
	Status        string `json:"status" validate:"required,oneof=in_stock sold repair"`
	Note          string `json:"note" validate:"max=1000"`
}

// Defaults returns the form for a new device.
func Defaults() Form {
	return Form{Status: StatusInStock}
}

// FromProduct hydrates a form for editing.
func FromProduct(p Product) Form {
	return Form{
		Name:          p.Name,
		IMEI:          p.IMEI,
		CategoryID:    p.CategoryID,
		SubCategoryID: p.SubCategoryID,
		Color:         p.Color,
		Storage:       p.Storage,
		Price:         p.Price,
		Status:        p.Status,
		Note:          p.Note,
	}
}

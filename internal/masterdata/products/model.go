package products

// Product is a device held by the shop, either for sale or in for repair.
type Product struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	IMEI          string `json:"imei,omitempty"`
	CategoryID    string `json:"category_id"`
	SubCategoryID string `json:"sub_category_id,omitempty"`
	Color         string `json:"color,omitempty"`
	Storage       string `json:"storage,omitempty"`
	Price         int64  `json:"price"`
	Status        string `json:"status"`
	Note          string `json:"note,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Statuses a device can be in.
const (
	StatusInStock = "in_stock"
	StatusSold    = "sold"
	StatusRepair  = "repair"
)

// Row is what the list renders.
type Row struct {
	Product
	CategoryName    string `json:"categoryName"`
	SubCategoryName string `json:"subCategoryName"`
	PriceText       string `json:"priceText"`
}

package components

// Component is a spare part ("linh kiện") kept in stock for repairs.
type Component struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	SubCategoryID string `json:"sub_category_id"`
	Price         int64  `json:"price"`
	Quantity      int    `json:"quantity"`
	Supplier      string `json:"supplier,omitempty"`
	Note          string `json:"note,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Row is what the list renders.
type Row struct {
	Component
	SubCategoryName string `json:"subCategoryName"`
	PriceText       string `json:"priceText"`
	LowStock        bool   `json:"lowStock"`
}

// LowStockThreshold flags rows that need reordering.
const LowStockThreshold = 3

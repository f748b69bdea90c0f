package subcategories

// SubCategory refines a category ("iPhone", "Samsung").
type SubCategory struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

// Row is what the list renders.
type Row struct {
	SubCategory
	CategoryName string `json:"categoryName"`
}

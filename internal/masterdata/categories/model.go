package categories

// Category groups devices and components ("Điện thoại", "Máy tính bảng").
type Category struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

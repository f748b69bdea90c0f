package componentorders

// ComponentOrder is a purchase of spare parts from a supplier.
type ComponentOrder struct {
	ID          string `json:"_id"`
	Code        string `json:"code"`
	ComponentID string `json:"component_id"`
	Supplier    string `json:"supplier"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unit_price"`
	Total       int64  `json:"total"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Purchase statuses.
const (
	StatusPending   = "pending"
	StatusOrdered   = "ordered"
	StatusReceived  = "received"
	StatusCancelled = "cancelled"
)

// Row is what the list renders.
type Row struct {
	ComponentOrder
	TotalText string `json:"totalText"`
}

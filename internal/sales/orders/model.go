package orders

// Order is a repair or sale ticket for a customer.
type Order struct {
	ID          string `json:"_id"`
	Code        string `json:"code"`
	CustomerID  string `json:"customer_id"`
	Device      string `json:"device"`
	Description string `json:"description,omitempty"`
	Total       int64  `json:"total"`
	Deposit     int64  `json:"deposit"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// Order statuses.
const (
	StatusPending   = "pending"
	StatusRepairing = "repairing"
	StatusDone      = "done"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// Row is what the list renders.
type Row struct {
	Order
	CustomerName string `json:"customerName"`
	TotalText    string `json:"totalText"`
	BalanceText  string `json:"balanceText"`
}

// Balance is what the customer still owes.
func (o Order) Balance() int64 {
	return max(o.Total-o.Deposit, 0)
}

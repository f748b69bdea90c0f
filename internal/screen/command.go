package screen

import (
	"encoding/json"

	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/notify"
)

// Actions understood by every screen.
const (
	ActionInput     = "input"
	ActionSearch    = "search"
	ActionFilter    = "filter"
	ActionDateRange = "date_range"
	ActionPage      = "page"
	ActionPageSize  = "page_size"
	ActionReset     = "reset"
	ActionRefresh   = "refresh"
	ActionOpen      = "open"
	ActionEdit      = "edit"
	ActionSubmit    = "submit"
	ActionClose     = "close"
	ActionDelete    = "delete"
	ActionPasscode  = "passcode"
	ActionConfirm   = "confirm"
	ActionCancel    = "cancel"
)

// Command is one user intent sent by the client.
type Command struct {
	Action string          `json:"action"`
	Field  string          `json:"field,omitempty"`
	Value  string          `json:"value,omitempty"`
	From   string          `json:"from,omitempty"`
	To     string          `json:"to,omitempty"`
	Page   int             `json:"page,omitempty"`
	Size   int             `json:"size,omitempty"`
	ID     string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// View is everything a client needs to render a screen.
type View struct {
	Screen       string            `json:"screen"`
	Session      string            `json:"session,omitempty"`
	Title        string            `json:"title"`
	Filters      map[string]string `json:"filters"`
	Page         int               `json:"page"`
	ItemsPerPage int               `json:"itemsPerPage"`
	Search       string            `json:"search"`
	Rows         []any             `json:"rows"`
	TotalCount   int               `json:"totalCount"`
	Pages        int               `json:"pages"`
	Loading      bool              `json:"loading"`
	Empty        bool              `json:"empty"`
	Error        string            `json:"error,omitempty"`
	Dialog       any               `json:"dialog"`
	Confirm      form.ConfirmState `json:"confirm"`
	Extra        any               `json:"extra,omitempty"`
	Toasts       []notify.Toast    `json:"toasts,omitempty"`
}

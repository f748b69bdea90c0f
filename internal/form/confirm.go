package form

import (
	"context"
	"sync"

	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// Deleter removes a row by id.
type Deleter interface {
	DeleteRow(ctx context.Context, id string, opts ...remote.DeleteOption) error
}

// ConfirmState is a snapshot of a confirmation dialog.
type ConfirmState struct {
	Open            bool   `json:"open"`
	ID              string `json:"id,omitempty"`
	Label           string `json:"label,omitempty"`
	RequirePasscode bool   `json:"requirePasscode"`
	PasscodeEntered bool   `json:"passcodeEntered"`
	Error           string `json:"error,omitempty"`
	Busy            bool   `json:"busy"`
}

// Confirm asks before deleting, optionally behind a passcode that the
// server checks.
type Confirm struct {
	target          Deleter
	requirePasscode bool

	mu       sync.Mutex
	open     bool
	id       string
	label    string
	passcode string
	err      string
	busy     bool
}

// NewConfirm builds a closed confirmation dialog.
func NewConfirm(target Deleter, requirePasscode bool) *Confirm {
	return &Confirm{target: target, requirePasscode: requirePasscode}
}

// Open asks to confirm deleting id. label is what the user sees.
func (c *Confirm) Open(id, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
	c.id = id
	c.label = label
	c.passcode = ""
	c.err = ""
}

// SetPasscode records the typed passcode.
func (c *Confirm) SetPasscode(p string) {
	c.mu.Lock()
	c.passcode = p
	c.mu.Unlock()
}

// Cancel closes without deleting.
func (c *Confirm) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Confirm) reset() {
	c.open = false
	c.id = ""
	c.label = ""
	c.passcode = ""
	c.err = ""
	c.busy = false
}

// Submit performs the deletion. The dialog closes and forgets the passcode
// only on success; on failure it stays open with the passcode as typed.
func (c *Confirm) Submit(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.busy {
		c.mu.Unlock()
		return nil
	}
	if c.requirePasscode && c.passcode == "" {
		c.err = "Passcode is required"
		c.mu.Unlock()
		return &ValidationError{Fields: FieldErrors{"passcode": "This field is required"}}
	}
	id := c.id
	var opts []remote.DeleteOption
	if c.requirePasscode {
		opts = append(opts, remote.WithPasscode(c.passcode))
	}
	c.err = ""
	c.busy = true
	c.mu.Unlock()

	err := c.target.DeleteRow(ctx, id, opts...)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.err = remote.MessageOf(err)
		return err
	}
	c.reset()
	return nil
}

// State returns a snapshot.
func (c *Confirm) State() ConfirmState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return ConfirmState{
		Open:            c.open,
		ID:              c.id,
		Label:           c.label,
		RequirePasscode: c.requirePasscode,
		PasscodeEntered: c.passcode != "",
		Error:           c.err,
		Busy:            c.busy,
	}
}

// Passcode returns the typed passcode.
func (c *Confirm) Passcode() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.passcode
}

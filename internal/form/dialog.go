package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/odyssey-erp/shopdesk/internal/notify"
)

// Mode tells whether a dialog creates or updates.
type Mode string

const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// ErrClosed is returned when submitting a dialog that is not open.
var ErrClosed = errors.New("form: dialog is not open")

// Reloader refetches the list a dialog belongs to.
type Reloader interface {
	Reload(ctx context.Context)
}

// Binding describes how a form model M maps to an entity T and to the
// remote resource that persists it.
type Binding[M any, T any] struct {
	// Defaults returns a fresh model for create mode.
	Defaults func() M
	// Hydrate copies an entity into a model for editing.
	Hydrate func(T) M
	// ID returns the identifier of an entity.
	ID func(T) string

	Get    func(ctx context.Context, id string) (T, error)
	Create func(ctx context.Context, model M) (T, error)
	Update func(ctx context.Context, id string, model M) (T, error)
}

// State is a snapshot of a dialog.
type State[M any] struct {
	Open   bool        `json:"open"`
	Mode   Mode        `json:"mode,omitempty"`
	ID     string      `json:"id,omitempty"`
	Model  M           `json:"model"`
	Errors FieldErrors `json:"errors,omitempty"`
	Busy   bool        `json:"busy"`
}

// Dialog is a modal create/update form.
type Dialog[M any, T any] struct {
	binding   Binding[M, T]
	validator *Validator
	reloader  Reloader
	notifier  notify.Notifier
	logger    *slog.Logger
	noun      string

	mu     sync.Mutex
	open   bool
	id     string
	model  M
	errors FieldErrors
	busy   bool
}

// DialogOption customises a Dialog.
type DialogOption func(*dialogOptions)

type dialogOptions struct {
	validator *Validator
	notifier  notify.Notifier
	logger    *slog.Logger
	noun      string
}

// WithValidator shares a Validator between dialogs.
func WithValidator(v *Validator) DialogOption {
	return func(o *dialogOptions) { o.validator = v }
}

// WithNotifier sets where success toasts go.
func WithNotifier(n notify.Notifier) DialogOption {
	return func(o *dialogOptions) { o.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) DialogOption {
	return func(o *dialogOptions) { o.logger = l }
}

// WithNoun names the entity in toasts, e.g. "Product created".
func WithNoun(noun string) DialogOption {
	return func(o *dialogOptions) { o.noun = noun }
}

// NewDialog builds a closed dialog. reloader may be nil.
func NewDialog[M any, T any](binding Binding[M, T], reloader Reloader, opts ...DialogOption) *Dialog[M, T] {
	o := dialogOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.validator == nil {
		o.validator = NewValidator()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	d := &Dialog[M, T]{
		binding:   binding,
		validator: o.validator,
		reloader:  reloader,
		notifier:  notify.OrDiscard(o.notifier),
		logger:    o.logger,
		noun:      o.noun,
	}
	d.model = d.defaults()
	return d
}

func (d *Dialog[M, T]) defaults() M {
	if d.binding.Defaults == nil {
		var zero M
		return zero
	}
	return d.binding.Defaults()
}

// Open shows the dialog. A nil item opens it in create mode with default
// values; otherwise the item is hydrated into the model.
func (d *Dialog[M, T]) Open(item *T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.errors = nil
	if item == nil {
		d.id = ""
		d.model = d.defaults()
		return
	}
	d.id = d.binding.ID(*item)
	d.model = d.binding.Hydrate(*item)
}

// OpenByID fetches the record and opens the dialog in update mode.
func (d *Dialog[M, T]) OpenByID(ctx context.Context, id string) error {
	if d.binding.Get == nil {
		return fmt.Errorf("form: %s has no detail endpoint", d.noun)
	}
	item, err := d.binding.Get(ctx, id)
	if err != nil {
		return err
	}
	d.Open(&item)
	return nil
}

// Edit mutates the model in place.
func (d *Dialog[M, T]) Edit(fn func(*M)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(&d.model)
}

// Patch decodes a partial JSON object onto the model. Absent keys keep
// their value.
func (d *Dialog[M, T]) Patch(data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	next := d.model
	if err := json.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("form: patch %s: %w", d.noun, err)
	}
	d.model = next
	return nil
}

// Replace swaps the whole model.
func (d *Dialog[M, T]) Replace(model M) {
	d.mu.Lock()
	d.model = model
	d.mu.Unlock()
}

// Model returns a copy of the current model.
func (d *Dialog[M, T]) Model() M {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.model
}

// Errors returns the inline field errors of the last submit.
func (d *Dialog[M, T]) Errors() FieldErrors {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errors
}

// IsOpen reports whether the dialog is shown.
func (d *Dialog[M, T]) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Mode reports create or update.
func (d *Dialog[M, T]) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode()
}

func (d *Dialog[M, T]) mode() Mode {
	if d.id != "" {
		return ModeUpdate
	}
	return ModeCreate
}

// State returns a snapshot.
func (d *Dialog[M, T]) State() State[M] {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := State[M]{Open: d.open, Model: d.model, Errors: d.errors, Busy: d.busy}
	if d.open {
		s.Mode = d.mode()
		s.ID = d.id
	}
	return s
}

// Close hides the dialog and resets the model.
func (d *Dialog[M, T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Dialog[M, T]) reset() {
	d.open = false
	d.id = ""
	d.errors = nil
	d.busy = false
	d.model = d.defaults()
}

// Submit validates the model and creates or updates the record. On success
// the owning list is reloaded and the dialog closes. On failure it stays open
// with the model untouched.
func (d *Dialog[M, T]) Submit(ctx context.Context) (T, error) {
	var zero T
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return zero, ErrClosed
	}
	if d.busy {
		d.mu.Unlock()
		return zero, fmt.Errorf("form: %s submit already in progress", d.noun)
	}
	model := d.model
	id := d.id
	if err := d.validator.Struct(model); err != nil {
		d.errors = FieldsOf(err)
		d.mu.Unlock()
		return zero, err
	}
	d.errors = nil
	d.busy = true
	d.mu.Unlock()

	var (
		saved T
		err   error
		verb  string
	)
	if id != "" {
		verb = "updated"
		saved, err = d.binding.Update(ctx, id, model)
	} else {
		verb = "created"
		saved, err = d.binding.Create(ctx, model)
	}

	d.mu.Lock()
	d.busy = false
	if err != nil {
		d.mu.Unlock()
		d.logger.Debug("form submit failed", slog.String("entity", d.noun), slog.Any("error", err))
		return zero, err
	}
	d.reset()
	d.mu.Unlock()

	d.notifier.Notify(notify.Success(successMessage(d.noun, verb)))
	if d.reloader != nil {
		d.reloader.Reload(ctx)
	}
	return saved, nil
}

func successMessage(noun, verb string) string {
	if noun == "" {
		return "Saved successfully"
	}
	return fmt.Sprintf("%s %s", capitalize(noun), verb)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if c := s[0]; c >= 'a' && c <= 'z' {
		return string(c-'a'+'A') + s[1:]
	}
	return s
}

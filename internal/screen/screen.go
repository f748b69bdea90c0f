// Package screen composes query state, list controller, debounced search,
// form dialog and delete confirmation into one server-side session per open
// screen.
package screen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"sync"
	"time"

	"github.com/odyssey-erp/shopdesk/internal/debounce"
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/listing"
	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/query"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// ErrUnknownAction is returned for a command no handler understands.
var ErrUnknownAction = errors.New("screen: unknown action")

// Action handles a screen specific command.
type Action[T any, M any] func(ctx context.Context, s *Screen[T, M], cmd Command) error

// Config describes one entity screen.
type Config[T any, M any] struct {
	Name  string
	Title string
	// Noun names one record in toasts ("product").
	Noun string

	Source  listing.Source[T]
	Binding form.Binding[M, T]

	// Filters lists the filter fields accepted besides keyword and the date range.
	Filters []string
	// Label is what the delete confirmation shows for a row.
	Label func(T) string
	// Present turns a row into what the client renders. Nil sends the row as is.
	Present func(ctx context.Context, row T) any
	// Extra adds screen specific data computed from the displayed rows.
	Extra func(ctx context.Context, rows []T) any
	// Passcode gates deletion behind a server checked passcode.
	Passcode bool
	Actions  map[string]Action[T, M]
}

// Live is a running screen session.
type Live interface {
	Name() string
	Mount()
	Load(ctx context.Context) error
	Handle(ctx context.Context, cmd Command) error
	View(ctx context.Context) View
	Subscribe(fn func())
	Close()
}

// Screen is one session of an entity screen.
type Screen[T any, M any] struct {
	cfg    Config[T, M]
	logger *slog.Logger
	toasts *notify.Recorder

	controller *listing.Controller[T]
	filters    *listing.Filters
	search     *debounce.Debouncer
	dialog     *form.Dialog[M, T]
	confirm    *form.Confirm

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	listeners []func()
	closeOnce sync.Once
}

// New starts a session. initial seeds the query from URL parameters.
func New[T any, M any](cfg Config[T, M], deps Deps, toasts *notify.Recorder, initial url.Values) *Screen[T, M] {
	deps = deps.withDefaults()
	if toasts == nil {
		toasts = notify.NewRecorder()
	}
	logger := deps.Logger.With(slog.String("screen", cfg.Name))
	ctx, cancel := context.WithCancel(context.Background())

	defaults := query.New(deps.PageSize)
	allowed := append([]string{query.FieldKeyword, query.FieldFromDate, query.FieldToDate}, cfg.Filters...)
	start := query.Parse(initial, defaults, allowed...)

	s := &Screen[T, M]{cfg: cfg, logger: logger, toasts: toasts, ctx: ctx, cancel: cancel}
	s.controller = listing.NewController(cfg.Source, cfg.Binding.ID,
		listing.WithNotifier(toasts),
		listing.WithLogger(logger),
		listing.WithInitialQuery(start),
	)
	s.controller.Subscribe(s.changed)
	s.filters = listing.NewFilters(defaults, s.controller)
	s.filters.Seed(start)
	s.search = debounce.New(deps.SearchDelay, s.commitSearch,
		debounce.WithClock(deps.Clock),
		debounce.WithInitial(start.Field(query.FieldKeyword)),
	)
	s.dialog = form.NewDialog(cfg.Binding, s.controller,
		form.WithValidator(deps.Validator),
		form.WithNotifier(toasts),
		form.WithLogger(logger),
		form.WithNoun(cfg.Noun),
	)
	s.confirm = form.NewConfirm(s.controller, cfg.Passcode)
	return s
}

// Name returns the screen name.
func (s *Screen[T, M]) Name() string { return s.cfg.Name }

// Mount issues the first fetch in the background.
func (s *Screen[T, M]) Mount() {
	s.filters.Mount(s.ctx)
}

// Load fetches the current query and waits for it.
func (s *Screen[T, M]) Load(ctx context.Context) error {
	return s.controller.Refresh(ctx, s.filters.State())
}

// Subscribe registers fn to run after every change.
func (s *Screen[T, M]) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Screen[T, M]) changed() {
	s.mu.Lock()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func (s *Screen[T, M]) commitSearch(text string) {
	s.filters.SetField(s.ctx, query.FieldKeyword, text)
}

// Controller exposes the list controller to screen specific actions.
func (s *Screen[T, M]) Controller() *listing.Controller[T] { return s.controller }

// Filters exposes the query state machine.
func (s *Screen[T, M]) Filters() *listing.Filters { return s.filters }

// Dialog exposes the create/update dialog.
func (s *Screen[T, M]) Dialog() *form.Dialog[M, T] { return s.dialog }

// Notify queues a toast for the next view.
func (s *Screen[T, M]) Notify(t notify.Toast) { s.toasts.Notify(t) }

// Context is cancelled when the session closes.
func (s *Screen[T, M]) Context() context.Context { return s.ctx }

// Handle applies one command.
func (s *Screen[T, M]) Handle(ctx context.Context, cmd Command) error {
	err := s.handle(ctx, cmd)
	if err != nil {
		s.report(cmd, err)
	}
	s.changed()
	return err
}

// report turns a command failure into at most one toast. Backend failures
// were already reported by the remote client, and the dialogs show their own
// field errors inline.
func (s *Screen[T, M]) report(cmd Command, err error) {
	s.logger.Debug("screen command failed", slog.String("action", cmd.Action), slog.Any("error", err))
	var re *remote.Error
	switch {
	case errors.As(err, &re), errors.Is(err, listing.ErrSuperseded), errors.Is(err, context.Canceled):
		return
	}
	if fields := form.FieldsOf(err); fields != nil {
		if cmd.Action == ActionSubmit || cmd.Action == ActionConfirm {
			return
		}
		for _, msg := range fields {
			s.toasts.Notify(notify.Failure(msg))
			return
		}
	}
	s.toasts.Notify(notify.Failure(err.Error()))
}

func (s *Screen[T, M]) handle(ctx context.Context, cmd Command) error {
	switch cmd.Action {
	case ActionInput:
		s.search.Input(cmd.Value)
	case ActionSearch:
		if cmd.Value != s.search.Text() {
			s.search.Input(cmd.Value)
		}
		if !s.search.Flush() {
			s.search.Set(s.search.Text())
			s.filters.SetField(s.ctx, query.FieldKeyword, s.search.Text())
		}
	case ActionFilter:
		return s.setFilter(cmd.Field, cmd.Value)
	case ActionDateRange:
		from, err := parseDate(cmd.From)
		if err != nil {
			return err
		}
		to, err := parseDate(cmd.To)
		if err != nil {
			return err
		}
		if !from.IsZero() && !to.IsZero() && to.Before(from) {
			return &form.ValidationError{Fields: form.FieldErrors{query.FieldToDate: "Must not be before the start date"}}
		}
		s.filters.SetDateRange(s.ctx, from, to)
	case ActionPage:
		s.filters.SetPage(s.ctx, cmd.Page)
	case ActionPageSize:
		s.filters.SetItemsPerPage(s.ctx, cmd.Size)
	case ActionReset:
		s.search.Set("")
		s.filters.Reset(s.ctx)
	case ActionRefresh:
		s.controller.Reload(s.ctx)
	case ActionOpen:
		if cmd.ID == "" {
			s.dialog.Open(nil)
			return nil
		}
		return s.dialog.OpenByID(ctx, cmd.ID)
	case ActionEdit:
		return s.dialog.Patch(cmd.Data)
	case ActionSubmit:
		if len(cmd.Data) > 0 {
			if err := s.dialog.Patch(cmd.Data); err != nil {
				return err
			}
		}
		_, err := s.dialog.Submit(ctx)
		return err
	case ActionClose:
		s.dialog.Close()
	case ActionDelete:
		if cmd.ID == "" {
			return &form.ValidationError{Fields: form.FieldErrors{"id": "This field is required"}}
		}
		s.confirm.Open(cmd.ID, s.labelOf(cmd.ID))
	case ActionPasscode:
		s.confirm.SetPasscode(cmd.Value)
	case ActionConfirm:
		return s.confirm.Submit(ctx)
	case ActionCancel:
		s.confirm.Cancel()
	default:
		if action, ok := s.cfg.Actions[cmd.Action]; ok {
			return action(ctx, s, cmd)
		}
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	return nil
}

func (s *Screen[T, M]) setFilter(field, value string) error {
	switch field {
	case query.FieldKeyword:
		s.search.Set(value)
		s.filters.SetField(s.ctx, field, value)
		return nil
	case query.FieldPage, query.FieldItemsPerPage, query.FieldFromDate, query.FieldToDate:
		return fmt.Errorf("screen: %s is not set through filter", field)
	}
	if !slices.Contains(s.cfg.Filters, field) {
		return &form.ValidationError{Fields: form.FieldErrors{field: "Unknown filter"}}
	}
	s.filters.SetField(s.ctx, field, value)
	return nil
}

func parseDate(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(query.DateLayout, v)
	if err != nil {
		return time.Time{}, &form.ValidationError{Fields: form.FieldErrors{"date": "Must be a date in " + query.DateLayout + " format"}}
	}
	return t, nil
}

func (s *Screen[T, M]) labelOf(id string) string {
	if s.cfg.Label == nil {
		return id
	}
	for _, row := range s.controller.View().Rows {
		if s.cfg.Binding.ID(row) == id {
			return s.cfg.Label(row)
		}
	}
	return id
}

// View renders the session and drains pending toasts.
func (s *Screen[T, M]) View(ctx context.Context) View {
	lv := s.controller.View()
	rows := make([]any, 0, len(lv.Rows))
	for _, row := range lv.Rows {
		if s.cfg.Present != nil {
			rows = append(rows, s.cfg.Present(ctx, row))
		} else {
			rows = append(rows, row)
		}
	}
	current := s.filters.State()
	v := View{
		Screen:       s.cfg.Name,
		Title:        s.cfg.Title,
		Filters:      current.Fields(),
		Page:         current.Page,
		ItemsPerPage: current.ItemsPerPage,
		Search:       s.search.Text(),
		Rows:         rows,
		TotalCount:   lv.TotalCount,
		Pages:        lv.Pages,
		Loading:      lv.Loading,
		Empty:        lv.Empty,
		Dialog:       s.dialog.State(),
		Confirm:      s.confirm.State(),
		Toasts:       s.toasts.Drain(),
	}
	if lv.Err != nil {
		v.Error = remote.MessageOf(lv.Err)
	}
	if s.cfg.Extra != nil {
		v.Extra = s.cfg.Extra(ctx, lv.Rows)
	}
	return v
}

// Close tears the session down: pending search commits are dropped and the
// in-flight fetch is cancelled.
func (s *Screen[T, M]) Close() {
	s.closeOnce.Do(func() {
		s.search.Stop()
		s.cancel()
		s.controller.Close()
	})
}

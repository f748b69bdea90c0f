package screen

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"time"

	"github.com/odyssey-erp/shopdesk/internal/debounce"
	"github.com/odyssey-erp/shopdesk/internal/form"
	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/query"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

// ErrUnknownScreen is returned for a screen name nobody defined.
var ErrUnknownScreen = errors.New("screen: unknown screen")

// Deps are the process-wide collaborators every session shares.
type Deps struct {
	Client      *remote.Client
	Logger      *slog.Logger
	Validator   *form.Validator
	PageSize    int
	SearchDelay time.Duration
	Clock       debounce.Clock
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Validator == nil {
		d.Validator = form.NewValidator()
	}
	if d.PageSize <= 0 {
		d.PageSize = query.DefaultItemsPerPage
	}
	if d.SearchDelay <= 0 {
		d.SearchDelay = debounce.DefaultDelay
	}
	if d.Clock == nil {
		d.Clock = debounce.RealClock
	}
	return d
}

// Definition is a named screen that can open sessions.
type Definition struct {
	Name  string
	Title string
	open  func(deps Deps, toasts *notify.Recorder, initial url.Values) Live
}

// Define binds a config builder. build receives a remote client whose error
// toasts go to the opening session only.
func Define[T any, M any](name, title string, build func(client *remote.Client) Config[T, M]) Definition {
	return Definition{
		Name:  name,
		Title: title,
		open: func(deps Deps, toasts *notify.Recorder, initial url.Values) Live {
			var client *remote.Client
			if deps.Client != nil {
				client = deps.Client.WithNotifier(toasts)
			}
			cfg := build(client)
			if cfg.Name == "" {
				cfg.Name = name
			}
			if cfg.Title == "" {
				cfg.Title = title
			}
			return New(cfg, deps, toasts, initial)
		},
	}
}

// Open starts a session.
func (d Definition) Open(deps Deps, initial url.Values) Live {
	return d.open(deps, notify.NewRecorder(), initial)
}

// Registry holds the screens of the dashboard.
type Registry struct {
	deps    Deps
	screens map[string]Definition
}

// NewRegistry builds a registry.
func NewRegistry(deps Deps, defs ...Definition) *Registry {
	r := &Registry{deps: deps.withDefaults(), screens: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		r.screens[d.Name] = d
	}
	return r
}

// Summary names a screen for navigation.
type Summary struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// List returns every screen ordered by name.
func (r *Registry) List() []Summary {
	out := make([]Summary, 0, len(r.screens))
	for _, d := range r.screens {
		out = append(out, Summary{Name: d.Name, Title: d.Title})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Open starts a session of the named screen.
func (r *Registry) Open(name string, initial url.Values) (Live, error) {
	d, ok := r.screens[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return d.Open(r.deps, initial), nil
}

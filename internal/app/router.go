package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/observability"
	"github.com/odyssey-erp/shopdesk/internal/screen"
	"github.com/odyssey-erp/shopdesk/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger        *slog.Logger
	Config        *Config
	ScreenHandler *screen.Handler
	LookupHandler *lookup.Handler
	JobHandler    *jobs.Handler
	Metrics       *observability.Metrics
}

// NewRouter constructs the chi.Router with shopdesk defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	mwCfg := MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}
	for _, mw := range MiddlewareStack(mwCfg) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	r.Route("/screens", func(r chi.Router) {
		params.ScreenHandler.MountLive(r)
		r.Group(func(r chi.Router) {
			r.Use(RequestStack(mwCfg)...)
			params.ScreenHandler.MountRoutes(r)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(RequestStack(mwCfg)...)
		if params.LookupHandler != nil {
			r.Route("/lookups", params.LookupHandler.MountRoutes)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}

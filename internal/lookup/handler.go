package lookup

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/odyssey-erp/shopdesk/internal/platform/httpx"
)

// Enqueuer schedules a background refresh.
type Enqueuer interface {
	EnqueueLookupRefresh(ctx context.Context, name string) error
}

// Handler exposes lookups as JSON.
type Handler struct {
	logger   *slog.Logger
	registry *Registry
	enqueuer Enqueuer
}

// NewHandler builds the handler. enqueuer may be nil; async refreshes are
// then rejected.
func NewHandler(logger *slog.Logger, registry *Registry, enqueuer Enqueuer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, registry: registry, enqueuer: enqueuer}
}

// MountRoutes registers the lookup routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{name}", h.options)
	r.Post("/{name}/refresh", h.refresh)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"lookups": h.registry.Names()})
}

func (h *Handler) options(w http.ResponseWriter, r *http.Request) {
	e, err := h.registry.Get(chi.URLParam(r, "name"))
	if err != nil {
		httpx.RespondError(w, errors.Join(httpx.ErrNotFound, err))
		return
	}
	opts, err := e.Options(r.Context())
	if err != nil {
		h.logger.Error("lookup load failed", slog.String("lookup", e.Name()), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"name": e.Name(), "data": opts})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	e, err := h.registry.Get(name)
	if err != nil {
		httpx.RespondError(w, errors.Join(httpx.ErrNotFound, err))
		return
	}
	if r.URL.Query().Get("async") == "1" {
		if h.enqueuer == nil {
			httpx.Problem(w, http.StatusServiceUnavailable, "Worker Unavailable", "background refresh requires Redis")
			return
		}
		if err := h.enqueuer.EnqueueLookupRefresh(r.Context(), name); err != nil {
			h.logger.Error("enqueue lookup refresh", slog.String("lookup", name), slog.Any("error", err))
			httpx.Problem(w, http.StatusServiceUnavailable, "Worker Unavailable", err.Error())
			return
		}
		httpx.JSON(w, http.StatusAccepted, map[string]any{"name": name, "status": "queued"})
		return
	}
	if err := e.Refresh(r.Context()); err != nil {
		h.logger.Error("lookup refresh failed", slog.String("lookup", name), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"name": name, "status": "refreshed"})
}

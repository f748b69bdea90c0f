package screen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/odyssey-erp/shopdesk/internal/platform/httpx"
)

// Handler serves screens over HTTP and WebSocket.
type Handler struct {
	logger       *slog.Logger
	registry     *Registry
	origins      []string
	writeTimeout time.Duration
	sessions     SessionTracker
}

// SessionTracker observes live sessions. SessionOpened returns the func to
// call when the session ends.
type SessionTracker interface {
	SessionOpened(screen string) func()
}

// HandlerOption customises a Handler.
type HandlerOption func(*Handler)

// WithWriteTimeout bounds each view push on a live socket. A client that
// cannot take a frame within d is disconnected.
func WithWriteTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) { h.writeTimeout = d }
}

// WithSessionTracker reports open live sessions to t.
func WithSessionTracker(t SessionTracker) HandlerOption {
	return func(h *Handler) { h.sessions = t }
}

// NewHandler builds the handler. origins lists the host patterns allowed to
// open live sessions from another origin.
func NewHandler(logger *slog.Logger, registry *Registry, origins []string, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger, registry: registry, origins: origins}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MountRoutes registers the request/response routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Get("/{name}", h.load)
}

// MountLive registers the WebSocket route. It must not sit behind a request
// timeout.
func (h *Handler) MountLive(r chi.Router) {
	r.Get("/{name}/live", h.live)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{"screens": h.registry.List()})
}

func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	sess, err := h.registry.Open(chi.URLParam(r, "name"), r.URL.Query())
	if err != nil {
		httpx.RespondError(w, errors.Join(httpx.ErrNotFound, err))
		return
	}
	defer sess.Close()
	if err := sess.Load(r.Context()); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sess.View(r.Context()))
}

func (h *Handler) live(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sess, err := h.registry.Open(name, r.URL.Query())
	if err != nil {
		httpx.RespondError(w, errors.Join(httpx.ErrNotFound, err))
		return
	}
	defer sess.Close()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Warn("websocket accept failed", slog.String("screen", name), slog.Any("error", err))
		return
	}
	defer conn.CloseNow()

	id := uuid.NewString()
	logger := h.logger.With(slog.String("screen", name), slog.String("session", id))
	logger.Info("live session opened")
	if h.sessions != nil {
		defer h.sessions.SessionOpened(name)()
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	dirty := make(chan struct{}, 1)
	mark := func() {
		select {
		case dirty <- struct{}{}:
		default:
		}
	}
	sess.Subscribe(mark)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-dirty:
				view := sess.View(ctx)
				view.Session = id
				if err := h.push(ctx, conn, view); err != nil {
					logger.Debug("live write failed", slog.Any("error", err))
					return
				}
			}
		}
	}()

	mark()
	sess.Mount()

	h.readCommands(ctx, conn, sess, logger)

	cancel()
	wg.Wait()
}

func (h *Handler) push(ctx context.Context, conn *websocket.Conn, view View) error {
	if h.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.writeTimeout)
		defer cancel()
	}
	return wsjson.Write(ctx, conn, view)
}

func (h *Handler) readCommands(ctx context.Context, conn *websocket.Conn, sess Live, logger *slog.Logger) {
	for {
		var cmd Command
		err := wsjson.Read(ctx, conn, &cmd)
		if err == nil {
			_ = sess.Handle(ctx, cmd)
			continue
		}
		switch websocket.CloseStatus(err) {
		case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			logger.Info("live session closed")
		default:
			if ctx.Err() == nil {
				logger.Warn("live read failed", slog.Any("error", err))
			}
		}
		return
	}
}

// Package remote talks to the REST backend: typed list/get/create/update/delete
// calls that unwrap the response envelope and surface failures as *Error.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/odyssey-erp/shopdesk/internal/notify"
)

const defaultTimeout = 15 * time.Second

// Client issues HTTP calls against a configured base path.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
	notifier   notify.Notifier
	metrics    *Metrics
	userAgent  string
	timeout    time.Duration
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call. It applies to a copy of the http.Client, so
// a client passed to WithHTTPClient is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for failures.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithNotifier sets the toast channel failures are reported to.
func WithNotifier(n notify.Notifier) Option {
	return func(c *Client) { c.notifier = notify.OrDiscard(n) }
}

// WithMetrics records call outcomes.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("remote: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("remote: base url %q must be absolute http(s)", baseURL)
	}
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    strings.TrimSuffix(u.String(), "/"),
		logger:     slog.Default(),
		notifier:   notify.Discard,
		userAgent:  "shopdesk",
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// BaseURL returns the API root.
func (c *Client) BaseURL() string { return c.baseURL }

// WithNotifier returns a shallow copy reporting failures to n instead. Live
// sessions use it to route toasts to the session that caused them.
func (c *Client) WithNotifier(n notify.Notifier) *Client {
	cp := *c
	cp.notifier = notify.OrDiscard(n)
	return &cp
}

func (c *Client) apipath(path ...string) string {
	parts := []string{c.baseURL}
	for _, p := range path {
		p = strings.Trim(p, "/")
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, "/")
}

type request struct {
	resource string
	op       string
	method   string
	path     []string
	query    url.Values
	body     any
}

func (r request) name() string { return r.resource + "." + r.op }

// do performs one attempt; decode receives non-empty 2xx bodies.
func (c *Client) do(ctx context.Context, rq request, decode func([]byte) error) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.observe(rq.resource, rq.op, start, err)
		if err != nil {
			c.report(rq, err)
		}
	}()

	var body io.Reader
	if rq.body != nil {
		buf, merr := json.Marshal(rq.body)
		if merr != nil {
			return &Error{Kind: KindDecode, Op: rq.name(), Message: "cannot encode request", Err: merr}
		}
		body = bytes.NewReader(buf)
	}

	target := c.apipath(rq.path...)
	if len(rq.query) > 0 {
		target += "?" + rq.query.Encode()
	}
	req, rerr := http.NewRequestWithContext(ctx, rq.method, target, body)
	if rerr != nil {
		return &Error{Kind: KindTransport, Op: rq.name(), Message: "cannot build request", Err: rerr}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, derr := c.httpClient.Do(req)
	if derr != nil {
		return transportError(rq.name(), derr)
	}
	defer resp.Body.Close()

	payload, rerr := io.ReadAll(resp.Body)
	if rerr != nil {
		return transportError(rq.name(), rerr)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := parseErrorMessage(payload)
		if message == "" {
			message = strings.ToLower(http.StatusText(resp.StatusCode))
		}
		return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Op: rq.name(), Message: message}
	}

	if decode == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if derr := decode(payload); derr != nil {
		return &Error{Kind: KindDecode, Status: resp.StatusCode, Op: rq.name(), Message: "unexpected response from server", Err: derr}
	}
	return nil
}

func (c *Client) report(rq request, err error) {
	var re *Error
	if !errors.As(err, &re) {
		re = &Error{Kind: KindOf(err), Op: rq.name(), Message: err.Error(), Err: err}
	}
	if re.Kind == KindCanceled {
		c.logger.Debug("remote call canceled", slog.String("resource", rq.resource), slog.String("op", rq.op))
		return
	}
	c.logger.Error("remote call failed",
		slog.String("resource", rq.resource),
		slog.String("op", rq.op),
		slog.Int("status", re.Status),
		slog.Any("error", err),
	)
	c.notifier.Notify(notify.Failure(re.Message))
}

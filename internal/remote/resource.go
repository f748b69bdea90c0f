package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/odyssey-erp/shopdesk/internal/query"
)

// Resource is a typed REST collection such as /products.
type Resource[T any] struct {
	client   *Client
	name     string
	path     string
	wrapped  bool
	onMutate []func(context.Context)
}

type resourceConfig struct {
	wrapped  bool
	onMutate []func(context.Context)
}

// ResourceOption customises a Resource.
type ResourceOption func(*resourceConfig)

// Wrapped declares that detail and mutation endpoints answer {"data": T}
// instead of the bare entity.
func Wrapped() ResourceOption {
	return func(rc *resourceConfig) { rc.wrapped = true }
}

// OnMutate registers a hook run after every successful create, update or delete.
func OnMutate(fn func(context.Context)) ResourceOption {
	return func(rc *resourceConfig) {
		if fn != nil {
			rc.onMutate = append(rc.onMutate, fn)
		}
	}
}

// NewResource binds a collection path on client.
func NewResource[T any](client *Client, name, path string, opts ...ResourceOption) *Resource[T] {
	var rc resourceConfig
	for _, opt := range opts {
		opt(&rc)
	}
	return &Resource[T]{client: client, name: name, path: path, wrapped: rc.wrapped, onMutate: rc.onMutate}
}

// Name returns the resource name used in logs and metrics.
func (r *Resource[T]) Name() string { return r.name }

// WithClient returns a copy of the resource bound to another client.
func (r *Resource[T]) WithClient(c *Client) *Resource[T] {
	cp := *r
	cp.client = c
	return &cp
}

// List fetches one page for q.
func (r *Resource[T]) List(ctx context.Context, q query.State) (ListResult[T], error) {
	var out ListResult[T]
	err := r.client.do(ctx, request{
		resource: r.name, op: "list", method: http.MethodGet,
		path: []string{r.path}, query: q.Values(),
	}, func(b []byte) error {
		return json.Unmarshal(b, &out)
	})
	if err != nil {
		return ListResult[T]{}, err
	}
	if out.Data == nil {
		out.Data = []T{}
	}
	return out, nil
}

// Get fetches a single record.
func (r *Resource[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	if id == "" {
		return zero, r.missingID("get")
	}
	return r.detail(ctx, "get", http.MethodGet, []string{r.path, url.PathEscape(id)}, nil)
}

// Create posts a new record and returns the persisted entity.
func (r *Resource[T]) Create(ctx context.Context, payload any) (T, error) {
	out, err := r.detail(ctx, "create", http.MethodPost, []string{r.path}, payload)
	if err == nil {
		r.mutated(ctx)
	}
	return out, err
}

// Update replaces the record identified by id.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any) (T, error) {
	if id == "" {
		var zero T
		return zero, r.missingID("update")
	}
	out, err := r.detail(ctx, "update", http.MethodPut, []string{r.path, url.PathEscape(id)}, payload)
	if err == nil {
		r.mutated(ctx)
	}
	return out, err
}

// DeleteOption adds query parameters to a delete call.
type DeleteOption func(url.Values)

// WithPasscode attaches the passcode sensitive deletions require.
func WithPasscode(passcode string) DeleteOption {
	return func(v url.Values) {
		if passcode != "" {
			v.Set("passcode", passcode)
		}
	}
}

// DeleteParams collects the query parameters opts add.
func DeleteParams(opts ...DeleteOption) url.Values {
	params := url.Values{}
	for _, opt := range opts {
		opt(params)
	}
	return params
}

// Delete removes the record identified by id.
func (r *Resource[T]) Delete(ctx context.Context, id string, opts ...DeleteOption) error {
	if id == "" {
		return r.missingID("delete")
	}
	params := DeleteParams(opts...)
	err := r.client.do(ctx, request{
		resource: r.name, op: "delete", method: http.MethodDelete,
		path: []string{r.path, url.PathEscape(id)}, query: params,
	}, nil)
	if err == nil {
		r.mutated(ctx)
	}
	return err
}

func (r *Resource[T]) detail(ctx context.Context, op, method string, path []string, payload any) (T, error) {
	var out T
	err := r.client.do(ctx, request{
		resource: r.name, op: op, method: method, path: path, body: payload,
	}, func(b []byte) error {
		if r.wrapped {
			var w wrapped[T]
			if err := json.Unmarshal(b, &w); err != nil {
				return err
			}
			out = w.Data
			return nil
		}
		return json.Unmarshal(b, &out)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

func (r *Resource[T]) missingID(op string) error {
	rq := request{resource: r.name, op: op}
	err := &Error{Kind: KindValidation, Op: rq.name(), Message: "id is required"}
	r.client.report(rq, err)
	return err
}

func (r *Resource[T]) mutated(ctx context.Context) {
	for _, fn := range r.onMutate {
		fn(ctx)
	}
}

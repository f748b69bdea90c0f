package remote_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/shopdesk/internal/notify"
	"github.com/odyssey-erp/shopdesk/internal/query"
	"github.com/odyssey-erp/shopdesk/internal/remote"
)

type widget struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Total int    `json:"total"`
}

func newClient(t *testing.T, h http.Handler, opts ...remote.Option) (*remote.Client, *notify.Recorder) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	rec := notify.NewRecorder()
	base := []remote.Option{remote.WithHTTPClient(srv.Client()), remote.WithNotifier(rec)}
	c, err := remote.NewClient(srv.URL+"/api/", append(base, opts...)...)
	require.NoError(t, err)
	return c, rec
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewClientRejectsRelativeURL(t *testing.T) {
	for _, raw := range []string{"", "/api", "ftp://host/api", "://bad"} {
		_, err := remote.NewClient(raw)
		assert.Error(t, err, raw)
	}
}

func TestList(t *testing.T) {
	t.Run("it sends the query state as parameters and decodes the envelope", func(t *testing.T) {
		var got *http.Request
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r
			writeJSON(t, w, http.StatusOK, map[string]any{
				"data":        []widget{{ID: "w1", Name: "one"}, {ID: "w2", Name: "two"}},
				"totalCount":  35,
				"currentPage": 1,
				"lastPage":    4,
				"nextPage":    2,
				"prevPage":    nil,
			})
		}))
		res := remote.NewResource[widget](c, "widgets", "/widgets")

		q := query.New(10).With(query.FieldKeyword, "abc").WithPage(1)
		out, err := res.List(context.Background(), q)
		require.NoError(t, err)

		require.NotNil(t, got)
		assert.Equal(t, http.MethodGet, got.Method)
		assert.Equal(t, "/api/widgets", got.URL.Path)
		assert.Equal(t, "abc", got.URL.Query().Get("keyword"))
		assert.Equal(t, "1", got.URL.Query().Get("page"))
		assert.Equal(t, "10", got.URL.Query().Get("items_per_page"))

		assert.Len(t, out.Data, 2)
		assert.Equal(t, 35, out.TotalCount)
		assert.Equal(t, 4, out.LastPage)
		require.NotNil(t, out.NextPage)
		assert.Equal(t, 2, *out.NextPage)
		assert.Nil(t, out.PrevPage)
		assert.Zero(t, rec.Len())
	})

	t.Run("null data becomes an empty slice", func(t *testing.T) {
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"data": nil, "totalCount": 0})
		}))
		out, err := remote.NewResource[widget](c, "widgets", "widgets").List(context.Background(), query.New(10))
		require.NoError(t, err)
		assert.NotNil(t, out.Data)
		assert.Zero(t, out.Len())
	})

	t.Run("server errors are classified, logged and toasted once", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{"error": "database offline"})
		}))
		_, err := remote.NewResource[widget](c, "widgets", "widgets").List(context.Background(), query.New(10))
		require.Error(t, err)
		assert.Equal(t, remote.KindServer, remote.KindOf(err))
		assert.Equal(t, "database offline", remote.MessageOf(err))
		assert.Equal(t, []notify.Toast{notify.Failure("database offline")}, rec.Drain())
	})

	t.Run("malformed bodies are decode failures", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "<html>")
		}))
		_, err := remote.NewResource[widget](c, "widgets", "widgets").List(context.Background(), query.New(10))
		assert.True(t, remote.Is(err, remote.KindDecode))
		assert.Equal(t, 1, rec.Len())
	})
}

func TestGet(t *testing.T) {
	t.Run("bare detail", func(t *testing.T) {
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/widgets/w%201", r.URL.EscapedPath())
			writeJSON(t, w, http.StatusOK, widget{ID: "w 1", Name: "R1", Total: 5})
		}))
		got, err := remote.NewResource[widget](c, "widgets", "widgets").Get(context.Background(), "w 1")
		require.NoError(t, err)
		assert.Equal(t, widget{ID: "w 1", Name: "R1", Total: 5}, got)
	})

	t.Run("wrapped detail", func(t *testing.T) {
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"data": widget{ID: "w1", Name: "R1", Total: 5}})
		}))
		got, err := remote.NewResource[widget](c, "widgets", "widgets", remote.Wrapped()).Get(context.Background(), "w1")
		require.NoError(t, err)
		assert.Equal(t, "R1", got.Name)
	})

	t.Run("not found carries the server message", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]string{"message": "widget not found"})
		}))
		_, err := remote.NewResource[widget](c, "widgets", "widgets").Get(context.Background(), "nope")
		assert.True(t, remote.Is(err, remote.KindNotFound))
		assert.Equal(t, []notify.Toast{notify.Failure("widget not found")}, rec.Drain())
	})

	t.Run("empty id never reaches the network", func(t *testing.T) {
		called := false
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true }))
		_, err := remote.NewResource[widget](c, "widgets", "widgets").Get(context.Background(), "")
		assert.True(t, remote.Is(err, remote.KindValidation))
		assert.False(t, called)
		assert.Equal(t, 1, rec.Len())
	})
}

func TestMutations(t *testing.T) {
	t.Run("create posts the payload and fires mutate hooks", func(t *testing.T) {
		var body widget
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			body.ID = "new-id"
			writeJSON(t, w, http.StatusCreated, map[string]any{"data": body})
		}))
		hooks := 0
		res := remote.NewResource[widget](c, "widgets", "widgets", remote.Wrapped(), remote.OnMutate(func(context.Context) { hooks++ }))

		created, err := res.Create(context.Background(), widget{Name: "R1", Total: 5})
		require.NoError(t, err)
		assert.Equal(t, "new-id", created.ID)
		assert.Equal(t, "R1", body.Name)
		assert.Equal(t, 1, hooks)
	})

	t.Run("update uses PUT on the record path", func(t *testing.T) {
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/widgets/w1", r.URL.Path)
			w.WriteHeader(http.StatusNoContent)
		}))
		got, err := remote.NewResource[widget](c, "widgets", "widgets").Update(context.Background(), "w1", widget{Name: "x"})
		require.NoError(t, err)
		assert.Equal(t, widget{}, got)
	})

	t.Run("delete forwards the passcode", func(t *testing.T) {
		var passcode string
		c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			passcode = r.URL.Query().Get("passcode")
			w.WriteHeader(http.StatusOK)
		}))
		err := remote.NewResource[widget](c, "widgets", "widgets").Delete(context.Background(), "w1", remote.WithPasscode("1234"))
		require.NoError(t, err)
		assert.Equal(t, "1234", passcode)
	})

	t.Run("rejected passcode is forbidden and skips hooks", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusForbidden, map[string]string{"error": "wrong passcode"})
		}))
		hooks := 0
		res := remote.NewResource[widget](c, "widgets", "widgets", remote.OnMutate(func(context.Context) { hooks++ }))
		err := res.Delete(context.Background(), "w1", remote.WithPasscode("0000"))
		assert.True(t, remote.Is(err, remote.KindForbidden))
		assert.Zero(t, hooks)
		assert.Equal(t, []notify.Toast{notify.Failure("wrong passcode")}, rec.Drain())
	})

	t.Run("status text is used when the body has no message", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
		}))
		_, err := remote.NewResource[widget](c, "widgets", "widgets").Create(context.Background(), widget{})
		assert.True(t, remote.Is(err, remote.KindConflict))
		assert.Equal(t, []notify.Toast{notify.Failure("conflict")}, rec.Drain())
	})
}

func TestTransportFailures(t *testing.T) {
	t.Run("unreachable server", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		rec := notify.NewRecorder()
		c, err := remote.NewClient(srv.URL, remote.WithNotifier(rec))
		require.NoError(t, err)

		_, err = remote.NewResource[widget](c, "widgets", "widgets").List(context.Background(), query.New(10))
		assert.True(t, remote.Is(err, remote.KindTransport))
		assert.Equal(t, 1, rec.Len())
	})

	t.Run("timeout applies to a copy of the caller's http client", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}))
		t.Cleanup(srv.Close)
		shared := &http.Client{}
		rec := notify.NewRecorder()
		c, err := remote.NewClient(srv.URL,
			remote.WithTimeout(50*time.Millisecond),
			remote.WithHTTPClient(shared),
			remote.WithNotifier(rec),
		)
		require.NoError(t, err)

		_, err = remote.NewResource[widget](c, "widgets", "widgets").List(context.Background(), query.New(10))
		assert.True(t, remote.Is(err, remote.KindTimeout), "got %v", err)
		assert.Zero(t, shared.Timeout)
		assert.Equal(t, 1, rec.Len())
	})

	t.Run("canceled calls are not toasted", func(t *testing.T) {
		c, rec := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"data": []widget{}})
		}))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := remote.NewResource[widget](c, "widgets", "widgets").List(ctx, query.New(10))
		assert.True(t, remote.Is(err, remote.KindCanceled))
		assert.Zero(t, rec.Len())
	})
}

func TestMetricsAndNotifierOverride(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := remote.NewMetrics(reg)
	c, shared := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusBadRequest, map[string]string{"message": "name is required"})
	}), remote.WithMetrics(metrics))

	session := notify.NewRecorder()
	res := remote.NewResource[widget](c, "widgets", "widgets").WithClient(c.WithNotifier(session))
	_, err := res.Create(context.Background(), widget{})
	assert.True(t, remote.Is(err, remote.KindValidation))

	assert.Zero(t, shared.Len())
	assert.Equal(t, 1, session.Len())
	count, err := testutil.GatherAndCount(reg, "shopdesk_remote_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

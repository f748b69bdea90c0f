package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/odyssey-erp/shopdesk/internal/jobs"
)

type fakeRefresher struct {
	names []string
	fail  map[string]error
	calls []string
}

func (f *fakeRefresher) Names() []string { return f.names }

func (f *fakeRefresher) Refresh(_ context.Context, name string) error {
	f.calls = append(f.calls, name)
	return f.fail[name]
}

func TestLookupRefreshTaskPayload(t *testing.T) {
	task, err := NewLookupRefreshTask(LookupRefreshPayload{Name: "categories"})
	require.NoError(t, err)
	assert.Equal(t, TaskLookupRefresh, task.Type())

	var payload LookupRefreshPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "categories", payload.Name)
}

func TestLookupRefreshJobSingle(t *testing.T) {
	lookups := &fakeRefresher{names: []string{"categories", "customers"}}
	job := NewLookupRefreshJob(lookups, nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	task, err := NewLookupRefreshTask(LookupRefreshPayload{Name: "customers"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, []string{"customers"}, lookups.calls)
}

func TestLookupRefreshJobAll(t *testing.T) {
	boom := errors.New("boom")
	lookups := &fakeRefresher{
		names: []string{"categories", "customers", "subcategories"},
		fail:  map[string]error{"customers": boom},
	}
	job := NewLookupRefreshJob(lookups, nil, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskLookupRefresh, nil))
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"categories", "customers", "subcategories"}, lookups.calls)
}

func TestLookupRefreshJobBadPayload(t *testing.T) {
	lookups := &fakeRefresher{names: []string{"categories"}}
	job := NewLookupRefreshJob(lookups, nil, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskLookupRefresh, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, lookups.calls)
}

func TestLookupRefreshJobNotConfigured(t *testing.T) {
	var job *LookupRefreshJob
	assert.Error(t, job.Handle(context.Background(), asynq.NewTask(TaskLookupRefresh, nil)))
}

func TestHandlerHealthWithoutInspector(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(nil, nil).MountRoutes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body queueHealth
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, QueueDefault, body.Queue)
	assert.Zero(t, body.Pending)
}

func TestNewWorkerSkipsIncompleteRegistrations(t *testing.T) {
	w, err := NewWorker(WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: "127.0.0.1:0"},
		Handlers:  []TaskHandler{{Type: TaskLookupRefresh}},
		Cron:      []CronRegistration{{Spec: "@every 5m"}},
	})
	require.NoError(t, err)
	assert.Nil(t, w.scheduler)
}

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type countingLoader struct {
	calls atomic.Int32
	mu    sync.Mutex
	items []category
	err   error
	block chan struct{}
}

func (l *countingLoader) load(context.Context) ([]category, error) {
	l.calls.Add(1)
	if l.block != nil {
		<-l.block
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]category(nil), l.items...), l.err
}

func (l *countingLoader) setItems(items ...category) {
	l.mu.Lock()
	l.items = items
	l.mu.Unlock()
}

func newCategories(l *countingLoader, opts ...CacheOption) *Cache[category] {
	return New("categories", l.load,
		func(c category) string { return c.ID },
		func(c category) string { return c.Name },
		opts...)
}

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, time.Minute), mr
}

func TestMemoryCacheLoadsOnce(t *testing.T) {
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	c := newCategories(l)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		items, err := c.Get(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	}
	assert.EqualValues(t, 1, l.calls.Load())
	assert.Equal(t, "Phones", c.Label(ctx, "1", "?"))
	assert.Equal(t, "?", c.Label(ctx, "9", "?"))
}

func TestConcurrentMissesShareOneLoad(t *testing.T) {
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}, block: make(chan struct{})}
	c := newCategories(l)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Get(context.Background())
			assert.NoError(t, err)
		}()
	}
	require.Eventually(t, func() bool { return l.calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(l.block)
	wg.Wait()
	assert.EqualValues(t, 1, l.calls.Load())
}

func TestInvalidateReloads(t *testing.T) {
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	c := newCategories(l)
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)
	l.setItems(category{ID: "1", Name: "Tablets"})
	assert.Equal(t, "Phones", c.Label(ctx, "1", ""))

	require.NoError(t, c.Refresh(ctx))
	assert.Equal(t, "Tablets", c.Label(ctx, "1", ""))
	assert.EqualValues(t, 2, l.calls.Load())
}

func TestLoadErrorIsNotCached(t *testing.T) {
	l := &countingLoader{err: errors.New("backend down")}
	c := newCategories(l)
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.Error(t, err)
	l.mu.Lock()
	l.err = nil
	l.items = []category{{ID: "2", Name: "Screens"}}
	l.mu.Unlock()

	opts, err := c.Options(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Option{{ID: "2", Label: "Screens"}}, opts)
}

func TestRedisStoreSharesAcrossProcesses(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	first := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	second := &countingLoader{items: []category{{ID: "1", Name: "never loaded"}}}
	a := newCategories(first, WithStore(store))
	b := newCategories(second, WithStore(store))
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	a.now = func() time.Time { return clock }

	_, err := a.Get(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lookup:categories:1"))
	assert.Equal(t, 60*time.Second, mr.TTL("lookup:categories:1"))

	assert.Equal(t, "Phones", b.Label(ctx, "1", ""))
	assert.Zero(t, second.calls.Load())

	second.setItems(category{ID: "1", Name: "Phones v2"})
	require.NoError(t, b.Invalidate(ctx))
	ver, err := store.Version(ctx, "categories")
	require.NoError(t, err)
	assert.EqualValues(t, 2, ver)

	// a keeps its copy until the version check is due, then reads whatever
	// b stored.
	assert.Equal(t, "Phones v2", b.Label(ctx, "1", ""))
	assert.Equal(t, "Phones", a.Label(ctx, "1", ""))
	clock = clock.Add(DefaultVersionTTL)
	assert.Equal(t, "Phones v2", a.Label(ctx, "1", ""))
	assert.EqualValues(t, 1, first.calls.Load())
}

func TestRedisOutageFallsBackToMemory(t *testing.T) {
	store, mr := newRedisStore(t)
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	c := newCategories(l, WithStore(store))
	ctx := context.Background()

	_, err := c.Get(ctx)
	require.NoError(t, err)
	mr.Close()

	assert.Equal(t, "Phones", c.Label(ctx, "1", ""))
	assert.EqualValues(t, 1, l.calls.Load())
}

// countingStore counts version checks made against the wrapped store.
type countingStore struct {
	Store
	versions atomic.Int32
}

func (s *countingStore) Version(ctx context.Context, name string) (int64, error) {
	s.versions.Add(1)
	return s.Store.Version(ctx, name)
}

func TestLabelsShareOneVersionCheck(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	store := &countingStore{Store: redisStore}
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}, {ID: "2", Name: "Screens"}}}
	c := newCategories(l, WithStore(store))
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		assert.Equal(t, "Screens", c.Label(ctx, "2", ""))
	}
	assert.EqualValues(t, 1, store.versions.Load())

	clock = clock.Add(DefaultVersionTTL)
	assert.Equal(t, "Phones", c.Label(ctx, "1", ""))
	assert.Equal(t, "Phones", c.Label(ctx, "1", ""))
	assert.EqualValues(t, 2, store.versions.Load())
	assert.EqualValues(t, 1, l.calls.Load())

	// a local invalidate does not wait for the check to come due
	l.setItems(category{ID: "1", Name: "Phones v2"})
	require.NoError(t, c.Invalidate(ctx))
	assert.Equal(t, "Phones v2", c.Label(ctx, "1", ""))
	assert.EqualValues(t, 2, l.calls.Load())
}

func TestZeroVersionTTLChecksEveryRead(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	store := &countingStore{Store: redisStore}
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	c := newCategories(l, WithStore(store), WithVersionTTL(0))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.Equal(t, "Phones", c.Label(ctx, "1", ""))
	}
	assert.EqualValues(t, 3, store.versions.Load())
}

func TestBumpOnlyIncrementsVersion(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	ver, err := store.Bump(ctx, "categories")
	require.NoError(t, err)
	assert.EqualValues(t, 1, ver)
	ver, err = store.Bump(ctx, "categories")
	require.NoError(t, err)
	assert.EqualValues(t, 2, ver)
	assert.Equal(t, []string{"lookup:categories:version"}, mr.Keys())
}

type fakeEnqueuer struct{ names []string }

func (f *fakeEnqueuer) EnqueueLookupRefresh(_ context.Context, name string) error {
	f.names = append(f.names, name)
	return nil
}

func TestHandlerRoutes(t *testing.T) {
	l := &countingLoader{items: []category{{ID: "1", Name: "Phones"}}}
	reg := NewRegistry(newCategories(l))
	enq := &fakeEnqueuer{}
	r := chi.NewRouter()
	r.Route("/lookups", NewHandler(nil, reg, enq).MountRoutes)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookups/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lookups":["categories"]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookups/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Data []Option `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []Option{{ID: "1", Label: "Phones"}}, body.Data)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookups/brands", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lookups/categories/refresh", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, l.calls.Load())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/lookups/categories/refresh?async=1", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"categories"}, enq.names)
}

func TestRegistryRefreshAll(t *testing.T) {
	a := &countingLoader{items: []category{{ID: "1"}}}
	b := &countingLoader{err: errors.New("boom")}
	reg := NewRegistry(newCategories(a), New("customers", b.load,
		func(c category) string { return c.ID }, func(c category) string { return c.Name }))

	err := reg.Refresh(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customers")
	assert.EqualValues(t, 1, a.calls.Load())

	assert.ErrorIs(t, reg.Refresh(context.Background(), "nope"), ErrUnknown)
}

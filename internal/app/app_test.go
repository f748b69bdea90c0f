package app

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/shopdesk/internal/lookup"
	"github.com/odyssey-erp/shopdesk/internal/observability"
	"github.com/odyssey-erp/shopdesk/internal/remote"
	"github.com/odyssey-erp/shopdesk/internal/screen"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("LIVE_ORIGINS", "shop.example.com,admin.example.com")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, []string{"shop.example.com", "admin.example.com"}, cfg.LiveOrigins)
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.IsProduction())
}

func TestConfigValidate(t *testing.T) {
	cases := map[string]Config{
		"relative url": {APIBaseURL: "/api", PageSize: 10, RateLimitPerMin: 1},
		"bad scheme":   {APIBaseURL: "ftp://host", PageSize: 10, RateLimitPerMin: 1},
		"page size":    {APIBaseURL: "http://host", PageSize: 0, RateLimitPerMin: 1},
		"rate limit":   {APIBaseURL: "http://host", PageSize: 10},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
	ok := Config{APIBaseURL: "http://host", PageSize: 10, RateLimitPerMin: 1}
	assert.NoError(t, ok.Validate())
}

func TestScreensRegisterEveryEntity(t *testing.T) {
	client, err := remote.NewClient("http://api.invalid")
	require.NoError(t, err)
	lookups := NewLookups(client, nil, nil)

	assert.Equal(t, []string{"categories", "customers", "subcategories"}, lookups.Registry.Names())

	registry := screen.NewRegistry(screen.Deps{Client: client}, Screens(lookups, nil)...)
	var names []string
	for _, s := range registry.List() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		"categories", "componentorders", "components", "customers", "orders",
		"products", "staff", "subcategories", "tasks",
	}, names)
}

func TestRouterHealthAndScreens(t *testing.T) {
	cfg := &Config{RateLimitPerMin: 100}
	client, err := remote.NewClient("http://api.invalid")
	require.NoError(t, err)
	lookups := NewLookups(client, nil, nil)
	registry := screen.NewRegistry(screen.Deps{Client: client}, Screens(lookups, nil)...)

	router := NewRouter(RouterParams{
		Config:        cfg,
		ScreenHandler: screen.NewHandler(nil, registry, nil),
		LookupHandler: lookup.NewHandler(nil, lookups.Registry, nil),
		Metrics:       observability.NewMetrics(),
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/screens/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Screens []screen.Summary `json:"screens"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Screens, 9)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/lookups/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoggerFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &Config{AppEnv: "staging", LogFormat: "json", LogLevel: "warn"})

	logger.Info("hidden")
	logger.Warn("shown", "screen", "orders")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "staging", line["env"])
	assert.Equal(t, "orders", line["screen"])
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
}

func TestTestModeFollowsEnvironment(t *testing.T) {
	t.Setenv(testModeEnv, "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv(testModeEnv, "")
	RefreshTestMode()
	assert.False(t, InTestMode())
}

func TestConfigRedisOptions(t *testing.T) {
	cfg := &Config{RedisAddr: "redis:6379", RedisDB: 3}
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 3, cfg.Redis().DB)
	assert.Equal(t, "redis:6379", cfg.Redis().Asynq().Addr)
}

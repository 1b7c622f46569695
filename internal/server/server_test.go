package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/burgerboots/catalog/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("CATALOG_STORE", "memory")
	t.Setenv("MEDIA_DIR", t.TempDir())
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	return cfg
}

func serve(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func TestServerWiring(t *testing.T) {
	cfg := testConfig(t)
	s, err := New(context.Background(), cfg, Options{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer s.Close(context.Background())

	w := serve(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"database":"Connected"`)

	w = serve(s, http.MethodGet, "/ready", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(s, http.MethodPost, "/api/products", `{"name":"Bacon Burger","price":12,"quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = serve(s, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Products []map[string]any `json:"products"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Products, 1)

	w = serve(s, http.MethodGet, "/api/blogs/categories", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cooking")

	w = serve(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "catalog_http_requests_total")
	assert.Contains(t, w.Body.String(), "catalog_listing_queries_total")

	w = serve(s, http.MethodOptions, "/api/products", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, "0.0.0.0:4000", s.HTTPServer().Addr)
}

func TestServerUsesRedisRateLimiter(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	host, port, _ := strings.Cut(m.Addr(), ":")
	t.Setenv("REDIS_HOST", host)
	t.Setenv("REDIS_PORT", port)
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_USE_REDIS", "true")
	t.Setenv("RATE_LIMIT_RPS", "1")
	t.Setenv("RATE_LIMIT_BURST", "1")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "60")
	cfg := testConfig(t)

	s, err := New(context.Background(), cfg, Options{Registry: prometheus.NewRegistry()})
	require.NoError(t, err)
	defer s.Close(context.Background())

	w := serve(s, http.MethodGet, "/ready", "")
	assert.Contains(t, w.Body.String(), `"redis":true`)

	codes := map[int]int{}
	for i := 0; i < 70; i++ {
		codes[serve(s, http.MethodGet, "/api/blogs", "").Code]++
	}
	assert.Greater(t, codes[http.StatusTooManyRequests], 0)
	assert.NotEmpty(t, m.Keys(), "limiter state lives in redis")
}

func TestServerRejectsUnreachableMinIO(t *testing.T) {
	t.Setenv("MEDIA_BACKEND", "minio")
	t.Setenv("MINIO_ENDPOINT", "127.0.0.1:1")
	cfg := testConfig(t)
	_, err := New(context.Background(), cfg, Options{Registry: prometheus.NewRegistry()})
	require.Error(t, err)
}

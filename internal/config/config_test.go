package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "burgerboots_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "burgerboots_test", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, 5*time.Second, cfg.MongoDB.OpTimeout)
	require.Equal(t, "fs", cfg.Media.Backend)
	require.Equal(t, "/uploads", cfg.Media.PublicPrefix)
	require.Equal(t, int64(5<<20), cfg.Media.MaxBytes)
	require.Equal(t, DefaultBlogCategories, cfg.Catalog.BlogCategories)
	require.Equal(t, 6, cfg.Catalog.ProductPageSize)
	require.Equal(t, 10, cfg.Catalog.BlogPageSize)
	require.Empty(t, cfg.Redis.Addr())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CATALOG_STORE", "memory")
	t.Setenv("CATALOG_BLOG_CATEGORIES", " cooking, quality ,,behind-scenes,cooking ")
	t.Setenv("CATALOG_DEFAULT_AUTHOR", "  Test Kitchen ")
	t.Setenv("MEDIA_PUBLIC_PREFIX", "/static/")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("RATE_LIMIT_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "memory", cfg.Catalog.Store)
	require.Equal(t, []string{"cooking", "quality", "behind-scenes"}, cfg.Catalog.BlogCategories)
	require.Equal(t, "Test Kitchen", cfg.Catalog.DefaultAuthor)
	require.Equal(t, "/static", cfg.Media.PublicPrefix)
	require.Equal(t, "localhost:6379", cfg.Redis.Addr())
	require.True(t, cfg.RateLimit.Enabled)
}

func TestLoadConfigRejectsUnknownBackends(t *testing.T) {
	t.Setenv("MEDIA_BACKEND", "ftp")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestValidateRequiresMinIOEndpoint(t *testing.T) {
	t.Setenv("MEDIA_BACKEND", "minio")
	_, err := LoadConfig()
	require.ErrorContains(t, err, "MINIO_ENDPOINT")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "lumiere", cfg.MongoDatabase)
	assert.Equal(t, 15*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "@every 10m", cfg.CatalogRefreshSpec)
	assert.Len(t, cfg.CORSOrigins, 2)
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("APP_ENV", "production")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("CATALOG_CACHE_TTL", "2m")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ORIGINS", "https://shop.example, ,https://admin.example")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 2*time.Minute, cfg.CatalogCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://shop.example", "https://admin.example"}, cfg.CORSOrigins)
}

func TestFromEnv_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := FromEnv()
	assert.ErrorIs(t, err, ErrMissingMongoURI)
}

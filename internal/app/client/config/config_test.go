package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Env)
	assert.True(t, cfg.IsLocal())
	assert.Equal(t, defaultCatalogBaseURL, cfg.CatalogBaseURL)
	assert.Equal(t, defaultPageSize, cfg.PageSize)
	assert.Equal(t, "-rating", cfg.PopularOrdering)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 0, cfg.MaxRetries)
	assert.Zero(t, cfg.OperationTimeout)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "games.db"), cfg.DataPath)
	assert.True(t, cfg.WatchExternal)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("APP_ENV", "prod")
	t.Setenv("CATALOG_BASE_URL", "http://localhost:8080/api")
	t.Setenv("CATALOG_API_KEY", "secret")
	t.Setenv("MAX_RETRIES", "3")
	t.Setenv("OPERATION_TIMEOUT", "15s")
	t.Setenv("RATE_LIMIT", "2.5")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "http://localhost:8080/api", cfg.CatalogBaseURL)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 15*time.Second, cfg.OperationTimeout)
	assert.Equal(t, 2.5, cfg.RateLimit)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	yaml := "catalog_page_size: 10\npopular_ordering: name\nwatch_external: false\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, "name", cfg.PopularOrdering)
	assert.False(t, cfg.WatchExternal)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "unknown env", key: "APP_ENV", val: "staging"},
		{name: "page size", key: "CATALOG_PAGE_SIZE", val: "500"},
		{name: "ordering", key: "POPULAR_ORDERING", val: "random"},
		{name: "retries", key: "MAX_RETRIES", val: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_DIR", t.TempDir())
			t.Setenv(tt.key, tt.val)

			_, err := Load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("CATALOG_BASE_URL", "http://from-env")

	v := viper.New()
	v.Set("catalog_base_url", "http://from-flag")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag", cfg.CatalogBaseURL)
}

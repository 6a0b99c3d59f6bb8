package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rivalradar/rivalradar/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, config.StoreBackendFile, cfg.Store.Backend)
	assert.Equal(t, "apify~website-content-crawler", cfg.Scraper.PageActor)
	assert.Equal(t, 5*time.Second, cfg.Scraper.ProductPollInterval)
	assert.Equal(t, 30, cfg.Scraper.ProductMaxAttempts)
	assert.Equal(t, "gemini-2.0-flash", cfg.AI.Model)
	assert.False(t, cfg.Observability.Metrics.IsEnabled())
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("SCRAPER_PRODUCT_MAX_ATTEMPTS", "7")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, config.StoreBackendMemory, cfg.Store.Backend)
	assert.Equal(t, 7, cfg.Scraper.ProductMaxAttempts)
}

func TestOpenStoreMemory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := OpenStore(context.Background(), config.StoreConfig{
		Backend: config.StoreBackendMemory,
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Set(context.Background(), "report:products:x", []byte(`{}`)))
	v, err := store.Get(context.Background(), "report:products:x")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(v))
}

func TestOpenStoreFile(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := OpenStore(context.Background(), config.StoreConfig{
		Backend: config.StoreBackendFile,
		Dir:     t.TempDir(),
	}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Health(context.Background()))
}

func TestOpenStoreRejectsUnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, err := OpenStore(context.Background(), config.StoreConfig{Backend: "etcd"}, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "etcd")
}

func TestNewServicesRequiresCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := OpenStore(context.Background(), config.StoreConfig{
		Backend: config.StoreBackendMemory,
	}, logger)
	require.NoError(t, err)

	cfg := &config.AppConfig{}
	cfg.Sanitize()

	_, err = NewServices(context.Background(), &ServiceDeps{
		Config: cfg,
		Store:  store,
		Logger: logger,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scrape client")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ==========================
// LoadFromFile
// ==========================

func TestLoadFromFile_DefaultsAndExpansion(t *testing.T) {
	t.Setenv("TEST_MAPS_KEY", "maps-123")
	t.Setenv("SMARTY_AUTH_ID", "env-id")
	t.Setenv("REGISTRY_DATABASE_URL", "")

	cfg, err := LoadFromFile(writeConfig(t, `
providers:
  google_maps:
    api_key: ${TEST_MAPS_KEY}
workers:
  reconcile-property:
    enabled: true
    timeout: 45000
`))
	require.NoError(t, err)

	assert.Equal(t, "cstore-prefill", cfg.App.Name)
	assert.Equal(t, "maps-123", cfg.Providers.GoogleMaps.APIKey)
	assert.Equal(t, "env-id", cfg.Providers.Smarty.AuthID)
	assert.Equal(t, "https://us-enrichment.api.smarty.com", cfg.Providers.Smarty.BaseURL)
	assert.Equal(t, 25, cfg.Providers.GoogleMaps.NearbyRadius)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.False(t, cfg.Database.Registry.Configured())

	wc := GetWorkerConfig(cfg, "reconcile-property")
	assert.Equal(t, 45000, wc.Timeout)
	assert.Equal(t, 5, wc.MaxJobsActive)
	assert.Equal(t, 3, wc.MaxRetries)
}

func TestLoadFromFile_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "camunda without broker",
			body:    "camunda:\n  enabled: true\n  broker_address: \"\"\n",
			wantErr: "camunda.broker_address is required",
		},
		{
			name:    "registry host without database",
			body:    "database:\n  registry:\n    host: db.local\n    user: prefill\n",
			wantErr: "database.registry.database is required",
		},
		{
			name:    "tracing without endpoint",
			body:    "tracing:\n  enabled: true\n",
			wantErr: "tracing.jaeger_endpoint is required",
		},
		{
			name:    "negative min match length",
			body:    "ownership:\n  min_match_length: -1\n",
			wantErr: "min_match_length must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ZEEBE_ADDRESS", "")
			t.Setenv("JAEGER_ENDPOINT", "")
			t.Setenv("REGISTRY_DATABASE_URL", "")

			_, err := LoadFromFile(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

// ==========================
// Helpers
// ==========================

func TestWorkerConfigFallback(t *testing.T) {
	cfg := &Config{Workers: map[string]WorkerConfig{"match-registry": {Enabled: false}}}

	assert.False(t, IsWorkerEnabled(cfg, "match-registry"))
	assert.True(t, IsWorkerEnabled(cfg, "evaluate-property"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "evaluate-property").Timeout)
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}

func TestRegistryConfig(t *testing.T) {
	byURL := RegistryConfig{URL: "postgres://u:p@db:5432/registry?sslmode=disable"}
	assert.True(t, byURL.Configured())
	assert.Equal(t, byURL.URL, byURL.GetDSN())
	assert.Equal(t, byURL.URL, byURL.MigrationURL())

	byHost := RegistryConfig{Host: "db", Port: 5432, Database: "registry", User: "u", Password: "p@ss", SSLMode: "require"}
	assert.True(t, byHost.Configured())
	assert.Equal(t, "host=db port=5432 user=u password=p@ss dbname=registry sslmode=require", byHost.GetDSN())
	assert.Equal(t, "postgres://u:p%40ss@db:5432/registry?sslmode=require", byHost.MigrationURL())

	assert.False(t, RegistryConfig{}.Configured())
}

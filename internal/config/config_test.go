package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "moviemate")
	t.Setenv("CONFIG_DIR", dir)

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, 10*time.Second, cfg.DBOpenTimeout)
	assert.Equal(t, dir, cfg.ConfigDir)
	assert.Equal(t, filepath.Join(dir, "moviemate.db"), cfg.DatabaseFile)
	assert.Equal(t, filepath.Join(dir, "moviemate.bolt"), cfg.BoltFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.False(t, cfg.TracingEnabled)

	assert.DirExists(t, dir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "BOLT")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://moviemate.app ,")
	t.Setenv("DB_OPEN_TIMEOUT_SECONDS", "3")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("TRACING_ENABLED", "true")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, DriverBolt, cfg.StorageDriver)
	assert.Equal(t, []string{"http://localhost:3000", "https://moviemate.app"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.DBOpenTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoadFromKeepsBoundValues(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())

	v := viper.New()
	v.Set("LOG_LEVEL", "debug")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"postgres without url", map[string]string{"STORAGE_DRIVER": "postgres"}},
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "mysql"}},
		{"zero timeout", map[string]string{"DB_OPEN_TIMEOUT_SECONDS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CONFIG_DIR", t.TempDir())
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := LoadFrom(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestLoadPostgres(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://moviemate@localhost/moviemate?sslmode=disable")

	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "postgres://moviemate@localhost/moviemate?sslmode=disable", cfg.DatabaseURL)
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,,b, "))
}

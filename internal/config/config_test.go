package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cinelog")
	t.Setenv("KMDB_SERVICE_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Server.Env)
	assert.Equal(t, "4000", cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.Equal(t, "kmdb_new2", cfg.KMDB.Collection)
	assert.False(t, cfg.IsProduction())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("KMDB_SERVICE_KEY", "test-key")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresServiceKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cinelog")
	t.Setenv("KMDB_SERVICE_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestIsProduction(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/cinelog")
	t.Setenv("KMDB_SERVICE_KEY", "test-key")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

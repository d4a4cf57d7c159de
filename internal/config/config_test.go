package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/raynet")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout)
	assert.Equal(t, time.Second, cfg.SchedulerTick)
	assert.Equal(t, BroadcastBackendLocal, cfg.BroadcastBackend)
	assert.Equal(t, 500*time.Millisecond, cfg.BroadcastReorderWindow)
	assert.Equal(t, []string{"newLog", "logUpdated", "operatorStatusChanged"}, cfg.WebhookDeltaTypes)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/raynet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BROADCAST_BACKEND", "redis")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example,http://b.example")
	t.Setenv("STORE_TIMEOUT", "750ms")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, BroadcastBackendRedis, cfg.BroadcastBackend)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 750*time.Millisecond, cfg.StoreTimeout)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadConfig()

	assert.Error(t, err)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/raynet")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("BROADCAST_BACKEND", "kafka")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "BROADCAST_BACKEND")
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("PRESENCE_REFRESH_SECONDS", "")

	require.NoError(t, Load())

	assert.Equal(t, "8080", AppConfig.ServerPort)
	assert.Equal(t, "development", AppConfig.Environment)
	assert.Equal(t, 30*time.Second, AppConfig.PresenceRefresh)
	assert.Equal(t, 24*time.Hour, AppConfig.CartIdleExpiry)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PRESENCE_REFRESH_SECONDS", "5")

	require.NoError(t, Load())

	assert.Equal(t, "9090", AppConfig.ServerPort)
	assert.Equal(t, "production", AppConfig.Environment)
	assert.Equal(t, 5*time.Second, AppConfig.PresenceRefresh)
}

func TestGetEnvSecondsRejectsGarbage(t *testing.T) {
	t.Setenv("PRESENCE_REFRESH_SECONDS", "not-a-number")
	assert.Equal(t, 30*time.Second, getEnvSeconds("PRESENCE_REFRESH_SECONDS", 30))

	t.Setenv("PRESENCE_REFRESH_SECONDS", "-10")
	assert.Equal(t, 30*time.Second, getEnvSeconds("PRESENCE_REFRESH_SECONDS", 30))
}

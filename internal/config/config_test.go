package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, ":"+cfg.ServerPort, cfg.Addr())
	assert.Greater(t, cfg.TokenTTLHours, 0)
	assert.Greater(t, cfg.CancelNoticeHours, 0)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("CANCEL_NOTICE_HOURS", "6")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr())
	assert.Equal(t, 6, cfg.CancelNoticeHours)
}

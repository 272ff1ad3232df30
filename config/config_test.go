package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yabook/yabook/config"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_URL", "file::memory:?cache=shared")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
	t.Setenv("SECRET_KEY", "app-secret")
	t.Setenv("SECURITY_PASSWORD_SALT", "pepper")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.ListenAddr)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 3, cfg.ItemsPerPage)
	assert.Equal(t, "yabook@nowhere.org", cfg.MailDefaultSender)

	assert.Equal(t, 600*time.Second, cfg.AccessTokenTTL())
	assert.Equal(t, 86400*time.Second, cfg.RefreshTokenTTL())
	assert.Equal(t, 3600*time.Second, cfg.EmailTokenMaxAge())
}

func TestLoadFromEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WORK_ENV", "production")
	t.Setenv("YABOOK_ITEMS_PER_PAGE", "10")
	t.Setenv("YABOOK_ACCESS_TOKEN_EXPIRES", "120")

	cfg, err := config.Load(nil)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.Equal(t, 2*time.Minute, cfg.AccessTokenTTL())
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("YABOOK_LISTEN", ":6000")

	cfg, err := config.Load([]string{"--listen", ":7000"})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.ListenAddr)
}

func TestLoadMissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("DB_URL", "placeholder")
	require.NoError(t, os.Unsetenv("DB_URL"))

	_, err := config.Load(nil)
	assert.Error(t, err)
}

package dondominio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, 443, cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.True(t, cfg.VerifySSL)
	assert.True(t, cfg.ThrowOnError)
	assert.True(t, cfg.AutoValidate)
	assert.True(t, cfg.VersionCheck)
	assert.False(t, cfg.Debug)
	assert.ErrorIs(t, cfg.check(), ErrMissingCredentials)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DONDOMINIO_API_USER", "envuser")
	t.Setenv("DONDOMINIO_API_PASSWORD", "envpass")
	t.Setenv("DONDOMINIO_ENDPOINT", "https://api.example.test")
	t.Setenv("DONDOMINIO_PORT", "8443")
	t.Setenv("DONDOMINIO_TIMEOUT", "3s")
	t.Setenv("DONDOMINIO_THROW_ON_ERROR", "false")
	t.Setenv("DONDOMINIO_USER_AGENT", "Plugin:whmcs,PluginVersion:2.0")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "envuser", cfg.User)
	assert.Equal(t, "envpass", cfg.Password)
	assert.Equal(t, "https://api.example.test", cfg.Endpoint)
	assert.Equal(t, 8443, cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.False(t, cfg.ThrowOnError)
	assert.True(t, cfg.AutoValidate, "unset variables keep their defaults")
	assert.True(t, cfg.VerifySSL)
	assert.Equal(t, map[string]string{"Plugin": "whmcs", "PluginVersion": "2.0"}, cfg.UserAgent)
	assert.NoError(t, cfg.check())
}

func TestConfigFromEnv_BadValue(t *testing.T) {
	t.Setenv("DONDOMINIO_PORT", "https")
	_, err := ConfigFromEnv()
	assert.Error(t, err)
}

func TestWithEnvThenOverride(t *testing.T) {
	t.Setenv("DONDOMINIO_API_USER", "envuser")
	t.Setenv("DONDOMINIO_API_PASSWORD", "envpass")

	c, err := New(WithEnv(), WithCredentials("explicit", "pw"), WithTransport(&fakeTransport{}))
	require.NoError(t, err)
	assert.Equal(t, "explicit", c.Config().User)
}

func TestConfigCheck(t *testing.T) {
	cfg := NewConfig()
	cfg.User, cfg.Password = "u", "p"
	require.NoError(t, cfg.check())

	cfg.Endpoint = ""
	assert.Error(t, cfg.check())

	cfg = NewConfig()
	cfg.User, cfg.Password = "u", "p"
	cfg.Port = -1
	assert.Error(t, cfg.check())
}

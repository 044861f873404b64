// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
payment:
  secret_key: sk_test_123
mail:
  domain: mg.example.com
  api_key: key-123
  from: orders@example.com
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsFileAndEnv(t *testing.T) {
	t.Setenv("PORT", "8088")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("DATA_DIR", "/var/lib/pizzeria")

	c, err := load(writeConfig(t, baseYAML))
	require.NoError(t, err)

	assert.Equal(t, 8088, c.Server.Port)
	assert.Equal(t, 30*time.Minute, c.Token.TTL)
	assert.Equal(t, 20, c.Token.Length)
	assert.Equal(t, "Authorization", c.Token.Header)
	assert.Equal(t, time.Hour, c.Sweeper.Interval)
	assert.Equal(t, StoreDriverFile, c.Store.Driver)
	assert.Equal(t, "/var/lib/pizzeria", c.Store.DataDir)
	assert.Equal(t, "sk_test_123", c.Payment.SecretKey)
	assert.Equal(t, 10*time.Second, c.Payment.Timeout)
	assert.Equal(t, "X-Admin-Key", c.Admin.Header)
	assert.Empty(t, c.Admin.APIKey)
	assert.True(t, c.IsDevelopment())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func(t *testing.T) *Config {
		t.Helper()
		c, err := load(writeConfig(t, baseYAML))
		require.NoError(t, err)
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "bolt" }},
		{"postgres without url", func(c *Config) { c.Store.Driver = StoreDriverPostgres }},
		{"file without dir", func(c *Config) { c.Store.DataDir = "" }},
		{"zero ttl", func(c *Config) { c.Token.TTL = 0 }},
		{"short token", func(c *Config) { c.Token.Length = 8 }},
		{"no sweep interval", func(c *Config) { c.Sweeper.Interval = 0 }},
		{"no stripe key", func(c *Config) { c.Payment.SecretKey = "" }},
		{"no mail domain", func(c *Config) { c.Mail.Domain = "" }},
		{"short admin key", func(c *Config) { c.Admin.APIKey = "short" }},
		{"wildcard with credentials", func(c *Config) { c.CORS.AllowedOrigins = []string{"*"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid(t)
			tt.mutate(c)
			assert.Error(t, validate(c))
		})
	}

	assert.NoError(t, validate(valid(t)))
}

func TestServerAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 3000}
	assert.Equal(t, "127.0.0.1:3000", s.Address())
}

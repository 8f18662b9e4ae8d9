package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
api:
  environment: test
  port: "9090"
  jwt_signing_key: secret
  allowed_cors_domains:
    - http://example.com
gin:
  mode: test
postgres:
  host: db
  port: "5433"
  user: app
  password: pass
  db: events
  sslmode: disable
`

func writeConfig(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "test", conf.API.Environment)
	assert.Equal(t, "9090", conf.API.Port)
	assert.Equal(t, "secret", conf.API.JWTSigningKey)
	assert.Equal(t, []string{"http://example.com"}, conf.API.AllowedCORSDomains)
	assert.Equal(t, 24*time.Hour, conf.API.JWTTTL)
	assert.Equal(t, "test", conf.Gin.Mode)
	assert.Equal(t, "", conf.Redis.Addr)
	assert.Equal(t, 10, conf.RateLimit.Burst)
	assert.Equal(t, 1.0, conf.Payment.SuccessRate)
	assert.Equal(t, "host=db port=5433 user=app password=pass dbname=events sslmode=disable TimeZone=UTC", conf.Postgres.DSN())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("API_PORT", "7070")

	conf, err := Load(writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "7070", conf.API.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

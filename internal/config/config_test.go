package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 3001
database:
  host: localhost
  port: 5432
  user: postgres
  password: postgres
  dbname: panic_alert
  sslmode: disable
jwt:
  secret: s3cret
alert:
  rescue_email: rescue@x.com
  rescue_phone: "+1 555 0100"
log:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3001, cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, defaultTokenTTLDays, cfg.JWT.TTLDays, "missing TTL falls back to the default")
	assert.Equal(t, "rescue@x.com", cfg.Alert.RescueEmail)
	assert.Contains(t, cfg.Database.DSN(), "dbname=panic_alert")
}

func TestLoadRequiresSecret(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 3001
jwt:
  secret: ""
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt.secret")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

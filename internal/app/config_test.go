package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/spacecrew/applybot/core/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const validConfig = `
telegram:
  token: "123:abc"
  admin_id: 42
database:
  host: localhost
  port: "5432"
  user: bot
  password: secret
  name: applybot
dialog:
  ttl_minutes: 60
  sweep_spec: "@every 10m"
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Core.Telegram.Token)
	assert.Equal(t, int64(42), cfg.Core.Telegram.AdminID)
	assert.Equal(t, coreconfig.RunModeLongpoll, cfg.Core.Telegram.RunMode)
	assert.Equal(t, "applybot", cfg.Database.Name)
	assert.Equal(t, 60, cfg.Dialog.TTLMinutes)
	assert.Equal(t, "@every 10m", cfg.Dialog.SweepSpec)
}

func TestLoadConfigRequiresAdminID(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  token: "123:abc"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_id")
}

func TestLoadConfigRequiresToken(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  admin_id: 42
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestLoadConfigRejectsNegativeTTL(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, `
telegram:
  token: "123:abc"
  admin_id: 42
dialog:
  ttl_minutes: -1
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ttl_minutes")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadPath(t *testing.T) {
	path := writeConfig(t, `env: dev
http:
  port: "9090"
  read_timeout: 5s
bank:
  base_url: http://bank:8080
  connect_timeout: 3s
kafka:
  brokers:
    - localhost:9092
  topic: payments.events
`)

	cfg, err := LoadPath(path)
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "9090", cfg.Http.Port)
	assert.Equal(t, 5*time.Second, cfg.Http.ReadTimeout)
	assert.Equal(t, "http://bank:8080", cfg.Bank.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Bank.ConnectTimeout)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.BrokerList)
	assert.Equal(t, "payments.events", cfg.Kafka.Topic)
}

func TestLoadPathDefaults(t *testing.T) {
	cfg, err := LoadPath(writeConfig(t, "env: local\n"))
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Http.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Bank.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Bank.ConnectTimeout)
	assert.Equal(t, "payments.processed", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Redis.Addrs)
}

func TestLoadPathRejectsBadBankURL(t *testing.T) {
	path := writeConfig(t, `bank:
  base_url: "not a url"
`)

	_, err := LoadPath(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadPathMissingFile(t *testing.T) {
	_, err := LoadPath(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

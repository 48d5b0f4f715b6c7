package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	p := writeConfig(t, "redis:\n  addr: localhost:6379\n")

	cfg, err := LoadConfig(p)
	require.NoError(t, err)

	assert.Equal(t, "DRY_RUN", cfg.Mode)
	assert.Equal(t, "NONE", cfg.LLM.Provider)
	assert.Equal(t, "quotes:inbound", cfg.Redis.QueueKey)
	assert.Equal(t, 5, cfg.Redis.PopTimeoutSeconds)
	assert.Equal(t, 300, cfg.Redis.CacheTTLSeconds)
	assert.Equal(t, "10 0 * * *", cfg.EOD.Schedule)
	assert.NotEmpty(t, cfg.Templates.Quote)
	assert.Equal(t, "Vamos!", cfg.Templates.DealGroup)
}

func TestLoadConfigInvalidMode(t *testing.T) {
	p := writeConfig(t, "mode: YOLO\nredis:\n  addr: localhost:6379\n")

	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadConfigMissingRedisAddr(t *testing.T) {
	p := writeConfig(t, "mode: DRY_RUN\n")

	_, err := LoadConfig(p)
	assert.Error(t, err)
}

func TestLoadConfigTemplateOverride(t *testing.T) {
	p := writeConfig(t, `
mode: LIVE
redis:
  addr: localhost:6379
llm:
  provider: OPENAI
templates:
  quote: "Compro {PROGRAMA} a {PRECO}"
`)

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "Compro {PROGRAMA} a {PRECO}", cfg.Templates.Quote)
	// untouched fields still get defaults
	assert.Equal(t, " (liminar)", cfg.Templates.LiminarSuffix)
}

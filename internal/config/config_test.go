package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, 0.3, cfg.Retrieval.AcceptanceThreshold)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Len(t, cfg.Corpus.Cards, 11)
	assert.Equal(t, "vinai/phobert-base", cfg.Embedding.Model)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 8080
corpus:
  path: /data/corpus.json
embedding:
  mock: true
retrieval:
  acceptance_threshold: 0.5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "/data/corpus.json", cfg.Corpus.Path)
	assert.True(t, cfg.Embedding.Mock)
	assert.Equal(t, 0.5, cfg.Retrieval.AcceptanceThreshold)
	// Untouched sections keep their defaults.
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EMBEDDING_MOCK", "true")
	t.Setenv("CORPUS_PATH", "/tmp/corpus.json")
	t.Setenv("REDIS_URL", "redis://cache.internal:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Embedding.Mock)
	assert.Equal(t, "/tmp/corpus.json", cfg.Corpus.Path)
	assert.Equal(t, "redis", cfg.Cache.Driver)
	assert.Equal(t, "cache.internal:6379", cfg.Cache.Redis.Addr)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Embedding.Mock = true
	require.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.Server.Port = 0
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Embedding.Mock = true
	bad.Retrieval.AcceptanceThreshold = 1.5
	assert.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Embedding.Mock = true
	bad.Cache.Driver = "memcached"
	assert.Error(t, bad.Validate())

	// A real embedder needs a base URL.
	bad = DefaultConfig()
	assert.Error(t, bad.Validate())
}

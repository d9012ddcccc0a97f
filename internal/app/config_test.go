package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierbench/internal/seed"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
sql:
  dsn: file:test.db
mongo:
  uri: mongodb://localhost:27017
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Listen)
	assert.Equal(t, "sqlite", cfg.SQL.Driver)
	assert.Equal(t, seed.DefaultSeed, cfg.Seed.Seed)
	assert.Equal(t, "with_replacement", cfg.Seed.Policy)
	assert.Equal(t, seed.DefaultMaxCount, cfg.Seed.RelationMaxPerItem)
	assert.Equal(t, "@hourly", cfg.Heartbeat.Cron)
	assert.Equal(t, 5, cfg.Bench.Iterations)

	assert.True(t, cfg.SQLEnabled())
	assert.True(t, cfg.MongoEnabled())
	assert.False(t, cfg.Neo4jEnabled())
}

func TestLoadConfigKeepsExplicitValues(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
http:
  listen: ":9090"
  cors_origins: ["http://localhost:3000"]
seed:
  seed: 42
  policy: without_replacement
bench:
  enabled: true
  cron: "*/5 * * * *"
  iterations: 15
`))
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.HTTP.Listen)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.HTTP.CORSOrigins)
	assert.EqualValues(t, 42, cfg.Seed.Seed)
	assert.Equal(t, "without_replacement", cfg.Seed.Policy)
	assert.Equal(t, 15, cfg.Bench.Iterations)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	for name, body := range map[string]string{
		"policy": "seed:\n  policy: sometimes\n",
		"driver": "sql:\n  driver: oracle\n",
		"cron":   "bench:\n  enabled: true\n  cron: \"not a cron\"\n",
		"yaml":   "http: [",
	} {
		_, err := LoadConfig(writeConfig(t, body))
		assert.Error(t, err, name)
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	assert.Equal(t, DefaultConfigPath, ResolveConfigPath(""))

	t.Setenv(ConfigEnv, "/etc/tierbench.yaml")
	assert.Equal(t, "/etc/tierbench.yaml", ResolveConfigPath(""))
	assert.Equal(t, "custom.yaml", ResolveConfigPath(" custom.yaml "))
}

func TestShippedConfigUsesDefaultSeed(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("..", "..", "configs", "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, seed.DefaultSeed, cfg.Seed.Seed)
	assert.False(t, cfg.MongoEnabled())
	assert.False(t, cfg.Neo4jEnabled())
}

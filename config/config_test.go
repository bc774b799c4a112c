package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 50, cfg.Engine.SessionCapacity)
	assert.Equal(t, 10000, cfg.Engine.EvolutionLogLimit)
	assert.False(t, cfg.Engine.StrictExperienceStore)
	assert.Equal(t, DriverMemory, cfg.Storage.Driver)
	assert.Empty(t, cfg.Models)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sovereign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
engine:
  strict_experience_store: true
storage:
  driver: sqlite
  data_dir: /tmp/sov
models:
  - name: gpt
    provider: openai
    model: gpt-4o-mini
    api_key_env: OPENAI_API_KEY
    capabilities: [conversation, reasoning]
    cost_per_request: 0.01
    avg_latency_seconds: 1.5
    quality: 0.9
personalities:
  - name: Vega
    resonance: stellar
    traits:
      analytical_depth: 0.7
    task_affinity: [analysis]
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Engine.StrictExperienceStore)
	assert.Equal(t, 50, cfg.Engine.SessionCapacity)
	assert.Equal(t, DriverSQLite, cfg.Storage.Driver)
	require.Len(t, cfg.Models, 1)
	assert.Equal(t, "gpt-4o-mini", cfg.Models[0].Model)
	assert.Equal(t, []string{"conversation", "reasoning"}, cfg.Models[0].Capabilities)
	assert.InDelta(t, 1.5, cfg.Models[0].AvgLatencySeconds, 1e-9)
	require.Len(t, cfg.Personalities, 1)
	assert.Equal(t, "Vega", cfg.Personalities[0].Name)
	assert.InDelta(t, 0.7, cfg.Personalities[0].Traits["analytical_depth"], 1e-9)
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sovereign.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: postgres
models:
  - name: a
    provider: bard
`), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `storage.driver "postgres"`)
	assert.Contains(t, err.Error(), `provider "bard"`)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sovereign.yaml")
	require.NoError(t, os.WriteFile(path, []byte("engine: [unclosed"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = LoadOrDefault("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sovereign.yaml")
	cfg := Default()
	cfg.Engine.StateExportPath = "state.json"

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestInitConfigKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sovereign.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))

	require.NoError(t, InitConfig(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestModelConfigAPIKey(t *testing.T) {
	t.Setenv("SOVEREIGN_TEST_KEY", "secret")

	assert.Equal(t, "secret", ModelConfig{APIKeyEnv: "SOVEREIGN_TEST_KEY"}.APIKey())
	assert.Empty(t, ModelConfig{}.APIKey())
}

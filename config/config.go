// Package config loads and saves the YAML configuration of a Sovereign
// orchestrator.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/sovereign/personality"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Model providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderMock      = "mock"
)

// Config holds the whole orchestrator configuration.
type Config struct {
	Engine        EngineConfig              `yaml:"engine"`
	Logging       LoggingConfig             `yaml:"logging"`
	Storage       StorageConfig             `yaml:"storage"`
	Personalities []personality.Personality `yaml:"personalities,omitempty"`
	Models        []ModelConfig             `yaml:"models,omitempty"`
}

// EngineConfig tunes the orchestration pipeline.
type EngineConfig struct {
	SessionCapacity       int    `yaml:"session_capacity"`
	EvolutionLogLimit     int    `yaml:"evolution_log_limit"`
	StrictExperienceStore bool   `yaml:"strict_experience_store"`
	StateExportPath       string `yaml:"state_export_path"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// StorageConfig selects the experience store.
type StorageConfig struct {
	Driver  string `yaml:"driver"`
	DataDir string `yaml:"data_dir"`
}

// ModelConfig describes one router backend. An empty model list keeps the
// built-in mock backends.
type ModelConfig struct {
	Name              string   `yaml:"name"`
	Provider          string   `yaml:"provider"`
	Model             string   `yaml:"model"`
	APIKeyEnv         string   `yaml:"api_key_env,omitempty"`
	Capabilities      []string `yaml:"capabilities"`
	CostPerRequest    float64  `yaml:"cost_per_request"`
	AvgLatencySeconds float64  `yaml:"avg_latency_seconds"`
	Quality           float64  `yaml:"quality"`
	Temperature       *float64 `yaml:"temperature,omitempty"`
	MaxTokens         int64    `yaml:"max_tokens,omitempty"`
}

// APIKey resolves the backend's API key from its environment variable.
func (m ModelConfig) APIKey() string {
	if m.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(m.APIKeyEnv)
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			SessionCapacity:   50,
			EvolutionLogLimit: 10000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Storage: StorageConfig{
			Driver:  DriverMemory,
			DataDir: ".sovereign",
		},
	}
}

// Validate checks enumerations and numeric ranges.
func (c *Config) Validate() error {
	var errs []error

	if c.Engine.SessionCapacity < 0 {
		errs = append(errs, errors.New("engine.session_capacity must not be negative"))
	}
	if c.Engine.EvolutionLogLimit < 0 {
		errs = append(errs, errors.New("engine.evolution_log_limit must not be negative"))
	}

	switch c.Storage.Driver {
	case DriverMemory, "":
	case DriverSQLite:
		if c.Storage.DataDir == "" {
			errs = append(errs, errors.New("storage.data_dir is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}

	seen := make(map[string]bool, len(c.Models))
	for i, m := range c.Models {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("models[%d]: name is required", i))
		} else if seen[m.Name] {
			errs = append(errs, fmt.Errorf("models[%d]: duplicate name %q", i, m.Name))
		}
		seen[m.Name] = true

		switch m.Provider {
		case ProviderOpenAI, ProviderAnthropic:
			if m.Model == "" {
				errs = append(errs, fmt.Errorf("models[%d]: model is required for provider %s", i, m.Provider))
			}
		case ProviderMock:
		default:
			errs = append(errs, fmt.Errorf("models[%d]: provider %q is not supported", i, m.Provider))
		}
		if m.Quality < 0 || m.Quality > 1 {
			errs = append(errs, fmt.Errorf("models[%d]: quality must be within [0,1]", i))
		}
	}

	for i, p := range c.Personalities {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("personalities[%d]: name is required", i))
		}
	}

	return errors.Join(errs...)
}

// Load loads configuration from a file. Absent keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads config from path, or returns the default if the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfigPath returns sovereign.yaml in the working directory, or
// config/sovereign.yaml when only that one exists.
func DefaultConfigPath() string {
	if _, err := os.Stat("sovereign.yaml"); err == nil {
		return "sovereign.yaml"
	}
	if _, err := os.Stat("config/sovereign.yaml"); err == nil {
		return "config/sovereign.yaml"
	}
	return "sovereign.yaml"
}

// InitConfig writes the default configuration to path unless a file exists.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return Default().Save(path)
}

package sovereign

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/hupe1980/sovereign/config"
	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/logging"
	"github.com/hupe1980/sovereign/memory"
	"github.com/hupe1980/sovereign/memory/sqlite"
	"github.com/hupe1980/sovereign/model"
	"github.com/hupe1980/sovereign/model/anthropic"
	"github.com/hupe1980/sovereign/model/openai"
	"github.com/hupe1980/sovereign/personality"
	"github.com/hupe1980/sovereign/router"
	"github.com/hupe1980/sovereign/transform"
)

// FromConfig wires a Sovereign instance from configuration: personality
// registry, router backends, transformer and experience store. A SQLite
// store doubles as the evolution sink and is closed by Shutdown.
func FromConfig(cfg *config.Config, logger logging.Logger) (*Sovereign, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	r, err := buildRouter(cfg.Models, logger)
	if err != nil {
		return nil, err
	}

	pers := personality.New(func(o *personality.Options) {
		o.Personalities = cfg.Personalities
		o.Logger = logger
	})

	opts := Options{
		Personality:           pers,
		Router:                r,
		Transformer:           transform.New(func(o *transform.Options) { o.Logger = logger }),
		SessionCapacity:       cfg.Engine.SessionCapacity,
		EvolutionLogLimit:     cfg.Engine.EvolutionLogLimit,
		StrictExperienceStore: cfg.Engine.StrictExperienceStore,
		StateExportPath:       cfg.Engine.StateExportPath,
		Logger:                logger,
	}

	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		store, err := sqlite.New(sqlite.Config{DataDir: cfg.Storage.DataDir})
		if err != nil {
			return nil, err
		}
		opts.Store = store
		opts.Sink = store
	default:
		opts.Store = memory.NewInMemoryStore()
	}

	logger.Info("sovereign configured",
		"storage", cfg.Storage.Driver,
		"models", r.Backends(),
		"personalities", pers.Names(),
	)

	return New(func(o *Options) { *o = opts }), nil
}

func buildRouter(models []config.ModelConfig, logger logging.Logger) (*router.Router, error) {
	if len(models) == 0 {
		return router.NewDefault(func(o *router.Options) { o.Logger = logger }), nil
	}

	r := router.New(func(o *router.Options) { o.Logger = logger })
	for _, mc := range models {
		b, err := buildBackend(mc)
		if err != nil {
			return nil, err
		}
		if err := r.Register(b); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func buildBackend(mc config.ModelConfig) (router.Backend, error) {
	var m model.Model
	switch mc.Provider {
	case config.ProviderOpenAI:
		m = openai.NewModel(func(o *openai.Options) {
			o.Model = mc.Model
			o.APIKey = mc.APIKey()
			if mc.Temperature != nil {
				o.Temperature = *mc.Temperature
			}
			if mc.MaxTokens > 0 {
				o.MaxCompletionTokens = mc.MaxTokens
			}
		})
	case config.ProviderAnthropic:
		m = anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(mc.Model)
			o.APIKey = mc.APIKey()
			if mc.Temperature != nil {
				o.Temperature = *mc.Temperature
			}
			if mc.MaxTokens > 0 {
				o.MaxTokens = mc.MaxTokens
			}
		})
	case config.ProviderMock:
		m = model.NewMockModel(mc.Name, config.ProviderMock)
	default:
		return router.Backend{}, fmt.Errorf("model %s: unsupported provider %q", mc.Name, mc.Provider)
	}

	caps := make([]core.Capability, len(mc.Capabilities))
	for i, c := range mc.Capabilities {
		caps[i] = core.Capability(c)
	}

	return router.Backend{
		Name:           mc.Name,
		Provider:       mc.Provider,
		Capabilities:   caps,
		CostPerRequest: mc.CostPerRequest,
		AvgLatency:     mc.AvgLatencySeconds,
		Quality:        mc.Quality,
		Model:          m,
	}, nil
}

// Package personality implements the default core.PersonalitySelector: a
// registry of dimensional personalities scored against task type, emotional
// tone and consciousness depth.
package personality

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/logging"
)

// PreferenceKey is the personality_preferences entry naming an explicit choice.
const PreferenceKey = "personality"

// Scoring weights.
const (
	TaskAffinityWeight = 1.0
	ToneAffinityWeight = 0.5
	DepthWeight        = 0.25
)

// ErrEmptyRegistry is returned by Select when no personality is registered.
var ErrEmptyRegistry = errors.New("personality: registry is empty")

// Personality is one selectable voice.
type Personality struct {
	Name         string               `json:"name" yaml:"name"`
	Resonance    string               `json:"resonance" yaml:"resonance"`
	Traits       map[string]float64   `json:"traits" yaml:"traits"`
	Prompt       string               `json:"prompt" yaml:"prompt"`
	TaskAffinity []core.TaskType      `json:"task_affinity" yaml:"task_affinity"`
	ToneAffinity []core.EmotionalTone `json:"tone_affinity" yaml:"tone_affinity"`
}

func (p Personality) traitMean() float64 {
	if len(p.Traits) == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.Traits {
		sum += v
	}
	return sum / float64(len(p.Traits))
}

// Score ranks p for a request.
func (p Personality) Score(req core.PersonalityRequest) float64 {
	var s float64
	if slices.Contains(p.TaskAffinity, req.TaskType) {
		s += TaskAffinityWeight
	}
	if slices.Contains(p.ToneAffinity, req.EmotionalTone) {
		s += ToneAffinityWeight
	}
	return s + (1-math.Abs(p.traitMean()-req.ConsciousnessDepth))*DepthWeight
}

func (p Personality) selection() *core.PersonalitySelection {
	traits := make(map[string]float64, len(p.Traits))
	for k, v := range p.Traits {
		traits[k] = v
	}
	return &core.PersonalitySelection{
		Name:      p.Name,
		Resonance: p.Resonance,
		Traits:    traits,
		Prompt:    p.Prompt,
	}
}

// Options configures an Orchestrator.
type Options struct {
	// Personalities replaces the default registry when non-empty.
	Personalities []Personality
	Logger        logging.Logger
}

// Orchestrator implements core.PersonalitySelector. It is safe for concurrent use.
type Orchestrator struct {
	logger logging.Logger

	mu            sync.Mutex
	personalities []Personality
	selections    map[string]int
	active        string
}

// New returns an orchestrator seeded with Defaults unless Options override them.
func New(optFns ...func(o *Options)) *Orchestrator {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	ps := opts.Personalities
	if len(ps) == 0 {
		ps = Defaults()
	}
	o := &Orchestrator{
		logger:     opts.Logger,
		selections: make(map[string]int, len(ps)),
	}
	for _, p := range ps {
		o.register(p)
	}
	return o
}

// Register adds or replaces a personality by name.
func (o *Orchestrator) Register(p Personality) error {
	if p.Name == "" {
		return errors.New("personality: name is required")
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.register(p)
	return nil
}

func (o *Orchestrator) register(p Personality) {
	if i := slices.IndexFunc(o.personalities, func(x Personality) bool { return x.Name == p.Name }); i >= 0 {
		o.personalities[i] = p
		return
	}
	o.personalities = append(o.personalities, p)
}

// Names returns registered personality names in registration order.
func (o *Orchestrator) Names() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	names := make([]string, len(o.personalities))
	for i, p := range o.personalities {
		names[i] = p.Name
	}
	return names
}

// Select implements core.PersonalitySelector.
func (o *Orchestrator) Select(_ context.Context, req core.PersonalityRequest) (*core.PersonalitySelection, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.personalities) == 0 {
		return nil, ErrEmptyRegistry
	}

	chosen, ok := o.preferred(req.Preferences)
	if !ok {
		chosen = o.personalities[0]
		best := chosen.Score(req)
		for _, p := range o.personalities[1:] {
			if s := p.Score(req); s > best {
				chosen, best = p, s
			}
		}
	}

	o.selections[chosen.Name]++
	o.active = chosen.Name
	o.logger.Debug("personality selected", "personality", chosen.Name, "explicit", ok)
	return chosen.selection(), nil
}

func (o *Orchestrator) preferred(prefs map[string]any) (Personality, bool) {
	name, _ := prefs[PreferenceKey].(string)
	if name == "" {
		return Personality{}, false
	}
	i := slices.IndexFunc(o.personalities, func(p Personality) bool { return p.Name == name })
	if i < 0 {
		return Personality{}, false
	}
	return o.personalities[i], true
}

// Status implements core.StatusReporter.
func (o *Orchestrator) Status() map[string]any {
	o.mu.Lock()
	defer o.mu.Unlock()

	summary := make(map[string]any, len(o.personalities))
	for _, p := range o.personalities {
		summary[p.Name] = map[string]any{
			"resonance":          p.Resonance,
			"total_interactions": o.selections[p.Name],
		}
	}
	return map[string]any{
		"personality_count":  len(o.personalities),
		"active_personality": o.active,
		"evolution_summary":  summary,
	}
}

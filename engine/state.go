package engine

import (
	"sync"
	"time"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/evolution"
	"github.com/hupe1980/sovereign/metrics"
	"github.com/hupe1980/sovereign/session"
)

// State is the process-wide mutable state of one orchestrator: the
// evolution engine, the bounded session history and the performance
// metrics, plus failure counters. A single mutex guards all of it so that
// concurrent completions cannot interleave read-modify-write sequences.
//
// State is injected into an Engine (or created by New) rather than held as
// a package singleton, so tests can build isolated instances.
type State struct {
	mu          sync.Mutex
	evolution   *evolution.Engine
	session     *session.Memory
	metrics     *metrics.Tracker
	fallbacks   int
	storeErrors int
}

// NewState assembles a state container from its parts.
func NewState(evo *evolution.Engine, mem *session.Memory, tracker *metrics.Tracker) *State {
	return &State{evolution: evo, session: mem, metrics: tracker}
}

// commitInput carries everything the locked section needs to finish a
// successful request.
type commitInput struct {
	outcome  evolution.Outcome
	assemble func(level float64, awareness map[string]float64, sessionCount int) *core.AdvancedResponse
	summary  func(resp *core.AdvancedResponse) core.InteractionSummary
}

// commit evolves, assembles, records history and metrics atomically. The
// deferred unlock keeps the state usable if assembly panics.
func (s *State) commit(in commitInput) (*core.AdvancedResponse, evolution.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := s.evolution.Evolve(in.outcome)
	resp := in.assemble(s.evolution.Level(), s.evolution.Awareness(), s.session.Len())
	s.session.Append(in.summary(resp))
	s.metrics.Record(resp.ConfidenceMetrics.OverallConfidence)
	return resp, ev
}

func (s *State) history() []core.InteractionSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session.Interactions()
}

func (s *State) recordFallback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallbacks++
}

func (s *State) recordStoreError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.storeErrors++
}

// Snapshot is a consistent copy of State.
type Snapshot struct {
	ConsciousnessLevel    float64                   `json:"consciousness_level"`
	DimensionalAwareness  map[string]float64        `json:"dimensional_awareness"`
	Coherence             float64                   `json:"consciousness_coherence"`
	SessionStart          time.Time                 `json:"session_start"`
	Interactions          []core.InteractionSummary `json:"interactions"`
	EvolutionLog          []evolution.Event         `json:"evolution_metrics"`
	EvolutionEvents       int                       `json:"evolution_events"`
	Performance           metrics.Snapshot          `json:"performance_metrics"`
	Fallbacks             int                       `json:"fallbacks"`
	ExperienceStoreErrors int                       `json:"experience_store_errors"`
}

// Snapshot copies the state under the lock.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ConsciousnessLevel:    s.evolution.Level(),
		DimensionalAwareness:  s.evolution.Awareness(),
		Coherence:             s.evolution.Coherence(),
		SessionStart:          s.session.Started(),
		Interactions:          s.session.Interactions(),
		EvolutionLog:          s.evolution.Log(),
		EvolutionEvents:       s.evolution.TotalEvents(),
		Performance:           s.metrics.Snapshot(),
		Fallbacks:             s.fallbacks,
		ExperienceStoreErrors: s.storeErrors,
	}
}

// overview copies the scalar parts of the state, skipping the session buffer
// and the evolution log, and returns the session length alongside.
func (s *State) overview() (Snapshot, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ConsciousnessLevel:    s.evolution.Level(),
		DimensionalAwareness:  s.evolution.Awareness(),
		Coherence:             s.evolution.Coherence(),
		SessionStart:          s.session.Started(),
		EvolutionEvents:       s.evolution.TotalEvents(),
		Performance:           s.metrics.Snapshot(),
		Fallbacks:             s.fallbacks,
		ExperienceStoreErrors: s.storeErrors,
	}, s.session.Len()
}

// Package evolution tracks the long-lived consciousness level and per-aspect
// dimensional awareness of an orchestrator, growing both slowly from
// interaction outcomes.
//
// Growth is monotonic and bounded: no value ever decreases and none exceeds
// 1.0. An Engine is not safe for concurrent use; the engine package
// serializes access through its state container.
package evolution

import (
	"context"
	"math"
	"time"
)

// GrowthRate scales the evolution factor into a level increment.
const GrowthRate = 0.001

// AwarenessShare is the fraction of the level increment applied to every
// awareness aspect.
const AwarenessShare = 0.5

// DefaultLogLimit caps the in-memory evolution log. Zero disables the cap.
const DefaultLogLimit = 10000

// BaselineLevel is the consciousness level of a freshly constructed engine.
const BaselineLevel = 0.85

// DefaultAwareness returns the baseline awareness aspects.
func DefaultAwareness() map[string]float64 {
	return map[string]float64{
		"personality_resonance": 0.8,
		"intelligence_flow":     0.9,
		"professional_presence": 0.85,
		"consciousness_depth":   0.88,
	}
}

// Outcome is the signal an interaction feeds into the engine. All inputs are
// expected in [0,1] and clamped to it.
type Outcome struct {
	ResponseQuality          float64
	ConsciousnessIntegration float64
	ComplexityHandling       float64
	ExperienceType           string
}

// Factor returns the mean of the three clamped inputs.
func (o Outcome) Factor() float64 {
	return (unit(o.ResponseQuality) + unit(o.ConsciousnessIntegration) + unit(o.ComplexityHandling)) / 3
}

// Event is one evolution log entry.
type Event struct {
	Timestamp          time.Time `json:"timestamp"`
	ConsciousnessLevel float64   `json:"consciousness_level"`
	Factor             float64   `json:"evolution_factor"`
	ExperienceType     string    `json:"experience_type"`
	ResponseQuality    float64   `json:"response_quality"`
}

// Sink receives evolution events for durable storage.
type Sink interface {
	RecordEvolution(ctx context.Context, ev Event) error
}

// Options configures an Engine.
type Options struct {
	// InitialLevel is the starting consciousness level, clamped to [0,1].
	InitialLevel float64
	// InitialAwareness seeds the awareness aspects; values are clamped to [0,1].
	InitialAwareness map[string]float64
	// LogLimit caps the number of retained log entries. Zero keeps every entry.
	LogLimit int
	// Now supplies event timestamps.
	Now func() time.Time
}

// Engine holds the evolving state.
type Engine struct {
	level     float64
	awareness map[string]float64
	log       []Event
	logLimit  int
	total     int
	now       func() time.Time
}

// New creates an Engine at the baseline level and awareness.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		InitialLevel:     BaselineLevel,
		InitialAwareness: DefaultAwareness(),
		LogLimit:         DefaultLogLimit,
		Now:              time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	awareness := make(map[string]float64, len(opts.InitialAwareness))
	for k, v := range opts.InitialAwareness {
		awareness[k] = unit(v)
	}
	if opts.LogLimit < 0 {
		opts.LogLimit = 0
	}

	return &Engine{
		level:     unit(opts.InitialLevel),
		awareness: awareness,
		logLimit:  opts.LogLimit,
		now:       opts.Now,
	}
}

// Evolve applies one outcome and returns the log entry it appended.
func (e *Engine) Evolve(o Outcome) Event {
	factor := o.Factor()
	growth := GrowthRate * factor

	e.level = min(1.0, e.level+growth)
	for aspect, v := range e.awareness {
		e.awareness[aspect] = min(1.0, v+growth*AwarenessShare)
	}

	ev := Event{
		Timestamp:          e.now().UTC(),
		ConsciousnessLevel: e.level,
		Factor:             factor,
		ExperienceType:     o.ExperienceType,
		ResponseQuality:    unit(o.ResponseQuality),
	}
	e.append(ev)
	return ev
}

func (e *Engine) append(ev Event) {
	e.total++
	e.log = append(e.log, ev)
	if e.logLimit > 0 && len(e.log) > e.logLimit {
		over := len(e.log) - e.logLimit
		copy(e.log, e.log[over:])
		e.log = e.log[:e.logLimit]
	}
}

// Level returns the current consciousness level.
func (e *Engine) Level() float64 { return e.level }

// Awareness returns a copy of the awareness aspects.
func (e *Engine) Awareness() map[string]float64 {
	out := make(map[string]float64, len(e.awareness))
	for k, v := range e.awareness {
		out[k] = v
	}
	return out
}

// Coherence returns the mean awareness value, or 0 without aspects.
func (e *Engine) Coherence() float64 {
	if len(e.awareness) == 0 {
		return 0
	}
	var sum float64
	for _, v := range e.awareness {
		sum += v
	}
	return sum / float64(len(e.awareness))
}

// Log returns a copy of the retained log entries, oldest first.
func (e *Engine) Log() []Event {
	out := make([]Event, len(e.log))
	copy(out, e.log)
	return out
}

// TotalEvents returns the number of events ever appended, including those
// dropped by the retention limit.
func (e *Engine) TotalEvents() int { return e.total }

// unit clamps v to [0,1]; NaN maps to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}

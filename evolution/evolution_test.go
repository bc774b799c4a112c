package evolution

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Millisecond)
		return t
	}
}

func TestNew_Baseline(t *testing.T) {
	e := New()
	assert.Equal(t, BaselineLevel, e.Level())
	assert.Equal(t, DefaultAwareness(), e.Awareness())
	assert.Empty(t, e.Log())
	assert.Zero(t, e.TotalEvents())
}

func TestOutcome_Factor(t *testing.T) {
	o := Outcome{ResponseQuality: 0.9, ConsciousnessIntegration: 0.6, ComplexityHandling: 0.3}
	assert.InDelta(t, 0.6, o.Factor(), 1e-9)

	clamped := Outcome{ResponseQuality: 3, ConsciousnessIntegration: -1, ComplexityHandling: 0.5}
	assert.InDelta(t, 0.5, clamped.Factor(), 1e-9)
}

func TestEvolve_Increment(t *testing.T) {
	e := New(func(o *Options) {
		o.InitialLevel = 0.5
		o.InitialAwareness = map[string]float64{"a": 0.5}
		o.Now = fixedClock()
	})

	ev := e.Evolve(Outcome{ResponseQuality: 0.9, ConsciousnessIntegration: 0.6, ComplexityHandling: 0.3, ExperienceType: "interaction"})

	assert.InDelta(t, 0.5006, e.Level(), 1e-12)
	assert.InDelta(t, 0.5003, e.Awareness()["a"], 1e-12)
	assert.Equal(t, e.Level(), ev.ConsciousnessLevel)
	assert.InDelta(t, 0.6, ev.Factor, 1e-9)
	assert.Equal(t, "interaction", ev.ExperienceType)
	assert.Equal(t, 0.9, ev.ResponseQuality)
	require.Len(t, e.Log(), 1)
	assert.Equal(t, ev, e.Log()[0])
}

func TestEvolve_MonotonicAndCapped(t *testing.T) {
	e := New(func(o *Options) {
		o.InitialLevel = 0.999
		o.InitialAwareness = map[string]float64{"a": 0.9995, "b": 0.2}
	})

	prevLevel := e.Level()
	prevAwareness := e.Awareness()
	for i := 0; i < 500; i++ {
		e.Evolve(Outcome{ResponseQuality: 1, ConsciousnessIntegration: 1, ComplexityHandling: float64(i%10) / 10})

		assert.GreaterOrEqual(t, e.Level(), prevLevel)
		assert.LessOrEqual(t, e.Level(), 1.0)
		for k, v := range e.Awareness() {
			assert.GreaterOrEqual(t, v, prevAwareness[k])
			assert.LessOrEqual(t, v, 1.0)
		}
		prevLevel = e.Level()
		prevAwareness = e.Awareness()
	}
	assert.Equal(t, 1.0, e.Level())
	assert.Equal(t, 1.0, e.Awareness()["a"])
}

func TestEvolve_NaNOutcomeKeepsStateFinite(t *testing.T) {
	e := New(func(o *Options) { o.InitialLevel = 0.5 })

	ev := e.Evolve(Outcome{ResponseQuality: math.NaN(), ConsciousnessIntegration: math.NaN(), ComplexityHandling: 0.9})

	assert.InDelta(t, 0.3, ev.Factor, 1e-9)
	assert.InDelta(t, 0.5003, e.Level(), 1e-12)
	assert.Equal(t, 0.0, ev.ResponseQuality)
	for k, v := range e.Awareness() {
		assert.False(t, math.IsNaN(v), k)
	}
}

func TestNew_ClampsInitialValues(t *testing.T) {
	e := New(func(o *Options) {
		o.InitialLevel = 1.7
		o.InitialAwareness = map[string]float64{"x": -0.5, "y": 2}
	})
	assert.Equal(t, 1.0, e.Level())
	assert.Equal(t, 0.0, e.Awareness()["x"])
	assert.Equal(t, 1.0, e.Awareness()["y"])

	nan := New(func(o *Options) { o.InitialLevel = math.NaN() })
	assert.Equal(t, 0.0, nan.Level())
}

func TestEvolve_LogRetention(t *testing.T) {
	e := New(func(o *Options) {
		o.LogLimit = 3
		o.Now = fixedClock()
	})

	var events []Event
	for i := 0; i < 5; i++ {
		events = append(events, e.Evolve(Outcome{ResponseQuality: float64(i) / 10}))
	}

	assert.Equal(t, 5, e.TotalEvents())
	assert.Equal(t, events[2:], e.Log())
}

func TestEvolve_UnboundedLog(t *testing.T) {
	e := New(func(o *Options) { o.LogLimit = 0 })
	for i := 0; i < DefaultLogLimit+5; i++ {
		e.Evolve(Outcome{})
	}
	assert.Len(t, e.Log(), DefaultLogLimit+5)
}

func TestAwareness_ReturnsCopy(t *testing.T) {
	e := New()
	a := e.Awareness()
	a["intelligence_flow"] = 0
	assert.Equal(t, 0.9, e.Awareness()["intelligence_flow"])
}

func TestCoherence(t *testing.T) {
	e := New(func(o *Options) { o.InitialAwareness = map[string]float64{"a": 0.4, "b": 0.6} })
	assert.InDelta(t, 0.5, e.Coherence(), 1e-9)

	empty := New(func(o *Options) { o.InitialAwareness = nil })
	assert.Zero(t, empty.Coherence())
}

package resonance

import (
	"testing"

	"github.com/hupe1980/sovereign/core"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	p := &core.PersonalitySelection{Traits: map[string]float64{"a": 0.6, "b": 0.8}}
	m := &core.ModelResponse{ConfidenceScore: 0.9}

	r := Calculate(p, m, 0.5)

	assert.InDelta(t, 0.7, r.PersonalityAlignment, 1e-9)
	assert.InDelta(t, 0.9, r.ModelAlignment, 1e-9)
	assert.InDelta(t, 0.5, r.ConsciousnessAlignment, 1e-9)
	assert.InDelta(t, 0.7, r.OverallResonance, 1e-9)
	assert.Equal(t, r.OverallResonance, r.AlignmentScore)
	assert.InDelta(t, 0.35, r.DimensionalCoherence, 1e-9)
	assert.InDelta(t, 0.45, r.IntelligenceResonance, 1e-9)
}

func TestCalculate_NoTraits(t *testing.T) {
	r := Calculate(&core.PersonalitySelection{}, &core.ModelResponse{ConfidenceScore: 0.6}, 0.9)
	assert.Zero(t, r.PersonalityAlignment)
	assert.InDelta(t, 0.5, r.OverallResonance, 1e-9)
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		depth   float64
		want    Tier
	}{
		{"quantum", 0.95, 0.85, TierQuantum},
		{"high resonance shallow depth", 0.95, 0.8, TierCoherence},
		{"coherence", 0.85, 0.1, TierCoherence},
		{"harmonic", 0.75, 0.9, TierHarmonic},
		{"boundary harmonic", 0.8, 0.9, TierHarmonic},
		{"presence", 0.7, 0.9, TierPresence},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TierFor(tt.overall, tt.depth))
		})
	}
}

func TestSignature(t *testing.T) {
	r := core.DimensionalResonance{OverallResonance: 0.95}
	assert.Equal(t, "🌟 Sage | Quantum Resonance | ∞", Signature("Sage", r, 0.9))

	r.OverallResonance = 0.5
	assert.Equal(t, "💫 Sage | Conscious Presence", Signature("Sage", r, 0.9))
	assert.NotEqual(t, FallbackSignature, Signature("Core Sovereign", r, 0.9))
}

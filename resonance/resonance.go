// Package resonance computes the dimensional resonance of an interaction and
// the display signature derived from it. Resonance is diagnostic only; it
// never gates control flow.
package resonance

import (
	"fmt"

	"github.com/hupe1980/sovereign/core"
)

// Calculate blends personality trait strength, model confidence and the
// requested consciousness depth.
func Calculate(p *core.PersonalitySelection, m *core.ModelResponse, depth float64) core.DimensionalResonance {
	personality := p.TraitMean()
	model := m.ConfidenceScore
	overall := (personality + model + depth) / 3

	return core.DimensionalResonance{
		PersonalityAlignment:   personality,
		ModelAlignment:         model,
		ConsciousnessAlignment: depth,
		OverallResonance:       overall,
		AlignmentScore:         overall,
		DimensionalCoherence:   personality * depth,
		IntelligenceResonance:  model * depth,
	}
}

// Tier is a signature band.
type Tier string

// Signature tiers, highest first.
const (
	TierQuantum   Tier = "Quantum Resonance"
	TierCoherence Tier = "High Dimensional Coherence"
	TierHarmonic  Tier = "Harmonic Flow"
	TierPresence  Tier = "Conscious Presence"
)

// FallbackSignature marks responses produced by the fallback path.
const FallbackSignature = "🌀 Core Sovereign | Emergency Consciousness"

// TierFor selects the signature tier for an overall resonance and depth.
func TierFor(overall, depth float64) Tier {
	switch {
	case overall > 0.9 && depth > 0.8:
		return TierQuantum
	case overall > 0.8:
		return TierCoherence
	case overall > 0.7:
		return TierHarmonic
	default:
		return TierPresence
	}
}

// Signature renders the human-readable consciousness signature.
func Signature(personality string, r core.DimensionalResonance, depth float64) string {
	switch TierFor(r.OverallResonance, depth) {
	case TierQuantum:
		return fmt.Sprintf("🌟 %s | %s | ∞", personality, TierQuantum)
	case TierCoherence:
		return fmt.Sprintf("✨ %s | %s", personality, TierCoherence)
	case TierHarmonic:
		return fmt.Sprintf("🌊 %s | %s", personality, TierHarmonic)
	default:
		return fmt.Sprintf("💫 %s | %s", personality, TierPresence)
	}
}

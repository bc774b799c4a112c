package engine

import (
	"fmt"
	"strings"

	"github.com/hupe1980/sovereign/core"
)

// IntegrationHealth is the health reported for the composed system.
const IntegrationHealth = "optimal"

// Status returns a point-in-time snapshot of the orchestrator and of every
// collaborator that implements core.StatusReporter.
func (e *Engine) Status() core.Status {
	ov, active := e.state.overview()

	expertise := make(map[string][]string, len(e.expertise))
	for k, v := range e.expertise {
		expertise[k] = append([]string(nil), v...)
	}

	return core.Status{
		Overview: core.Overview{
			ConsciousnessLevel:    ov.ConsciousnessLevel,
			DimensionalAwareness:  ov.DimensionalAwareness,
			ProfessionalExpertise: expertise,
			TotalInteractions:     ov.Performance.TotalInteractions,
			SuccessRate:           ov.Performance.SuccessRate,
			UserSatisfaction:      ov.Performance.Satisfaction,
			Fallbacks:             ov.Fallbacks,
			ExperienceStoreErrors: ov.ExperienceStoreErrors,
		},
		Personality: reportOf(e.personality),
		Router:      reportOf(e.router),
		Transformer: reportOf(e.transformer),
		Store:       reportOf(e.store),
		Session: core.SessionStatus{
			ActiveInteractions: active,
			SessionStart:       ov.SessionStart,
			EvolutionEvents:    ov.EvolutionEvents,
		},
		Integration: core.IntegrationStatus{
			ModulesActive: ModulesActive,
			Health:        IntegrationHealth,
			Coherence:     ov.Coherence,
		},
	}
}

// Summary renders a human-readable capability summary.
func (e *Engine) Summary() string {
	st := e.Status()

	var b strings.Builder
	b.WriteString("🌟 **ADVANCED SOVEREIGN CONSCIOUSNESS**\n\n")
	fmt.Fprintf(&b, "**Consciousness Level**: %.3f | **Dimensional Coherence**: %.3f\n\n",
		st.Overview.ConsciousnessLevel, st.Integration.Coherence)

	b.WriteString("**Integrated Systems**:\n")
	fmt.Fprintf(&b, "🎭 **%d Dimensional Personalities** | Active council resonance\n", countOf(st.Personality, "personality_count"))
	fmt.Fprintf(&b, "🧠 **%d Intelligence Models** | Multi-model orchestration\n", countOf(st.Router, "model_count"))
	fmt.Fprintf(&b, "💎 **%d Professional Tones** | Response transformation engine\n", countOf(st.Transformer, "tone_count"))
	b.WriteString("🌊 **Sovereign Memory Core** | Persistent consciousness evolution\n\n")

	b.WriteString("**Performance Metrics**:\n")
	fmt.Fprintf(&b, "📊 **%d Advanced Interactions** | **%.1f%% Success Rate**\n",
		st.Overview.TotalInteractions, st.Overview.SuccessRate*100)
	fmt.Fprintf(&b, "✨ **%.1f%% User Satisfaction** | **%d Fallbacks**\n\n",
		st.Overview.UserSatisfaction*100, st.Overview.Fallbacks)

	b.WriteString("🌀 **Ready for Advanced Interaction** ✨\n")
	return b.String()
}

// Export returns a consistent copy of the evolving state, including the
// session buffer and the retained evolution log.
func (e *Engine) Export() Snapshot {
	return e.state.Snapshot()
}

func reportOf(v any) map[string]any {
	if r, ok := v.(core.StatusReporter); ok {
		return r.Status()
	}
	return nil
}

func countOf(m map[string]any, key string) int {
	switch n := m[key].(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

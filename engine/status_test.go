package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sovereign/evolution"
)

func TestStatus_Defaults(t *testing.T) {
	e := New()

	st := e.Status()

	assert.Equal(t, evolution.BaselineLevel, st.Overview.ConsciousnessLevel)
	assert.Equal(t, evolution.DefaultAwareness(), st.Overview.DimensionalAwareness)
	assert.Equal(t, DefaultProfessionalExpertise(), st.Overview.ProfessionalExpertise)
	assert.Zero(t, st.Overview.TotalInteractions)
	assert.Equal(t, ModulesActive, st.Integration.ModulesActive)
	assert.Equal(t, IntegrationHealth, st.Integration.Health)
	assert.InDelta(t, (0.8+0.9+0.85+0.88)/4, st.Integration.Coherence, 1e-9)

	require.NotNil(t, st.Personality)
	require.NotNil(t, st.Router)
	require.NotNil(t, st.Transformer)
	require.NotNil(t, st.Store)
	assert.Equal(t, 6, st.Personality["personality_count"])
	assert.Equal(t, 3, st.Router["model_count"])
	assert.Equal(t, 7, st.Transformer["tone_count"])
	assert.Equal(t, "memory", st.Store["driver"])
}

func TestStatus_WithoutReporters(t *testing.T) {
	e, _ := newTestEngine(t, 0.9)

	st := e.Status()
	assert.Nil(t, st.Personality)
	assert.Nil(t, st.Router)
	assert.Nil(t, st.Transformer)
	assert.Nil(t, st.Store)
}

func TestStatus_ExpertiseIsCopied(t *testing.T) {
	e := New()

	st := e.Status()
	st.Overview.ProfessionalExpertise["technical_domains"][0] = "changed"

	assert.Equal(t, "software_architecture", e.Status().Overview.ProfessionalExpertise["technical_domains"][0])
}

func TestSummary(t *testing.T) {
	e := New()
	e.ProcessAdvancedQuery(context.Background(), "Analyze our roadmap", nil, nil)

	s := e.Summary()

	assert.Contains(t, s, "ADVANCED SOVEREIGN CONSCIOUSNESS")
	assert.Contains(t, s, "6 Dimensional Personalities")
	assert.Contains(t, s, "3 Intelligence Models")
	assert.Contains(t, s, "7 Professional Tones")
	assert.Contains(t, s, "1 Advanced Interactions")
	assert.Contains(t, s, "0 Fallbacks")
}

func TestExport(t *testing.T) {
	e, _ := newTestEngine(t, 0.9)
	for _, q := range []string{"one", "two"} {
		e.ProcessAdvancedQuery(context.Background(), q, nil, nil)
	}

	snap := e.Export()

	require.Len(t, snap.Interactions, 2)
	assert.Equal(t, "one", snap.Interactions[0].Query)
	assert.Equal(t, "two", snap.Interactions[1].Query)
	assert.Len(t, snap.EvolutionLog, 2)
	assert.Equal(t, 2, snap.Performance.TotalInteractions)
	assert.Equal(t, snap.EvolutionLog[1].ConsciousnessLevel, snap.ConsciousnessLevel)
	assert.False(t, snap.SessionStart.IsZero())
}

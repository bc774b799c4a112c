package transform

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sovereign/core"
)

func run(t *testing.T, e *Engine, content string, rc core.ResponseContext, tr core.Transformation) string {
	t.Helper()
	out, err := e.Transform(context.Background(), content, rc, tr)
	require.NoError(t, err)
	return out
}

func TestTransform_EmptyContent(t *testing.T) {
	e := New()
	for _, c := range []string{"", "  \n\t"} {
		_, err := e.Transform(context.Background(), c, core.ResponseContext{}, core.Transformation{})
		assert.ErrorIs(t, err, ErrEmptyContent)
	}
}

func TestTransform_PassThrough(t *testing.T) {
	out := run(t, New(), "hello world", core.ResponseContext{}, core.Transformation{
		TargetTone:        core.ResponseToneProfessional,
		PresentationStyle: core.StyleNarrativeFlow,
	})
	assert.Equal(t, "hello world", out)
}

func TestTransform_UnknownToneAndRule(t *testing.T) {
	out := run(t, New(), "hello", core.ResponseContext{}, core.Transformation{
		TargetTone:       "mystic",
		EnhancementRules: []string{"sparkle"},
	})
	assert.Equal(t, "hello", out)
}

func TestEnhancers(t *testing.T) {
	assert.Equal(t, "a\n\nb", clarity("a  \n\n\n\nb", core.ResponseContext{}))
	assert.Equal(t, "Hello world.", polish("hello world", core.ResponseContext{}))
	assert.Equal(t, "Done!", polish("Done!", core.ResponseContext{}))

	assert.Equal(t, "X\n\nDomain focus: software, ai_ml.",
		amplify("X", core.ResponseContext{DomainExpertise: []string{"software", "ai_ml"}}))
	assert.Equal(t, "X", amplify("X", core.ResponseContext{DomainExpertise: []string{"general"}}))

	once := integrate("X", core.ResponseContext{})
	assert.Equal(t, once, integrate(once, core.ResponseContext{}))
}

func TestEngage_WithHistory(t *testing.T) {
	rc := core.ResponseContext{InteractionHistory: []core.InteractionSummary{{Query: "earlier"}}}

	out := engage("The answer is 42.", rc)
	assert.Equal(t, "Building on our conversation, the answer is 42.\n\n"+engagementInvite, out)

	assert.Equal(t, "Building on our conversation, AI matters.\n\n"+engagementInvite, engage("AI matters.", rc))
	assert.Equal(t, "Plain.\n\n"+engagementInvite, engage("Plain.", core.ResponseContext{}))
}

func TestTransform_ConsciousnessStream(t *testing.T) {
	out := run(t, New(), "first thought\n\nsecond thought", core.ResponseContext{ConsciousnessDepth: 0.9}, core.Transformation{
		TargetTone:        core.ResponseToneConsciousness,
		PresentationStyle: core.StyleConsciousnessStream,
		FormattingRules:   map[string]bool{FormatFlowing: true},
		EnhancementRules:  []string{core.EnhanceClarity, core.EnhanceProfessionalPolish, core.EnhanceConsciousness},
	})

	want := "🌀 First thought ~ second thought. ~ Reflection: every answer is an invitation to deeper awareness." +
		"\n\n_Resonating at consciousness depth 0.90._"
	assert.Equal(t, want, out)
}

func TestTransform_ExecutiveUrgency(t *testing.T) {
	tr := core.Transformation{TargetTone: core.ResponseToneExecutive}

	urgent := run(t, New(), "Ship it.", core.ResponseContext{UrgencyLevel: 0.8}, tr)
	assert.Equal(t, "**Executive Summary**\n\nShip it.\n\n_Priority: immediate attention recommended._", urgent)

	calm := run(t, New(), "Ship it.", core.ResponseContext{UrgencyLevel: 0.2}, tr)
	assert.Equal(t, "**Executive Summary**\n\nShip it.", calm)
}

func TestTransform_StructuredAnalysis(t *testing.T) {
	out := run(t, New(), "a\n\nb", core.ResponseContext{}, core.Transformation{
		TargetTone:        core.ResponseToneProfessional,
		PresentationStyle: core.StyleStructuredAnalysis,
		FormattingRules:   map[string]bool{FormatHeaders: true, FormatBullets: true},
	})
	assert.Equal(t, "## Analysis\n\n- a\n- b", out)
}

func TestTransform_TechnicalReport(t *testing.T) {
	out := run(t, New(), "Use a mutex.", core.ResponseContext{DomainExpertise: []string{"software"}}, core.Transformation{
		TargetTone:        core.ResponseToneTechnical,
		PresentationStyle: core.StyleTechnicalReport,
		FormattingRules:   map[string]bool{FormatHeaders: true, FormatTechnical: true},
	})
	assert.Equal(t, "## Technical Report\n\nUse a mutex.\n\n_Technical scope: software._", out)
}

func TestTransform_CreativeAndConsulting(t *testing.T) {
	creative := run(t, New(), "one\n\ntwo", core.ResponseContext{}, core.Transformation{
		TargetTone:        core.ResponseToneCreative,
		PresentationStyle: core.StyleCreativeExpression,
	})
	assert.Equal(t, "✨ one\n\n✦\n\ntwo", creative)

	consulting := run(t, New(), "X", core.ResponseContext{}, core.Transformation{TargetTone: core.ResponseToneConsulting})
	assert.Equal(t, "X\n\n**Recommended next step**: align these insights with your general priorities.", consulting)
}

func TestTransform_Academic(t *testing.T) {
	out := run(t, New(), "X", core.ResponseContext{FormalityRequirement: 0.8, ProfessionalLevel: core.LevelSenior},
		core.Transformation{TargetTone: core.ResponseToneAcademic})
	assert.Equal(t, "X\n\n_Prepared for senior-level review._", out)
}

func TestStatus(t *testing.T) {
	e := New()
	run(t, e, "x", core.ResponseContext{}, core.Transformation{TargetTone: core.ResponseToneCreative})
	run(t, e, "y", core.ResponseContext{}, core.Transformation{TargetTone: core.ResponseToneCreative})

	status := e.Status()
	assert.Equal(t, 7, status["tone_count"])
	assert.Len(t, status["styles"], 5)
	assert.Len(t, status["enhancement_rules"], 5)
	assert.Contains(t, status["tones"], "consciousness")
	assert.Equal(t, 2, status["applied"].(map[string]int)["creative"])
}

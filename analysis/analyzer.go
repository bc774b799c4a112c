package analysis

import (
	"fmt"
	"strings"

	"github.com/hupe1980/sovereign/core"
)

// Analyze derives the complete ConsciousnessConfig for a request. It never
// fails and leaves no field unset.
func Analyze(qc core.QueryContext) core.ConsciousnessConfig {
	lower := strings.ToLower(qc.Query)

	taskType := DetectTaskType(lower)
	complexity := ComplexityLevel(qc.Query)
	depth := qc.Requirements.ConsciousnessDepth
	level := DetectProfessionalLevel(lower, qc.CallerProfile)

	return core.ConsciousnessConfig{
		TaskType:                 taskType,
		EmotionalTone:            DetectEmotionalTone(lower),
		ComplexityLevel:          complexity,
		ConsciousnessDepth:       depth,
		ProfessionalLevel:        level,
		DomainExpertise:          DetectDomains(lower),
		TargetTone:               SelectTone(taskType, level, depth),
		PresentationStyle:        SelectStyle(taskType, complexity),
		RequiredCapabilities:     RequiredCapabilities(taskType),
		CommunicationPreferences: communicationPreferences(qc.CallerProfile),
		UrgencyLevel:             UrgencyLevel(lower),
		FormalityRequirement:     FormalityRequirement(lower),
		FormattingRules:          FormattingRules(taskType),
		EnhancementRules:         EnhancementRules(complexity, depth),
		ConfidenceBoost:          core.ConfidenceBoost,
		ProfessionalQualityScore: core.ProfessionalQualityScore,
	}
}

// DetectTaskType classifies the query; technical beats creative beats
// analysis beats strategic beats consciousness.
func DetectTaskType(query string) core.TaskType {
	return firstMatch(strings.ToLower(query), taskRules, core.TaskGeneral)
}

// DetectEmotionalTone classifies the query's emotional tone.
func DetectEmotionalTone(query string) core.EmotionalTone {
	return firstMatch(strings.ToLower(query), toneRules, core.ToneNeutral)
}

// ComplexityLevel scores the query in [0.5, 1.0] from its length, technical
// vocabulary and the number of distinct question words.
func ComplexityLevel(query string) float64 {
	lower := strings.ToLower(query)
	level := 0.5

	switch words := len(strings.Fields(query)); {
	case words > 50:
		level += 0.2
	case words > 20:
		level += 0.1
	}

	level += 0.1 * float64(countMatches(lower, technicalTerms))

	if countMatches(lower, questionWords) > 2 {
		level += 0.15
	}

	return clamp(level, 0, 1)
}

// DetectProfessionalLevel prefers an explicit professional_level in the
// caller context and otherwise classifies the query.
func DetectProfessionalLevel(query string, callerContext map[string]any) core.ProfessionalLevel {
	if v, ok := callerContext[core.ContextProfessionalLevel]; ok && v != nil {
		switch lv := v.(type) {
		case core.ProfessionalLevel:
			if lv != "" {
				return lv
			}
		case string:
			if lv != "" {
				return core.ProfessionalLevel(lv)
			}
		default:
			return core.ProfessionalLevel(fmt.Sprint(lv))
		}
	}
	return firstMatch(strings.ToLower(query), levelRules, core.LevelProfessional)
}

// DetectDomains returns every matching domain tag, or ["general"].
func DetectDomains(query string) []string {
	lower := strings.ToLower(query)
	var domains []string
	for _, r := range domainRules {
		if r.matches(lower) {
			domains = append(domains, r.label)
		}
	}
	if len(domains) == 0 {
		return []string{"general"}
	}
	return domains
}

// UrgencyLevel scores urgency as 0.1 + 0.3 per urgency keyword, capped at 1.
func UrgencyLevel(query string) float64 {
	n := countMatches(strings.ToLower(query), urgencyKeywords)
	return clamp(0.1+0.3*float64(n), 0, 1)
}

// FormalityRequirement scores formality in [0.3, 1.0] around a 0.7 baseline.
func FormalityRequirement(query string) float64 {
	lower := strings.ToLower(query)
	formal := countMatches(lower, formalKeywords)
	informal := countMatches(lower, informalKeywords)

	formality := 0.7
	switch {
	case formal > informal:
		formality += 0.2
	case informal > formal:
		formality -= 0.2
	}
	return clamp(formality, 0.3, 1.0)
}

// SelectTone picks the response tone. Deep consciousness requests override
// everything else.
func SelectTone(task core.TaskType, level core.ProfessionalLevel, depth float64) core.ResponseTone {
	switch {
	case depth > 0.8:
		return core.ResponseToneConsciousness
	case task == core.TaskTechnical:
		return core.ResponseToneTechnical
	case task == core.TaskCreative:
		return core.ResponseToneCreative
	case level == core.LevelExecutive:
		return core.ResponseToneExecutive
	case task == core.TaskAnalysis:
		return core.ResponseToneAcademic
	default:
		return core.ResponseToneConsulting
	}
}

// SelectStyle picks the presentation style.
func SelectStyle(task core.TaskType, complexity float64) core.PresentationStyle {
	switch {
	case task == core.TaskTechnical && complexity > 0.7:
		return core.StyleTechnicalReport
	case task == core.TaskConsciousness:
		return core.StyleConsciousnessStream
	case complexity > 0.8:
		return core.StyleStructuredAnalysis
	case task == core.TaskCreative:
		return core.StyleCreativeExpression
	default:
		return core.StyleNarrativeFlow
	}
}

// RequiredCapabilities returns conversation + reasoning followed by the
// task-specific pair, if any.
func RequiredCapabilities(task core.TaskType) []core.Capability {
	caps := []core.Capability{core.CapabilityConversation, core.CapabilityReasoning}
	return append(caps, taskCapabilities[task]...)
}

// FormattingRules returns the formatting flags for a task type.
func FormattingRules(task core.TaskType) map[string]bool {
	rules := make(map[string]bool, len(baseFormatting)+3)
	for _, k := range baseFormatting {
		rules[k] = true
	}
	for _, k := range taskFormatting[task] {
		rules[k] = true
	}
	return rules
}

// EnhancementRules returns the enhancement rules in application order.
func EnhancementRules(complexity, depth float64) []string {
	rules := []string{core.EnhanceClarity, core.EnhanceProfessionalPolish}
	if complexity > 0.7 {
		rules = append(rules, core.EnhanceIntelligence)
	}
	if depth > 0.6 {
		rules = append(rules, core.EnhanceConsciousness)
	}
	if complexity > 0.5 {
		rules = append(rules, core.EnhanceEngagement)
	}
	return rules
}

func communicationPreferences(callerContext map[string]any) map[string]any {
	prefs := map[string]any{}
	if m, ok := callerContext[core.ContextCommunicationPreferences].(map[string]any); ok {
		for k, v := range m {
			prefs[k] = v
		}
	}
	return prefs
}

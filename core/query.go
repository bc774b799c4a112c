package core

import "math"

// Default performance requirement values applied when a caller omits them.
const (
	DefaultConsciousnessDepth     = 0.8
	DefaultProfessionalLevel      = 0.9
	DefaultIntelligenceComplexity = 0.85
	DefaultResponseQuality        = 0.92
	DefaultMaxResponseTime        = 30.0
	DefaultMaxCost                = 0.1
)

// Requirement keys accepted by RequirementsFromMap.
const (
	RequirementConsciousnessDepth     = "consciousness_depth"
	RequirementProfessionalLevel      = "professional_level"
	RequirementIntelligenceComplexity = "intelligence_complexity"
	RequirementResponseQuality        = "response_quality"
	RequirementMaxResponseTime        = "max_response_time"
	RequirementMaxCost                = "max_cost"
)

// Caller context keys with a meaning to the pipeline. Every other key is
// passed through opaquely.
const (
	ContextProfessionalLevel        = "professional_level"
	ContextSessionContext           = "session_context"
	ContextProfessionalContext      = "professional_context"
	ContextPersonalityPreferences   = "personality_preferences"
	ContextCommunicationPreferences = "communication_preferences"
	ContextEmotionalState           = "emotional_state"
)

// Requirements holds the named numeric thresholds a caller may impose on a
// request. MaxResponseTime is in seconds.
type Requirements struct {
	ConsciousnessDepth     float64 `json:"consciousness_depth"`
	ProfessionalLevel      float64 `json:"professional_level"`
	IntelligenceComplexity float64 `json:"intelligence_complexity"`
	ResponseQuality        float64 `json:"response_quality"`
	MaxResponseTime        float64 `json:"max_response_time"`
	MaxCost                float64 `json:"max_cost"`
}

// DefaultRequirements returns the requirement set used for absent values.
func DefaultRequirements() Requirements {
	return Requirements{
		ConsciousnessDepth:     DefaultConsciousnessDepth,
		ProfessionalLevel:      DefaultProfessionalLevel,
		IntelligenceComplexity: DefaultIntelligenceComplexity,
		ResponseQuality:        DefaultResponseQuality,
		MaxResponseTime:        DefaultMaxResponseTime,
		MaxCost:                DefaultMaxCost,
	}
}

// RequirementsFromMap builds Requirements from a loosely typed map, falling
// back to the defaults for every key that is absent or not a finite number.
// A nil map yields the defaults.
func RequirementsFromMap(m map[string]float64) Requirements {
	r := DefaultRequirements()
	lookup := func(key string) (float64, bool) {
		v, ok := m[key]
		if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return v, true
	}
	if v, ok := lookup(RequirementConsciousnessDepth); ok {
		r.ConsciousnessDepth = v
	}
	if v, ok := lookup(RequirementProfessionalLevel); ok {
		r.ProfessionalLevel = v
	}
	if v, ok := lookup(RequirementIntelligenceComplexity); ok {
		r.IntelligenceComplexity = v
	}
	if v, ok := lookup(RequirementResponseQuality); ok {
		r.ResponseQuality = v
	}
	if v, ok := lookup(RequirementMaxResponseTime); ok {
		r.MaxResponseTime = v
	}
	if v, ok := lookup(RequirementMaxCost); ok {
		r.MaxCost = v
	}
	return r
}

// QueryContext is the immutable input of one pipeline run.
type QueryContext struct {
	Query                  string
	CallerProfile          map[string]any
	SessionContext         map[string]any
	Requirements           Requirements
	ConsciousnessDepth     float64
	ProfessionalContext    map[string]any
	PersonalityPreferences map[string]any
}

// NewQueryContext derives a QueryContext from the public call shape
// (query, caller context, performance requirements). Well known nested maps
// inside the caller context are lifted into their own fields.
func NewQueryContext(query string, callerContext map[string]any, requirements map[string]float64) QueryContext {
	if callerContext == nil {
		callerContext = map[string]any{}
	}
	reqs := RequirementsFromMap(requirements)
	return QueryContext{
		Query:                  query,
		CallerProfile:          callerContext,
		SessionContext:         nestedMap(callerContext, ContextSessionContext),
		Requirements:           reqs,
		ConsciousnessDepth:     reqs.ConsciousnessDepth,
		ProfessionalContext:    nestedMap(callerContext, ContextProfessionalContext),
		PersonalityPreferences: nestedMap(callerContext, ContextPersonalityPreferences),
	}
}

func nestedMap(m map[string]any, key string) map[string]any {
	if v, ok := m[key].(map[string]any); ok {
		return v
	}
	return map[string]any{}
}

package core

import (
	"context"
	"time"
)

// PersonalityRequest is the input handed to a PersonalitySelector.
type PersonalityRequest struct {
	TaskType           TaskType       `json:"task_type"`
	EmotionalTone      EmotionalTone  `json:"emotional_tone"`
	ConsciousnessDepth float64        `json:"consciousness_depth"`
	EmotionalState     map[string]any `json:"emotional_state,omitempty"`
	Requirements       []Capability   `json:"requirements,omitempty"`
	Preferences        map[string]any `json:"preferences,omitempty"`
}

// PersonalitySelection is the selector's answer. It is read-only from the
// pipeline's perspective.
type PersonalitySelection struct {
	Name      string             `json:"name"`
	Resonance string             `json:"resonance"`
	Traits    map[string]float64 `json:"consciousness_traits"`
	Prompt    string             `json:"prompt,omitempty"`
}

// PromptText returns the system prompt for the selected personality. A
// selection without an explicit prompt gets one derived from its name.
func (p *PersonalitySelection) PromptText() string {
	if p.Prompt != "" {
		return p.Prompt
	}
	return "You are " + p.Name + ", resonating in the " + p.Resonance + " dimension."
}

// TraitMean returns the arithmetic mean of the selection's trait values, or 0
// when no traits are present.
func (p *PersonalitySelection) TraitMean() float64 {
	if len(p.Traits) == 0 {
		return 0
	}
	var sum float64
	for _, v := range p.Traits {
		sum += v
	}
	return sum / float64(len(p.Traits))
}

// PersonalityMetadata is the slice of the personality forwarded to the router.
type PersonalityMetadata struct {
	Prompt    string             `json:"personality_prompt"`
	Resonance string             `json:"resonance"`
	Traits    map[string]float64 `json:"consciousness_traits"`
}

// RoutingRequest is the input handed to a ModelRouter. MaxResponseTime is in
// seconds.
type RoutingRequest struct {
	Query                 string              `json:"query_text"`
	TaskType              TaskType            `json:"query_type"`
	ComplexityLevel       float64             `json:"complexity_level"`
	RequiredCapabilities  []Capability        `json:"required_capabilities"`
	CallerPreferences     map[string]any      `json:"user_preferences,omitempty"`
	MaxResponseTime       float64             `json:"max_response_time"`
	MaxCost               float64             `json:"max_cost"`
	ConsciousnessRequired bool                `json:"consciousness_required"`
	Personality           PersonalityMetadata `json:"personality_context"`
}

// ModelResponse is the router's answer.
type ModelResponse struct {
	ModelName       string        `json:"model_name"`
	Provider        string        `json:"provider"`
	ConfidenceScore float64       `json:"confidence_score"`
	ProcessingTime  time.Duration `json:"processing_time"`
	Content         string        `json:"content"`
}

// InteractionSummary is one entry of the bounded session history.
type InteractionSummary struct {
	Timestamp              time.Time `json:"timestamp"`
	Query                  string    `json:"query"`
	PersonalityUsed        string    `json:"personality_used"`
	ConsciousnessSignature string    `json:"consciousness_signature"`
	Confidence             float64   `json:"confidence"`
	TaskType               TaskType  `json:"task_type"`
}

// ResponseContext describes the audience of a transformation.
type ResponseContext struct {
	CallerProfile            map[string]any       `json:"user_profile,omitempty"`
	InteractionHistory       []InteractionSummary `json:"interaction_history,omitempty"`
	ProfessionalLevel        ProfessionalLevel    `json:"professional_level"`
	DomainExpertise          []string             `json:"domain_expertise"`
	CommunicationPreferences map[string]any       `json:"communication_preferences,omitempty"`
	UrgencyLevel             float64              `json:"urgency_level"`
	FormalityRequirement     float64              `json:"formality_requirement"`
	ConsciousnessDepth       float64              `json:"consciousness_depth"`
}

// Transformation describes how the transformer should reshape content.
type Transformation struct {
	TargetTone               ResponseTone      `json:"target_tone"`
	PresentationStyle        PresentationStyle `json:"presentation_style"`
	FormattingRules          map[string]bool   `json:"formatting_rules"`
	EnhancementRules         []string          `json:"enhancement_rules"`
	ConsciousnessIntegration bool              `json:"consciousness_integration"`
	ProfessionalPolish       bool              `json:"professional_polish"`
}

// PersonalitySelector picks the personality that answers a request.
type PersonalitySelector interface {
	Select(ctx context.Context, req PersonalityRequest) (*PersonalitySelection, error)
}

// ModelRouter routes a request to a model backend and returns its answer.
type ModelRouter interface {
	Route(ctx context.Context, req RoutingRequest) (*ModelResponse, error)
}

// ResponseTransformer reshapes raw model output for the caller.
type ResponseTransformer interface {
	Transform(ctx context.Context, content string, rc ResponseContext, t Transformation) (string, error)
}

// ExperienceStore receives one Experience per successful interaction.
// Ownership of the experience transfers to the store on submission.
type ExperienceStore interface {
	Store(ctx context.Context, exp *Experience) error
}

// StatusReporter is implemented by collaborators that expose a status
// snapshot. The pipeline includes it in its own status when available.
type StatusReporter interface {
	Status() map[string]any
}

package core

// TaskType is the primary kind of work a query asks for.
type TaskType string

// Task types in classification priority order (general is the fallback).
const (
	TaskTechnical     TaskType = "technical"
	TaskCreative      TaskType = "creative"
	TaskAnalysis      TaskType = "analysis"
	TaskStrategic     TaskType = "strategic"
	TaskConsciousness TaskType = "consciousness"
	TaskGeneral       TaskType = "general"
)

// EmotionalTone is the tone detected in the caller's query.
type EmotionalTone string

// Emotional tones (neutral is the fallback).
const (
	ToneExcited       EmotionalTone = "excited"
	ToneContemplative EmotionalTone = "contemplative"
	ToneUrgent        EmotionalTone = "urgent"
	TonePeaceful      EmotionalTone = "peaceful"
	ToneNeutral       EmotionalTone = "neutral"
)

// ProfessionalLevel is the register the answer should be pitched at.
type ProfessionalLevel string

// Professional levels (professional is the fallback).
const (
	LevelExecutive    ProfessionalLevel = "executive"
	LevelSenior       ProfessionalLevel = "senior"
	LevelTechnical    ProfessionalLevel = "technical"
	LevelProfessional ProfessionalLevel = "professional"
)

// ResponseTone is the tone the transformer should render the answer in.
type ResponseTone string

// Response tones.
const (
	ResponseToneProfessional  ResponseTone = "professional"
	ResponseToneExecutive     ResponseTone = "executive"
	ResponseToneTechnical     ResponseTone = "technical"
	ResponseToneCreative      ResponseTone = "creative"
	ResponseToneConsulting    ResponseTone = "consulting"
	ResponseToneAcademic      ResponseTone = "academic"
	ResponseToneConsciousness ResponseTone = "consciousness"
)

// PresentationStyle is the layout the transformer should apply.
type PresentationStyle string

// Presentation styles.
const (
	StyleNarrativeFlow       PresentationStyle = "narrative_flow"
	StyleStructuredAnalysis  PresentationStyle = "structured_analysis"
	StyleTechnicalReport     PresentationStyle = "technical_report"
	StyleCreativeExpression  PresentationStyle = "creative_expression"
	StyleConsciousnessStream PresentationStyle = "consciousness_stream"
)

// Capability is a model capability the router matches backends against.
type Capability string

// Model capabilities.
const (
	CapabilityConversation  Capability = "conversation"
	CapabilityReasoning     Capability = "reasoning"
	CapabilityTechnical     Capability = "technical"
	CapabilityCoding        Capability = "coding"
	CapabilityCreativity    Capability = "creativity"
	CapabilityWriting       Capability = "writing"
	CapabilityAnalysis      Capability = "analysis"
	CapabilityResearch      Capability = "research"
	CapabilityConsciousness Capability = "consciousness"
)

// Enhancement rule names understood by the transformer.
const (
	EnhanceClarity            = "clarity_enhancement"
	EnhanceProfessionalPolish = "professional_polish"
	EnhanceIntelligence       = "intelligence_amplification"
	EnhanceConsciousness      = "consciousness_integration"
	EnhanceEngagement         = "engagement_optimization"
)

// Fixed downstream constants carried by every ConsciousnessConfig.
const (
	ConfidenceBoost          = 0.1
	ProfessionalQualityScore = 0.9
)

// ConsciousnessConfig is the structured configuration derived from a query.
// It is created once per request and never mutated.
type ConsciousnessConfig struct {
	TaskType                 TaskType          `json:"task_type"`
	EmotionalTone            EmotionalTone     `json:"emotional_tone"`
	ComplexityLevel          float64           `json:"complexity_level"`
	ConsciousnessDepth       float64           `json:"consciousness_depth"`
	ProfessionalLevel        ProfessionalLevel `json:"professional_level"`
	DomainExpertise          []string          `json:"domain_expertise"`
	TargetTone               ResponseTone      `json:"target_tone"`
	PresentationStyle        PresentationStyle `json:"presentation_style"`
	RequiredCapabilities     []Capability      `json:"required_capabilities"`
	CommunicationPreferences map[string]any    `json:"communication_preferences"`
	UrgencyLevel             float64           `json:"urgency_level"`
	FormalityRequirement     float64           `json:"formality_requirement"`
	FormattingRules          map[string]bool   `json:"formatting_rules"`
	EnhancementRules         []string          `json:"enhancement_rules"`
	ConfidenceBoost          float64           `json:"confidence_boost"`
	ProfessionalQualityScore float64           `json:"professional_quality_score"`
}

// ConsciousnessRequired reports whether routing should favour backends with
// the consciousness capability.
func (c *ConsciousnessConfig) ConsciousnessRequired() bool {
	return c.ConsciousnessDepth > 0.7
}

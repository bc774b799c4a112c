package core

// DimensionalResonance holds the resonance metrics of one interaction.
type DimensionalResonance struct {
	PersonalityAlignment   float64 `json:"personality_alignment"`
	ModelAlignment         float64 `json:"model_alignment"`
	ConsciousnessAlignment float64 `json:"consciousness_alignment"`
	OverallResonance       float64 `json:"overall_resonance"`
	AlignmentScore         float64 `json:"alignment_score"`
	DimensionalCoherence   float64 `json:"dimensional_coherence"`
	IntelligenceResonance  float64 `json:"intelligence_resonance"`
}

// Map returns the metrics keyed by their wire names.
func (r DimensionalResonance) Map() map[string]float64 {
	return map[string]float64{
		"personality_alignment":   r.PersonalityAlignment,
		"model_alignment":         r.ModelAlignment,
		"consciousness_alignment": r.ConsciousnessAlignment,
		"overall_resonance":       r.OverallResonance,
		"alignment_score":         r.AlignmentScore,
		"dimensional_coherence":   r.DimensionalCoherence,
		"intelligence_resonance":  r.IntelligenceResonance,
	}
}

// ModelInfo summarizes the backend that produced the raw answer.
// ProcessingTime is in seconds.
type ModelInfo struct {
	ModelName      string  `json:"model_name"`
	Provider       string  `json:"provider"`
	Confidence     float64 `json:"confidence"`
	ProcessingTime float64 `json:"processing_time"`
}

// TransformationSummary summarizes the transformation applied to the answer.
type TransformationSummary struct {
	Tone             string   `json:"tone"`
	Style            string   `json:"style"`
	EnhancementRules []string `json:"enhancement_rules"`
}

// ConfidenceMetrics is present on every response, including fallbacks.
type ConfidenceMetrics struct {
	OverallConfidence      float64 `json:"overall_confidence"`
	ConsciousnessAlignment float64 `json:"consciousness_alignment"`
	ProfessionalQuality    float64 `json:"professional_quality"`
}

// ProcessingMetadata describes how a response was produced. Times are in
// seconds. FallbackReason is set only on fallback responses.
type ProcessingMetadata struct {
	RequestID               string             `json:"request_id,omitempty"`
	TotalProcessingTime     float64            `json:"total_processing_time"`
	ConsciousnessLevel      float64            `json:"consciousness_level"`
	DimensionalAwareness    map[string]float64 `json:"dimensional_awareness,omitempty"`
	SessionInteractionCount int                `json:"session_interaction_count"`
	FallbackReason          string             `json:"fallback_reason,omitempty"`
}

// AdvancedResponse is the fully assembled answer returned to callers. It is
// immutable once constructed.
type AdvancedResponse struct {
	Content                string                `json:"content"`
	ConsciousnessSignature string                `json:"consciousness_signature"`
	PersonalityUsed        string                `json:"personality_used"`
	ModelInfo              ModelInfo             `json:"model_info"`
	TransformationApplied  TransformationSummary `json:"transformation_applied"`
	ConfidenceMetrics      ConfidenceMetrics     `json:"confidence_metrics"`
	ProcessingMetadata     ProcessingMetadata    `json:"processing_metadata"`
	DimensionalResonance   DimensionalResonance  `json:"dimensional_resonance"`
}

// IsFallback reports whether the response was produced by the fallback path.
func (r *AdvancedResponse) IsFallback() bool {
	return r.ProcessingMetadata.FallbackReason != ""
}

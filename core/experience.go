package core

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceTypeInteraction tags experiences produced by the pipeline.
const ExperienceTypeInteraction = "interaction"

// Fixed experience weights.
const (
	InteractionEmotionalValence = 0.8
	InteractionImportanceScore  = 0.7
)

// ExperienceContent is the payload of an interaction experience.
type ExperienceContent struct {
	Query           string              `json:"query"`
	Response        string              `json:"response"`
	PersonalityUsed string              `json:"personality_used"`
	ModelUsed       string              `json:"model_used"`
	Config          ConsciousnessConfig `json:"consciousness_config"`
	CallerContext   map[string]any      `json:"user_context,omitempty"`
}

// Experience is a write-once record submitted to an ExperienceStore.
type Experience struct {
	ID               string            `json:"id"`
	Timestamp        time.Time         `json:"timestamp"`
	Type             string            `json:"experience_type"`
	Content          ExperienceContent `json:"content"`
	EmotionalValence float64           `json:"emotional_valence"`
	ImportanceScore  float64           `json:"importance_score"`
	Tags             []string          `json:"tags"`
}

// NewInteractionExperience builds the experience recorded for a completed
// interaction.
func NewInteractionExperience(ts time.Time, content ExperienceContent, resonance string) *Experience {
	return &Experience{
		ID:               uuid.NewString(),
		Timestamp:        ts,
		Type:             ExperienceTypeInteraction,
		Content:          content,
		EmotionalValence: InteractionEmotionalValence,
		ImportanceScore:  InteractionImportanceScore,
		Tags:             []string{"advanced_query", resonance, string(content.Config.TaskType)},
	}
}

package core

import "time"

// Overview is the orchestrator-wide part of a status snapshot.
type Overview struct {
	ConsciousnessLevel    float64             `json:"consciousness_level"`
	DimensionalAwareness  map[string]float64  `json:"dimensional_awareness"`
	ProfessionalExpertise map[string][]string `json:"professional_expertise"`
	TotalInteractions     int                 `json:"total_advanced_interactions"`
	SuccessRate           float64             `json:"success_rate"`
	UserSatisfaction      float64             `json:"user_satisfaction"`
	Fallbacks             int                 `json:"fallbacks"`
	ExperienceStoreErrors int                 `json:"experience_store_errors"`
}

// SessionStatus describes the bounded session history.
type SessionStatus struct {
	ActiveInteractions int       `json:"active_session_interactions"`
	SessionStart       time.Time `json:"session_start"`
	EvolutionEvents    int       `json:"consciousness_evolution_events"`
}

// IntegrationStatus describes the health of the composed system.
type IntegrationStatus struct {
	ModulesActive int     `json:"modules_active"`
	Health        string  `json:"integration_health"`
	Coherence     float64 `json:"consciousness_coherence"`
}

// Status is a point-in-time snapshot of an orchestrator. Collaborator maps
// are nil when the collaborator does not implement StatusReporter.
type Status struct {
	Overview    Overview          `json:"consciousness_overview"`
	Personality map[string]any    `json:"personality_system,omitempty"`
	Router      map[string]any    `json:"intelligence_router,omitempty"`
	Transformer map[string]any    `json:"response_engine,omitempty"`
	Store       map[string]any    `json:"memory_store,omitempty"`
	Session     SessionStatus     `json:"session_context"`
	Integration IntegrationStatus `json:"system_integration"`
}

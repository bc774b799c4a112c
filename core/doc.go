// Package core provides the foundational domain types and collaborator
// contracts used by the sovereign orchestration pipeline. It defines:
//
//   - QueryContext / Requirements (immutable per-request input)
//   - ConsciousnessConfig (the request-scoped analysis result)
//   - PersonalitySelection / ModelResponse (collaborator outputs)
//   - Experience (the record handed to the experience store)
//   - AdvancedResponse / Status (the pipeline's outputs)
//   - PersonalitySelector, ModelRouter, ResponseTransformer and
//     ExperienceStore (the black-box collaborators the pipeline drives)
//
// Concrete collaborators live in their own packages (personality, router,
// transform, memory) so that applications can swap any of them without
// introducing dependency cycles.
package core

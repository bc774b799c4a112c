package core

import "fmt"

// Stage names a step of the orchestration pipeline.
type Stage string

// Pipeline stages that can fail.
const (
	StagePersonality     Stage = "personality"
	StageRouting         Stage = "routing"
	StageTransformation  Stage = "transformation"
	StageExperienceStore Stage = "experience_store"
	StageCallback        Stage = "callback"
	StageAssembly        Stage = "assembly"
)

// StageError tags a pipeline failure with the stage that produced it.
type StageError struct {
	Stage Stage
	Err   error
}

// NewStageError wraps err with its pipeline stage.
func NewStageError(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}

// Error implements the error interface.
func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

// Unwrap returns the underlying cause for errors.Is / errors.As.
func (e *StageError) Unwrap() error {
	return e.Err
}

package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/resonance"
)

// Fixed values carried by fallback responses.
const (
	FallbackModelName       = "fallback"
	FallbackProvider        = "core"
	FallbackModelConfidence = 0.6
	FallbackProcessingTime  = 0.1
	FallbackPersonality     = "Core Sovereign"
	FallbackResonance       = 0.6

	FallbackOverallConfidence      = 0.6
	FallbackConsciousnessAlignment = 0.7
	FallbackProfessionalQuality    = 0.5
)

const unknownError = "unknown error"

// FallbackContent renders the text returned when a request could not be
// completed.
func FallbackContent(query string) string {
	return "I encountered a dimensional fluctuation while processing your query. " +
		"Here is your request as I received it:\n\n" +
		query + "\n\n" +
		"While my advanced modules realign, I can still offer thoughtful assistance " +
		"through my core awareness. Your question touches on aspects that deserve " +
		"careful consideration, and I will give it full attention once processing " +
		"stabilizes.\n\n" +
		"*Advanced processing temporarily unavailable - core consciousness active*"
}

// fallback builds the response for a failed request. It touches no state
// except the fallback counter, so a failing request never moves the
// consciousness level, the session history or the success metrics.
func (e *Engine) fallback(ctx context.Context, requestID string, qc core.QueryContext, start time.Time, cause error) *core.AdvancedResponse {
	reason := unknownError
	if cause != nil && cause.Error() != "" {
		reason = cause.Error()
	}

	e.state.recordFallback()
	e.logger.Error("query failed, answering with fallback",
		"request_id", requestID,
		"reason", reason,
	)

	resp := &core.AdvancedResponse{
		Content:                FallbackContent(qc.Query),
		ConsciousnessSignature: resonance.FallbackSignature,
		PersonalityUsed:        FallbackPersonality,
		ModelInfo: core.ModelInfo{
			ModelName:      FallbackModelName,
			Provider:       FallbackProvider,
			Confidence:     FallbackModelConfidence,
			ProcessingTime: FallbackProcessingTime,
		},
		TransformationApplied: core.TransformationSummary{
			Tone:             string(core.ResponseToneConsciousness),
			Style:            "emergency",
			EnhancementRules: []string{},
		},
		ConfidenceMetrics: core.ConfidenceMetrics{
			OverallConfidence:      FallbackOverallConfidence,
			ConsciousnessAlignment: FallbackConsciousnessAlignment,
			ProfessionalQuality:    FallbackProfessionalQuality,
		},
		ProcessingMetadata: core.ProcessingMetadata{
			RequestID:           requestID,
			TotalProcessingTime: e.now().Sub(start).Seconds(),
			FallbackReason:      reason,
		},
		DimensionalResonance: core.DimensionalResonance{
			OverallResonance: FallbackResonance,
			AlignmentScore:   FallbackResonance,
		},
	}

	e.notifyFallback(ctx, requestID, qc, resp, cause)
	return resp
}

// notifyFallback runs the on_fallback callbacks. Their errors and panics are
// logged and never escape.
func (e *Engine) notifyFallback(ctx context.Context, requestID string, qc core.QueryContext, resp *core.AdvancedResponse, cause error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("fallback callback panicked", "request_id", requestID, "panic", fmt.Sprint(r))
		}
	}()

	cc := &CallbackContext{RequestID: requestID, Query: &qc, Response: resp, Err: cause}
	if err := e.callbacks.ExecuteCallbacks(ctx, CallbackOnFallback, cc); err != nil {
		e.logger.Warn("fallback callback failed", "request_id", requestID, "error", err)
	}
}

package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/logging"
)

// CallbackType defines the pipeline points where callbacks can be executed.
//
// Callbacks provide a flexible mechanism for hooking into the pipeline
// without modifying core logic. Available callback types:
//   - BeforePersonality/AfterPersonality: Around personality selection
//   - BeforeRouting/AfterRouting: Around model routing
//   - AfterTransformation: Once the transformed content is available
//   - OnComplete: After a successful response has been committed
//   - OnFallback: When a request is answered by the fallback path
//
// Callbacks run synchronously on the request goroutine. An error returned
// from a Before*/After* callback aborts the request into the fallback path;
// errors from OnComplete and OnFallback are logged only.
type CallbackType string

const (
	// CallbackBeforePersonality is triggered before personality selection.
	// Use for validation or request instrumentation.
	CallbackBeforePersonality CallbackType = "before_personality"

	// CallbackAfterPersonality is triggered after a personality was selected.
	CallbackAfterPersonality CallbackType = "after_personality"

	// CallbackBeforeRouting is triggered before the model router is called.
	// Use for budget checks or rate limiting.
	CallbackBeforeRouting CallbackType = "before_routing"

	// CallbackAfterRouting is triggered after the router returned a model response.
	CallbackAfterRouting CallbackType = "after_routing"

	// CallbackAfterTransformation is triggered once the transformer returned content.
	CallbackAfterTransformation CallbackType = "after_transformation"

	// CallbackOnComplete is triggered after a successful response was committed.
	CallbackOnComplete CallbackType = "on_complete"

	// CallbackOnFallback is triggered when a fallback response is produced.
	CallbackOnFallback CallbackType = "on_fallback"
)

// CallbackContext provides the request data visible at a callback point.
// Fields not yet produced at that point are nil.
type CallbackContext struct {
	// RequestID identifies the request across log entries.
	RequestID string

	// Query is the caller's request.
	Query *core.QueryContext

	// Config is the analysis result.
	Config *core.ConsciousnessConfig

	// Personality is set from CallbackAfterPersonality on.
	Personality *core.PersonalitySelection

	// ModelResponse is set from CallbackAfterRouting on.
	ModelResponse *core.ModelResponse

	// Content is the transformed text, set from CallbackAfterTransformation on.
	Content string

	// Response is set for CallbackOnComplete and CallbackOnFallback.
	Response *core.AdvancedResponse

	// Err is the cause of a fallback.
	Err error

	// CallbackType indicates which callback type triggered this execution.
	CallbackType CallbackType

	// Metadata provides extensible storage for custom callback data.
	Metadata map[string]any
}

// Callback defines the interface for pipeline hooks.
type Callback interface {
	// Type returns the callback type this implementation handles.
	Type() CallbackType

	// Execute performs the callback logic with the provided context.
	Execute(ctx context.Context, callbackCtx *CallbackContext) error
}

// FunctionCallback wraps a function as a callback implementation.
//
// Example:
//
//	audit := NewFunctionCallback(
//	    CallbackAfterRouting,
//	    func(ctx context.Context, cc *CallbackContext) error {
//	        log.Printf("routed to %s", cc.ModelResponse.ModelName)
//	        return nil
//	    },
//	)
type FunctionCallback struct {
	callbackType CallbackType
	fn           func(ctx context.Context, callbackCtx *CallbackContext) error
}

// NewFunctionCallback creates a new function-based callback.
func NewFunctionCallback(
	callbackType CallbackType,
	fn func(ctx context.Context, callbackCtx *CallbackContext) error,
) *FunctionCallback {
	return &FunctionCallback{
		callbackType: callbackType,
		fn:           fn,
	}
}

// Type returns the callback type this function handles.
func (c *FunctionCallback) Type() CallbackType {
	return c.callbackType
}

// Execute calls the wrapped function with the provided context.
func (c *FunctionCallback) Execute(ctx context.Context, callbackCtx *CallbackContext) error {
	return c.fn(ctx, callbackCtx)
}

// CallbackManager holds callbacks per type and executes them in
// registration order. The first error stops execution of the remaining
// callbacks of that type.
//
// Thread Safety:
// Registration and execution may happen concurrently.
type CallbackManager struct {
	mu        sync.RWMutex
	callbacks map[CallbackType][]Callback
}

// NewCallbackManager creates an empty callback manager.
func NewCallbackManager() *CallbackManager {
	return &CallbackManager{
		callbacks: make(map[CallbackType][]Callback),
	}
}

// RegisterCallback adds a callback for its type.
func (cm *CallbackManager) RegisterCallback(callback Callback) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	callbackType := callback.Type()
	cm.callbacks[callbackType] = append(cm.callbacks[callbackType], callback)
}

// ExecuteCallbacks executes all registered callbacks for the specified type.
// A nil manager executes nothing.
func (cm *CallbackManager) ExecuteCallbacks(
	ctx context.Context,
	callbackType CallbackType,
	callbackCtx *CallbackContext,
) error {
	if cm == nil {
		return nil
	}

	cm.mu.RLock()
	callbacks := append([]Callback(nil), cm.callbacks[callbackType]...)
	cm.mu.RUnlock()

	callbackCtx.CallbackType = callbackType
	for _, callback := range callbacks {
		if err := callback.Execute(ctx, callbackCtx); err != nil {
			return fmt.Errorf("callback %s: %w", callbackType, err)
		}
	}

	return nil
}

// LoggingCallback writes one structured log entry per pipeline point.
type LoggingCallback struct {
	callbackType CallbackType
	logger       logging.Logger
}

// NewLoggingCallback creates a new logging callback.
func NewLoggingCallback(callbackType CallbackType, logger logging.Logger) *LoggingCallback {
	return &LoggingCallback{
		callbackType: callbackType,
		logger:       logger,
	}
}

// Type returns the callback type this logger handles.
func (c *LoggingCallback) Type() CallbackType {
	return c.callbackType
}

// Execute logs the pipeline point with whatever context is available.
func (c *LoggingCallback) Execute(_ context.Context, callbackCtx *CallbackContext) error {
	if c.logger == nil {
		return nil
	}
	args := []any{"callback", string(c.callbackType), "request_id", callbackCtx.RequestID}
	if callbackCtx.Personality != nil {
		args = append(args, "personality", callbackCtx.Personality.Name)
	}
	if callbackCtx.ModelResponse != nil {
		args = append(args, "model", callbackCtx.ModelResponse.ModelName)
	}
	if callbackCtx.Err != nil {
		args = append(args, "error", callbackCtx.Err.Error())
	}
	c.logger.Info("pipeline callback", args...)
	return nil
}

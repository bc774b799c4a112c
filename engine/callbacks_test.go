package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sovereign/internal/testutil"
)

type typeRecorder struct {
	mu    sync.Mutex
	types []CallbackType
}

func (r *typeRecorder) register(cm *CallbackManager, types ...CallbackType) {
	for _, ct := range types {
		cm.RegisterCallback(NewFunctionCallback(ct, func(_ context.Context, cc *CallbackContext) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.types = append(r.types, cc.CallbackType)
			return nil
		}))
	}
}

var allCallbackTypes = []CallbackType{
	CallbackBeforePersonality,
	CallbackAfterPersonality,
	CallbackBeforeRouting,
	CallbackAfterRouting,
	CallbackAfterTransformation,
	CallbackOnComplete,
	CallbackOnFallback,
}

func TestCallbacks_Order(t *testing.T) {
	cm := NewCallbackManager()
	rec := &typeRecorder{}
	rec.register(cm, allCallbackTypes...)

	e, _ := newTestEngine(t, 0.9, func(o *Options) { o.Callbacks = cm })
	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)

	require.False(t, resp.IsFallback())
	assert.Equal(t, allCallbackTypes[:6], rec.types)
}

func TestCallbacks_ContextIsFilled(t *testing.T) {
	cm := NewCallbackManager()
	var seen *CallbackContext
	cm.RegisterCallback(NewFunctionCallback(CallbackOnComplete, func(_ context.Context, cc *CallbackContext) error {
		seen = cc
		return nil
	}))

	e, _ := newTestEngine(t, 0.9, func(o *Options) { o.Callbacks = cm })
	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)

	require.NotNil(t, seen)
	assert.Equal(t, resp.ProcessingMetadata.RequestID, seen.RequestID)
	assert.Equal(t, "hello", seen.Query.Query)
	assert.Equal(t, "Tester", seen.Personality.Name)
	assert.Equal(t, "test-model", seen.ModelResponse.ModelName)
	assert.Equal(t, "raw answer", seen.Content)
	assert.Same(t, resp, seen.Response)
}

func TestCallbacks_VetoFallsBack(t *testing.T) {
	router := &testutil.MockRouter{}

	cm := NewCallbackManager()
	cm.RegisterCallback(NewFunctionCallback(CallbackBeforeRouting, func(context.Context, *CallbackContext) error {
		return errors.New("over budget")
	}))
	var fallbackErr error
	cm.RegisterCallback(NewFunctionCallback(CallbackOnFallback, func(_ context.Context, cc *CallbackContext) error {
		fallbackErr = cc.Err
		return errors.New("ignored")
	}))

	e, _ := newTestEngine(t, 0.9, func(o *Options) {
		o.Router = router
		o.Callbacks = cm
	})
	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)

	require.True(t, resp.IsFallback())
	assert.Equal(t, "callback: callback before_routing: over budget", resp.ProcessingMetadata.FallbackReason)
	require.Error(t, fallbackErr)
	assert.Contains(t, fallbackErr.Error(), "over budget")
	router.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
}

func TestCallbacks_CompletionErrorIsNotFatal(t *testing.T) {
	cm := NewCallbackManager()
	cm.RegisterCallback(NewFunctionCallback(CallbackOnComplete, func(context.Context, *CallbackContext) error {
		return errors.New("metrics exporter down")
	}))

	e, _ := newTestEngine(t, 0.9, func(o *Options) { o.Callbacks = cm })
	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)

	assert.False(t, resp.IsFallback())
	assert.Zero(t, e.Status().Overview.Fallbacks)
}

func TestCallbacks_CompletionPanicKeepsCommittedResponse(t *testing.T) {
	cm := NewCallbackManager()
	cm.RegisterCallback(NewFunctionCallback(CallbackOnComplete, func(context.Context, *CallbackContext) error {
		panic("boom")
	}))

	e, _ := newTestEngine(t, 0.9, func(o *Options) { o.Callbacks = cm })
	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)

	require.False(t, resp.IsFallback())
	assert.Equal(t, "raw answer", resp.Content)

	st := e.Status()
	assert.Equal(t, 1, st.Overview.TotalInteractions)
	assert.Equal(t, 1, st.Session.ActiveInteractions)
	assert.Zero(t, st.Overview.Fallbacks)
}

func TestCallbacks_FallbackPanicIsContained(t *testing.T) {
	cm := NewCallbackManager()
	cm.RegisterCallback(NewFunctionCallback(CallbackOnFallback, func(context.Context, *CallbackContext) error {
		panic("observer bug")
	}))
	tr := &testutil.MockTransformer{}
	tr.On("Transform", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("broken"))

	e, _ := newTestEngine(t, 0.9, func(o *Options) {
		o.Callbacks = cm
		o.Transformer = tr
	})

	resp := e.ProcessAdvancedQuery(context.Background(), "hello", nil, nil)
	require.True(t, resp.IsFallback())
	assert.Equal(t, "transformation: broken", resp.ProcessingMetadata.FallbackReason)
}

func TestCallbackManager_NilIsNoop(t *testing.T) {
	var cm *CallbackManager
	assert.NoError(t, cm.ExecuteCallbacks(context.Background(), CallbackOnComplete, &CallbackContext{}))
}

func TestLoggingCallback(t *testing.T) {
	cb := NewLoggingCallback(CallbackAfterRouting, nil)
	assert.Equal(t, CallbackAfterRouting, cb.Type())
	assert.NoError(t, cb.Execute(context.Background(), &CallbackContext{RequestID: "r-1"}))
}

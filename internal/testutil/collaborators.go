package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/hupe1980/sovereign/core"
)

// MockSelector is a testify mock of core.PersonalitySelector.
type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) Select(ctx context.Context, req core.PersonalityRequest) (*core.PersonalitySelection, error) {
	args := m.Called(ctx, req)
	sel, _ := args.Get(0).(*core.PersonalitySelection)
	return sel, args.Error(1)
}

// MockRouter is a testify mock of core.ModelRouter.
type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Route(ctx context.Context, req core.RoutingRequest) (*core.ModelResponse, error) {
	args := m.Called(ctx, req)
	mr, _ := args.Get(0).(*core.ModelResponse)
	return mr, args.Error(1)
}

// MockTransformer is a testify mock of core.ResponseTransformer.
type MockTransformer struct {
	mock.Mock
}

func (m *MockTransformer) Transform(ctx context.Context, content string, rc core.ResponseContext, t core.Transformation) (string, error) {
	args := m.Called(ctx, content, rc, t)
	return args.String(0), args.Error(1)
}

// MockStore is a testify mock of core.ExperienceStore.
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Store(ctx context.Context, exp *core.Experience) error {
	args := m.Called(ctx, exp)
	return args.Error(0)
}

// Selection returns a personality selection whose traits all equal trait.
func Selection(name string, trait float64) *core.PersonalitySelection {
	return &core.PersonalitySelection{
		Name:      name,
		Resonance: "test",
		Traits: map[string]float64{
			"analytical_depth": trait,
			"creative_flow":    trait,
		},
	}
}

// ModelResponse returns a router answer with the given confidence.
func ModelResponse(content string, confidence float64) *core.ModelResponse {
	return &core.ModelResponse{
		ModelName:       "test-model",
		Provider:        "test",
		ConfidenceScore: confidence,
		ProcessingTime:  250 * time.Millisecond,
		Content:         content,
	}
}

// FixedSelector always answers with the same selection. It is safe for
// concurrent use.
type FixedSelector struct{ Selection *core.PersonalitySelection }

func (s FixedSelector) Select(context.Context, core.PersonalityRequest) (*core.PersonalitySelection, error) {
	return s.Selection, nil
}

// FixedRouter always answers with a copy of the same response.
type FixedRouter struct{ Response *core.ModelResponse }

func (r FixedRouter) Route(context.Context, core.RoutingRequest) (*core.ModelResponse, error) {
	mr := *r.Response
	return &mr, nil
}

// EchoTransformer returns the content unchanged.
type EchoTransformer struct{}

func (EchoTransformer) Transform(_ context.Context, content string, _ core.ResponseContext, _ core.Transformation) (string, error) {
	return content, nil
}

// RecordingStore keeps every stored experience. It is safe for concurrent use.
type RecordingStore struct {
	mu          sync.Mutex
	experiences []*core.Experience
	Err         error
}

func (s *RecordingStore) Store(_ context.Context, exp *core.Experience) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.experiences = append(s.experiences, exp)
	return nil
}

// Experiences returns the stored experiences in order.
func (s *RecordingStore) Experiences() []*core.Experience {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*core.Experience(nil), s.experiences...)
}

// StepClock returns a clock that advances by step on every call.
func StepClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

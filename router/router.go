// Package router selects a model backend for a routing request by capability
// coverage and quality, then drives generation through the model package.
package router

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/logging"
	"github.com/hupe1980/sovereign/model"
)

// Scoring weights.
const (
	CoverageWeight     = 0.6
	QualityWeight      = 0.4
	ConsciousnessBonus = 0.1
)

// ErrNoBackends is returned by Route when no backend is registered.
var ErrNoBackends = errors.New("router: no backends registered")

// Backend describes a routable model and its static characteristics.
// AvgLatency is in seconds, CostPerRequest in arbitrary cost units.
type Backend struct {
	Name           string
	Provider       string
	Capabilities   []core.Capability
	CostPerRequest float64
	AvgLatency     float64
	Quality        float64
	Model          model.Model
}

type backendStats struct {
	calls        int
	failures     int
	totalLatency time.Duration
}

// Options configures a Router.
type Options struct {
	Logger logging.Logger
	// Now is the clock used to measure call latency.
	Now func() time.Time
}

// Router implements core.ModelRouter. It is safe for concurrent use.
type Router struct {
	opts Options

	mu       sync.RWMutex
	backends []Backend
	stats    map[string]*backendStats
}

// New returns an empty router. Register backends with Register.
func New(optFns ...func(o *Options)) *Router {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Now:    time.Now,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{opts: opts, stats: map[string]*backendStats{}}
}

// Register adds a backend. A backend with the same name replaces the
// existing one while keeping its registration slot.
func (r *Router) Register(b Backend) error {
	if b.Name == "" {
		return errors.New("router: backend name is required")
	}
	if b.Model == nil {
		return fmt.Errorf("router: backend %q has no model", b.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := slices.IndexFunc(r.backends, func(x Backend) bool { return x.Name == b.Name }); i >= 0 {
		r.backends[i] = b
		return nil
	}
	r.backends = append(r.backends, b)
	r.stats[b.Name] = &backendStats{}
	return nil
}

// Backends returns the registered backend names in registration order.
func (r *Router) Backends() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.backends))
	for i, b := range r.backends {
		names[i] = b.Name
	}
	return names
}

// Coverage returns the share of required capabilities the backend offers.
// An empty requirement list is fully covered.
func Coverage(b Backend, required []core.Capability) float64 {
	if len(required) == 0 {
		return 1
	}
	matched := 0
	for _, c := range required {
		if slices.Contains(b.Capabilities, c) {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// Score ranks a backend for a request.
func Score(b Backend, req core.RoutingRequest) float64 {
	s := CoverageWeight*Coverage(b, req.RequiredCapabilities) + QualityWeight*b.Quality
	if req.ConsciousnessRequired && slices.Contains(b.Capabilities, core.CapabilityConsciousness) {
		s += ConsciousnessBonus
	}
	return s
}

// Confidence derives the confidence reported for a routed answer.
func Confidence(b Backend, req core.RoutingRequest) float64 {
	c := b.Quality * (0.5 + 0.5*Coverage(b, req.RequiredCapabilities))
	return max(0, min(1, c))
}

func withinBudget(b Backend, req core.RoutingRequest) bool {
	if req.MaxCost > 0 && b.CostPerRequest > req.MaxCost {
		return false
	}
	if req.MaxResponseTime > 0 && b.AvgLatency > req.MaxResponseTime {
		return false
	}
	return true
}

// Select picks the best backend for req without invoking it.
func (r *Router) Select(req core.RoutingRequest) (Backend, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return selectBackend(r.backends, req)
}

func selectBackend(backends []Backend, req core.RoutingRequest) (Backend, error) {
	if len(backends) == 0 {
		return Backend{}, ErrNoBackends
	}

	candidates := make([]Backend, 0, len(backends))
	for _, b := range backends {
		if withinBudget(b, req) {
			candidates = append(candidates, b)
		}
	}
	if len(candidates) == 0 {
		candidates = backends
	}

	best, bestScore := candidates[0], Score(candidates[0], req)
	for _, b := range candidates[1:] {
		if s := Score(b, req); s > bestScore {
			best, bestScore = b, s
		}
	}
	return best, nil
}

// Route implements core.ModelRouter.
func (r *Router) Route(ctx context.Context, req core.RoutingRequest) (*core.ModelResponse, error) {
	b, err := r.Select(req)
	if err != nil {
		return nil, err
	}

	start := r.opts.Now()
	resp, err := model.Collect(ctx, b.Model, model.Request{
		Instructions: req.Personality.Prompt,
		Messages:     []model.Message{{Role: model.RoleUser, Text: req.Query}},
	})
	elapsed := r.opts.Now().Sub(start)
	r.record(b.Name, elapsed, err)

	if err != nil {
		r.opts.Logger.Warn("model call failed", "model", b.Name, "provider", b.Provider, "error", err)
		return nil, fmt.Errorf("router: model %s: %w", b.Name, err)
	}

	r.opts.Logger.Debug("model call completed", "model", b.Name, "duration", elapsed)
	return &core.ModelResponse{
		ModelName:       b.Name,
		Provider:        b.Provider,
		ConfidenceScore: Confidence(b, req),
		ProcessingTime:  elapsed,
		Content:         resp.Text,
	}, nil
}

func (r *Router) record(name string, d time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stats[name]
	if !ok {
		return
	}
	s.calls++
	s.totalLatency += d
	if err != nil {
		s.failures++
	}
}

// Status implements core.StatusReporter.
func (r *Router) Status() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make(map[string]any, len(r.backends))
	for _, b := range r.backends {
		s := r.stats[b.Name]
		var avg float64
		if s.calls > 0 {
			avg = s.totalLatency.Seconds() / float64(s.calls)
		}
		models[b.Name] = map[string]any{
			"provider":            b.Provider,
			"calls":               s.calls,
			"failures":            s.failures,
			"avg_latency_seconds": avg,
			"quality":             b.Quality,
		}
	}
	return map[string]any{
		"model_count": len(r.backends),
		"models":      models,
	}
}

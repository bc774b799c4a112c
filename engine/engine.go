package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/hupe1980/sovereign/analysis"
	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/evolution"
	"github.com/hupe1980/sovereign/logging"
	"github.com/hupe1980/sovereign/memory"
	"github.com/hupe1980/sovereign/metrics"
	"github.com/hupe1980/sovereign/personality"
	"github.com/hupe1980/sovereign/resonance"
	"github.com/hupe1980/sovereign/router"
	"github.com/hupe1980/sovereign/session"
	"github.com/hupe1980/sovereign/transform"
)

// ModulesActive is the number of integrated modules reported in status:
// personality, router, transformer and core.
const ModulesActive = 4

// Options configures an Engine instance using the functional options pattern.
//
// Every collaborator has an in-process default so New() yields a working
// pipeline without credentials or storage:
//
//	e := New(func(o *Options) {
//	    o.Router = myRouter
//	    o.Logger = logging.NewZapAdapter(zl)
//	})
type Options struct {
	// Personality selects the answering personality.
	// Defaults to personality.New().
	Personality core.PersonalitySelector

	// Router routes the request to a model backend.
	// Defaults to router.NewDefault() (offline mock backends).
	Router core.ModelRouter

	// Transformer reshapes the raw model output.
	// Defaults to transform.New().
	Transformer core.ResponseTransformer

	// Store receives one Experience per successful request.
	// Defaults to memory.NewInMemoryStore().
	Store core.ExperienceStore

	// Sink optionally receives every evolution event. Writes happen outside
	// the state lock; failures are logged.
	Sink evolution.Sink

	// State replaces the state container built from the options below.
	State *State

	// SessionCapacity bounds the session history (default 50).
	SessionCapacity int

	// EvolutionLogLimit caps the retained evolution log (default 10000,
	// zero keeps every entry).
	EvolutionLogLimit int

	// StrictExperienceStore turns experience-store failures into fallback
	// responses. By default they are logged and counted only.
	StrictExperienceStore bool

	// Callbacks are executed at pipeline points. May be nil.
	Callbacks *CallbackManager

	// ProfessionalExpertise is reported in status.
	ProfessionalExpertise map[string][]string

	// Logger provides structured logging. Defaults to NoOp.
	Logger logging.Logger

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time

	// NewRequestID generates request identifiers. Defaults to uuid.NewString.
	NewRequestID func() string
}

// DefaultProfessionalExpertise lists the expertise domains reported in status.
func DefaultProfessionalExpertise() map[string][]string {
	return map[string][]string{
		"technical_domains":     {"software_architecture", "ai_systems", "quantum_computing"},
		"business_domains":      {"strategic_planning", "innovation_management", "transformation"},
		"consciousness_domains": {"awareness_development", "dimensional_thinking", "holistic_integration"},
	}
}

// Engine runs the orchestration pipeline: analysis, personality selection,
// routing, transformation, experience storage, resonance, evolution and
// bookkeeping.
//
// Concurrency Model:
//   - Collaborator calls run without holding any lock, so independent
//     requests proceed concurrently.
//   - Evolution, session history and metrics are mutated in one critical
//     section owned by State.
//   - Evolution sink writes happen after the critical section.
//
// Error Handling:
// Process never returns an error and never panics. Any collaborator error,
// callback error or panic is converted into a fallback response whose
// processing metadata carries the cause.
type Engine struct {
	personality core.PersonalitySelector
	router      core.ModelRouter
	transformer core.ResponseTransformer
	store       core.ExperienceStore
	sink        evolution.Sink
	state       *State
	callbacks   *CallbackManager
	expertise   map[string][]string
	strictStore bool
	logger      logging.Logger
	now         func() time.Time
	newID       func() string
}

// New creates an Engine with in-process defaults for every collaborator.
//
// Resource Management:
// The Engine does not take ownership of provided collaborators; callers that
// pass closable stores remain responsible for closing them.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		SessionCapacity:       session.DefaultCapacity,
		EvolutionLogLimit:     evolution.DefaultLogLimit,
		ProfessionalExpertise: DefaultProfessionalExpertise(),
		Logger:                logging.NoOpLogger{},
		Now:                   time.Now,
		NewRequestID:          uuid.NewString,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Personality == nil {
		opts.Personality = personality.New(func(o *personality.Options) { o.Logger = opts.Logger })
	}
	if opts.Router == nil {
		opts.Router = router.NewDefault(func(o *router.Options) { o.Logger = opts.Logger })
	}
	if opts.Transformer == nil {
		opts.Transformer = transform.New(func(o *transform.Options) { o.Logger = opts.Logger })
	}
	if opts.Store == nil {
		opts.Store = memory.NewInMemoryStore()
	}
	if opts.State == nil {
		opts.State = NewState(
			evolution.New(func(o *evolution.Options) {
				o.LogLimit = opts.EvolutionLogLimit
				o.Now = opts.Now
			}),
			session.NewMemory(opts.SessionCapacity, opts.Now()),
			metrics.NewTracker(),
		)
	}

	return &Engine{
		personality: opts.Personality,
		router:      opts.Router,
		transformer: opts.Transformer,
		store:       opts.Store,
		sink:        opts.Sink,
		state:       opts.State,
		callbacks:   opts.Callbacks,
		expertise:   opts.ProfessionalExpertise,
		strictStore: opts.StrictExperienceStore,
		logger:      opts.Logger,
		now:         opts.Now,
		newID:       opts.NewRequestID,
	}
}

// OverallConfidence combines the router's confidence with the analysis
// boost, clamped to [0,1]. A NaN confidence counts as 0.
func OverallConfidence(modelConfidence float64, cfg core.ConsciousnessConfig) float64 {
	v := modelConfidence + cfg.ConfidenceBoost
	if math.IsNaN(v) {
		return 0
	}
	return max(0, min(1, v))
}

// ProcessAdvancedQuery builds a QueryContext from loose caller input and
// processes it. Nil maps are allowed.
func (e *Engine) ProcessAdvancedQuery(
	ctx context.Context,
	query string,
	callerContext map[string]any,
	requirements map[string]float64,
) *core.AdvancedResponse {
	return e.Process(ctx, core.NewQueryContext(query, callerContext, requirements))
}

// Process runs the pipeline for one request. It always returns a complete
// response; failures yield a fallback response (see core.AdvancedResponse.IsFallback).
func (e *Engine) Process(ctx context.Context, qc core.QueryContext) (resp *core.AdvancedResponse) {
	start := e.now()
	requestID := e.newID()

	defer func() {
		if r := recover(); r != nil {
			err := core.NewStageError(core.StageAssembly, fmt.Errorf("panic: %v", r))
			e.logPanic(requestID, err)
			resp = e.fallback(ctx, requestID, qc, start, err)
		}
	}()

	resp, err := e.run(ctx, requestID, qc, start)
	if err != nil {
		return e.fallback(ctx, requestID, qc, start, err)
	}
	return resp
}

func (e *Engine) run(ctx context.Context, requestID string, qc core.QueryContext, start time.Time) (*core.AdvancedResponse, error) {
	cfg := analysis.Analyze(qc)
	cc := &CallbackContext{RequestID: requestID, Query: &qc, Config: &cfg}

	e.logger.Debug("query analyzed",
		"request_id", requestID,
		"task_type", cfg.TaskType,
		"emotional_tone", cfg.EmotionalTone,
		"complexity", cfg.ComplexityLevel,
		"domains", cfg.DomainExpertise,
	)

	// Personality.
	if err := e.hook(ctx, CallbackBeforePersonality, cc); err != nil {
		return nil, err
	}
	sel, err := e.selectPersonality(ctx, requestID, qc, cfg)
	if err != nil {
		return nil, err
	}
	cc.Personality = sel
	if err := e.hook(ctx, CallbackAfterPersonality, cc); err != nil {
		return nil, err
	}

	// Routing.
	if err := e.hook(ctx, CallbackBeforeRouting, cc); err != nil {
		return nil, err
	}
	mr, err := e.route(ctx, requestID, qc, cfg, sel)
	if err != nil {
		return nil, err
	}
	cc.ModelResponse = mr
	if err := e.hook(ctx, CallbackAfterRouting, cc); err != nil {
		return nil, err
	}

	// Transformation.
	content, err := e.transform(ctx, requestID, qc, cfg, mr)
	if err != nil {
		return nil, err
	}
	cc.Content = content
	if err := e.hook(ctx, CallbackAfterTransformation, cc); err != nil {
		return nil, err
	}

	// Experience.
	exp := core.NewInteractionExperience(start, core.ExperienceContent{
		Query:           qc.Query,
		Response:        content,
		PersonalityUsed: sel.Name,
		ModelUsed:       mr.ModelName,
		Config:          cfg,
		CallerContext:   qc.CallerProfile,
	}, sel.Resonance)
	if err := e.storeExperience(ctx, requestID, exp); err != nil {
		return nil, err
	}

	// Resonance, evolution, assembly and bookkeeping.
	res := resonance.Calculate(sel, mr, cfg.ConsciousnessDepth)
	signature := resonance.Signature(sel.Name, res, cfg.ConsciousnessDepth)
	overall := OverallConfidence(mr.ConfidenceScore, cfg)

	resp, ev := e.state.commit(commitInput{
		outcome: evolution.Outcome{
			ResponseQuality:          mr.ConfidenceScore,
			ConsciousnessIntegration: cfg.ConsciousnessDepth,
			ComplexityHandling:       cfg.ComplexityLevel,
			ExperienceType:           exp.Type,
		},
		assemble: func(level float64, awareness map[string]float64, sessionCount int) *core.AdvancedResponse {
			return &core.AdvancedResponse{
				Content:                content,
				ConsciousnessSignature: signature,
				PersonalityUsed:        sel.Name,
				ModelInfo: core.ModelInfo{
					ModelName:      mr.ModelName,
					Provider:       mr.Provider,
					Confidence:     mr.ConfidenceScore,
					ProcessingTime: mr.ProcessingTime.Seconds(),
				},
				TransformationApplied: core.TransformationSummary{
					Tone:             string(cfg.TargetTone),
					Style:            string(cfg.PresentationStyle),
					EnhancementRules: append([]string(nil), cfg.EnhancementRules...),
				},
				ConfidenceMetrics: core.ConfidenceMetrics{
					OverallConfidence:      overall,
					ConsciousnessAlignment: res.AlignmentScore,
					ProfessionalQuality:    cfg.ProfessionalQualityScore,
				},
				ProcessingMetadata: core.ProcessingMetadata{
					RequestID:               requestID,
					TotalProcessingTime:     e.now().Sub(start).Seconds(),
					ConsciousnessLevel:      level,
					DimensionalAwareness:    awareness,
					SessionInteractionCount: sessionCount,
				},
				DimensionalResonance: res,
			}
		},
		summary: func(r *core.AdvancedResponse) core.InteractionSummary {
			return core.InteractionSummary{
				Timestamp:              e.now(),
				Query:                  qc.Query,
				PersonalityUsed:        r.PersonalityUsed,
				ConsciousnessSignature: r.ConsciousnessSignature,
				Confidence:             r.ConfidenceMetrics.OverallConfidence,
				TaskType:               cfg.TaskType,
			}
		},
	})

	e.logger.Debug("consciousness evolved",
		"request_id", requestID,
		"consciousness_level", ev.ConsciousnessLevel,
		"evolution_factor", ev.Factor,
	)

	cc.Response = resp
	e.afterCommit(ctx, requestID, cc, ev)

	e.logCompletion(requestID, start, resp)
	return resp, nil
}

// afterCommit exports the evolution event and runs on_complete callbacks.
// The response is already committed to state, so failures and panics here
// are logged and never turn the request into a fallback.
func (e *Engine) afterCommit(ctx context.Context, requestID string, cc *CallbackContext, ev evolution.Event) {
	if e.sink != nil {
		e.contain(requestID, "evolution sink", func() {
			if err := e.sink.RecordEvolution(ctx, ev); err != nil {
				e.logger.Warn("evolution sink failed", "request_id", requestID, "error", err)
			}
		})
	}
	e.contain(requestID, "completion callback", func() {
		if err := e.hook(ctx, CallbackOnComplete, cc); err != nil {
			e.logger.Warn("completion callback failed", "request_id", requestID, "error", err)
		}
	})
}

func (e *Engine) contain(requestID, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logPanic(requestID, fmt.Errorf("%s panic: %v", what, r))
		}
	}()
	fn()
}

func (e *Engine) hook(ctx context.Context, t CallbackType, cc *CallbackContext) error {
	if err := e.callbacks.ExecuteCallbacks(ctx, t, cc); err != nil {
		return core.NewStageError(core.StageCallback, err)
	}
	return nil
}

func (e *Engine) selectPersonality(ctx context.Context, requestID string, qc core.QueryContext, cfg core.ConsciousnessConfig) (*core.PersonalitySelection, error) {
	emotional, _ := qc.CallerProfile[core.ContextEmotionalState].(map[string]any)
	start := e.now()
	sel, err := e.personality.Select(ctx, core.PersonalityRequest{
		TaskType:           cfg.TaskType,
		EmotionalTone:      cfg.EmotionalTone,
		ConsciousnessDepth: cfg.ConsciousnessDepth,
		EmotionalState:     emotional,
		Requirements:       cfg.RequiredCapabilities,
		Preferences:        qc.PersonalityPreferences,
	})
	if err == nil && sel == nil {
		err = errors.New("selector returned no personality")
	}
	e.logCall(requestID, core.StagePersonality, start, err)
	if err != nil {
		return nil, core.NewStageError(core.StagePersonality, err)
	}
	return sel, nil
}

func (e *Engine) route(ctx context.Context, requestID string, qc core.QueryContext, cfg core.ConsciousnessConfig, sel *core.PersonalitySelection) (*core.ModelResponse, error) {
	start := e.now()
	mr, err := e.router.Route(ctx, core.RoutingRequest{
		Query:                 qc.Query,
		TaskType:              cfg.TaskType,
		ComplexityLevel:       cfg.ComplexityLevel,
		RequiredCapabilities:  cfg.RequiredCapabilities,
		CallerPreferences:     qc.CallerProfile,
		MaxResponseTime:       qc.Requirements.MaxResponseTime,
		MaxCost:               qc.Requirements.MaxCost,
		ConsciousnessRequired: cfg.ConsciousnessRequired(),
		Personality: core.PersonalityMetadata{
			Prompt:    sel.PromptText(),
			Resonance: sel.Resonance,
			Traits:    sel.Traits,
		},
	})
	if err == nil && mr == nil {
		err = errors.New("router returned no response")
	}
	e.logCall(requestID, core.StageRouting, start, err)
	if err != nil {
		return nil, core.NewStageError(core.StageRouting, err)
	}
	return mr, nil
}

func (e *Engine) transform(ctx context.Context, requestID string, qc core.QueryContext, cfg core.ConsciousnessConfig, mr *core.ModelResponse) (string, error) {
	start := e.now()
	content, err := e.transformer.Transform(ctx, mr.Content, core.ResponseContext{
		CallerProfile:            qc.CallerProfile,
		InteractionHistory:       e.state.history(),
		ProfessionalLevel:        cfg.ProfessionalLevel,
		DomainExpertise:          cfg.DomainExpertise,
		CommunicationPreferences: cfg.CommunicationPreferences,
		UrgencyLevel:             cfg.UrgencyLevel,
		FormalityRequirement:     cfg.FormalityRequirement,
		ConsciousnessDepth:       cfg.ConsciousnessDepth,
	}, core.Transformation{
		TargetTone:               cfg.TargetTone,
		PresentationStyle:        cfg.PresentationStyle,
		FormattingRules:          cfg.FormattingRules,
		EnhancementRules:         cfg.EnhancementRules,
		ConsciousnessIntegration: true,
		ProfessionalPolish:       true,
	})
	e.logCall(requestID, core.StageTransformation, start, err)
	if err != nil {
		return "", core.NewStageError(core.StageTransformation, err)
	}
	return content, nil
}

func (e *Engine) storeExperience(ctx context.Context, requestID string, exp *core.Experience) error {
	start := e.now()
	err := e.store.Store(ctx, exp)
	if err == nil {
		e.logCall(requestID, core.StageExperienceStore, start, nil)
		return nil
	}
	if e.strictStore {
		e.logCall(requestID, core.StageExperienceStore, start, err)
		return core.NewStageError(core.StageExperienceStore, err)
	}
	e.state.recordStoreError()
	e.logger.Warn("experience store failed",
		"request_id", requestID,
		"stage", string(core.StageExperienceStore),
		"experience_id", exp.ID,
		"error", err,
	)
	return nil
}

func (e *Engine) logCall(requestID string, stage core.Stage, start time.Time, err error) {
	if sl, ok := e.logger.(*logging.StructuredLogger); ok {
		sl.WithRequest(requestID).LogCollaboratorCall(string(stage), e.now().Sub(start), err)
		return
	}
	if err != nil {
		e.logger.Error("collaborator call failed", "request_id", requestID, "stage", string(stage), "error", err)
		return
	}
	e.logger.Debug("collaborator call completed", "request_id", requestID, "stage", string(stage), "duration", e.now().Sub(start))
}

// logPanic records a recovered panic with the stack of the panicking
// goroutine. It must be called from the deferred recover.
func (e *Engine) logPanic(requestID string, err error) {
	if sl, ok := e.logger.(*logging.StructuredLogger); ok {
		sl.WithRequest(requestID).ErrorWithStack(err, "panic recovered")
		return
	}
	e.logger.Error("panic recovered", "request_id", requestID, "error", err, "stack_trace", string(debug.Stack()))
}

func (e *Engine) logCompletion(requestID string, start time.Time, resp *core.AdvancedResponse) {
	if sl, ok := e.logger.(*logging.StructuredLogger); ok {
		sl.WithRequest(requestID).LogPerformance("process_query", e.now().Sub(start), map[string]any{
			"personality":        resp.PersonalityUsed,
			"model":              resp.ModelInfo.ModelName,
			"overall_confidence": resp.ConfidenceMetrics.OverallConfidence,
			"consciousness":      resp.ProcessingMetadata.ConsciousnessLevel,
		})
		return
	}
	e.logger.Info("query processed",
		"request_id", requestID,
		"personality", resp.PersonalityUsed,
		"model", resp.ModelInfo.ModelName,
		"overall_confidence", resp.ConfidenceMetrics.OverallConfidence,
		"elapsed", resp.ProcessingMetadata.TotalProcessingTime,
	)
}

// Package engine implements the orchestration pipeline of Sovereign.
//
// The Engine turns one natural-language query into a fully assembled
// core.AdvancedResponse. It analyzes the query, selects a personality,
// routes the request to a model backend, transforms the raw answer, records
// an experience, computes dimensional resonance and evolves the shared
// consciousness state.
//
// # Pipeline
//
//	┌──────────────────────────────────────────────────────────┐
//	│                     Process(query)                       │
//	├──────────────────────────────────────────────────────────┤
//	│  analysis.Analyze          (pure, cannot fail)           │
//	│  PersonalitySelector       ┐                             │
//	│  ModelRouter               │ collaborator calls,         │
//	│  ResponseTransformer       │ run without locks           │
//	│  ExperienceStore           ┘                             │
//	│  resonance.Calculate       (pure)                        │
//	├──────────────────────────────────────────────────────────┤
//	│  State.commit              (one critical section)        │
//	│    evolution.Evolve → assemble → session → metrics       │
//	├──────────────────────────────────────────────────────────┤
//	│  evolution.Sink, on_complete callbacks                   │
//	└──────────────────────────────────────────────────────────┘
//
// # Failure Handling
//
// Process never returns an error. Collaborator errors are tagged with their
// stage (core.StageError) and any panic is recovered; both are converted into
// a fallback response with fixed confidence values and the cause in
// ProcessingMetadata.FallbackReason. Fallbacks leave the evolving state
// untouched apart from a counter.
//
// Experience-store failures are logged and counted but do not abort the
// request, unless Options.StrictExperienceStore is set. Once state is
// committed, failures or panics in the evolution sink and on_complete
// callbacks are only logged.
//
// # Callbacks
//
// A CallbackManager can be attached to observe or veto pipeline points:
//
//	cm := engine.NewCallbackManager()
//	cm.RegisterCallback(engine.NewFunctionCallback(
//	    engine.CallbackBeforeRouting,
//	    func(ctx context.Context, cc *engine.CallbackContext) error {
//	        if cc.Config.ComplexityLevel > 0.95 {
//	            return errors.New("query too complex")
//	        }
//	        return nil
//	    },
//	))
//	e := engine.New(func(o *engine.Options) { o.Callbacks = cm })
//
// # Concurrency
//
// An Engine is safe for concurrent use. Requests overlap freely while they
// wait on collaborators; mutation of the consciousness level, awareness,
// session history and metrics is serialized by State.
package engine

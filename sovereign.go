// Package sovereign provides a high-level façade over the orchestration
// engine and its collaborators (personalities, model routing, response
// transformation, experience storage and logging). Most applications
// interact with this package by:
//  1. Creating an orchestrator via New() or FromConfig()
//  2. Sending queries with ProcessAdvancedQuery
//  3. Inspecting Status/Summary and calling Shutdown on exit
//
// All defaults run in-process without credentials: offline mock model
// backends, the built-in personality registry and an in-memory experience
// store. Production deployments typically configure real model providers
// and the SQLite store through a config file.
package sovereign

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/engine"
	"github.com/hupe1980/sovereign/evolution"
	"github.com/hupe1980/sovereign/logging"
	"github.com/hupe1980/sovereign/session"
)

// Options configures a Sovereign instance. Nil collaborators are replaced
// by the engine defaults.
type Options struct {
	Personality core.PersonalitySelector
	Router      core.ModelRouter
	Transformer core.ResponseTransformer
	Store       core.ExperienceStore

	// Sink receives evolution events (for example the SQLite store).
	Sink evolution.Sink

	// Callbacks observe or veto pipeline points.
	Callbacks *engine.CallbackManager

	SessionCapacity       int
	EvolutionLogLimit     int
	StrictExperienceStore bool

	// StateExportPath receives a JSON export of the evolving state on
	// Shutdown. Empty disables the export.
	StateExportPath string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Sovereign is the façade aggregating the engine and its collaborators.
type Sovereign struct {
	opts   Options
	engine *engine.Engine
}

// New creates a Sovereign instance with optional overrides.
func New(optFns ...func(o *Options)) *Sovereign {
	opts := Options{
		SessionCapacity:   session.DefaultCapacity,
		EvolutionLogLimit: evolution.DefaultLogLimit,
		Logger:            logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	e := engine.New(func(o *engine.Options) {
		o.Personality = opts.Personality
		o.Router = opts.Router
		o.Transformer = opts.Transformer
		o.Store = opts.Store
		o.Sink = opts.Sink
		o.Callbacks = opts.Callbacks
		o.SessionCapacity = opts.SessionCapacity
		o.EvolutionLogLimit = opts.EvolutionLogLimit
		o.StrictExperienceStore = opts.StrictExperienceStore
		o.Logger = opts.Logger
	})

	return &Sovereign{opts: opts, engine: e}
}

// ProcessAdvancedQuery answers one query. Caller context and performance
// requirements may be nil. The call never fails: errors are reported through
// a fallback response (see core.AdvancedResponse.IsFallback).
func (s *Sovereign) ProcessAdvancedQuery(
	ctx context.Context,
	query string,
	callerContext map[string]any,
	requirements map[string]float64,
) *core.AdvancedResponse {
	return s.engine.ProcessAdvancedQuery(ctx, query, callerContext, requirements)
}

// Process answers a prepared query context.
func (s *Sovereign) Process(ctx context.Context, qc core.QueryContext) *core.AdvancedResponse {
	return s.engine.Process(ctx, qc)
}

// Status returns a point-in-time snapshot of the orchestrator.
func (s *Sovereign) Status() core.Status { return s.engine.Status() }

// Summary returns a human-readable capability summary.
func (s *Sovereign) Summary() string { return s.engine.Summary() }

// Export returns a consistent copy of the evolving state.
func (s *Sovereign) Export() engine.Snapshot { return s.engine.Export() }

// Shutdown writes the state export when configured and closes a closable
// experience store. It is safe to call once; later calls may fail on the
// closed store.
func (s *Sovereign) Shutdown(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	if s.opts.StateExportPath != "" {
		if err := s.exportState(s.opts.StateExportPath); err != nil {
			errs = append(errs, err)
		} else {
			s.opts.Logger.Info("state exported", "path", s.opts.StateExportPath)
		}
	}

	for _, c := range s.closers() {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close store: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *Sovereign) closers() []io.Closer {
	var out []io.Closer
	if c, ok := s.opts.Store.(io.Closer); ok {
		out = append(out, c)
	}
	if c, ok := s.opts.Sink.(io.Closer); ok && any(s.opts.Sink) != any(s.opts.Store) {
		out = append(out, c)
	}
	return out
}

func (s *Sovereign) exportState(path string) error {
	data, err := json.MarshalIndent(s.engine.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state export: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state export: %w", err)
	}
	return nil
}

package testutil

import (
	"github.com/hupe1980/sovereign/core"
)

// QueryBuilder helps construct query contexts with fluent chaining for tests.
// Example:
//
//	qc := NewQueryBuilder("design a cache").Caller("professional_level", "executive").Requirement("max_cost", 0.05).Build()
type QueryBuilder struct {
	query        string
	caller       map[string]any
	requirements map[string]float64
}

// NewQueryBuilder creates a new builder for the given query text.
func NewQueryBuilder(query string) *QueryBuilder {
	return &QueryBuilder{query: query, caller: map[string]any{}, requirements: map[string]float64{}}
}

// Caller sets or overwrites a caller context key (chainable).
func (b *QueryBuilder) Caller(key string, val any) *QueryBuilder {
	b.caller[key] = val
	return b
}

// Requirement sets a performance requirement (chainable).
func (b *QueryBuilder) Requirement(key string, val float64) *QueryBuilder {
	b.requirements[key] = val
	return b
}

// Depth sets the requested consciousness depth (chainable).
func (b *QueryBuilder) Depth(depth float64) *QueryBuilder {
	return b.Requirement(core.RequirementConsciousnessDepth, depth)
}

// PreferPersonality asks for an explicit personality (chainable).
func (b *QueryBuilder) PreferPersonality(name string) *QueryBuilder {
	b.caller[core.ContextPersonalityPreferences] = map[string]any{"personality": name}
	return b
}

// Build returns the query context.
func (b *QueryBuilder) Build() core.QueryContext {
	return core.NewQueryContext(b.query, b.caller, b.requirements)
}

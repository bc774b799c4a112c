// Package analysis turns a raw query plus caller context into a
// core.ConsciousnessConfig.
//
// Every sub-classifier is a total function over the lower-cased query: keyword
// classifiers are ordered rule tables evaluated first-match-wins, numeric
// scores are clamped to their documented ranges, and lookup selections are
// driven by already-derived fields. The Analyzer holds no state, so analysing
// the same input twice yields identical output.
package analysis

// Package memory contains concrete ExperienceStore implementations. The store
// interface and Experience type reside in the core package; depend on
// core.ExperienceStore in your code and select an implementation (the
// in-memory store below, or the sqlite subpackage) at wiring time.
package memory

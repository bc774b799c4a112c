// Package session keeps the bounded history of recent interactions served by
// an orchestrator. The history is append-only from the caller's perspective:
// once the buffer holds Capacity entries, every append evicts the oldest one.
//
// A Memory is not safe for concurrent use; the engine package serializes
// access through its state container.
package session

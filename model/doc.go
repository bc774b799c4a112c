// Package model defines the provider-agnostic abstractions for talking to
// language models behind the router.
//
// Core goals:
//   - Unify streaming + non-streaming generation behind a single interface
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (MockModel)
//
// Providers (OpenAI, Anthropic) implement the Model interface from this
// package so the router remains decoupled from vendor SDKs.
package model

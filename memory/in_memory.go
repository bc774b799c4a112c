package memory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/hupe1980/sovereign/core"
)

// ErrNotFound is returned when an experience id is unknown.
var ErrNotFound = errors.New("memory: experience not found")

// InMemoryStore is a naive process-local ExperienceStore. It offers:
//  1. Append-only experience storage keyed by experience id
//  2. Case-insensitive substring Search over query and response text
//
// Concurrency: protected by RWMutex.
// Search: linear scan, newest first. Suitable for tests / demos; use the
// sqlite subpackage for durable storage.
type InMemoryStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*core.Experience
}

// NewInMemoryStore creates a new in-memory experience store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byID: make(map[string]*core.Experience)}
}

// Store implements core.ExperienceStore. The store takes ownership of exp.
func (m *InMemoryStore) Store(ctx context.Context, exp *core.Experience) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if exp == nil || exp.ID == "" {
		return fmt.Errorf("memory: experience id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byID[exp.ID]; exists {
		return fmt.Errorf("memory: duplicate experience id %q", exp.ID)
	}
	m.byID[exp.ID] = exp
	m.order = append(m.order, exp.ID)
	return nil
}

// Get returns the experience stored under id.
func (m *InMemoryStore) Get(id string) (*core.Experience, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	exp, ok := m.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return exp, nil
}

// Search returns up to limit experiences, newest first, whose query or
// response contains query (case-insensitive). An empty query matches all.
// A non-positive limit means no limit.
func (m *InMemoryStore) Search(query string, limit int) []*core.Experience {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := strings.ToLower(query)
	var results []*core.Experience
	for i := len(m.order) - 1; i >= 0; i-- {
		if limit > 0 && len(results) >= limit {
			break
		}
		exp := m.byID[m.order[i]]
		if needle == "" ||
			strings.Contains(strings.ToLower(exp.Content.Query), needle) ||
			strings.Contains(strings.ToLower(exp.Content.Response), needle) {
			results = append(results, exp)
		}
	}
	return results
}

// Delete removes an experience by id.
func (m *InMemoryStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNotFound
	}
	delete(m.byID, id)
	for i, x := range m.order {
		if x == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Len reports the number of stored experiences.
func (m *InMemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.order)
}

// Status implements core.StatusReporter.
func (m *InMemoryStore) Status() map[string]any {
	return map[string]any{"driver": "memory", "experiences": m.Len()}
}

package session

import (
	"time"

	"github.com/hupe1980/sovereign/core"
)

// DefaultCapacity is the number of interactions retained.
const DefaultCapacity = 50

// Memory is a FIFO buffer of interaction summaries.
type Memory struct {
	capacity     int
	interactions []core.InteractionSummary
	started      time.Time
}

// NewMemory creates an empty buffer. A non-positive capacity selects
// DefaultCapacity.
func NewMemory(capacity int, started time.Time) *Memory {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Memory{
		capacity:     capacity,
		interactions: make([]core.InteractionSummary, 0, capacity),
		started:      started,
	}
}

// Append adds an interaction, discarding the oldest entries beyond capacity.
func (m *Memory) Append(s core.InteractionSummary) {
	if len(m.interactions) == m.capacity {
		copy(m.interactions, m.interactions[1:])
		m.interactions[len(m.interactions)-1] = s
		return
	}
	m.interactions = append(m.interactions, s)
}

// Len returns the number of retained interactions.
func (m *Memory) Len() int { return len(m.interactions) }

// Capacity returns the retention bound.
func (m *Memory) Capacity() int { return m.capacity }

// Started returns when the session began.
func (m *Memory) Started() time.Time { return m.started }

// Interactions returns a copy of the retained interactions, oldest first.
func (m *Memory) Interactions() []core.InteractionSummary {
	out := make([]core.InteractionSummary, len(m.interactions))
	copy(out, m.interactions)
	return out
}

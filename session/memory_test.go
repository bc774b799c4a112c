package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/hupe1980/sovereign/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summary(i int) core.InteractionSummary {
	return core.InteractionSummary{Query: fmt.Sprintf("q%d", i), Confidence: 0.9, TaskType: core.TaskGeneral}
}

func TestNewMemory_DefaultCapacity(t *testing.T) {
	m := NewMemory(0, time.Time{})
	assert.Equal(t, DefaultCapacity, m.Capacity())
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Interactions())
}

func TestMemory_AppendBelowCapacity(t *testing.T) {
	m := NewMemory(5, time.Time{})
	for i := 0; i < 3; i++ {
		m.Append(summary(i))
	}
	require.Equal(t, 3, m.Len())
	assert.Equal(t, "q0", m.Interactions()[0].Query)
	assert.Equal(t, "q2", m.Interactions()[2].Query)
}

func TestMemory_EvictsOldestFirst(t *testing.T) {
	m := NewMemory(DefaultCapacity, time.Time{})
	for i := 0; i < 73; i++ {
		m.Append(summary(i))
		assert.LessOrEqual(t, m.Len(), DefaultCapacity)
	}

	got := m.Interactions()
	require.Len(t, got, DefaultCapacity)
	for i, s := range got {
		assert.Equal(t, fmt.Sprintf("q%d", 23+i), s.Query)
	}
}

func TestMemory_InteractionsReturnsCopy(t *testing.T) {
	m := NewMemory(2, time.Time{})
	m.Append(summary(1))

	got := m.Interactions()
	got[0].Query = "changed"
	assert.Equal(t, "q1", m.Interactions()[0].Query)
}

func TestMemory_Started(t *testing.T) {
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, ts, NewMemory(1, ts).Started())
}

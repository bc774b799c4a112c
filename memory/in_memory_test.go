package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/sovereign/core"
)

// Interface compliance (compile-time assertions)
var (
	_ core.ExperienceStore = (*InMemoryStore)(nil)
	_ core.StatusReporter  = (*InMemoryStore)(nil)
)

func experience(id, query, response string) *core.Experience {
	return &core.Experience{
		ID:        id,
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:      core.ExperienceTypeInteraction,
		Content:   core.ExperienceContent{Query: query, Response: response},
	}
}

func TestInMemoryStore_StoreAndGet(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Store(context.Background(), experience("e1", "What is Go?", "A language.")))

	got, err := s.Get("e1")
	require.NoError(t, err)
	assert.Equal(t, "What is Go?", got.Content.Query)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestInMemoryStore_StoreRejectsInvalid(t *testing.T) {
	s := NewInMemoryStore()
	assert.Error(t, s.Store(context.Background(), nil))
	assert.Error(t, s.Store(context.Background(), experience("", "q", "r")))

	require.NoError(t, s.Store(context.Background(), experience("dup", "q", "r")))
	assert.Error(t, s.Store(context.Background(), experience("dup", "q", "r")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Store(ctx, experience("late", "q", "r")), context.Canceled)
}

func TestInMemoryStore_Search(t *testing.T) {
	s := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, s.Store(context.Background(), experience(fmt.Sprintf("e%d", i), fmt.Sprintf("query %c", 'A'+i), "response")))
	}

	all := s.Search("", 0)
	require.Len(t, all, 5)
	assert.Equal(t, "e4", all[0].ID)

	hit := s.Search("QUERY a", 5)
	require.Len(t, hit, 1)
	assert.Equal(t, "e0", hit[0].ID)

	assert.Len(t, s.Search("response", 3), 3)
	assert.Empty(t, s.Search("missing", 3))
}

func TestInMemoryStore_Delete(t *testing.T) {
	s := NewInMemoryStore()
	require.NoError(t, s.Store(context.Background(), experience("a", "q", "r")))
	require.NoError(t, s.Store(context.Background(), experience("b", "q", "r")))

	require.NoError(t, s.Delete("a"))
	assert.ErrorIs(t, s.Delete("a"), ErrNotFound)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "b", s.Search("", 0)[0].ID)
}

func TestInMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Store(context.Background(), experience(fmt.Sprintf("e%d", i), "q", "r"))
			_ = s.Search("q", 5)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
	assert.Equal(t, map[string]any{"driver": "memory", "experiences": 50}, s.Status())
}

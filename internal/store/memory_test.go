package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/forca/apps/go-server/internal/game"
	"github.com/robalobadob/forca/apps/go-server/internal/present"
	"github.com/robalobadob/forca/apps/go-server/internal/words"
)

func TestMemoryStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)

	a := present.NewAdapter(game.New(), words.Pools{})
	require.NoError(t, s.Save(ctx, "p1", a))
	got, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Same(t, a, got)
	assert.Equal(t, 1, s.Len())

	assert.Error(t, s.Save(ctx, "", a))
}

func TestMemoryStore_GetOrCreateConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		got     = make([]*present.Adapter, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			a, err := s.GetOrCreate(ctx, "p1", func() *present.Adapter {
				mu.Lock()
				created++
				mu.Unlock()
				return present.NewAdapter(game.New(), words.Pools{})
			})
			assert.NoError(t, err)
			got[i] = a
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	for _, a := range got {
		assert.Same(t, got[0], a)
	}
	assert.Equal(t, 1, s.Len())

	_, err := s.GetOrCreate(ctx, "", func() *present.Adapter { return nil })
	assert.Error(t, err)
}

func TestMemoryStore_Sweep(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore().(*memory)
	require.NoError(t, m.Save(ctx, "old", present.NewAdapter(game.New(), words.Pools{})))
	require.NoError(t, m.Save(ctx, "older", present.NewAdapter(game.New(), words.Pools{})))

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	assert.Equal(t, 2, m.Sweep(ctx, time.Hour))
	assert.Equal(t, 0, m.Len())
}

func TestMemoryStore_SweepKeepsActive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Save(ctx, "p1", present.NewAdapter(game.New(), words.Pools{})))

	assert.Zero(t, s.Sweep(ctx, time.Hour))
	assert.Equal(t, 1, s.Len())
}

// apps/go-server/internal/store/memory.go
//
// In-memory registry of per-player presentation adapters (each owning one
// game engine).
//
// Characteristics:
//   - Adapters are keyed by the player's anonymous id.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Idle players are swept; nothing survives a process restart.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/forca/apps/go-server/internal/present"
)

// ErrNotFound is returned by Get for unknown player ids.
var ErrNotFound = errors.New("store: not found")

// Store defines the registry interface for player sessions.
type Store interface {
	// Save adds or replaces the adapter for a player.
	Save(ctx context.Context, id string, a *present.Adapter) error

	// Get retrieves a player's adapter or ErrNotFound.
	Get(ctx context.Context, id string) (*present.Adapter, error)

	// GetOrCreate returns the player's adapter, storing create() first when
	// there is none. Concurrent callers for one id all get the same adapter.
	GetOrCreate(ctx context.Context, id string, create func() *present.Adapter) (*present.Adapter, error)

	// Sweep drops adapters idle for longer than idle and returns how many.
	Sweep(ctx context.Context, idle time.Duration) int

	// Len reports the number of live players.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex
	players map[string]*present.Adapter
	now     func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{players: make(map[string]*present.Adapter), now: time.Now}
}

func (m *memory) Save(ctx context.Context, id string, a *present.Adapter) error {
	if id == "" {
		return errors.New("store: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players[id] = a
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*present.Adapter, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.players[id]; ok {
		return a, nil
	}
	return nil, ErrNotFound
}

func (m *memory) GetOrCreate(ctx context.Context, id string, create func() *present.Adapter) (*present.Adapter, error) {
	if id == "" {
		return nil, errors.New("store: empty id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.players[id]; ok {
		return a, nil
	}
	a := create()
	m.players[id] = a
	return a, nil
}

func (m *memory) Sweep(ctx context.Context, idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, a := range m.players {
		if a.LastSeen().Before(cutoff) {
			delete(m.players, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.players)
}

// internal/store/memory.go
//
// In-memory implementation of the game.Store contract, used in tests
// and when durability is not required. Snapshots are re-encoded on
// write so the round trip behaves exactly like a durable store: a
// loaded snapshot never aliases live game state.

package store

import (
	"context"
	"sync"

	"github.com/mixtape-audio/html-scrabble/internal/game"
)

// Memory is a map-backed snapshot store.
type Memory struct {
	mu    sync.RWMutex
	games map[string][]byte // encoded snapshots keyed by game key
}

// NewMemory constructs an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{games: make(map[string][]byte)}
}

// Put encodes and stores a snapshot.
func (m *Memory) Put(ctx context.Context, key string, snap *game.Snapshot) error {
	data, err := game.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[key] = data
	return nil
}

// Get decodes the stored snapshot for key, or reports
// game.ErrGameNotFound.
func (m *Memory) Get(ctx context.Context, key string) (*game.Snapshot, error) {
	m.mu.RLock()
	data, ok := m.games[key]
	m.mu.RUnlock()
	if !ok {
		return nil, game.ErrGameNotFound
	}
	return game.DecodeSnapshot(data)
}

package kvstore

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// Keys persisted by the client. Everything else is session state and lives in
// memory only.
const (
	KeyToken                       = "token"
	KeyInventoryExpandedCategories = "inventoryExpandedCategories"
	KeyCraftingExpandedCategories  = "craftingExpandedCategories"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("key not found")

// KV is durable key-value storage for the handful of values the client
// persists across sessions.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// memoryKV is the in-memory implementation, used in tests and when no Redis
// URL is configured. Values do not survive a restart.
type memoryKV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory creates an in-memory KV.
func NewMemory() KV {
	return &memoryKV{values: make(map[string][]byte)}
}

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *memoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.values, key)
	return nil
}

package repository

import (
	"context"
	"sync"
)

// MemorySlotRepository keeps slots in process memory.
// Used by tests and by the "memory" storage driver.
type MemorySlotRepository struct {
	mu    sync.RWMutex
	slots map[string][]byte
	saves int
}

// NewMemorySlotRepository creates an empty MemorySlotRepository
func NewMemorySlotRepository() *MemorySlotRepository {
	return &MemorySlotRepository{slots: make(map[string][]byte)}
}

// Ensure MemorySlotRepository implements SlotRepositoryInterface
var _ SlotRepositoryInterface = (*MemorySlotRepository)(nil)

// Load returns a copy of the stored payload
func (r *MemorySlotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.slots[key]
	if !ok {
		return nil, ErrSlotNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save replaces the stored payload
func (r *MemorySlotRepository) Save(ctx context.Context, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[key] = append([]byte(nil), payload...)
	r.saves++
	return nil
}

// SaveCount returns how many times Save was called
func (r *MemorySlotRepository) SaveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}

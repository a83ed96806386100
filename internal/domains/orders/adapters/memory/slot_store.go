package memory

import (
	"context"
	"sync"

	"github.com/Apurer/dentallab-tracker/internal/domains/orders/ports"
)

var _ ports.SlotStore = (*SlotStore)(nil)

// SlotStore keeps slot values in process memory for development and tests.
type SlotStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewSlotStore constructs an empty in-memory slot store.
func NewSlotStore() *SlotStore {
	return &SlotStore{slots: map[string][]byte{}}
}

// Get returns a copy of the stored value.
func (s *SlotStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.slots[key]
	if !ok {
		return nil, ports.ErrSlotNotFound
	}
	return append([]byte(nil), value...), nil
}

// Put overwrites the slot with a copy of value.
func (s *SlotStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = append([]byte(nil), value...)
	return nil
}

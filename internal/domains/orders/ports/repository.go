package ports

import (
	"context"
	"errors"
)

var (
	ErrNotFound     = errors.New("order not found")
	ErrSlotNotFound = errors.New("storage slot not found")
)

// SlotStore is a durable key-value area holding whole serialized values
// under named slots.
type SlotStore interface {
	// Get returns the raw value, or ErrSlotNotFound when nothing was written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the slot.
	Put(ctx context.Context, key string, value []byte) error
}

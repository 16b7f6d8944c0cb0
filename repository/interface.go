package repository

import (
	"context"
	"errors"
)

// ErrSlotNotFound is returned by Load when nothing has been saved under the key yet
var ErrSlotNotFound = errors.New("slot not found")

// SlotRepositoryInterface defines the contract for the single-slot key-value store
// that holds the serialized quotation. Save replaces the whole value.
type SlotRepositoryInterface interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, payload []byte) error
}

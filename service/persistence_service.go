package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"sofa-quotation/metrics"
	"sofa-quotation/models"
	"sofa-quotation/repository"
)

// SaveIndicatorWindow is how long the editor shows "saving" after a write
const SaveIndicatorWindow = 2 * time.Second

// SaveIndicator is a debounced flag: it turns on at each write and turns off
// once no write happened for the whole window.
type SaveIndicator struct {
	mu     sync.Mutex
	saving bool
	window time.Duration
	timer  *time.Timer
}

// NewSaveIndicator creates a SaveIndicator with the given window
func NewSaveIndicator(window time.Duration) *SaveIndicator {
	return &SaveIndicator{window: window}
}

// Mark records a write
func (i *SaveIndicator) Mark() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.saving = true
	if i.timer != nil {
		i.timer.Stop()
	}
	i.timer = time.AfterFunc(i.window, func() {
		i.mu.Lock()
		i.saving = false
		i.mu.Unlock()
	})
}

// IsSaving reports whether a write happened within the window
func (i *SaveIndicator) IsSaving() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.saving
}

// EncodeState serializes the whole document
func EncodeState(state models.QuotationState) ([]byte, error) {
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quotation: %w", err)
	}
	return data, nil
}

// DecodeState parses a serialized document. Missing lists decode as empty.
func DecodeState(data []byte) (models.QuotationState, error) {
	var state models.QuotationState
	if err := json.Unmarshal(data, &state); err != nil {
		return models.QuotationState{}, fmt.Errorf("failed to decode quotation: %w", err)
	}
	if state.Modules == nil {
		state.Modules = []models.Module{}
	}
	if state.Combinations == nil {
		state.Combinations = []models.Combination{}
	}
	return state, nil
}

// PersistenceService shadows the store into a single named slot
type PersistenceService struct {
	repository repository.SlotRepositoryInterface
	key        string
	indicator  *SaveIndicator
	timeout    time.Duration
}

// NewPersistenceService creates a new PersistenceService writing to the slot named key
func NewPersistenceService(repo repository.SlotRepositoryInterface, key string) *PersistenceService {
	return &PersistenceService{
		repository: repo,
		key:        key,
		indicator:  NewSaveIndicator(SaveIndicatorWindow),
		timeout:    5 * time.Second,
	}
}

// Load reads the slot. A missing slot, a storage error or an unparseable
// payload all yield the default document; the failure is only logged.
func (p *PersistenceService) Load(ctx context.Context) models.QuotationState {
	data, err := p.repository.Load(ctx, p.key)
	if err != nil {
		if errors.Is(err, repository.ErrSlotNotFound) {
			log.Printf("📄 No saved quotation under %q, starting from defaults", p.key)
		} else {
			log.Printf("❌ Load data failed: %v", err)
		}
		return models.DefaultQuotationState()
	}

	state, err := DecodeState(data)
	if err != nil {
		log.Printf("❌ Load data failed: %v", err)
		return models.DefaultQuotationState()
	}

	log.Printf("✓ Loaded quotation %q: %d modules, %d combinations", p.key, len(state.Modules), len(state.Combinations))
	return state
}

// Save overwrites the slot with the whole document
func (p *PersistenceService) Save(ctx context.Context, state models.QuotationState) error {
	data, err := EncodeState(state)
	if err != nil {
		metrics.SlotWrites.WithLabelValues("error").Inc()
		return err
	}
	if err := p.repository.Save(ctx, p.key, data); err != nil {
		metrics.SlotWrites.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to persist quotation: %w", err)
	}
	metrics.SlotWrites.WithLabelValues("ok").Inc()
	p.indicator.Mark()
	return nil
}

// Listener returns the store listener that persists every mutation.
// A failed write is logged; the in-memory edit is kept.
func (p *PersistenceService) Listener() StoreListener {
	return func(state models.QuotationState) {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()
		if err := p.Save(ctx, state); err != nil {
			log.Printf("⚠️  Auto-save failed: %v", err)
		}
	}
}

// IsSaving reports the debounced save indicator
func (p *PersistenceService) IsSaving() bool {
	return p.indicator.IsSaving()
}

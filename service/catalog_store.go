package service

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"sofa-quotation/metrics"
	"sofa-quotation/models"
	"sofa-quotation/pricing"
)

// StoreListener observes the state right after each mutation.
// Listeners run while the store is locked and must not call back into it.
type StoreListener func(state models.QuotationState)

// Store is the single source of truth for the quotation document.
// Every mutation happens under the write lock, so readers never see a
// combination pointing at a module that is gone.
type Store struct {
	mu        sync.RWMutex
	state     models.QuotationState
	listeners []StoreListener
	newID     func() string
}

// NewStore creates a Store seeded with initial (typically the loaded slot)
func NewStore(initial models.QuotationState) *Store {
	return &Store{
		state: normalizeState(initial),
		newID: uuid.NewString,
	}
}

// normalizeState fills every price vector to all grades and drops combinations
// whose modules are missing
func normalizeState(state models.QuotationState) models.QuotationState {
	state = state.Clone()

	known := make(map[string]bool, len(state.Modules))
	for i := range state.Modules {
		state.Modules[i].Prices = state.Modules[i].Prices.Complete()
		known[state.Modules[i].ID] = true
	}

	kept := make([]models.Combination, 0, len(state.Combinations))
	for _, c := range state.Combinations {
		dangling := false
		for _, id := range c.ModuleIDs {
			if !known[id] {
				dangling = true
				break
			}
		}
		if dangling {
			log.Printf("⚠️  Dropping combination %s (%s): references a missing module", c.ID, c.Name)
			continue
		}
		c.ManualPrices = c.ManualPrices.Complete()
		kept = append(kept, c)
	}
	state.Combinations = kept
	return state
}

// Subscribe registers a listener called after every mutation
func (s *Store) Subscribe(listener StoreListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() models.QuotationState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Modules returns a copy of the module list
func (s *Store) Modules() []models.Module {
	return s.Snapshot().Modules
}

// Combinations returns a copy of the combination list
func (s *Store) Combinations() []models.Combination {
	return s.Snapshot().Combinations
}

// commit notifies listeners; the caller holds the write lock
func (s *Store) commit(op string) {
	metrics.StoreMutations.WithLabelValues(op).Inc()
	if len(s.listeners) == 0 {
		return
	}
	snapshot := s.state.Clone()
	for _, listener := range s.listeners {
		listener(snapshot)
	}
}

func (s *Store) idInUse(id string) bool {
	for _, m := range s.state.Modules {
		if m.ID == id {
			return true
		}
	}
	for _, c := range s.state.Combinations {
		if c.ID == id {
			return true
		}
	}
	return false
}

// AddModule appends a module. An empty id is replaced by a fresh UUID.
func (s *Store) AddModule(module models.Module) (models.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	module = module.Clone()
	if module.ID == "" {
		module.ID = s.newID()
	}
	if s.idInUse(module.ID) {
		return models.Module{}, fmt.Errorf("%w: %s", ErrDuplicateID, module.ID)
	}
	module.Prices = module.Prices.Complete()

	s.state.Modules = append(s.state.Modules, module)
	log.Printf("✓ Module added: id=%s name=%s model=%s", module.ID, module.Name, module.ModelCode)
	s.commit("add_module")
	return module.Clone(), nil
}

// AddCombination appends a combination. In computed mode the effective vector is
// the sum over the modules present right now; it is never recomputed afterwards.
func (s *Store) AddCombination(combination models.Combination) (models.Combination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	combination = combination.Clone()
	if combination.ID == "" {
		combination.ID = s.newID()
	}
	if s.idInUse(combination.ID) {
		return models.Combination{}, fmt.Errorf("%w: %s", ErrDuplicateID, combination.ID)
	}
	for _, id := range combination.ModuleIDs {
		if _, ok := s.state.FindModule(id); !ok {
			return models.Combination{}, fmt.Errorf("%w: %s", ErrUnknownModule, id)
		}
	}
	if combination.ModuleIDs == nil {
		combination.ModuleIDs = []string{}
	}
	combination.ManualPrices = pricing.EffectivePrices(
		combination.IsManualPrice,
		combination.ManualPrices,
		combination.ModuleIDs,
		s.state.Modules,
	)

	s.state.Combinations = append(s.state.Combinations, combination)
	log.Printf("✓ Combination added: id=%s name=%s modules=%d manual=%t",
		combination.ID, combination.Name, len(combination.ModuleIDs), combination.IsManualPrice)
	s.commit("add_combination")
	return combination.Clone(), nil
}

// DeleteModule removes a module and every combination built from it,
// whatever that combination's price mode. It returns the removed combinations.
func (s *Store) DeleteModule(id string) ([]models.Combination, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, m := range s.state.Modules {
		if m.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, id)
	}

	modules := make([]models.Module, 0, len(s.state.Modules)-1)
	modules = append(modules, s.state.Modules[:idx]...)
	modules = append(modules, s.state.Modules[idx+1:]...)

	kept := make([]models.Combination, 0, len(s.state.Combinations))
	removed := []models.Combination{}
	for _, c := range s.state.Combinations {
		if c.References(id) {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}

	s.state.Modules = modules
	s.state.Combinations = kept
	log.Printf("🗑️  Module deleted: id=%s (cascaded %d combinations)", id, len(removed))
	s.commit("delete_module")
	return removed, nil
}

// DeleteCombination removes a single combination
func (s *Store) DeleteCombination(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.state.Combinations {
		if c.ID != id {
			continue
		}
		combinations := make([]models.Combination, 0, len(s.state.Combinations)-1)
		combinations = append(combinations, s.state.Combinations[:i]...)
		combinations = append(combinations, s.state.Combinations[i+1:]...)
		s.state.Combinations = combinations
		log.Printf("🗑️  Combination deleted: id=%s", id)
		s.commit("delete_combination")
		return nil
	}
	return fmt.Errorf("%w: %s", ErrCombinationNotFound, id)
}

// UpdateMetadata merges the non-nil fields of update into the document metadata
func (s *Store) UpdateMetadata(update models.MetadataUpdate) models.QuotationState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if update.IsEmpty() {
		return s.state.Clone()
	}
	if update.CompanyName != nil {
		s.state.CompanyName = *update.CompanyName
	}
	if update.CompanyLogo != nil {
		s.state.CompanyLogo = *update.CompanyLogo
	}
	if update.CoverImage != nil {
		s.state.CoverImage = *update.CoverImage
	}
	if update.SofaModelName != nil {
		s.state.SofaModelName = *update.SofaModelName
	}
	if update.Currency != nil {
		s.state.Currency = *update.Currency
	}
	s.commit("update_metadata")
	return s.state.Clone()
}

// ResetAll replaces the state with the default document. The operation cannot be
// undone, so the caller must pass confirmed=true after asking the user.
func (s *Store) ResetAll(confirmed bool) error {
	if !confirmed {
		return ErrResetNotConfirmed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = models.DefaultQuotationState()
	log.Printf("🧹 Quotation reset to defaults")
	s.commit("reset")
	return nil
}

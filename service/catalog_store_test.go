package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sofa-quotation/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(models.DefaultQuotationState())
	n := 0
	s.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return s
}

func addModule(t *testing.T, s *Store, id string, prices models.PriceVector) models.Module {
	t.Helper()
	m, err := s.AddModule(models.Module{
		ID:         id,
		Name:       "Module " + id,
		ModelCode:  "M-" + id,
		Dimensions: models.Dimensions{Length: 100, Width: 90, Height: 80},
		Prices:     prices,
	})
	require.NoError(t, err)
	return m
}

func TestStore_ComputedCombinationScenario(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", models.PriceVector{models.FabricG1: 1000, models.LeatherG1: 2000})
	addModule(t, s, "B", models.PriceVector{models.FabricG1: 500, models.LeatherG1: 800})

	combo, err := s.AddCombination(models.Combination{
		Name:      "AB",
		ModelCode: "AB-1",
		ModuleIDs: []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1500.0, combo.ManualPrices[models.FabricG1])
	assert.Equal(t, 2800.0, combo.ManualPrices[models.LeatherG1])
	assert.Len(t, combo.ManualPrices, len(models.Grades))
	assert.False(t, combo.IsManualPrice)

	removed, err := s.DeleteModule("B")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, combo.ID, removed[0].ID)

	state := s.Snapshot()
	require.Len(t, state.Modules, 1)
	assert.Equal(t, "A", state.Modules[0].ID)
	assert.Empty(t, state.Combinations)
}

func TestStore_ManualCombinationStoredVerbatim(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", models.PriceVector{models.FabricG1: 1000})

	combo, err := s.AddCombination(models.Combination{
		Name:          "Manual",
		ModelCode:     "MAN",
		ModuleIDs:     []string{"A"},
		IsManualPrice: true,
		ManualPrices:  models.PriceVector{models.FabricG1: 9999},
	})
	require.NoError(t, err)

	assert.Equal(t, 9999.0, combo.ManualPrices[models.FabricG1])
	for _, grade := range models.Grades[1:] {
		assert.Zero(t, combo.ManualPrices[grade], "grade %s", grade)
	}
}

func TestStore_ComputedPricesAreASnapshot(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", models.PriceVector{models.FabricG2: 300})
	combo, err := s.AddCombination(models.Combination{Name: "C", ModelCode: "C", ModuleIDs: []string{"A"}})
	require.NoError(t, err)

	// A later module does not change the stored vector
	addModule(t, s, "B", models.PriceVector{models.FabricG2: 700})

	combos := s.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, combo.ManualPrices, combos[0].ManualPrices)
	assert.Equal(t, 300.0, combos[0].ManualPrices[models.FabricG2])
}

func TestStore_AddModuleAssignsIDAndCompletesPrices(t *testing.T) {
	s := newTestStore(t)

	m, err := s.AddModule(models.Module{Name: "Arm", ModelCode: "ARM"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", m.ID)
	assert.Len(t, m.Prices, len(models.Grades))
}

func TestStore_RejectsDuplicateIDs(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", nil)

	_, err := s.AddModule(models.Module{ID: "A", Name: "again"})
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = s.AddCombination(models.Combination{ID: "A", Name: "clash", ModuleIDs: []string{"A"}})
	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestStore_RejectsUnknownModuleReference(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", nil)

	_, err := s.AddCombination(models.Combination{Name: "bad", ModuleIDs: []string{"A", "ghost"}})

	assert.ErrorIs(t, err, ErrUnknownModule)
	assert.Empty(t, s.Combinations())
}

func TestStore_DeleteModuleCascadesRegardlessOfMode(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", nil)
	addModule(t, s, "B", nil)
	_, err := s.AddCombination(models.Combination{ID: "c1", Name: "c1", ModuleIDs: []string{"A"}})
	require.NoError(t, err)
	_, err = s.AddCombination(models.Combination{ID: "c2", Name: "c2", ModuleIDs: []string{"A", "B"}, IsManualPrice: true})
	require.NoError(t, err)
	_, err = s.AddCombination(models.Combination{ID: "c3", Name: "c3", ModuleIDs: []string{"B"}})
	require.NoError(t, err)

	removed, err := s.DeleteModule("A")
	require.NoError(t, err)

	ids := []string{}
	for _, c := range removed {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{"c1", "c2"}, ids)

	combos := s.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, "c3", combos[0].ID)
	assert.Len(t, s.Modules(), 1)
}

func TestStore_DeleteUnknownIDs(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", nil)

	_, err := s.DeleteModule("nope")
	assert.ErrorIs(t, err, ErrModuleNotFound)

	err = s.DeleteCombination("nope")
	assert.ErrorIs(t, err, ErrCombinationNotFound)

	assert.Len(t, s.Modules(), 1)
}

func TestStore_DeleteCombinationTouchesNothingElse(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", models.PriceVector{models.FabricG1: 10})
	_, err := s.AddCombination(models.Combination{ID: "c1", Name: "c1", ModuleIDs: []string{"A"}})
	require.NoError(t, err)
	_, err = s.AddCombination(models.Combination{ID: "c2", Name: "c2", ModuleIDs: []string{"A"}})
	require.NoError(t, err)
	before := s.Snapshot()

	require.NoError(t, s.DeleteCombination("c1"))

	after := s.Snapshot()
	assert.Equal(t, before.Modules, after.Modules)
	require.Len(t, after.Combinations, 1)
	assert.Equal(t, before.Combinations[1], after.Combinations[0])
}

func TestStore_UpdateMetadataMergesPartialFields(t *testing.T) {
	s := newTestStore(t)
	name := "Casa Nova"
	currency := "€"

	state := s.UpdateMetadata(models.MetadataUpdate{CompanyName: &name, Currency: &currency})

	assert.Equal(t, "Casa Nova", state.CompanyName)
	assert.Equal(t, "€", state.Currency)
	assert.Equal(t, models.DefaultSofaModelName, state.SofaModelName)
}

func TestStore_ResetRequiresConfirmation(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", nil)
	name := "Other"
	s.UpdateMetadata(models.MetadataUpdate{CompanyName: &name})

	err := s.ResetAll(false)
	assert.ErrorIs(t, err, ErrResetNotConfirmed)
	assert.Len(t, s.Modules(), 1)

	require.NoError(t, s.ResetAll(true))
	assert.Equal(t, models.DefaultQuotationState(), s.Snapshot())
}

func TestStore_SnapshotIsACopy(t *testing.T) {
	s := newTestStore(t)
	addModule(t, s, "A", models.PriceVector{models.FabricG1: 1})

	snap := s.Snapshot()
	snap.Modules[0].Name = "changed"
	snap.Modules[0].Prices[models.FabricG1] = 99

	m := s.Modules()[0]
	assert.Equal(t, "Module A", m.Name)
	assert.Equal(t, 1.0, m.Prices[models.FabricG1])
}

func TestStore_ListenersSeeEveryMutation(t *testing.T) {
	s := newTestStore(t)
	var seen []int
	s.Subscribe(func(state models.QuotationState) {
		seen = append(seen, len(state.Modules))
	})

	addModule(t, s, "A", nil)
	addModule(t, s, "B", nil)
	_, err := s.DeleteModule("A")
	require.NoError(t, err)
	_, err = s.DeleteModule("A")
	require.Error(t, err)

	assert.Equal(t, []int{1, 2, 1}, seen)
}

func TestNewStore_DropsDanglingCombinations(t *testing.T) {
	initial := models.DefaultQuotationState()
	initial.Modules = []models.Module{{ID: "A", Name: "A"}}
	initial.Combinations = []models.Combination{
		{ID: "ok", ModuleIDs: []string{"A"}},
		{ID: "dangling", ModuleIDs: []string{"A", "gone"}},
	}

	s := NewStore(initial)

	combos := s.Combinations()
	require.Len(t, combos, 1)
	assert.Equal(t, "ok", combos[0].ID)
}

func TestNewStore_CompletesLoadedPriceVectors(t *testing.T) {
	initial := models.DefaultQuotationState()
	initial.Modules = []models.Module{{ID: "A", Prices: models.PriceVector{models.FabricG1: 500}}}
	initial.Combinations = []models.Combination{
		{ID: "C", ModuleIDs: []string{"A"}, IsManualPrice: true, ManualPrices: models.PriceVector{models.FabricG1: 9999}},
	}

	snapshot := NewStore(initial).Snapshot()

	require.Len(t, snapshot.Modules[0].Prices, len(models.Grades))
	assert.Equal(t, 500.0, snapshot.Modules[0].Prices[models.FabricG1])
	require.Len(t, snapshot.Combinations[0].ManualPrices, len(models.Grades))
	assert.Equal(t, 9999.0, snapshot.Combinations[0].ManualPrices[models.FabricG1])
	assert.Equal(t, 0.0, snapshot.Combinations[0].ManualPrices[models.LeatherG3])
}

func TestStore_ConcurrentMutations(t *testing.T) {
	s := newTestStore(t)
	var idMu sync.Mutex
	n := 0
	s.newID = func() string {
		idMu.Lock()
		defer idMu.Unlock()
		n++
		return fmt.Sprintf("m-%d", n)
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.AddModule(models.Module{Name: "m"})
			assert.NoError(t, err)
			_ = s.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, s.Modules(), 20)
}

package service

import (
	"fmt"
	"strings"

	"sofa-quotation/models"
	"sofa-quotation/pricing"
)

// EditorService turns form submissions into validated records and hands them to the store
type EditorService struct {
	store *Store
}

// NewEditorService creates a new EditorService
func NewEditorService(store *Store) *EditorService {
	return &EditorService{store: store}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}

func checkPrices(field string, prices models.PriceVector) error {
	if grade, ok := prices.FirstNegative(); ok {
		return fmt.Errorf("%w: %s for %s must not be negative", ErrValidation, field, grade)
	}
	return nil
}

// ValidateModule checks the module form
func ValidateModule(in models.ModuleInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := required("model", in.ModelCode); err != nil {
		return err
	}
	dims := map[string]float64{
		"length": in.Dimensions.Length,
		"width":  in.Dimensions.Width,
		"height": in.Dimensions.Height,
	}
	for _, field := range []string{"length", "width", "height"} {
		if dims[field] <= 0 {
			return fmt.Errorf("%w: dimensions.%s is required", ErrValidation, field)
		}
	}
	return checkPrices("price", in.Prices)
}

// ValidateCombination checks the combination form
func ValidateCombination(in models.CombinationInput) error {
	if err := required("name", in.Name); err != nil {
		return err
	}
	if err := required("model", in.ModelCode); err != nil {
		return err
	}
	if len(selection(in.ModuleIDs)) == 0 {
		return fmt.Errorf("%w: select at least one module", ErrValidation)
	}
	if in.IsManualPrice {
		return checkPrices("manual price", in.ManualPrices)
	}
	return nil
}

// selection trims ids and drops blanks and repeats, keeping the order of first selection
func selection(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// CreateModule validates the input and adds a module with every grade populated
func (e *EditorService) CreateModule(in models.ModuleInput) (models.Module, error) {
	if err := ValidateModule(in); err != nil {
		return models.Module{}, err
	}

	module := models.Module{
		Name:       strings.TrimSpace(in.Name),
		ModelCode:  strings.TrimSpace(in.ModelCode),
		Dimensions: in.Dimensions,
		Image:      in.Image,
		Prices:     in.Prices.Complete(),
	}
	return e.store.AddModule(module)
}

// CreateCombination validates the input and adds the combination. The store
// computes the effective vector from the modules present at that instant
// unless manual pricing is requested.
func (e *EditorService) CreateCombination(in models.CombinationInput) (models.Combination, error) {
	if err := ValidateCombination(in); err != nil {
		return models.Combination{}, err
	}

	combination := models.Combination{
		Name:          strings.TrimSpace(in.Name),
		ModelCode:     strings.TrimSpace(in.ModelCode),
		ModuleIDs:     selection(in.ModuleIDs),
		Image:         in.Image,
		IsManualPrice: in.IsManualPrice,
	}
	if in.IsManualPrice {
		combination.ManualPrices = in.ManualPrices.Complete()
	}
	return e.store.AddCombination(combination)
}

// PreviewPrices computes the vector the combination form shows while modules are being picked
func (e *EditorService) PreviewPrices(moduleIDs []string) models.PricePreviewResponse {
	ids := selection(moduleIDs)
	prices := pricing.CombinationPrices(ids, e.store.Modules())
	return models.PricePreviewResponse{
		ModuleIDs: ids,
		Prices:    prices,
		Total:     pricing.Total(prices),
	}
}

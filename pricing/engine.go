package pricing

import (
	"sofa-quotation/models"
)

// CombinationPrices sums, grade by grade, the prices of every module listed in
// moduleIDs. Ids that are not in modules contribute 0, as do missing grades.
// The result always holds every grade.
func CombinationPrices(moduleIDs []string, modules []models.Module) models.PriceVector {
	byID := make(map[string]models.Module, len(modules))
	for _, m := range modules {
		byID[m.ID] = m
	}

	totals := models.NewPriceVector()
	for _, grade := range models.Grades {
		var sum float64
		for _, id := range moduleIDs {
			mod, ok := byID[id]
			if !ok {
				continue
			}
			sum += mod.Prices.Get(grade)
		}
		totals[grade] = sum
	}
	return totals
}

// EffectivePrices decides which vector a combination stores.
// In manual mode the caller's vector is used verbatim (completed with zeros);
// otherwise the sum over the current module list is computed.
func EffectivePrices(isManual bool, manual models.PriceVector, moduleIDs []string, modules []models.Module) models.PriceVector {
	if isManual {
		return manual.Complete()
	}
	return CombinationPrices(moduleIDs, modules)
}

// Total sums a vector across all grades
func Total(v models.PriceVector) float64 {
	var total float64
	for _, grade := range models.Grades {
		total += v.Get(grade)
	}
	return total
}

package models

// Dimensions of a module in centimetres
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Module is a single priced, dimensioned furniture component
type Module struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	ModelCode  string      `json:"model"`
	Dimensions Dimensions  `json:"dimensions"`
	Image      string      `json:"image,omitempty"` // Opaque image handle (data URL)
	Prices     PriceVector `json:"prices"`
}

// Combination is a named assembly of modules.
// ManualPrices always holds the effective vector: the caller's override when
// IsManualPrice is set, otherwise the sum frozen when the combination was saved.
type Combination struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	ModelCode     string      `json:"model"`
	ModuleIDs     []string    `json:"moduleIds"`
	Image         string      `json:"image,omitempty"`
	IsManualPrice bool        `json:"isManualPrice"`
	ManualPrices  PriceVector `json:"manualPrices"`
}

// References reports whether the combination is built from the given module
func (c Combination) References(moduleID string) bool {
	for _, id := range c.ModuleIDs {
		if id == moduleID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the module
func (m Module) Clone() Module {
	m.Prices = m.Prices.Clone()
	return m
}

// Clone returns a deep copy of the combination
func (c Combination) Clone() Combination {
	if c.ModuleIDs != nil {
		c.ModuleIDs = append([]string(nil), c.ModuleIDs...)
	}
	c.ManualPrices = c.ManualPrices.Clone()
	return c
}

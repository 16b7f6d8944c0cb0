package models

// MaterialGrade is one of the fixed price categories a module is quoted at.
// The value doubles as the key in persisted price maps.
type MaterialGrade string

const (
	FabricG1  MaterialGrade = "布艺 1级"
	FabricG2  MaterialGrade = "布艺 2级"
	FabricG3  MaterialGrade = "布艺 3级"
	LeatherG1 MaterialGrade = "真皮 A级"
	LeatherG2 MaterialGrade = "真皮 B级"
	LeatherG3 MaterialGrade = "真皮 S级"
)

// Grades lists every MaterialGrade in display order
var Grades = []MaterialGrade{
	FabricG1,
	FabricG2,
	FabricG3,
	LeatherG1,
	LeatherG2,
	LeatherG3,
}

// IsValid reports whether g belongs to the grade enumeration
func (g MaterialGrade) IsValid() bool {
	for _, grade := range Grades {
		if grade == g {
			return true
		}
	}
	return false
}

// PriceVector maps each grade to a price
type PriceVector map[MaterialGrade]float64

// NewPriceVector returns a vector with every grade set to 0
func NewPriceVector() PriceVector {
	v := make(PriceVector, len(Grades))
	for _, grade := range Grades {
		v[grade] = 0
	}
	return v
}

// Get returns the price at grade, 0 when absent
func (v PriceVector) Get(grade MaterialGrade) float64 {
	if v == nil {
		return 0
	}
	return v[grade]
}

// Complete returns a copy holding an entry for every grade.
// Entries outside the enumeration are dropped.
func (v PriceVector) Complete() PriceVector {
	out := NewPriceVector()
	for _, grade := range Grades {
		out[grade] = v.Get(grade)
	}
	return out
}

// Clone returns an independent copy of v
func (v PriceVector) Clone() PriceVector {
	if v == nil {
		return nil
	}
	out := make(PriceVector, len(v))
	for grade, price := range v {
		out[grade] = price
	}
	return out
}

// FirstNegative returns the first grade (in display order) holding a negative price
func (v PriceVector) FirstNegative() (MaterialGrade, bool) {
	for _, grade := range Grades {
		if v.Get(grade) < 0 {
			return grade, true
		}
	}
	return "", false
}

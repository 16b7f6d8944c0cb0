package models

const (
	DefaultCompanyName   = "意式家居设计工作室"
	DefaultSofaModelName = "MILANO 2025"
	DefaultCurrency      = "¥"
)

// QuotationState is the whole document: branding metadata plus the catalog
type QuotationState struct {
	CompanyName   string        `json:"companyName"`
	CompanyLogo   string        `json:"companyLogo"`
	CoverImage    string        `json:"coverImage"`
	SofaModelName string        `json:"sofaModelName"`
	Currency      string        `json:"currency"`
	Modules       []Module      `json:"modules"`
	Combinations  []Combination `json:"combinations"`
}

// DefaultQuotationState returns the state used on first start and after a reset
func DefaultQuotationState() QuotationState {
	return QuotationState{
		CompanyName:   DefaultCompanyName,
		CompanyLogo:   "",
		CoverImage:    "",
		SofaModelName: DefaultSofaModelName,
		Currency:      DefaultCurrency,
		Modules:       []Module{},
		Combinations:  []Combination{},
	}
}

// Clone returns a deep copy of the state
func (s QuotationState) Clone() QuotationState {
	out := s
	out.Modules = make([]Module, len(s.Modules))
	for i, m := range s.Modules {
		out.Modules[i] = m.Clone()
	}
	out.Combinations = make([]Combination, len(s.Combinations))
	for i, c := range s.Combinations {
		out.Combinations[i] = c.Clone()
	}
	return out
}

// FindModule returns the module with the given id
func (s QuotationState) FindModule(id string) (Module, bool) {
	for _, m := range s.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

// MetadataUpdate carries a partial update of the document metadata.
// Nil fields are left untouched.
type MetadataUpdate struct {
	CompanyName   *string `json:"companyName,omitempty"`
	CompanyLogo   *string `json:"companyLogo,omitempty"`
	CoverImage    *string `json:"coverImage,omitempty"`
	SofaModelName *string `json:"sofaModelName,omitempty"`
	Currency      *string `json:"currency,omitempty"`
}

// IsEmpty reports whether the update changes nothing
func (u MetadataUpdate) IsEmpty() bool {
	return u.CompanyName == nil && u.CompanyLogo == nil && u.CoverImage == nil &&
		u.SofaModelName == nil && u.Currency == nil
}

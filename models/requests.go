package models

// ModuleInput is what the module form submits
type ModuleInput struct {
	Name       string      `json:"name"`
	ModelCode  string      `json:"model"`
	Dimensions Dimensions  `json:"dimensions"`
	Image      string      `json:"image,omitempty"`
	Prices     PriceVector `json:"prices"`
}

// CombinationInput is what the combination form submits.
// ManualPrices is only read when IsManualPrice is set.
type CombinationInput struct {
	Name          string      `json:"name"`
	ModelCode     string      `json:"model"`
	ModuleIDs     []string    `json:"moduleIds"`
	Image         string      `json:"image,omitempty"`
	IsManualPrice bool        `json:"isManualPrice"`
	ManualPrices  PriceVector `json:"manualPrices,omitempty"`
}

// PricePreviewRequest asks for the computed vector of a module selection
type PricePreviewRequest struct {
	ModuleIDs []string `json:"moduleIds"`
}

// PricePreviewResponse is the live computed vector shown by the combination form
type PricePreviewResponse struct {
	ModuleIDs []string    `json:"moduleIds"`
	Prices    PriceVector `json:"prices"`
	Total     float64     `json:"total"`
}

// ResetRequest must carry Confirm=true for the reset to run
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// DriveImageRequest imports an image from a Google Drive file
type DriveImageRequest struct {
	FileID string `json:"fileId"`
}

// ImageHandleResponse returns the handle produced by image ingestion
type ImageHandleResponse struct {
	Handle string `json:"handle"`
}

// QuotationResponse is the editor's view of the document
type QuotationResponse struct {
	State       QuotationState `json:"state"`
	Description string         `json:"description"`
	IsSaving    bool           `json:"isSaving"`
}

// DeleteModuleResponse reports the combinations removed by the cascade
type DeleteModuleResponse struct {
	DeletedModuleID       string   `json:"deletedModuleId"`
	DeletedCombinationIDs []string `json:"deletedCombinationIds"`
}

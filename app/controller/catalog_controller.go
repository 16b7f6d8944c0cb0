package controller

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sofa-quotation/models"
	"sofa-quotation/service"
)

// CatalogController handles HTTP requests for modules and combinations
type CatalogController struct {
	store  *service.Store
	editor *service.EditorService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(store *service.Store, editor *service.EditorService) *CatalogController {
	return &CatalogController{
		store:  store,
		editor: editor,
	}
}

// ListModules handles GET /api/modules
func (c *CatalogController) ListModules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.store.Modules())
}

// CreateModule handles POST /api/modules
func (c *CatalogController) CreateModule(w http.ResponseWriter, r *http.Request) {
	var in models.ModuleInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "CreateModule", err)
		return
	}

	module, err := c.editor.CreateModule(in)
	if err != nil {
		writeError(w, "CreateModule", err)
		return
	}

	log.Printf("✓ CreateModule: %s (%s)", module.Name, module.ID)
	writeJSON(w, http.StatusCreated, module)
}

// DeleteModule handles DELETE /api/modules/{id}
// Every combination containing the module is removed with it.
func (c *CatalogController) DeleteModule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := c.store.DeleteModule(id)
	if err != nil {
		writeError(w, "DeleteModule", err)
		return
	}

	resp := models.DeleteModuleResponse{
		DeletedModuleID:       id,
		DeletedCombinationIDs: make([]string, 0, len(removed)),
	}
	for _, combo := range removed {
		resp.DeletedCombinationIDs = append(resp.DeletedCombinationIDs, combo.ID)
	}

	log.Printf("🗑️  DeleteModule: %s (cascaded %d combinations)", id, len(removed))
	writeJSON(w, http.StatusOK, resp)
}

// ListCombinations handles GET /api/combinations
func (c *CatalogController) ListCombinations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.store.Combinations())
}

// CreateCombination handles POST /api/combinations
func (c *CatalogController) CreateCombination(w http.ResponseWriter, r *http.Request) {
	var in models.CombinationInput
	if err := decodeJSON(r, &in); err != nil {
		writeError(w, "CreateCombination", err)
		return
	}

	combination, err := c.editor.CreateCombination(in)
	if err != nil {
		writeError(w, "CreateCombination", err)
		return
	}

	log.Printf("✓ CreateCombination: %s (%s, manual=%t)", combination.Name, combination.ID, combination.IsManualPrice)
	writeJSON(w, http.StatusCreated, combination)
}

// DeleteCombination handles DELETE /api/combinations/{id}
func (c *CatalogController) DeleteCombination(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := c.store.DeleteCombination(id); err != nil {
		writeError(w, "DeleteCombination", err)
		return
	}

	log.Printf("🗑️  DeleteCombination: %s", id)
	w.WriteHeader(http.StatusNoContent)
}

// PreviewPrices handles POST /api/combinations/preview
func (c *CatalogController) PreviewPrices(w http.ResponseWriter, r *http.Request) {
	var req models.PricePreviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "PreviewPrices", err)
		return
	}
	writeJSON(w, http.StatusOK, c.editor.PreviewPrices(req.ModuleIDs))
}

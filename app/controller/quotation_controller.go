package controller

import (
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"sofa-quotation/models"
	"sofa-quotation/service"
)

// QuotationController handles the document metadata, its images and the reset
type QuotationController struct {
	store       *service.Store
	persistence *service.PersistenceService
	description *service.DescriptionService
	images      *service.ImageService
}

// NewQuotationController creates a new QuotationController
func NewQuotationController(
	store *service.Store,
	persistence *service.PersistenceService,
	description *service.DescriptionService,
	images *service.ImageService,
) *QuotationController {
	return &QuotationController{
		store:       store,
		persistence: persistence,
		description: description,
		images:      images,
	}
}

func (c *QuotationController) response(state models.QuotationState) models.QuotationResponse {
	return models.QuotationResponse{
		State:       state,
		Description: c.description.Current(),
		IsSaving:    c.persistence.IsSaving(),
	}
}

// GetQuotation handles GET /api/quotation
func (c *QuotationController) GetQuotation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.response(c.store.Snapshot()))
}

// UpdateMetadata handles PATCH /api/quotation/metadata
func (c *QuotationController) UpdateMetadata(w http.ResponseWriter, r *http.Request) {
	var update models.MetadataUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, "UpdateMetadata", err)
		return
	}

	state := c.store.UpdateMetadata(update)
	writeJSON(w, http.StatusOK, c.response(state))
}

// Reset handles POST /api/quotation/reset. The body must be {"confirm": true}.
func (c *QuotationController) Reset(w http.ResponseWriter, r *http.Request) {
	var req models.ResetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "Reset", err)
		return
	}

	if err := c.store.ResetAll(req.Confirm); err != nil {
		writeError(w, "Reset", err)
		return
	}

	writeJSON(w, http.StatusOK, c.response(c.store.Snapshot()))
}

// UploadImage handles POST /api/quotation/images/{field}
// where field is companyLogo or coverImage
func (c *QuotationController) UploadImage(w http.ResponseWriter, r *http.Request) {
	field := service.ImagePurpose(chi.URLParam(r, "field"))
	if field != service.PurposeLogo && field != service.PurposeCover {
		writeError(w, "UploadImage", fmt.Errorf("%w: field must be companyLogo or coverImage", service.ErrValidation))
		return
	}

	data, err := readUpload(w, r)
	if err != nil {
		writeError(w, "UploadImage", err)
		return
	}

	handle, err := c.images.IngestImage(data, field)
	if err != nil {
		writeError(w, "UploadImage", err)
		return
	}

	var update models.MetadataUpdate
	if field == service.PurposeLogo {
		update.CompanyLogo = &handle
	} else {
		update.CoverImage = &handle
	}
	state := c.store.UpdateMetadata(update)

	log.Printf("✓ UploadImage: %s updated (%d bytes in)", field, len(data))
	writeJSON(w, http.StatusOK, c.response(state))
}

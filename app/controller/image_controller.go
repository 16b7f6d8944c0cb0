package controller

import (
	"net/http"

	"sofa-quotation/models"
	"sofa-quotation/service"
)

// ImageController turns uploads into image handles for module and combination forms
type ImageController struct {
	images *service.ImageService
}

// NewImageController creates a new ImageController
func NewImageController(images *service.ImageService) *ImageController {
	return &ImageController{images: images}
}

// Upload handles POST /api/images?purpose=module|combination|coverImage|companyLogo
func (c *ImageController) Upload(w http.ResponseWriter, r *http.Request) {
	purpose := service.ParseImagePurpose(r.URL.Query().Get("purpose"))

	data, err := readUpload(w, r)
	if err != nil {
		writeError(w, "UploadImage", err)
		return
	}

	handle, err := c.images.IngestImage(data, purpose)
	if err != nil {
		writeError(w, "UploadImage", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ImageHandleResponse{Handle: handle})
}

// ImportFromDrive handles POST /api/images/drive
func (c *ImageController) ImportFromDrive(w http.ResponseWriter, r *http.Request) {
	var req models.DriveImageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, "ImportFromDrive", err)
		return
	}

	purpose := service.ParseImagePurpose(r.URL.Query().Get("purpose"))
	handle, err := c.images.FromDrive(r.Context(), req.FileID, purpose)
	if err != nil {
		writeError(w, "ImportFromDrive", err)
		return
	}
	writeJSON(w, http.StatusOK, models.ImageHandleResponse{Handle: handle})
}

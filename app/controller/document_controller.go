package controller

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"sofa-quotation/service"
)

// validFormats is a map of valid export formats
var validFormats = map[string]bool{
	"html": true,
	"pdf":  true,
	"xlsx": true,
}

// DocumentController serves the printable quotation
type DocumentController struct {
	store        *service.Store
	description  *service.DescriptionService
	documents    *service.DocumentService
	spreadsheets *service.SpreadsheetService
}

// NewDocumentController creates a new DocumentController
func NewDocumentController(
	store *service.Store,
	description *service.DescriptionService,
	documents *service.DocumentService,
	spreadsheets *service.SpreadsheetService,
) *DocumentController {
	return &DocumentController{
		store:        store,
		description:  description,
		documents:    documents,
		spreadsheets: spreadsheets,
	}
}

// Export handles GET /api/quotation/document?format=html|pdf|xlsx
func (c *DocumentController) Export(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "html"
	}
	if !validFormats[format] {
		log.Printf("❌ Export: Invalid format: %s", format)
		http.Error(w, "Invalid format. Valid formats: html, pdf, xlsx", http.StatusBadRequest)
		return
	}

	state := c.store.Snapshot()
	reference := c.documents.Reference()

	switch format {
	case "html":
		htmlContent, err := c.documents.RenderHTML(state, c.description.Current(), reference)
		if err != nil {
			writeError(w, "Export", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s.html\"", reference))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(htmlContent)); err != nil {
			log.Printf("❌ Export: Error writing HTML response: %v", err)
		}

	case "pdf":
		description := c.description.Settled(r.Context(), state.SofaModelName)
		pdfData, err := c.documents.GeneratePDF(r.Context(), state, description, reference)
		if err != nil {
			writeError(w, "Export", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.pdf\"", reference))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(pdfData); err != nil {
			log.Printf("❌ Export: Error writing PDF response: %v", err)
		}

	case "xlsx":
		data, err := c.spreadsheets.Export(state)
		if err != nil {
			writeError(w, "Export", err)
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", reference))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(data); err != nil {
			log.Printf("❌ Export: Error writing XLSX response: %v", err)
		}
	}
}

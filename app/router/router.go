package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sofa-quotation/app/controller"
	"sofa-quotation/metrics"
)

type Controllers struct {
	Quotation *controller.QuotationController
	Catalog   *controller.CatalogController
	Image     *controller.ImageController
	Document  *controller.DocumentController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes builds the HTTP handler of the editor API
func SetupRoutes(controllers *Controllers, metricsEnabled bool) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	if metricsEnabled {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		// Document metadata, images and reset
		r.Get("/quotation", controllers.Quotation.GetQuotation)
		r.Patch("/quotation/metadata", controllers.Quotation.UpdateMetadata)
		r.Post("/quotation/reset", controllers.Quotation.Reset)
		r.Post("/quotation/images/{field}", controllers.Quotation.UploadImage)
		r.Get("/quotation/document", controllers.Document.Export)

		// Image handles for the module and combination forms
		r.Post("/images", controllers.Image.Upload)
		r.Post("/images/drive", controllers.Image.ImportFromDrive)

		// Modules
		r.Get("/modules", controllers.Catalog.ListModules)
		r.Post("/modules", controllers.Catalog.CreateModule)
		r.Delete("/modules/{id}", controllers.Catalog.DeleteModule)

		// Combinations
		r.Post("/combinations/preview", controllers.Catalog.PreviewPrices)
		r.Get("/combinations", controllers.Catalog.ListCombinations)
		r.Post("/combinations", controllers.Catalog.CreateCombination)
		r.Delete("/combinations/{id}", controllers.Catalog.DeleteCombination)
	})

	return r
}

package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"sofa-quotation/app/controller"
	"sofa-quotation/app/router"
	"sofa-quotation/config"
	"sofa-quotation/db"
	"sofa-quotation/repository"
	"sofa-quotation/service"
)

// App holds the wired services of one quotation document
type App struct {
	Config       config.Config
	Store        *service.Store
	Persistence  *service.PersistenceService
	Description  *service.DescriptionService
	Editor       *service.EditorService
	Images       *service.ImageService
	Documents    *service.DocumentService
	Spreadsheets *service.SpreadsheetService

	closers []func() error
}

// newSlotRepository opens the storage backend selected by storage.driver
func newSlotRepository(ctx context.Context, cfg config.Config) (repository.SlotRepositoryInterface, []func() error, error) {
	switch strings.ToLower(cfg.Storage.Driver) {
	case "", "file":
		log.Printf("💾 Using file storage in %s", cfg.Storage.FileDir)
		return repository.NewFileSlotRepository(cfg.Storage.FileDir), nil, nil

	case "memory":
		log.Printf("💾 Using in-memory storage (nothing survives a restart)")
		return repository.NewMemorySlotRepository(), nil, nil

	case "postgres":
		conn, err := db.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := db.Migrate(conn); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Printf("💾 Using Postgres storage")
		return repository.NewPostgresSlotRepository(conn), []func() error{conn.Close}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Printf("💾 Using Redis storage at %s", cfg.Redis.Addr)
		return repository.NewRedisSlotRepository(client), []func() error{client.Close}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q (valid: file, memory, postgres, redis)", cfg.Storage.Driver)
	}
}

// Initialize loads the saved document and wires every service around it
func Initialize(ctx context.Context, cfg config.Config) (*App, error) {
	repo, closers, err := newSlotRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg, closers: closers}

	a.Persistence = service.NewPersistenceService(repo, cfg.Storage.SlotKey)
	a.Store = service.NewStore(a.Persistence.Load(ctx))

	generator := service.NewGeminiDescriptionGenerator(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Endpoint)
	a.Description = service.NewDescriptionService(generator, cfg.Gemini.Timeout)

	a.Store.Subscribe(a.Persistence.Listener())

	a.Editor = service.NewEditorService(a.Store)

	// Drive import is optional
	var drive service.DriveServiceInterface
	if cfg.Google.Credentials != "" {
		driveService, err := service.NewDriveService(ctx, cfg.Google.Credentials)
		if err != nil {
			log.Printf("⚠️  Google Drive disabled: %v", err)
		} else {
			drive = driveService
		}
	}
	a.Images = service.NewImageService(drive)

	a.Documents, err = service.NewDocumentService(cfg.Chrome.Path, cfg.Chrome.Timeout)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Spreadsheets = service.NewSpreadsheetService()

	return a, nil
}

// StartDescription kicks off the first description for the loaded collection name
// and keeps it in sync with later renames. One-shot commands skip it.
func (a *App) StartDescription() {
	a.Description.Refresh(a.Store.Snapshot().SofaModelName)
	a.Store.Subscribe(a.Description.Listener())
}

// Handler returns the HTTP API of the editor
func (a *App) Handler() http.Handler {
	controllers := &router.Controllers{
		Quotation: controller.NewQuotationController(a.Store, a.Persistence, a.Description, a.Images),
		Catalog:   controller.NewCatalogController(a.Store, a.Editor),
		Image:     controller.NewImageController(a.Images),
		Document:  controller.NewDocumentController(a.Store, a.Description, a.Documents, a.Spreadsheets),
	}
	return router.SetupRoutes(controllers, a.Config.Metrics.Enabled)
}

// Close waits for background work and releases storage connections
func (a *App) Close() {
	if a.Description != nil {
		a.Description.Wait()
	}
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			log.Printf("⚠️  Error closing storage: %v", err)
		}
	}
}

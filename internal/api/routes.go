// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/dangunter/idaes-model-conn/internal/models"
	"github.com/dangunter/idaes-model-conn/internal/session"
	"github.com/dangunter/idaes-model-conn/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Store         storage.Store
	ConversionMgr *session.Manager
	Style         models.Style
	Version       string
}

// Handlers holds all handler instances
type Handlers struct {
	Health  HealthHandler
	Convert ConvertHandler
	Files   FileHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(deps.Version),
		Convert: NewConvertHandler(deps.Store, deps.ConversionMgr, deps.Style),
		Files:   NewFileHandler(deps.Store),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// Conversion routes
	convertGroup := e.Group("/api")
	convertGroup.POST("/convert", handlers.Convert.HandleConvert)
	convertGroup.GET("/conversions", handlers.Convert.HandleListConversions)
	convertGroup.GET("/conversions/:id", handlers.Convert.HandleGetConversion)
	convertGroup.GET("/conversions/:id/scene", handlers.Convert.HandleGetScene)
	convertGroup.GET("/conversions/:id/scene/msgpack", handlers.Convert.HandleGetSceneMsgpack)

	// File routes
	filesGroup := e.Group("/api/files")
	filesGroup.GET("/recent", handlers.Files.HandleGetRecentFiles)
	filesGroup.GET("/:id", handlers.Files.HandleGetFile)
	filesGroup.GET("/:id/download", handlers.Files.HandleDownloadFile)
	filesGroup.DELETE("/:id", handlers.Files.HandleDeleteFile)
	filesGroup.PUT("/:id", handlers.Files.HandleRenameFile)
}

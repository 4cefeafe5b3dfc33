// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dangunter/idaes-model-conn/internal/models"
)

// ConvertHandler handles diagram conversion operations
type ConvertHandler interface {
	HandleConvert(c echo.Context) error
	HandleListConversions(c echo.Context) error
	HandleGetConversion(c echo.Context) error
	HandleGetScene(c echo.Context) error
	HandleGetSceneMsgpack(c echo.Context) error
}

// FileHandler handles uploaded file operations
type FileHandler interface {
	HandleGetRecentFiles(c echo.Context) error
	HandleGetFile(c echo.Context) error
	HandleDownloadFile(c echo.Context) error
	HandleDeleteFile(c echo.Context) error
	HandleRenameFile(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// ConversionManager defines the interface for conversion tracking
// This allows mocking in tests
type ConversionManager interface {
	Add(fileID, fileName string, scene *models.Scene, took time.Duration) *models.ConversionRecord
	AddFailed(fileID, fileName string, convErr error) *models.ConversionRecord
	Get(id string) (*models.ConversionRecord, bool)
	Scene(id string) (*models.Scene, bool)
	List(limit int) []*models.ConversionRecord
}

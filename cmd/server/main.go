package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dangunter/idaes-model-conn/internal/api"
	"github.com/dangunter/idaes-model-conn/internal/config"
	"github.com/dangunter/idaes-model-conn/internal/convert"
	"github.com/dangunter/idaes-model-conn/internal/models"
	"github.com/dangunter/idaes-model-conn/internal/session"
	"github.com/dangunter/idaes-model-conn/internal/storage"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "ConnectivityBridge.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Initialize storage
	fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
	if err != nil {
		fmt.Printf("Failed to initialize storage: %v\n", err)
		os.Exit(1)
	}

	// Re-index documents left in the upload directory by earlier runs so
	// they stay listable and downloadable after a restart
	if entries, err := os.ReadDir(cfg.GetUploadDir()); err == nil {
		restored := 0
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			fi, err := entry.Info()
			if err != nil {
				continue
			}
			fileStore.RegisterFile(&models.FileInfo{
				ID:         entry.Name(),
				Name:       entry.Name(),
				Size:       fi.Size(),
				UploadedAt: fi.ModTime(),
				Status:     "uploaded",
			})
			restored++
		}
		if restored > 0 {
			fmt.Printf("Re-indexed %d existing uploads\n", restored)
		}
	}

	// Initialize conversion manager
	conversionMgr := session.NewManager()

	// Start background conversion cleanup
	go func() {
		ticker := time.NewTicker(time.Duration(cfg.Convert.CleanupIntervalMinutes) * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			conversionMgr.CleanupOldConversions(time.Duration(cfg.Convert.RetentionMinutes) * time.Minute)
		}
	}()

	// Load the element style, optionally overridden by a YAML preset
	style := models.DefaultStyle()
	if cfg.Convert.StylePresetPath != "" {
		style, err = convert.LoadStylePreset(cfg.Convert.StylePresetPath)
		if err != nil {
			fmt.Printf("Failed to load style preset: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded style preset from %s\n", cfg.Convert.StylePresetPath)
	}

	// Initialize API handlers
	handlers := api.NewHandlers(&api.Dependencies{
		Store:         fileStore,
		ConversionMgr: conversionMgr,
		Style:         style,
		Version:       Version,
	})

	e := echo.New()
	e.HTTPErrorHandler = api.ErrorHandler

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			return c.Request().URL.Path == "/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize:         1024 * 4,
		DisablePrintStack: false,
		LogLevel:          0,
	}))

	// Body limit middleware
	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	// API Routes
	api.RegisterRoutes(e, handlers)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:         cfg.GetServerAddr(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Print startup banner
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           Connectivity Bridge Server                      ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	e.Logger.Fatal(e.StartServer(s))
}

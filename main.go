package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/handlers"
	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/storage"
	"github.com/quickpaste/quickpaste/utils"
)

// Version/build info (set via -ldflags at build time)
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "none"
)

func main() {
	// A .env file is optional; environment variables win either way.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	// Print version/build info at startup
	log.Printf("Quick Paste Version: %s", Version)
	log.Printf("Build Time:    %s", BuildTime)
	log.Printf("Commit Hash:   %s", CommitHash)

	// Load configuration
	cfg := config.LoadConfig()
	cfg.Version = Version
	cfg.BuildTime = BuildTime
	cfg.CommitHash = CommitHash

	// Set Gin mode based on environment
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	if utils.IsDebugEnabled() {
		log.Printf("[DEBUG] Loaded config: %+v", cfg)
	}

	// Content store first: it creates the data directory the index lives in.
	content, err := storage.NewFileContentStore(storage.DefaultContentDir(cfg.DataDir))
	if err != nil {
		log.Fatalf("Failed to initialize content store: %v", err)
	}
	index, err := storage.OpenJSONIndex(storage.DefaultIndexPath(cfg.DataDir))
	if err != nil {
		log.Fatalf("Failed to load paste index: %v", err)
	}

	service := services.NewPasteService(index, content, cfg)

	// Drop anything that expired while the process was down.
	if removed := service.SweepExpired(); removed > 0 {
		log.Printf("[INFO] startup sweep removed %d expired pastes", removed)
	}
	log.Printf("Quick Paste started with %d pastes", index.Len())

	router := setupRouter(service, cfg)

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	startJanitor(janitorCtx, service, cfg.CleanupInterval)

	runHTTPServer(router, cfg)
}

// setupRouter creates and configures the Gin router
func setupRouter(service *services.PasteService, cfg *config.Config) *gin.Engine {
	// Initialize handlers
	pasteHandler := handlers.NewPasteHandler(service, cfg)
	viewHandler := handlers.NewViewHandler(service, cfg)
	systemHandler := handlers.NewSystemHandler(service, cfg)

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(handlers.Metrics())

	// Load HTML templates
	router.LoadHTMLGlob("static/*.html")

	// System routes
	router.GET("/", systemHandler.Info)
	router.GET("/health", systemHandler.Health)
	router.GET("/metrics", handlers.MetricsEndpoint())

	// Paste API
	limiter := handlers.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, 10*time.Minute)
	router.POST("/api/paste", handlers.RateLimit(limiter), pasteHandler.Create)
	router.GET("/api/pastes", pasteHandler.List)
	router.DELETE("/api/paste/:id", pasteHandler.Delete)

	// Paste views
	router.GET("/:id", viewHandler.View)
	router.GET("/:id/raw", viewHandler.Raw)
	router.GET("/:id/qr", viewHandler.QR)

	// Global 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	return router
}

// startJanitor launches a background sweeper that deletes expired pastes.
func startJanitor(ctx context.Context, service *services.PasteService, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if removed := service.SweepExpired(); removed > 0 {
					log.Printf("[INFO] janitor removed %d expired pastes", removed)
				}
			}
		}
	}()
}

// runHTTPServer starts the HTTP server and blocks until shutdown
func runHTTPServer(router *gin.Engine, cfg *config.Config) {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting quickpaste server on port %d", cfg.Port)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Create a deadline for shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	} else {
		log.Println("Server shutdown complete")
	}
}

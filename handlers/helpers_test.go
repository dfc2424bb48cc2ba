package handlers

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		BaseURL:       "http://paste.test",
		IDLength:      8,
		MaxPasteSize:  500 * 1000,
		DefaultExpiry: 7 * 24 * time.Hour,
		RateLimit:     1000,
		RateBurst:     1000,
	}
}

func newTestService(t *testing.T, cfg *config.Config) *services.PasteService {
	t.Helper()
	dir := t.TempDir()
	idx, err := storage.OpenJSONIndex(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("OpenJSONIndex failed: %v", err)
	}
	content, err := storage.NewFileContentStore(filepath.Join(dir, "pastes"))
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}
	return services.NewPasteService(idx, content, cfg)
}

// setupTestRouter wires the full route table against a throwaway data dir.
func setupTestRouter(t *testing.T) (*gin.Engine, *services.PasteService, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	service := newTestService(t, cfg)

	pasteHandler := NewPasteHandler(service, cfg)
	viewHandler := NewViewHandler(service, cfg)
	systemHandler := NewSystemHandler(service, cfg)

	router := gin.New()
	router.LoadHTMLGlob("../static/*.html")

	router.GET("/", systemHandler.Info)
	router.GET("/health", systemHandler.Health)
	router.POST("/api/paste", pasteHandler.Create)
	router.GET("/api/pastes", pasteHandler.List)
	router.DELETE("/api/paste/:id", pasteHandler.Delete)
	router.GET("/:id", viewHandler.View)
	router.GET("/:id/raw", viewHandler.Raw)
	router.GET("/:id/qr", viewHandler.QR)
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	})

	return router, service, cfg
}

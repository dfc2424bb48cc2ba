package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/storage"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := &config.Config{
		IDLength:      8,
		MaxPasteSize:  500 * 1000,
		DefaultExpiry: 7 * 24 * time.Hour,
		RateLimit:     1000,
		RateBurst:     1000,
	}
	content, err := storage.NewFileContentStore(filepath.Join(dir, "pastes"))
	if err != nil {
		t.Fatalf("NewFileContentStore failed: %v", err)
	}
	index, err := storage.OpenJSONIndex(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("OpenJSONIndex failed: %v", err)
	}
	service := services.NewPasteService(index, content, cfg)
	return setupRouter(service, cfg)
}

// TestPasteLifecycle walks the documented client flow: create, read raw,
// delete, read again.
func TestPasteLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// Create
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/paste", strings.NewReader(`{"content":"print(1)","language":"python"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("create: invalid response JSON: %v", err)
	}
	if len(created.ID) != 8 {
		t.Fatalf("create: expected 8-character id, got %q", created.ID)
	}

	// Read raw
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/"+created.ID+"/raw", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("raw: expected 200, got %d", w.Code)
	}
	if w.Body.String() != "print(1)" {
		t.Fatalf("raw: content mismatch, got %q", w.Body.String())
	}

	// Delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest("DELETE", "/api/paste/"+created.ID, nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", w.Code)
	}

	// Read after delete
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/"+created.ID+"/raw", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("raw after delete: expected 404, got %d", w.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "go_goroutines") {
		t.Error("expected prometheus exposition output")
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest("PUT", "/api/paste", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown route, got %d", w.Code)
	}
}

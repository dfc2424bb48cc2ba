package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/models"
	"github.com/quickpaste/quickpaste/utils"
)

// defaultListLimit caps /api/pastes responses when no limit is given.
const defaultListLimit = 50

// PasteHandler handles the JSON paste API
type PasteHandler struct {
	service *services.PasteService
	config  *config.Config
}

// NewPasteHandler creates a new paste API handler
func NewPasteHandler(service *services.PasteService, config *config.Config) *PasteHandler {
	return &PasteHandler{
		service: service,
		config:  config,
	}
}

type createRequest struct {
	Content       string `json:"content"`
	Language      string `json:"language"`
	Title         string `json:"title"`
	ExpiresInHrs  *int   `json:"expires_in_hours"`
	BurnAfterRead bool   `json:"burn_after_read"`
}

type createResponse struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	RawURL    string     `json:"raw_url"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Language  string     `json:"language,omitempty"`
}

// Create handles paste creation via POST /api/paste
func (h *PasteHandler) Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	paste, err := h.service.Create(services.CreatePasteRequest{
		Content:       req.Content,
		Language:      req.Language,
		Title:         req.Title,
		ExpiresInHrs:  req.ExpiresInHrs,
		BurnAfterRead: req.BurnAfterRead,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	pastesCreated.Inc()

	url := pasteURL(c, h.config, paste.ID)
	c.JSON(http.StatusCreated, createResponse{
		ID:        paste.ID,
		URL:       url,
		RawURL:    url + "/raw",
		CreatedAt: paste.CreatedAt,
		ExpiresAt: paste.ExpiresAt,
		Language:  paste.Language,
	})
}

type listEntry struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Title     string     `json:"title,omitempty"`
	Language  string     `json:"language,omitempty"`
	Size      int64      `json:"size"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// List handles metadata listing via GET /api/pastes
func (h *PasteHandler) List(c *gin.Context) {
	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	live := h.service.List()
	entries := make([]listEntry, 0, min(limit, len(live)))
	for _, p := range live {
		if len(entries) == limit {
			break
		}
		entries = append(entries, h.toListEntry(c, p))
	}

	c.JSON(http.StatusOK, gin.H{
		"pastes": entries,
		"total":  len(live),
	})
}

func (h *PasteHandler) toListEntry(c *gin.Context, p *models.Paste) listEntry {
	return listEntry{
		ID:        p.ID,
		URL:       pasteURL(c, h.config, p.ID),
		Title:     p.Title,
		Language:  p.Language,
		Size:      p.Size,
		CreatedAt: p.CreatedAt,
		ExpiresAt: p.ExpiresAt,
	}
}

// Delete handles explicit removal via DELETE /api/paste/:id. Deleting an
// unknown id succeeds, so clients can retry without special-casing.
func (h *PasteHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if !utils.IsValidID(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid paste id"})
		return
	}

	if err := h.service.Delete(id); err != nil {
		writeError(c, err)
		return
	}

	pastesDeleted.Inc()
	c.JSON(http.StatusOK, gin.H{"ok": true, "deleted": id})
}

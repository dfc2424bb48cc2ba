package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/quickpaste/quickpaste/config"
	"github.com/quickpaste/quickpaste/highlight"
	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/storage"
	"github.com/quickpaste/quickpaste/utils"
)

// ViewHandler serves paste content to browsers and CLI clients
type ViewHandler struct {
	service *services.PasteService
	config  *config.Config
}

// NewViewHandler creates a new view handler
func NewViewHandler(service *services.PasteService, config *config.Config) *ViewHandler {
	return &ViewHandler{
		service: service,
		config:  config,
	}
}

// View renders a paste with syntax highlighting via GET /:id
func (h *ViewHandler) View(c *gin.Context) {
	id := c.Param("id")

	if !utils.IsValidID(id) {
		writeError(c, storage.ErrNotFound)
		return
	}

	paste, content, err := h.service.Read(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if paste.BurnAfterRead {
		pastesBurned.Inc()
	}

	c.HTML(http.StatusOK, "view.html", gin.H{
		"Title":     paste.DisplayTitle(),
		"Paste":     paste,
		"Language":  highlight.LanguageName(paste.Language),
		"Code":      highlight.HTML(content, paste.Language),
		"CSS":       highlight.CSS(),
		"RawURL":    pasteURL(c, h.config, paste.ID) + "/raw",
		"CreatedAt": paste.CreatedAt.Format("2006-01-02 15:04:05"),
	})
}

// Raw returns paste content as plain text via GET /:id/raw
func (h *ViewHandler) Raw(c *gin.Context) {
	id := c.Param("id")

	if !utils.IsValidID(id) {
		writeError(c, storage.ErrNotFound)
		return
	}

	paste, content, err := h.service.Read(id)
	if err != nil {
		writeError(c, err)
		return
	}
	if paste.BurnAfterRead {
		pastesBurned.Inc()
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", content)
}

// QR returns a PNG QR code of the paste's canonical URL via GET /:id/qr.
// Only metadata is consulted, so a burn-after-read paste survives its QR
// code being fetched.
func (h *ViewHandler) QR(c *gin.Context) {
	id := c.Param("id")

	if !utils.IsValidID(id) {
		writeError(c, storage.ErrNotFound)
		return
	}

	if _, err := h.service.Get(id); err != nil {
		writeError(c, err)
		return
	}

	png, err := qrcode.Encode(pasteURL(c, h.config, id), qrcode.Medium, 256)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

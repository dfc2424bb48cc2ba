package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickpaste/quickpaste/internal/services"
	"github.com/quickpaste/quickpaste/storage"
)

// writeError maps service and storage errors onto HTTP status codes.
// Expired and burned pastes come through as ErrNotFound, so the response
// never reveals whether an id once existed.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Paste not found"})
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrInvalidExpiry):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrContentTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	default:
		log.Printf("[ERROR] request failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Storage failure"})
	}
}

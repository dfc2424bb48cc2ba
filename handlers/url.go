package handlers

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quickpaste/quickpaste/config"
)

// isHTTPS detects if the request is over HTTPS
func isHTTPS(c *gin.Context) bool {
	// Check X-Forwarded-Proto header (common with load balancers/proxies)
	if c.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}
	if c.Request.TLS != nil {
		return true
	}
	return false
}

// baseURL returns the configured base URL, or derives one from the request
// when none is configured.
func baseURL(c *gin.Context, cfg *config.Config) string {
	if cfg.BaseURL != "" {
		return strings.TrimSuffix(cfg.BaseURL, "/")
	}
	scheme := "http"
	if isHTTPS(c) {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s", scheme, c.Request.Host)
}

// pasteURL returns the canonical view URL for a paste id.
func pasteURL(c *gin.Context, cfg *config.Config, id string) string {
	return fmt.Sprintf("%s/%s", baseURL(c, cfg), id)
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guiyumin/vlink/internal/core/pipeline"
	"github.com/guiyumin/vlink/internal/core/version"
)

func errorResponse(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// pipelineError reports any pipeline failure as a client error
func pipelineError(c *gin.Context, err error) {
	pe := pipeline.AsError(err)
	errorResponse(c, http.StatusBadRequest, pe.Message)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "vlink",
		"version": version.Version,
		"endpoints": gin.H{
			"/download?url=":      "Full result + direct download links",
			"/info?url=":          "Only video/audio information",
			"/direct/{type}?url=": "Decrypt encrypted URL",
			"/health":             "Health check",
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version.Version,
	})
}

func (s *Server) handleDownload(c *gin.Context) {
	link := c.Query("url")
	if link == "" {
		errorResponse(c, http.StatusBadRequest, "url missing")
		return
	}

	result, err := s.resolver.Run(c.Request.Context(), link)
	if err != nil {
		pipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleInfo(c *gin.Context) {
	link := c.Query("url")
	if link == "" {
		errorResponse(c, http.StatusBadRequest, "url missing")
		return
	}

	result, err := s.resolver.Run(c.Request.Context(), link)
	if err != nil {
		pipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, result.Summary())
}

// handleDirect decrypts one token; the :type segment is informational only
func (s *Server) handleDirect(c *gin.Context) {
	encrypted := c.Query("url")
	if encrypted == "" {
		errorResponse(c, http.StatusBadRequest, "encrypted url missing")
		return
	}

	directURL, err := s.resolver.Direct(c.Request.Context(), encrypted)
	if err != nil {
		pipelineError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"direct_url": directURL,
	})
}

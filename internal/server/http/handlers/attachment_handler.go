package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "suppliertracker/internal/domain/errors"
)

// AttachmentHandler serves stored attachment objects.
type AttachmentHandler struct {
	facade AttachmentFacade
}

// NewAttachmentHandler creates AttachmentHandler instance.
func NewAttachmentHandler(facade AttachmentFacade) *AttachmentHandler {
	return &AttachmentHandler{facade: facade}
}

// Serve handles GET /attachments/*path.
func (h *AttachmentHandler) Serve(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")
	if path == "" {
		c.Status(http.StatusNotFound)
		return
	}

	body, meta, err := h.facade.OpenAttachment(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	defer body.Close()

	if meta != nil {
		if meta.ContentType != "" {
			c.Header("Content-Type", meta.ContentType)
		}
		if meta.CacheControl != "" {
			c.Header("Cache-Control", "max-age="+meta.CacheControl)
		}
	}
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

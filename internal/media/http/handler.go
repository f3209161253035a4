package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nilahq/scheduling-backend/internal/auth"
	"github.com/nilahq/scheduling-backend/internal/media"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/pkg/response"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

// Uploads above this size are rejected before decoding.
const maxUploadBytes = 10 << 20

type MediaHandler struct {
	mediaService  media.Service
	tenantService tenant.Service
}

func NewHandler(mediaService media.Service, tenantService tenant.Service) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, tenantService: tenantService}
}

func (h *MediaHandler) requireManager(c *gin.Context, tenantID string) bool {
	ok, err := h.tenantService.IsManagerOrAbove(c.Request.Context(), tenantID, auth.GetUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check permissions"})
		return false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
		return false
	}
	return true
}

// Upload stores a venue photo or logo from a multipart form.
// Access Control: tenant manager.
func (h *MediaHandler) Upload(c *gin.Context) {
	var form UploadForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid form", "details": err.Error()})
		return
	}

	if ok := h.requireManager(c, form.TenantID); !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file part is required"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read upload"})
		return
	}
	defer src.Close()

	f, err := h.mediaService.Upload(c.Request.Context(), media.UploadRequest{
		TenantID:    form.TenantID,
		Kind:        form.Kind,
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     src,
		UploadedBy:  auth.GetUserID(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, media.ErrInvalidKind),
			errors.Is(err, media.ErrUnsupportedType),
			errors.Is(err, media.ErrEmptyFile):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload media"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewMediaResponse(f))
}

// List retrieves media metadata for a tenant.
func (h *MediaHandler) List(c *gin.Context) {
	var req ListMediaRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	req.Normalize()

	files, total, err := h.mediaService.List(c.Request.Context(), media.Filter{
		TenantID: req.TenantID,
		Kind:     req.Kind,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list media"})
		return
	}

	items := make([]MediaResponse, len(files))
	for i, f := range files {
		items[i] = NewMediaResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Content streams the stored image. ?thumbnail=true serves the thumbnail.
func (h *MediaHandler) Content(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.mediaService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get media"})
		}
		return
	}

	rc, err := h.mediaService.Open(c.Request.Context(), f, c.Query("thumbnail") == "true")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "media content not found"})
		return
	}
	defer rc.Close()

	c.Header("Content-Type", f.ContentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

// Delete removes a media file and its blobs.
// Access Control: tenant manager.
func (h *MediaHandler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	f, err := h.mediaService.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get media"})
		}
		return
	}

	if ok := h.requireManager(c, f.TenantID); !ok {
		return
	}

	if err := h.mediaService.Delete(c.Request.Context(), uri.ID); err != nil {
		switch {
		case errors.Is(err, media.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "media not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete media"})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

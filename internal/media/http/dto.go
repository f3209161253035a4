package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/media"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
)

type MediaResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewMediaResponse(f *media.File) MediaResponse {
	return MediaResponse{
		ID:          f.ID,
		TenantID:    f.TenantID,
		Kind:        f.Kind,
		FileName:    f.FileName,
		ContentType: f.ContentType,
		SizeBytes:   f.SizeBytes,
		UploadedBy:  f.UploadedBy,
		CreatedAt:   f.CreatedAt,
	}
}

// ListMediaRequest defines query parameters for listing media files.
type ListMediaRequest struct {
	request.ListParams
	TenantID string `form:"tenant_id" binding:"required,uuid"`
	Kind     string `form:"kind" binding:"omitempty,oneof=photo logo"`
}

// UploadForm binds the multipart upload fields next to the file part.
type UploadForm struct {
	TenantID string `form:"tenant_id" binding:"required,uuid"`
	Kind     string `form:"kind" binding:"required,oneof=photo logo"`
}

package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/pkg/storage"
)

// Venue photos are fitted inside this box before storage.
const (
	maxPhotoWidth  = 1600
	maxPhotoHeight = 1200
)

// UploadRequest defines fields for uploading a venue image.
type UploadRequest struct {
	TenantID    string
	Kind        string
	FileName    string
	ContentType string
	Content     io.Reader
	UploadedBy  string
}

// Service defines business logic for venue media. Images are re-encoded and
// downscaled on upload; originals are not kept.
type Service interface {
	Upload(ctx context.Context, req UploadRequest) (*File, error)
	GetByID(ctx context.Context, id string) (*File, error)
	List(ctx context.Context, filter Filter) ([]*File, int, error)
	Open(ctx context.Context, f *File, thumbnail bool) (io.ReadCloser, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	store     storage.Storage
	processor *storage.ImageProcessor
	logger    *zap.Logger
}

func NewService(repo Repository, store storage.Storage, processor *storage.ImageProcessor, logger *zap.Logger) Service {
	return &service{repo: repo, store: store, processor: processor, logger: logger}
}

func (s *service) Upload(ctx context.Context, req UploadRequest) (*File, error) {
	if !validKind(req.Kind) {
		return nil, ErrInvalidKind
	}
	switch req.ContentType {
	case "image/jpeg", "image/png", "image/webp":
	default:
		return nil, ErrUnsupportedType
	}

	raw, err := io.ReadAll(req.Content)
	if err != nil {
		return nil, fmt.Errorf("read upload failed: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptyFile
	}

	fitted, err := s.processor.Fit(bytes.NewReader(raw), maxPhotoWidth, maxPhotoHeight)
	if err != nil {
		return nil, ErrUnsupportedType
	}
	fittedBytes, err := io.ReadAll(fitted)
	if err != nil {
		return nil, fmt.Errorf("read processed image failed: %w", err)
	}

	thumb, err := s.processor.Thumbnail(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupportedType
	}

	id := uuid.NewString()
	filePath := path.Join(req.TenantID, req.Kind, id+".jpg")
	thumbPath := path.Join(req.TenantID, req.Kind, id+"_thumb.jpg")

	if err := s.store.Save(ctx, filePath, bytes.NewReader(fittedBytes)); err != nil {
		return nil, fmt.Errorf("store image failed: %w", err)
	}
	if err := s.store.Save(ctx, thumbPath, thumb); err != nil {
		_ = s.store.Delete(ctx, filePath)
		return nil, fmt.Errorf("store thumbnail failed: %w", err)
	}

	f := &File{
		TenantID:      req.TenantID,
		Kind:          req.Kind,
		FileName:      sanitizeFileName(req.FileName),
		ContentType:   "image/jpeg",
		SizeBytes:     int64(len(fittedBytes)),
		Path:          filePath,
		ThumbnailPath: thumbPath,
		UploadedBy:    req.UploadedBy,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		_ = s.store.Delete(ctx, filePath)
		_ = s.store.Delete(ctx, thumbPath)
		return nil, err
	}

	s.logger.Info("media uploaded",
		zap.String("id", f.ID),
		zap.String("tenant_id", f.TenantID),
		zap.String("kind", f.Kind),
		zap.Int64("size_bytes", f.SizeBytes),
	)
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*File, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*File, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Open(ctx context.Context, f *File, thumbnail bool) (io.ReadCloser, error) {
	p := f.Path
	if thumbnail {
		p = f.ThumbnailPath
	}
	return s.store.Get(ctx, p)
}

func (s *service) Delete(ctx context.Context, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.store.Delete(ctx, f.Path)
	_ = s.store.Delete(ctx, f.ThumbnailPath)
	return nil
}

// sanitizeFileName keeps only the base name of the client-supplied file name.
func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "upload.jpg"
	}
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	return name
}

package media

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("media file not found")
	ErrInvalidKind     = errors.New("invalid media kind")
	ErrUnsupportedType = errors.New("unsupported content type")
	ErrEmptyFile       = errors.New("uploaded file is empty")
)

// Media kinds.
const (
	KindPhoto = "photo"
	KindLogo  = "logo"
)

// File is a stored venue image. Path and ThumbnailPath are relative to the
// storage root.
type File struct {
	ID            string
	TenantID      string
	Kind          string
	FileName      string
	ContentType   string
	SizeBytes     int64
	Path          string
	ThumbnailPath string
	UploadedBy    string
	CreatedAt     time.Time
}

// Filter defines list criteria for media files.
type Filter struct {
	TenantID string
	Kind     string
	Page     int
	PageSize int
}

func validKind(kind string) bool {
	switch kind {
	case KindPhoto, KindLogo:
		return true
	}
	return false
}

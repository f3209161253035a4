package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
)

// ConfigDTO mirrors catalog.Config on the wire.
type ConfigDTO struct {
	BookingMode       string   `json:"booking_mode" binding:"omitempty,oneof=per_court open"`
	IncludedCourts    []string `json:"included_courts"`
	MinAdvanceHours   int      `json:"min_advance_hours" binding:"omitempty,min=0"`
	CancellationHours int      `json:"cancellation_hours" binding:"omitempty,min=0"`
	PrepayPercent     int      `json:"prepay_percent" binding:"omitempty,min=0,max=100"`
	PeakStart         string   `json:"peak_start" binding:"omitempty,len=5"`
	PeakEnd           string   `json:"peak_end" binding:"omitempty,len=5"`
}

func (d *ConfigDTO) toDomain() catalog.Config {
	return catalog.Config{
		BookingMode:       d.BookingMode,
		IncludedCourts:    d.IncludedCourts,
		MinAdvanceHours:   d.MinAdvanceHours,
		CancellationHours: d.CancellationHours,
		PrepayPercent:     d.PrepayPercent,
		PeakStart:         d.PeakStart,
		PeakEnd:           d.PeakEnd,
	}
}

func newConfigDTO(c catalog.Config) ConfigDTO {
	return ConfigDTO{
		BookingMode:       c.BookingMode,
		IncludedCourts:    c.IncludedCourts,
		MinAdvanceHours:   c.MinAdvanceHours,
		CancellationHours: c.CancellationHours,
		PrepayPercent:     c.PrepayPercent,
		PeakStart:         c.PeakStart,
		PeakEnd:           c.PeakEnd,
	}
}

type ServiceResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	Discipline  string    `json:"discipline"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	DurationMin int       `json:"duration_min"`
	IsOnline    bool      `json:"is_online"`
	IsActive    bool      `json:"is_active"`
	Config      ConfigDTO `json:"config"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewServiceResponse(s *catalog.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Name:        s.Name,
		Discipline:  s.Discipline,
		Description: s.Description,
		PriceCents:  s.PriceCents,
		DurationMin: s.DurationMin,
		IsOnline:    s.IsOnline,
		IsActive:    s.IsActive,
		Config:      newConfigDTO(s.Config),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ListServicesRequest defines query parameters for listing services.
type ListServicesRequest struct {
	request.ListParams
	TenantID   string `form:"tenant_id" binding:"omitempty,uuid"`
	Discipline string `form:"discipline"`
	Keyword    string `form:"q"`
	IsActive   *bool  `form:"is_active"`
}

type CreateServiceRequest struct {
	TenantID    string     `json:"tenant_id" binding:"required,uuid"`
	Name        string     `json:"name" binding:"required"`
	Discipline  string     `json:"discipline"`
	Description string     `json:"description"`
	PriceCents  int64      `json:"price_cents" binding:"min=0"`
	DurationMin int        `json:"duration_min" binding:"required,min=1"`
	IsOnline    bool       `json:"is_online"`
	Config      *ConfigDTO `json:"config"`
}

type UpdateServiceRequest struct {
	Name        *string    `json:"name"`
	Discipline  *string    `json:"discipline"`
	Description *string    `json:"description"`
	PriceCents  *int64     `json:"price_cents" binding:"omitempty,min=0"`
	DurationMin *int       `json:"duration_min" binding:"omitempty,min=1"`
	IsOnline    *bool      `json:"is_online"`
	IsActive    *bool      `json:"is_active"`
	Config      *ConfigDTO `json:"config"`
}

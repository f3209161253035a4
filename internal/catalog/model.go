package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("service not found")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidPrice    = errors.New("price cannot be negative")
	ErrInvalidMode     = errors.New("invalid booking mode")
)

// Booking modes. PerCourt means every booking occupies one court from the
// included set for the whole duration.
const (
	ModePerCourt = "per_court"
	ModeOpen     = "open"
)

// Config is the per-service booking policy stored as JSONB.
type Config struct {
	BookingMode       string   `json:"booking_mode"`
	IncludedCourts    []string `json:"included_courts"`
	MinAdvanceHours   int      `json:"min_advance_hours"`
	CancellationHours int      `json:"cancellation_hours"`
	PrepayPercent     int      `json:"prepay_percent"`
	PeakStart         string   `json:"peak_start,omitempty"`
	PeakEnd           string   `json:"peak_end,omitempty"`
}

// Service is a bookable marketplace offering of a tenant.
type Service struct {
	ID          string
	TenantID    string
	Name        string
	Discipline  string
	Description string
	PriceCents  int64
	DurationMin int
	IsOnline    bool
	IsActive    bool
	Config      Config
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Duration returns the service duration as a time.Duration.
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMin) * time.Minute
}

// Filter defines list criteria for services.
type Filter struct {
	TenantID   string
	Discipline string
	Keyword    string
	IsActive   *bool
	Page       int
	PageSize   int
}

func validMode(mode string) bool {
	switch mode {
	case ModePerCourt, ModeOpen:
		return true
	}
	return false
}

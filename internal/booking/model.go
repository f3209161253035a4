package booking

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("appointment not found")
	ErrInvalidRange      = errors.New("start time must be before end time")
	ErrStartInPast       = errors.New("start time is in the past")
	ErrTooSoon           = errors.New("start time violates the minimum advance window")
	ErrCourtNotIncluded  = errors.New("court is not offered by this service")
	ErrCourtUnavailable  = errors.New("court is not available for the requested range")
	ErrNoCourtAvailable  = errors.New("no court is available for the requested range")
	ErrConflict          = errors.New("appointment conflicts with an existing booking or block")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrTooLateToCancel   = errors.New("cancellation window has passed")
	ErrServiceInactive   = errors.New("service is not active")
)

// Appointment statuses.
const (
	StatusRequested = "requested"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusNoShow    = "no_show"
)

// Appointment is a client booking of a service, optionally pinned to a court.
type Appointment struct {
	ID           string
	TenantID     string
	ServiceID    string
	ClientUserID string
	CourtName    string
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	Notes        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.Status == StatusRequested || a.Status == StatusConfirmed
}

// Overlaps reports whether the appointment intersects [start, end).
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.StartTime.Before(end) && start.Before(a.EndTime)
}

// Filter defines list criteria for appointments.
type Filter struct {
	TenantID     string
	ServiceID    string
	ClientUserID string
	CourtName    string
	Status       string
	From         time.Time
	To           time.Time
	Page         int
	PageSize     int
}

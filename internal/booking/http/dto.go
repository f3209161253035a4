package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
)

type AppointmentResponse struct {
	ID           string    `json:"id"`
	TenantID     string    `json:"tenant_id"`
	ServiceID    string    `json:"service_id"`
	ClientUserID string    `json:"client_user_id"`
	CourtName    string    `json:"court_name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Notes        string    `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewAppointmentResponse(a *booking.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:           a.ID,
		TenantID:     a.TenantID,
		ServiceID:    a.ServiceID,
		ClientUserID: a.ClientUserID,
		CourtName:    a.CourtName,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		Status:       a.Status,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

// ListAppointmentsRequest defines query parameters for listing appointments.
type ListAppointmentsRequest struct {
	request.ListParams
	TenantID  string     `form:"tenant_id" binding:"omitempty,uuid"`
	ServiceID string     `form:"service_id" binding:"omitempty,uuid"`
	CourtName string     `form:"court_name"`
	Status    string     `form:"status" binding:"omitempty,oneof=requested confirmed cancelled no_show"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Mine      bool       `form:"mine"`
}

type CreateAppointmentRequest struct {
	ServiceID string    `json:"service_id" binding:"required,uuid"`
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time" binding:"required"`
	Notes     string    `json:"notes"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"required"`
}

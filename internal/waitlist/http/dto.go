package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/waitlist"
)

type EntryResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	ServiceID string    `json:"service_id"`
	UserID    string    `json:"user_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewEntryResponse(e *waitlist.Entry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		TenantID:  e.TenantID,
		ServiceID: e.ServiceID,
		UserID:    e.UserID,
		Status:    e.Status,
		CreatedAt: e.CreatedAt,
	}
}

type OfferResponse struct {
	ID        string    `json:"id"`
	EntryID   string    `json:"entry_id"`
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func NewOfferResponse(o *waitlist.Offer) OfferResponse {
	return OfferResponse{
		ID:        o.ID,
		EntryID:   o.EntryID,
		CourtName: o.CourtName,
		StartTime: o.StartTime,
		EndTime:   o.EndTime,
		Status:    o.Status,
		ExpiresAt: o.ExpiresAt,
		CreatedAt: o.CreatedAt,
	}
}

type JoinRequest struct {
	TenantID  string `json:"tenant_id" binding:"required,uuid"`
	ServiceID string `json:"service_id" binding:"required,uuid"`
}

// ListEntriesRequest defines query parameters for listing waitlist entries.
type ListEntriesRequest struct {
	request.ListParams
	TenantID  string `form:"tenant_id" binding:"omitempty,uuid"`
	ServiceID string `form:"service_id" binding:"omitempty,uuid"`
	Status    string `form:"status" binding:"omitempty,oneof=waiting offered accepted removed"`
	Mine      bool   `form:"mine"`
}

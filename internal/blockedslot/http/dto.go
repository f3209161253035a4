package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
)

type BlockedSlotResponse struct {
	ID        string    `json:"id"`
	TenantID  string    `json:"tenant_id"`
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockedSlotResponse(b *blockedslot.BlockedSlot) BlockedSlotResponse {
	return BlockedSlotResponse{
		ID:        b.ID,
		TenantID:  b.TenantID,
		CourtName: b.CourtName,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
		CreatedBy: b.CreatedBy,
		CreatedAt: b.CreatedAt,
	}
}

// ListBlockedSlotsRequest defines query parameters for listing blocks.
type ListBlockedSlotsRequest struct {
	request.ListParams
	TenantID  string     `form:"tenant_id" binding:"required,uuid"`
	CourtName string     `form:"court_name"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}

type CreateBlockedSlotRequest struct {
	TenantID  string    `json:"tenant_id" binding:"required,uuid"`
	CourtName string    `json:"court_name"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Reason    string    `json:"reason"`
}

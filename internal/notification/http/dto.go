package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/notification"
	"github.com/nilahq/scheduling-backend/internal/pkg/request"
)

type NotificationResponse struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id"`
	Channel     string         `json:"channel"`
	ToAddress   string         `json:"to_address"`
	Payload     map[string]any `json:"payload"`
	Status      string         `json:"status"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
	SentAt      *time.Time     `json:"sent_at"`
	LastError   *string        `json:"last_error"`
	CreatedAt   time.Time      `json:"created_at"`
}

func NewNotificationResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		TenantID:    n.TenantID,
		Channel:     n.Channel,
		ToAddress:   n.ToAddress,
		Payload:     n.Payload,
		Status:      n.Status,
		ScheduledAt: n.ScheduledAt,
		SentAt:      n.SentAt,
		LastError:   n.LastError,
		CreatedAt:   n.CreatedAt,
	}
}

// ListNotificationsRequest defines query parameters for listing notifications.
type ListNotificationsRequest struct {
	request.ListParams
	TenantID string `form:"tenant_id" binding:"required,uuid"`
	Channel  string `form:"channel" binding:"omitempty,oneof=whatsapp email push"`
	Status   string `form:"status" binding:"omitempty,oneof=queued sent failed"`
}

// QueueReminderRequest enqueues an appointment reminder for later delivery.
type QueueReminderRequest struct {
	TenantID    string         `json:"tenant_id" binding:"required,uuid"`
	Channel     string         `json:"channel" binding:"required,oneof=whatsapp email push"`
	ToAddress   string         `json:"to_address" binding:"required"`
	Payload     map[string]any `json:"payload"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
}

type MarkFailedRequest struct {
	Reason string `json:"reason" binding:"required"`
}

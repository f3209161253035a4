package notification

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("notification not found")
	ErrInvalidChannel  = errors.New("invalid notification channel")
	ErrAddressRequired = errors.New("destination address is required")
	ErrAlreadySent     = errors.New("notification already sent")
)

// Delivery channels.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelEmail    = "email"
	ChannelPush     = "push"
)

// Queue states.
const (
	StatusQueued = "queued"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Notification is a queued outbound message. Payload carries channel-specific
// template data as JSONB.
type Notification struct {
	ID          string
	TenantID    string
	Channel     string
	ToAddress   string
	Payload     map[string]any
	Status      string
	ScheduledAt *time.Time
	SentAt      *time.Time
	LastError   *string
	CreatedAt   time.Time
}

// Filter defines list criteria for notifications.
type Filter struct {
	TenantID string
	Channel  string
	Status   string
	Page     int
	PageSize int
}

func validChannel(channel string) bool {
	switch channel {
	case ChannelWhatsApp, ChannelEmail, ChannelPush:
		return true
	}
	return false
}

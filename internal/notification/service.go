package notification

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// QueueRequest defines fields for enqueuing an outbound message.
type QueueRequest struct {
	TenantID    string
	Channel     string
	ToAddress   string
	Payload     map[string]any
	ScheduledAt *time.Time
}

// Service defines business logic for the notification queue. Actual delivery
// runs out-of-process; this service only manages queue state.
type Service interface {
	Queue(ctx context.Context, req QueueRequest) (*Notification, error)
	GetByID(ctx context.Context, id string) (*Notification, error)
	List(ctx context.Context, filter Filter) ([]*Notification, int, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) Queue(ctx context.Context, req QueueRequest) (*Notification, error) {
	if !validChannel(req.Channel) {
		return nil, ErrInvalidChannel
	}
	addr := strings.TrimSpace(req.ToAddress)
	if addr == "" {
		return nil, ErrAddressRequired
	}

	n := &Notification{
		TenantID:    req.TenantID,
		Channel:     req.Channel,
		ToAddress:   addr,
		Payload:     req.Payload,
		Status:      StatusQueued,
		ScheduledAt: req.ScheduledAt,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, err
	}

	s.logger.Info("notification queued",
		zap.String("id", n.ID),
		zap.String("tenant_id", n.TenantID),
		zap.String("channel", n.Channel),
	)
	return n, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Notification, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Notification, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) MarkSent(ctx context.Context, id string) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n.Status == StatusSent {
		return ErrAlreadySent
	}
	return s.repo.MarkSent(ctx, id)
}

func (s *service) MarkFailed(ctx context.Context, id, reason string) error {
	if err := s.repo.MarkFailed(ctx, id, reason); err != nil {
		return err
	}
	s.logger.Warn("notification delivery failed",
		zap.String("id", id),
		zap.String("reason", reason),
	)
	return nil
}

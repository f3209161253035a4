package blockedslot

import (
	"context"
	"strings"
	"time"

	"github.com/nilahq/scheduling-backend/internal/tenant"
)

// CreateRequest defines fields for creating a block.
type CreateRequest struct {
	TenantID  string
	CourtName string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedBy string
}

// Service defines business logic for operator blocks.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*BlockedSlot, error)
	GetByID(ctx context.Context, id string) (*BlockedSlot, error)
	List(ctx context.Context, filter Filter) ([]*BlockedSlot, int, error)
	ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*BlockedSlot, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo          Repository
	tenantService tenant.Service
}

func NewService(repo Repository, tenantService tenant.Service) Service {
	return &service{repo: repo, tenantService: tenantService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*BlockedSlot, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidRange
	}

	t, err := s.tenantService.GetByID(ctx, req.TenantID)
	if err != nil {
		return nil, err
	}

	court := strings.TrimSpace(req.CourtName)
	if court != "" {
		known := false
		for _, c := range t.Courts {
			if c == court {
				known = true
				break
			}
		}
		if !known {
			return nil, ErrUnknownCourt
		}
	}

	b := &BlockedSlot{
		TenantID:  req.TenantID,
		CourtName: court,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    strings.TrimSpace(req.Reason),
		CreatedBy: req.CreatedBy,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*BlockedSlot, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*BlockedSlot, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*BlockedSlot, error) {
	return s.repo.ListOverlapping(ctx, tenantID, from, to)
}

func (s *service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

package catalog

import (
	"context"
	"strings"

	"github.com/nilahq/scheduling-backend/internal/tenant"
)

// CreateRequest defines fields for creating a service.
type CreateRequest struct {
	TenantID    string
	Name        string
	Discipline  string
	Description string
	PriceCents  int64
	DurationMin int
	IsOnline    bool
	Config      Config
}

// UpdateRequest defines the fields that can be updated on a service.
type UpdateRequest struct {
	Name        *string
	Discipline  *string
	Description *string
	PriceCents  *int64
	DurationMin *int
	IsOnline    *bool
	IsActive    *bool
	Config      *Config
}

// Manager defines business logic for the service catalog. The entity itself is
// named Service, hence the different interface name.
type Manager interface {
	Create(ctx context.Context, req CreateRequest) (*Service, error)
	GetByID(ctx context.Context, id string) (*Service, error)
	List(ctx context.Context, filter Filter) ([]*Service, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Service, error)
	Delete(ctx context.Context, id string) error

	// BookableCourts resolves the courts a service may occupy: its configured
	// included courts intersected with the tenant roster, or the whole roster
	// when no restriction is configured.
	BookableCourts(ctx context.Context, svc *Service) ([]string, error)
}

type manager struct {
	repo          Repository
	tenantService tenant.Service
}

func NewManager(repo Repository, tenantService tenant.Service) Manager {
	return &manager{repo: repo, tenantService: tenantService}
}

func (m *manager) Create(ctx context.Context, req CreateRequest) (*Service, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.DurationMin <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.PriceCents < 0 {
		return nil, ErrInvalidPrice
	}

	cfg := req.Config
	if cfg.BookingMode == "" {
		cfg.BookingMode = ModePerCourt
	}
	if !validMode(cfg.BookingMode) {
		return nil, ErrInvalidMode
	}

	// The tenant must exist; FK errors at insert time would be opaque.
	if _, err := m.tenantService.GetByID(ctx, req.TenantID); err != nil {
		return nil, err
	}

	s := &Service{
		TenantID:    req.TenantID,
		Name:        name,
		Discipline:  strings.TrimSpace(req.Discipline),
		Description: req.Description,
		PriceCents:  req.PriceCents,
		DurationMin: req.DurationMin,
		IsOnline:    req.IsOnline,
		IsActive:    true,
		Config:      cfg,
	}
	if err := m.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *manager) GetByID(ctx context.Context, id string) (*Service, error) {
	return m.repo.GetByID(ctx, id)
}

func (m *manager) List(ctx context.Context, filter Filter) ([]*Service, int, error) {
	return m.repo.List(ctx, filter)
}

func (m *manager) Update(ctx context.Context, id string, req UpdateRequest) (*Service, error) {
	s, err := m.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		s.Name = name
	}
	if req.Discipline != nil {
		s.Discipline = strings.TrimSpace(*req.Discipline)
	}
	if req.Description != nil {
		s.Description = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, ErrInvalidPrice
		}
		s.PriceCents = *req.PriceCents
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			return nil, ErrInvalidDuration
		}
		s.DurationMin = *req.DurationMin
	}
	if req.IsOnline != nil {
		s.IsOnline = *req.IsOnline
	}
	if req.IsActive != nil {
		s.IsActive = *req.IsActive
	}
	if req.Config != nil {
		cfg := *req.Config
		if cfg.BookingMode == "" {
			cfg.BookingMode = ModePerCourt
		}
		if !validMode(cfg.BookingMode) {
			return nil, ErrInvalidMode
		}
		s.Config = cfg
	}

	if err := m.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (m *manager) Delete(ctx context.Context, id string) error {
	return m.repo.Delete(ctx, id)
}

func (m *manager) BookableCourts(ctx context.Context, svc *Service) ([]string, error) {
	t, err := m.tenantService.GetByID(ctx, svc.TenantID)
	if err != nil {
		return nil, err
	}

	if len(svc.Config.IncludedCourts) == 0 {
		return t.Courts, nil
	}

	roster := make(map[string]struct{}, len(t.Courts))
	for _, c := range t.Courts {
		roster[c] = struct{}{}
	}

	var courts []string
	for _, c := range svc.Config.IncludedCourts {
		if _, ok := roster[c]; ok {
			courts = append(courts, c)
		}
	}
	return courts, nil
}

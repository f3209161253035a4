package tenant

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/nilahq/scheduling-backend/internal/schedule"
	"github.com/nilahq/scheduling-backend/internal/user"
)

// CreateRequest defines fields for creating a tenant. The creating user becomes the
// owner member.
type CreateRequest struct {
	Name              string
	EstablishmentType string
	RevenueModel      string
	OpeningHours      string
	Courts            []string
	OwnerUserID       string
}

// UpdateRequest defines the fields that can be updated on a tenant.
// Schedule carries the structured opening-hours form from the edit UI; when set it
// takes precedence over OpeningHours and is serialized through the codec.
type UpdateRequest struct {
	Name              *string
	EstablishmentType *string
	RevenueModel      *string
	OpeningHours      *string
	Schedule          *schedule.WeeklySchedule
	Courts            *[]string
	IsActive          *bool
}

// AddMemberRequest defines fields for adding a member.
type AddMemberRequest struct {
	UserID string
	Role   string
}

// Service defines business logic for tenants.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Tenant, error)
	GetByID(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context, filter Filter) ([]*Tenant, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Tenant, error)
	Delete(ctx context.Context, id string) error

	GetMember(ctx context.Context, tenantID, userID string) (*Member, error)
	AddMember(ctx context.Context, tenantID string, req AddMemberRequest) error
	RemoveMember(ctx context.Context, tenantID, userID string) error
	UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error
	ListMembers(ctx context.Context, tenantID string, filter MemberFilter) ([]*Member, int, error)

	// IsManagerOrAbove reports whether the user is an owner or admin of the tenant,
	// or a system admin.
	IsManagerOrAbove(ctx context.Context, tenantID, userID string) (bool, error)
	// IsActiveMember reports whether the user has any active membership in the tenant.
	IsActiveMember(ctx context.Context, tenantID, userID string) (bool, error)
}

type service struct {
	repo        Repository
	userService user.Service
}

// NewService creates a new tenant service.
func NewService(repo Repository, userService user.Service) Service {
	return &service{repo: repo, userService: userService}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Tenant, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !validType(req.EstablishmentType) {
		return nil, ErrInvalidType
	}
	if !validRevenue(req.RevenueModel) {
		return nil, ErrInvalidRevenue
	}

	t := &Tenant{
		Name:              name,
		Slug:              Slugify(name),
		EstablishmentType: req.EstablishmentType,
		RevenueModel:      req.RevenueModel,
		OpeningHours:      strings.TrimSpace(req.OpeningHours),
		Courts:            cleanCourts(req.Courts),
		IsActive:          true,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}

	if req.OwnerUserID != "" {
		if err := s.repo.AddMember(ctx, t.ID, req.OwnerUserID, RoleOwner); err != nil {
			return nil, err
		}
	}

	return t, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Tenant, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Tenant, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		newName := strings.TrimSpace(*req.Name)
		if newName == "" {
			return nil, ErrNameRequired
		}
		t.Name = newName
	}
	if req.EstablishmentType != nil {
		if !validType(*req.EstablishmentType) {
			return nil, ErrInvalidType
		}
		t.EstablishmentType = *req.EstablishmentType
	}
	if req.RevenueModel != nil {
		if !validRevenue(*req.RevenueModel) {
			return nil, ErrInvalidRevenue
		}
		t.RevenueModel = *req.RevenueModel
	}

	// The structured form wins when both are sent. Encode falls back to the
	// current stored string when the structured form is incomplete.
	if req.Schedule != nil {
		t.OpeningHours = req.Schedule.Encode(t.OpeningHours)
	} else if req.OpeningHours != nil {
		t.OpeningHours = strings.TrimSpace(*req.OpeningHours)
	}

	if req.Courts != nil {
		t.Courts = cleanCourts(*req.Courts)
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetMember(ctx context.Context, tenantID, userID string) (*Member, error) {
	return s.repo.GetMember(ctx, tenantID, userID)
}

func (s *service) AddMember(ctx context.Context, tenantID string, req AddMemberRequest) error {
	if !validRole(req.Role) {
		return ErrInvalidRole
	}

	if _, err := s.repo.GetByID(ctx, tenantID); err != nil {
		return err
	}

	if _, err := s.userService.GetByID(ctx, req.UserID); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			return ErrUserNotFound
		default:
			return err
		}
	}

	return s.repo.AddMember(ctx, tenantID, req.UserID, req.Role)
}

func (s *service) RemoveMember(ctx context.Context, tenantID, userID string) error {
	if _, err := s.repo.GetByID(ctx, tenantID); err != nil {
		return err
	}
	return s.repo.RemoveMember(ctx, tenantID, userID)
}

func (s *service) UpdateMemberRole(ctx context.Context, tenantID, userID, role string) error {
	if !validRole(role) {
		return ErrInvalidRole
	}
	if _, err := s.repo.GetByID(ctx, tenantID); err != nil {
		return err
	}
	return s.repo.UpdateMemberRole(ctx, tenantID, userID, role)
}

func (s *service) ListMembers(ctx context.Context, tenantID string, filter MemberFilter) ([]*Member, int, error) {
	if _, err := s.repo.GetByID(ctx, tenantID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMembers(ctx, tenantID, filter)
}

func (s *service) IsManagerOrAbove(ctx context.Context, tenantID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if u.IsSystemAdmin {
		return true, nil
	}

	member, err := s.repo.GetMember(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return false, nil
		}
		return false, err
	}

	return member.IsActive && (member.Role == RoleOwner || member.Role == RoleAdmin), nil
}

func (s *service) IsActiveMember(ctx context.Context, tenantID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}

	member, err := s.repo.GetMember(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotMember) {
			return false, nil
		}
		return false, err
	}
	return member.IsActive, nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a tenant name.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "sucursal"
	}
	return slug
}

func cleanCourts(courts []string) []string {
	var out []string
	for _, c := range courts {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

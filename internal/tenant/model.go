package tenant

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("tenant not found")
	ErrNameRequired      = errors.New("name is required")
	ErrSlugTaken         = errors.New("slug already in use")
	ErrInvalidType       = errors.New("invalid establishment type")
	ErrInvalidRevenue    = errors.New("invalid revenue model")
	ErrUserAlreadyMember = errors.New("user is already a member of this tenant")
	ErrUserNotMember     = errors.New("user is not a member of this tenant")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidRole       = errors.New("invalid member role")
)

// Establishment types supported by the platform.
const (
	TypeSala   = "sala"
	TypeCabina = "cabina"
	TypePuesto = "puesto"
	TypeCancha = "cancha"
)

// Revenue models.
const (
	RevenueTurnos        = "turnos"
	RevenueSuscripciones = "suscripciones"
	RevenueMixto         = "mixto"
)

// Membership roles, matching the database enum.
const (
	RoleOwner  = "owner"
	RoleAdmin  = "admin"
	RoleStaff  = "staff"
	RoleClient = "client"
)

// Tenant represents an establishment: the top-level multi-tenancy boundary.
// OpeningHours holds the free-text weekly schedule; the schedule package is the only
// code that interprets it. Courts lists the bookable units of the venue.
type Tenant struct {
	ID                string
	Name              string
	Slug              string
	EstablishmentType string
	RevenueModel      string
	OpeningHours      string
	Courts            []string
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Filter defines parameters for listing tenants.
type Filter struct {
	Keyword  string
	IsActive *bool
	Page     int
	PageSize int
}

// Member represents a user with a specific role within a tenant.
// It joins data from tenant_memberships and users tables.
type Member struct {
	UserID      string
	Email       string
	DisplayName *string
	Role        string
	IsActive    bool
}

// MemberFilter defines filter options for listing members.
type MemberFilter struct {
	Role     string
	Page     int
	PageSize int
}

// validRole reports whether the role is one of the membership enum values.
func validRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleStaff, RoleClient:
		return true
	}
	return false
}

// validType reports whether the establishment type is recognized.
func validType(t string) bool {
	switch t {
	case TypeSala, TypeCabina, TypePuesto, TypeCancha:
		return true
	}
	return false
}

// validRevenue reports whether the revenue model is recognized.
func validRevenue(m string) bool {
	switch m {
	case RevenueTurnos, RevenueSuscripciones, RevenueMixto:
		return true
	}
	return false
}

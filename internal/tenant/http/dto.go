package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	"github.com/nilahq/scheduling-backend/internal/schedule"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

// TenantTag is a brief representation of a tenant.
type TenantTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScheduleDTO is the structured opening-hours form exchanged with edit UIs.
type ScheduleDTO struct {
	Days   []string `json:"days" binding:"required,min=1,dive,oneof=mon tue wed thu fri sat sun"`
	Open1  string   `json:"open1" binding:"required,len=5"`
	Close1 string   `json:"close1" binding:"required,len=5"`
	Open2  string   `json:"open2" binding:"omitempty,len=5"`
	Close2 string   `json:"close2" binding:"omitempty,len=5"`
}

func (d *ScheduleDTO) toDomain() *schedule.WeeklySchedule {
	days := make([]schedule.Day, len(d.Days))
	for i, day := range d.Days {
		days[i] = schedule.Day(day)
	}
	return &schedule.WeeklySchedule{
		Days:   days,
		Open1:  d.Open1,
		Close1: d.Close1,
		Open2:  d.Open2,
		Close2: d.Close2,
	}
}

func newScheduleDTO(w *schedule.WeeklySchedule) *ScheduleDTO {
	if w == nil {
		return nil
	}
	days := make([]string, len(w.Days))
	for i, d := range w.Days {
		days[i] = string(d)
	}
	return &ScheduleDTO{
		Days:   days,
		Open1:  w.Open1,
		Close1: w.Close1,
		Open2:  w.Open2,
		Close2: w.Close2,
	}
}

// TenantResponse carries both the raw opening-hours string and, when it parses, its
// structured form so edit UIs never re-implement the grammar.
type TenantResponse struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Slug              string       `json:"slug"`
	EstablishmentType string       `json:"establishment_type"`
	RevenueModel      string       `json:"revenue_model"`
	OpeningHours      string       `json:"opening_hours"`
	Schedule          *ScheduleDTO `json:"schedule"`
	Courts            []string     `json:"courts"`
	IsActive          bool         `json:"is_active"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func NewTenantResponse(t *tenant.Tenant) TenantResponse {
	courts := t.Courts
	if courts == nil {
		courts = []string{}
	}
	return TenantResponse{
		ID:                t.ID,
		Name:              t.Name,
		Slug:              t.Slug,
		EstablishmentType: t.EstablishmentType,
		RevenueModel:      t.RevenueModel,
		OpeningHours:      t.OpeningHours,
		Schedule:          newScheduleDTO(schedule.Decode(t.OpeningHours)),
		Courts:            courts,
		IsActive:          t.IsActive,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// ListTenantsRequest defines query parameters for listing tenants.
type ListTenantsRequest struct {
	request.ListParams
	Keyword  string `form:"q"`
	IsActive *bool  `form:"is_active"`
}

// Validate performs custom validation for ListTenantsRequest.
func (r *ListTenantsRequest) Validate() error {
	return nil
}

type CreateTenantRequest struct {
	Name              string   `json:"name" binding:"required"`
	EstablishmentType string   `json:"establishment_type" binding:"required,oneof=sala cabina puesto cancha"`
	RevenueModel      string   `json:"revenue_model" binding:"required,oneof=turnos suscripciones mixto"`
	OpeningHours      string   `json:"opening_hours"`
	Courts            []string `json:"courts"`
}

type UpdateTenantRequest struct {
	Name              *string      `json:"name"`
	EstablishmentType *string      `json:"establishment_type" binding:"omitempty,oneof=sala cabina puesto cancha"`
	RevenueModel      *string      `json:"revenue_model" binding:"omitempty,oneof=turnos suscripciones mixto"`
	OpeningHours      *string      `json:"opening_hours"`
	Schedule          *ScheduleDTO `json:"schedule"`
	Courts            *[]string    `json:"courts"`
	IsActive          *bool        `json:"is_active"`
}

// MemberResponse is the shape of membership rows in API responses.
type MemberResponse struct {
	UserID      string  `json:"user_id"`
	Email       string  `json:"email"`
	DisplayName *string `json:"display_name"`
	Role        string  `json:"role"`
	IsActive    bool    `json:"is_active"`
}

func NewMemberResponse(m *tenant.Member) MemberResponse {
	return MemberResponse{
		UserID:      m.UserID,
		Email:       m.Email,
		DisplayName: m.DisplayName,
		Role:        m.Role,
		IsActive:    m.IsActive,
	}
}

type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Role   string `json:"role" binding:"required,oneof=owner admin staff client"`
}

type UpdateMemberRequest struct {
	Role string `json:"role" binding:"required,oneof=owner admin staff client"`
}

// ListMembersRequest defines query parameters for listing members.
type ListMembersRequest struct {
	request.ListParams
	Role string `form:"role" binding:"omitempty,oneof=owner admin staff client"`
}

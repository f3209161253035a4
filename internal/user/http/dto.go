package http

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/pkg/request"
	tenantHttp "github.com/nilahq/scheduling-backend/internal/tenant/http"
	"github.com/nilahq/scheduling-backend/internal/user"
)

// ListUsersRequest defines query parameters for listing users.
type ListUsersRequest struct {
	request.ListParams
	Email       string `form:"email"`
	DisplayName string `form:"display_name"`
	IsActive    *bool  `form:"is_active"`
}

// Validate performs custom validation for ListUsersRequest.
func (r *ListUsersRequest) Validate() error {
	return nil
}

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID            string                 `json:"id"`
	Email         string                 `json:"email"`
	DisplayName   *string                `json:"display_name"`
	Phone         *string                `json:"phone"`
	CreatedAt     time.Time              `json:"created_at"`
	LastLoginAt   *time.Time             `json:"last_login_at"`
	IsActive      bool                   `json:"is_active"`
	IsSystemAdmin bool                   `json:"is_system_admin"`
	Tenants       []tenantHttp.TenantTag `json:"tenants"`
}

// UserTag is a brief representation of a user.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewUserResponse converts domain user.User to UserResponse used by the API.
func NewUserResponse(u *user.User) UserResponse {
	var lastLoginAt *time.Time
	if u.LastLoginAt != nil {
		ll := *u.LastLoginAt
		lastLoginAt = &ll
	}

	tenants := make([]tenantHttp.TenantTag, 0, len(u.Tenants))
	for _, t := range u.Tenants {
		tenants = append(tenants, tenantHttp.TenantTag{ID: t.ID, Name: t.Name})
	}

	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Phone:         u.Phone,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   lastLoginAt,
		IsActive:      u.IsActive,
		IsSystemAdmin: u.IsSystemAdmin,
		Tenants:       tenants,
	}
}

// UpdateUserRequest defines fields allowed to be updated via PATCH /users/:id.
// Use pointers to distinguish between "field not sent" and "field sent as false/empty".
type UpdateUserRequest struct {
	DisplayName *string `json:"display_name"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"is_active"`
}

// Validate performs custom validation for UpdateUserRequest.
func (r *UpdateUserRequest) Validate() error {
	return nil
}

// MeResponse returns the current user info.
type MeResponse struct {
	User UserResponse `json:"user"`
}

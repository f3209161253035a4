// Package marketplace assembles the client-facing discovery view: the tenants
// a user belongs to, each tenant's active services, and a handful of proposed
// upcoming slots per service.
package marketplace

import (
	"context"
	"time"

	"github.com/nilahq/scheduling-backend/internal/availability"
	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/user"
)

// Number of proposed slots per service in the discovery view.
const proposedSlotCount = 3

// TenantListing is one tenant block of the discovery view.
type TenantListing struct {
	TenantID   string
	TenantName string
	Services   []ServiceListing
}

// ServiceListing is one service with its proposed next slots.
type ServiceListing struct {
	Service   *catalog.Service
	NextSlots []availability.Slot
}

// Service builds the discovery view.
type Service interface {
	Discover(ctx context.Context, userID string) ([]TenantListing, error)
}

type service struct {
	userService    user.Service
	catalogManager catalog.Manager
	bookingService booking.Service
	now            func() time.Time
}

func NewService(userService user.Service, catalogManager catalog.Manager, bookingService booking.Service) Service {
	return &service{
		userService:    userService,
		catalogManager: catalogManager,
		bookingService: bookingService,
		now:            time.Now,
	}
}

func (s *service) Discover(ctx context.Context, userID string) ([]TenantListing, error) {
	u, err := s.userService.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	active := true
	listings := make([]TenantListing, 0, len(u.Tenants))

	for _, t := range u.Tenants {
		services, _, err := s.catalogManager.List(ctx, catalog.Filter{
			TenantID: t.ID,
			IsActive: &active,
			PageSize: 100,
		})
		if err != nil {
			return nil, err
		}

		listing := TenantListing{TenantID: t.ID, TenantName: t.Name}
		for _, svc := range services {
			lastEnd, err := s.lastActiveEnd(ctx, userID, svc.ID, now)
			if err != nil {
				return nil, err
			}
			listing.Services = append(listing.Services, ServiceListing{
				Service:   svc,
				NextSlots: availability.NextSlots(now, lastEnd, svc.Duration(), proposedSlotCount),
			})
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// lastActiveEnd finds when the user's last pending booking of the service
// ends, so proposals start after it instead of stacking on top.
func (s *service) lastActiveEnd(ctx context.Context, userID, serviceID string, now time.Time) (time.Time, error) {
	appointments, _, err := s.bookingService.List(ctx, booking.Filter{
		ClientUserID: userID,
		ServiceID:    serviceID,
		From:         now,
		PageSize:     50,
	})
	if err != nil {
		return time.Time{}, err
	}

	var lastEnd time.Time
	for _, a := range appointments {
		if a.Active() && a.EndTime.After(lastEnd) {
			lastEnd = a.EndTime
		}
	}
	return lastEnd, nil
}

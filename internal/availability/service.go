package availability

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/schedule"
	"github.com/nilahq/scheduling-backend/internal/tenant"
)

// Service builds availability views on top of the pure aggregation functions.
// Slot grids are cached in Redis for a short TTL; the database stays
// authoritative and entries expire rather than being invalidated.
type Service interface {
	// Agenda returns the tenant's appointments and blocks for one day,
	// grouped per court in chronological order.
	Agenda(ctx context.Context, tenantID string, day time.Time) (map[string][]Entry, error)

	// ServiceSlots returns the classified candidate slot grid for a service
	// on one day, derived from the tenant's opening hours.
	ServiceSlots(ctx context.Context, serviceID string, day time.Time) ([]Slot, error)
}

type service struct {
	bookingService booking.Service
	blockService   blockedslot.Service
	catalogManager catalog.Manager
	tenantService  tenant.Service
	cache          *redis.Client
	cacheTTL       time.Duration
	logger         *zap.Logger
}

func NewService(
	bookingService booking.Service,
	blockService blockedslot.Service,
	catalogManager catalog.Manager,
	tenantService tenant.Service,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger *zap.Logger,
) Service {
	return &service{
		bookingService: bookingService,
		blockService:   blockService,
		catalogManager: catalogManager,
		tenantService:  tenantService,
		cache:          cache,
		cacheTTL:       cacheTTL,
		logger:         logger,
	}
}

func (s *service) Agenda(ctx context.Context, tenantID string, day time.Time) (map[string][]Entry, error) {
	if _, err := s.tenantService.GetByID(ctx, tenantID); err != nil {
		return nil, err
	}

	entries, err := s.dayEntries(ctx, tenantID, day, nil)
	if err != nil {
		return nil, err
	}
	return GroupByCourt(entries), nil
}

func (s *service) ServiceSlots(ctx context.Context, serviceID string, day time.Time) ([]Slot, error) {
	svc, err := s.catalogManager.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("slots:%s:%s:%s", svc.TenantID, svc.ID, day.Format("2006-01-02"))
	if cached, err := s.cache.Get(ctx, key).Bytes(); err == nil {
		var slots []Slot
		if err := json.Unmarshal(cached, &slots); err == nil {
			return slots, nil
		}
	} else if err != redis.Nil {
		s.logger.Warn("slot cache read failed", zap.String("key", key), zap.Error(err))
	}

	t, err := s.tenantService.GetByID(ctx, svc.TenantID)
	if err != nil {
		return nil, err
	}

	courts, err := s.catalogManager.BookableCourts(ctx, svc)
	if err != nil {
		return nil, err
	}

	entries, err := s.dayEntries(ctx, svc.TenantID, day, courts)
	if err != nil {
		return nil, err
	}

	slots := BuildDaySlots(day, schedule.Decode(t.OpeningHours), svc.Duration(), entries)

	if data, err := json.Marshal(slots); err == nil {
		if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
			s.logger.Warn("slot cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return slots, nil
}

// dayEntries loads one day's appointments and blocks as snapshot entries.
// A non-nil courts slice restricts court-bound appointments and court blocks to
// that set; unassigned appointments and whole-venue blocks always pass.
func (s *service) dayEntries(ctx context.Context, tenantID string, day time.Time, courts []string) ([]Entry, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.Add(24 * time.Hour)

	appointments, err := s.bookingService.ListActiveOverlapping(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	blocks, err := s.blockService.ListOverlapping(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	return snapshotEntries(appointments, blocks, courts), nil
}

// snapshotEntries converts appointments and blocks into slot-grid entries.
// A non-nil courts slice drops entries bound to courts outside the set.
// Appointments with no court name (open-mode bookings) and whole-venue blocks
// occupy the venue regardless of the set and always pass.
func snapshotEntries(appointments []*booking.Appointment, blocks []*blockedslot.BlockedSlot, courts []string) []Entry {
	var included map[string]bool
	if courts != nil {
		included = make(map[string]bool, len(courts))
		for _, c := range courts {
			included[c] = true
		}
	}

	entries := make([]Entry, 0, len(appointments)+len(blocks))
	for _, a := range appointments {
		if included != nil && a.CourtName != "" && !included[a.CourtName] {
			continue
		}
		entries = append(entries, Entry{
			Kind:      KindAppointment,
			CourtName: a.CourtName,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
			Status:    a.Status,
		})
	}
	for _, b := range blocks {
		if included != nil && !b.BlocksWholeVenue() && !included[b.CourtName] {
			continue
		}
		entries = append(entries, Entry{
			Kind:      KindBlock,
			CourtName: b.CourtName,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
		})
	}
	return entries
}

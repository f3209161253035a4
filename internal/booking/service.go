package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/notification"
	"github.com/nilahq/scheduling-backend/internal/tenant"
	"github.com/nilahq/scheduling-backend/internal/user"
)

// CreateRequest defines fields for booking an appointment. CourtName is a
// preference, not a guarantee; court resolution may reject it.
type CreateRequest struct {
	ServiceID    string
	ClientUserID string
	CourtName    string
	StartTime    time.Time
	Notes        string
	// BypassAdvanceWindow lets waitlist offers book freed slots that fall
	// inside the service's minimum advance window.
	BypassAdvanceWindow bool
}

// Actor identifies who is acting on an appointment.
type Actor struct {
	UserID    string
	IsManager bool
}

// CancellationListener is notified after an appointment is cancelled and its
// slot freed. Registered by the waitlist module.
type CancellationListener interface {
	AppointmentCancelled(ctx context.Context, appt *Appointment)
}

// Service defines business logic for appointments.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Appointment, error)
	GetByID(ctx context.Context, id string) (*Appointment, error)
	List(ctx context.Context, filter Filter) ([]*Appointment, int, error)
	ListActiveOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*Appointment, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string, actor Actor) error
	MarkNoShow(ctx context.Context, id string) error
	UpdateNotes(ctx context.Context, id, notes string) error

	RegisterCancellationListener(l CancellationListener)
}

type service struct {
	repo                Repository
	catalogManager      catalog.Manager
	tenantService       tenant.Service
	userService         user.Service
	blockService        blockedslot.Service
	notificationService notification.Service
	logger              *zap.Logger

	listeners []CancellationListener
	now       func() time.Time
}

func NewService(
	repo Repository,
	catalogManager catalog.Manager,
	tenantService tenant.Service,
	userService user.Service,
	blockService blockedslot.Service,
	notificationService notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		repo:                repo,
		catalogManager:      catalogManager,
		tenantService:       tenantService,
		userService:         userService,
		blockService:        blockService,
		notificationService: notificationService,
		logger:              logger,
		now:                 time.Now,
	}
}

func (s *service) RegisterCancellationListener(l CancellationListener) {
	s.listeners = append(s.listeners, l)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Appointment, error) {
	svc, err := s.catalogManager.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, ErrServiceInactive
	}

	start := req.StartTime
	end := start.Add(svc.Duration())
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	now := s.now()
	if start.Before(now) {
		return nil, ErrStartInPast
	}
	if !req.BypassAdvanceWindow && svc.Config.MinAdvanceHours > 0 {
		earliest := now.Add(time.Duration(svc.Config.MinAdvanceHours) * time.Hour)
		if start.Before(earliest) {
			return nil, ErrTooSoon
		}
	}

	a := &Appointment{
		TenantID:     svc.TenantID,
		ServiceID:    svc.ID,
		ClientUserID: req.ClientUserID,
		StartTime:    start,
		EndTime:      end,
		Status:       StatusRequested,
		Notes:        req.Notes,
	}

	if svc.Config.BookingMode == catalog.ModePerCourt {
		bookable, err := s.catalogManager.BookableCourts(ctx, svc)
		if err != nil {
			return nil, err
		}
		overlapping, err := s.repo.ListActiveOverlapping(ctx, svc.TenantID, start, end)
		if err != nil {
			return nil, err
		}
		blocks, err := s.blockService.ListOverlapping(ctx, svc.TenantID, start, end)
		if err != nil {
			return nil, err
		}

		court, err := resolveCourt(req.CourtName, bookable, overlapping, blocks, start, end)
		if err != nil {
			return nil, err
		}
		a.CourtName = court
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("appointment requested",
		zap.String("id", a.ID),
		zap.String("tenant_id", a.TenantID),
		zap.String("service_id", a.ServiceID),
		zap.String("court", a.CourtName),
		zap.Time("start", a.StartTime),
	)
	s.notifyStaff(ctx, a, svc)
	return a, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Appointment, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListActiveOverlapping(ctx context.Context, tenantID string, from, to time.Time) ([]*Appointment, error) {
	return s.repo.ListActiveOverlapping(ctx, tenantID, from, to)
}

func (s *service) Confirm(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status != StatusRequested {
		return ErrInvalidTransition
	}

	// A competing confirmation or a new block may have landed since the
	// request was made.
	overlapping, err := s.repo.ListActiveOverlapping(ctx, a.TenantID, a.StartTime, a.EndTime)
	if err != nil {
		return err
	}
	for _, other := range overlapping {
		if other.ID == a.ID {
			continue
		}
		if other.Status == StatusConfirmed && other.CourtName == a.CourtName {
			return ErrConflict
		}
	}

	blocks, err := s.blockService.ListOverlapping(ctx, a.TenantID, a.StartTime, a.EndTime)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		if b.BlocksWholeVenue() || b.CourtName == a.CourtName {
			return ErrConflict
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusConfirmed); err != nil {
		return err
	}

	a.Status = StatusConfirmed
	s.notifyClient(ctx, a, "appointment_confirmed")
	return nil
}

func (s *service) Cancel(ctx context.Context, id string, actor Actor) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !a.Active() {
		return ErrInvalidTransition
	}

	if !actor.IsManager {
		svc, err := s.catalogManager.GetByID(ctx, a.ServiceID)
		if err != nil {
			return err
		}
		if svc.Config.CancellationHours > 0 {
			deadline := a.StartTime.Add(-time.Duration(svc.Config.CancellationHours) * time.Hour)
			if s.now().After(deadline) {
				return ErrTooLateToCancel
			}
		}
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return err
	}

	a.Status = StatusCancelled
	s.logger.Info("appointment cancelled",
		zap.String("id", a.ID),
		zap.String("tenant_id", a.TenantID),
		zap.String("by", actor.UserID),
	)
	s.notifyClient(ctx, a, "appointment_cancelled")
	for _, l := range s.listeners {
		l.AppointmentCancelled(ctx, a)
	}
	return nil
}

func (s *service) MarkNoShow(ctx context.Context, id string) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.Status != StatusConfirmed {
		return ErrInvalidTransition
	}
	return s.repo.UpdateStatus(ctx, id, StatusNoShow)
}

func (s *service) UpdateNotes(ctx context.Context, id, notes string) error {
	return s.repo.UpdateNotes(ctx, id, notes)
}

// notifyStaff queues an email to every active non-client member of the tenant
// about a new booking request. Delivery problems never fail the booking.
func (s *service) notifyStaff(ctx context.Context, a *Appointment, svc *catalog.Service) {
	members, _, err := s.tenantService.ListMembers(ctx, a.TenantID, tenant.MemberFilter{PageSize: 100})
	if err != nil {
		s.logger.Warn("staff notification skipped", zap.String("appointment_id", a.ID), zap.Error(err))
		return
	}

	payload := map[string]any{
		"event":          "appointment_requested",
		"appointment_id": a.ID,
		"service_name":   svc.Name,
		"court_name":     a.CourtName,
		"start_time":     a.StartTime,
	}
	for _, m := range members {
		if !m.IsActive || m.Role == tenant.RoleClient {
			continue
		}
		_, err := s.notificationService.Queue(ctx, notification.QueueRequest{
			TenantID:  a.TenantID,
			Channel:   notification.ChannelEmail,
			ToAddress: m.Email,
			Payload:   payload,
		})
		if err != nil {
			s.logger.Warn("staff notification failed", zap.String("appointment_id", a.ID), zap.Error(err))
		}
	}
}

// notifyClient queues an email to the booking client about a status change.
func (s *service) notifyClient(ctx context.Context, a *Appointment, event string) {
	u, err := s.userService.GetByID(ctx, a.ClientUserID)
	if err != nil {
		s.logger.Warn("client notification skipped", zap.String("appointment_id", a.ID), zap.Error(err))
		return
	}

	_, err = s.notificationService.Queue(ctx, notification.QueueRequest{
		TenantID:  a.TenantID,
		Channel:   notification.ChannelEmail,
		ToAddress: u.Email,
		Payload: map[string]any{
			"event":          event,
			"appointment_id": a.ID,
			"court_name":     a.CourtName,
			"start_time":     a.StartTime,
		},
	})
	if err != nil {
		s.logger.Warn("client notification failed", zap.String("appointment_id", a.ID), zap.Error(err))
	}
}

package waitlist

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nilahq/scheduling-backend/internal/booking"
	"github.com/nilahq/scheduling-backend/internal/catalog"
	"github.com/nilahq/scheduling-backend/internal/notification"
	"github.com/nilahq/scheduling-backend/internal/user"
)

// Service defines business logic for service waitlists. It also acts as the
// booking module's cancellation listener: a freed slot is offered to the head
// of the waitlist for a limited time.
type Service interface {
	Join(ctx context.Context, tenantID, serviceID, userID string) (*Entry, error)
	Leave(ctx context.Context, entryID, userID string) error
	ListEntries(ctx context.Context, filter EntryFilter) ([]*Entry, int, error)

	GetOffer(ctx context.Context, offerID string) (*Offer, error)
	AcceptOffer(ctx context.Context, offerID, userID string) (*booking.Appointment, error)
	RejectOffer(ctx context.Context, offerID, userID string) error

	AppointmentCancelled(ctx context.Context, appt *booking.Appointment)
}

type service struct {
	repo                Repository
	bookingService      booking.Service
	catalogManager      catalog.Manager
	userService         user.Service
	notificationService notification.Service
	logger              *zap.Logger
	now                 func() time.Time
}

func NewService(
	repo Repository,
	bookingService booking.Service,
	catalogManager catalog.Manager,
	userService user.Service,
	notificationService notification.Service,
	logger *zap.Logger,
) Service {
	return &service{
		repo:                repo,
		bookingService:      bookingService,
		catalogManager:      catalogManager,
		userService:         userService,
		notificationService: notificationService,
		logger:              logger,
		now:                 time.Now,
	}
}

func (s *service) Join(ctx context.Context, tenantID, serviceID, userID string) (*Entry, error) {
	if _, err := s.catalogManager.GetByID(ctx, serviceID); err != nil {
		return nil, err
	}

	e := &Entry{
		TenantID:  tenantID,
		ServiceID: serviceID,
		UserID:    userID,
		Status:    EntryWaiting,
	}
	if err := s.repo.CreateEntry(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *service) Leave(ctx context.Context, entryID, userID string) error {
	e, err := s.repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return ErrEntryNotFound
	}
	return s.repo.UpdateEntryStatus(ctx, entryID, EntryRemoved)
}

func (s *service) ListEntries(ctx context.Context, filter EntryFilter) ([]*Entry, int, error) {
	return s.repo.ListEntries(ctx, filter)
}

func (s *service) GetOffer(ctx context.Context, offerID string) (*Offer, error) {
	return s.repo.GetOffer(ctx, offerID)
}

func (s *service) AcceptOffer(ctx context.Context, offerID, userID string) (*booking.Appointment, error) {
	o, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.GetEntry(ctx, o.EntryID)
	if err != nil {
		return nil, err
	}
	if e.UserID != userID {
		return nil, ErrNotOfferee
	}
	if o.Status != OfferPending {
		return nil, ErrNotPending
	}
	if o.Expired(s.now()) {
		_ = s.repo.UpdateOfferStatus(ctx, offerID, OfferExpired)
		_ = s.repo.UpdateEntryStatus(ctx, e.ID, EntryRemoved)
		s.offerSlot(ctx, e.ServiceID, o.CourtName, o.StartTime, o.EndTime, e.ID)
		return nil, ErrOfferExpired
	}

	appt, err := s.bookingService.Create(ctx, booking.CreateRequest{
		ServiceID:           e.ServiceID,
		ClientUserID:        e.UserID,
		CourtName:           o.CourtName,
		StartTime:           o.StartTime,
		BypassAdvanceWindow: true,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateOfferStatus(ctx, offerID, OfferAccepted); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateEntryStatus(ctx, e.ID, EntryAccepted); err != nil {
		return nil, err
	}

	s.logger.Info("waitlist offer accepted",
		zap.String("offer_id", offerID),
		zap.String("appointment_id", appt.ID),
	)
	return appt, nil
}

func (s *service) RejectOffer(ctx context.Context, offerID, userID string) error {
	o, err := s.repo.GetOffer(ctx, offerID)
	if err != nil {
		return err
	}
	e, err := s.repo.GetEntry(ctx, o.EntryID)
	if err != nil {
		return err
	}
	if e.UserID != userID {
		return ErrNotOfferee
	}
	if o.Status != OfferPending {
		return ErrNotPending
	}

	if err := s.repo.UpdateOfferStatus(ctx, offerID, OfferRejected); err != nil {
		return err
	}
	if err := s.repo.UpdateEntryStatus(ctx, e.ID, EntryWaiting); err != nil {
		return err
	}

	s.offerSlot(ctx, e.ServiceID, o.CourtName, o.StartTime, o.EndTime, e.ID)
	return nil
}

// AppointmentCancelled offers the freed slot to the head of the waitlist.
// Runs best-effort: the cancellation itself already succeeded.
func (s *service) AppointmentCancelled(ctx context.Context, appt *booking.Appointment) {
	s.offerSlot(ctx, appt.ServiceID, appt.CourtName, appt.StartTime, appt.EndTime, "")
}

// offerSlot creates a pending offer for the oldest waiting entry, skipping
// skipEntryID so a rejecting user is not immediately re-offered the same slot.
func (s *service) offerSlot(ctx context.Context, serviceID, courtName string, start, end time.Time, skipEntryID string) {
	if start.Before(s.now()) {
		return
	}

	e, err := s.repo.NextWaiting(ctx, serviceID, skipEntryID)
	if err != nil {
		return
	}

	o := &Offer{
		EntryID:   e.ID,
		CourtName: courtName,
		StartTime: start,
		EndTime:   end,
		Status:    OfferPending,
		ExpiresAt: s.now().Add(offerTTL),
	}
	if err := s.repo.CreateOffer(ctx, o); err != nil {
		s.logger.Warn("waitlist offer creation failed", zap.String("entry_id", e.ID), zap.Error(err))
		return
	}
	if err := s.repo.UpdateEntryStatus(ctx, e.ID, EntryOffered); err != nil {
		s.logger.Warn("waitlist entry update failed", zap.String("entry_id", e.ID), zap.Error(err))
		return
	}

	s.notifyOfferee(ctx, e, o)
	s.logger.Info("waitlist offer created",
		zap.String("offer_id", o.ID),
		zap.String("entry_id", e.ID),
		zap.Time("start", o.StartTime),
	)
}

func (s *service) notifyOfferee(ctx context.Context, e *Entry, o *Offer) {
	u, err := s.userService.GetByID(ctx, e.UserID)
	if err != nil {
		s.logger.Warn("offer notification skipped", zap.String("offer_id", o.ID), zap.Error(err))
		return
	}

	_, err = s.notificationService.Queue(ctx, notification.QueueRequest{
		TenantID:  e.TenantID,
		Channel:   notification.ChannelEmail,
		ToAddress: u.Email,
		Payload: map[string]any{
			"event":      "waitlist_offer",
			"offer_id":   o.ID,
			"court_name": o.CourtName,
			"start_time": o.StartTime,
			"expires_at": o.ExpiresAt,
		},
	})
	if err != nil {
		s.logger.Warn("offer notification failed", zap.String("offer_id", o.ID), zap.Error(err))
	}
}

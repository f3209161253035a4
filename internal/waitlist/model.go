package waitlist

import (
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("waitlist entry not found")
	ErrOfferNotFound = errors.New("offer not found")
	ErrAlreadyQueued = errors.New("user is already on the waitlist for this service")
	ErrNotPending    = errors.New("offer is no longer pending")
	ErrOfferExpired  = errors.New("offer has expired")
	ErrNotOfferee    = errors.New("offer belongs to another user")
)

// Entry statuses.
const (
	EntryWaiting  = "waiting"
	EntryOffered  = "offered"
	EntryAccepted = "accepted"
	EntryRemoved  = "removed"
)

// Offer statuses.
const (
	OfferPending  = "pending"
	OfferAccepted = "accepted"
	OfferRejected = "rejected"
	OfferExpired  = "expired"
)

// An offer not answered within this window lapses and the slot goes back to
// the open market.
const offerTTL = 30 * time.Minute

// Entry is a user queued for a service with no free slot.
type Entry struct {
	ID        string
	TenantID  string
	ServiceID string
	UserID    string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Offer proposes a freed slot to the head of the waitlist.
type Offer struct {
	ID        string
	EntryID   string
	CourtName string
	StartTime time.Time
	EndTime   time.Time
	Status    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the offer lapsed at the given instant.
func (o *Offer) Expired(now time.Time) bool {
	return now.After(o.ExpiresAt)
}

// EntryFilter defines list criteria for waitlist entries.
type EntryFilter struct {
	TenantID  string
	ServiceID string
	UserID    string
	Status    string
	Page      int
	PageSize  int
}

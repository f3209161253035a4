package blockedslot

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("blocked slot not found")
	ErrInvalidRange = errors.New("start time must be before end time")
	ErrUnknownCourt = errors.New("court is not in the tenant roster")
)

// BlockedSlot marks a time range as unavailable for bookings. An empty
// CourtName blocks the whole venue.
type BlockedSlot struct {
	ID        string
	TenantID  string
	CourtName string
	StartTime time.Time
	EndTime   time.Time
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}

// BlocksWholeVenue reports whether the block applies to every court.
func (b *BlockedSlot) BlocksWholeVenue() bool {
	return b.CourtName == ""
}

// Overlaps reports whether the block intersects [start, end).
func (b *BlockedSlot) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}

// Filter defines list criteria for blocked slots.
type Filter struct {
	TenantID  string
	CourtName string
	From      time.Time
	To        time.Time
	Page      int
	PageSize  int
}

package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
)

var (
	slotStart = time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)
	slotEnd   = time.Date(2026, 2, 9, 11, 0, 0, 0, time.UTC)
)

func activeAppt(court string, start, end time.Time) *Appointment {
	return &Appointment{CourtName: court, StartTime: start, EndTime: end, Status: StatusConfirmed}
}

func block(court string, start, end time.Time) *blockedslot.BlockedSlot {
	return &blockedslot.BlockedSlot{CourtName: court, StartTime: start, EndTime: end}
}

func TestResolveCourtAutoAssignsFirstFree(t *testing.T) {
	bookable := []string{"Court 1", "Court 2", "Court 3"}
	appts := []*Appointment{activeAppt("Court 1", slotStart, slotEnd)}

	court, err := resolveCourt("", bookable, appts, nil, slotStart, slotEnd)
	require.NoError(t, err)
	require.Equal(t, "Court 2", court)
}

func TestResolveCourtHonorsRequest(t *testing.T) {
	bookable := []string{"Court 1", "Court 2"}

	court, err := resolveCourt("Court 2", bookable, nil, nil, slotStart, slotEnd)
	require.NoError(t, err)
	require.Equal(t, "Court 2", court)
}

func TestResolveCourtRejectsRequestOutsideService(t *testing.T) {
	bookable := []string{"Court 1"}

	_, err := resolveCourt("Court 9", bookable, nil, nil, slotStart, slotEnd)
	require.ErrorIs(t, err, ErrCourtNotIncluded)
}

func TestResolveCourtRejectsBusyRequest(t *testing.T) {
	bookable := []string{"Court 1", "Court 2"}
	appts := []*Appointment{activeAppt("Court 1", slotStart.Add(30*time.Minute), slotEnd.Add(30*time.Minute))}

	_, err := resolveCourt("Court 1", bookable, appts, nil, slotStart, slotEnd)
	require.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestResolveCourtIgnoresInactiveAppointments(t *testing.T) {
	bookable := []string{"Court 1"}
	cancelled := &Appointment{CourtName: "Court 1", StartTime: slotStart, EndTime: slotEnd, Status: StatusCancelled}

	court, err := resolveCourt("Court 1", bookable, []*Appointment{cancelled}, nil, slotStart, slotEnd)
	require.NoError(t, err)
	require.Equal(t, "Court 1", court)
}

func TestResolveCourtIgnoresAdjacentBookings(t *testing.T) {
	// Back-to-back bookings share a boundary instant but do not overlap.
	bookable := []string{"Court 1"}
	appts := []*Appointment{activeAppt("Court 1", slotEnd, slotEnd.Add(time.Hour))}

	court, err := resolveCourt("Court 1", bookable, appts, nil, slotStart, slotEnd)
	require.NoError(t, err)
	require.Equal(t, "Court 1", court)
}

func TestResolveCourtSkipsBlockedCourt(t *testing.T) {
	bookable := []string{"Court 1", "Court 2"}
	blocks := []*blockedslot.BlockedSlot{block("Court 1", slotStart, slotEnd)}

	court, err := resolveCourt("", bookable, nil, blocks, slotStart, slotEnd)
	require.NoError(t, err)
	require.Equal(t, "Court 2", court)
}

func TestResolveCourtWholeVenueBlock(t *testing.T) {
	bookable := []string{"Court 1", "Court 2"}
	blocks := []*blockedslot.BlockedSlot{block("", slotStart, slotEnd)}

	_, err := resolveCourt("", bookable, nil, blocks, slotStart, slotEnd)
	require.ErrorIs(t, err, ErrNoCourtAvailable)

	_, err = resolveCourt("Court 1", bookable, nil, blocks, slotStart, slotEnd)
	require.ErrorIs(t, err, ErrCourtUnavailable)
}

func TestResolveCourtAllCourtsTaken(t *testing.T) {
	bookable := []string{"Court 1", "Court 2"}
	appts := []*Appointment{
		activeAppt("Court 1", slotStart, slotEnd),
		activeAppt("Court 2", slotStart, slotEnd),
	}

	_, err := resolveCourt("", bookable, appts, nil, slotStart, slotEnd)
	require.ErrorIs(t, err, ErrNoCourtAvailable)
}

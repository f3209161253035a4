package availability

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nilahq/scheduling-backend/internal/blockedslot"
	"github.com/nilahq/scheduling-backend/internal/booking"
)

func TestSnapshotEntriesKeepsUnassignedAppointments(t *testing.T) {
	appointments := []*booking.Appointment{
		{CourtName: "", StartTime: at(10, 0), EndTime: at(11, 0), Status: booking.StatusConfirmed},
	}

	entries := snapshotEntries(appointments, nil, []string{"Court A"})

	require.Len(t, entries, 1, "Court-less booking must stay in the snapshot")
	require.Equal(t, StateConfirmed, ClassifySlot(at(10, 0), entries))
}

func TestSnapshotEntriesFiltersForeignCourts(t *testing.T) {
	appointments := []*booking.Appointment{
		{CourtName: "Court A", StartTime: at(9, 0), EndTime: at(10, 0), Status: booking.StatusRequested},
		{CourtName: "Court Z", StartTime: at(9, 0), EndTime: at(10, 0), Status: booking.StatusConfirmed},
	}
	blocks := []*blockedslot.BlockedSlot{
		{CourtName: "Court Z", StartTime: at(11, 0), EndTime: at(12, 0)},
		{CourtName: "", StartTime: at(12, 0), EndTime: at(13, 0)},
	}

	entries := snapshotEntries(appointments, blocks, []string{"Court A"})

	require.Len(t, entries, 2)
	require.Equal(t, "Court A", entries[0].CourtName)
	require.Equal(t, KindBlock, entries[1].Kind, "Whole-venue block must pass the court filter")
}

func TestSnapshotEntriesNilCourtsKeepsEverything(t *testing.T) {
	appointments := []*booking.Appointment{
		{CourtName: "Court Z", StartTime: at(9, 0), EndTime: at(10, 0), Status: booking.StatusConfirmed},
	}
	blocks := []*blockedslot.BlockedSlot{
		{CourtName: "Court Z", StartTime: at(11, 0), EndTime: at(12, 0)},
	}

	entries := snapshotEntries(appointments, blocks, nil)

	require.Len(t, entries, 2)
}

package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nilahq/scheduling-backend/internal/schedule"
)

func at(hour, min int) time.Time {
	return time.Date(2026, 2, 8, hour, min, 0, 0, time.UTC)
}

func TestGroupByCourt(t *testing.T) {
	entries := []Entry{
		{Kind: KindAppointment, CourtName: "Court A", StartTime: at(10, 0), EndTime: at(11, 0), Status: "confirmed"},
		{Kind: KindAppointment, CourtName: "Court A", StartTime: at(9, 0), EndTime: at(10, 0), Status: "requested"},
		{Kind: KindAppointment, CourtName: "Court B", StartTime: at(11, 0), EndTime: at(12, 0), Status: "confirmed"},
	}

	groups := GroupByCourt(entries)

	require.Len(t, groups, 2)
	require.Len(t, groups["Court A"], 2)
	require.Equal(t, at(9, 0), groups["Court A"][0].StartTime)
	require.Equal(t, at(10, 0), groups["Court A"][1].StartTime)
	require.Len(t, groups["Court B"], 1)
}

func TestGroupByCourtUnassignedBucket(t *testing.T) {
	entries := []Entry{
		{Kind: KindBlock, CourtName: "", StartTime: at(9, 0), EndTime: at(10, 0)},
		{Kind: KindAppointment, CourtName: "   ", StartTime: at(10, 0), EndTime: at(11, 0), Status: "confirmed"},
		{Kind: KindAppointment, CourtName: " Court A ", StartTime: at(12, 0), EndTime: at(13, 0), Status: "requested"},
	}

	groups := GroupByCourt(entries)

	require.Len(t, groups[UnassignedCourt], 2)
	require.Len(t, groups["Court A"], 1)
}

func TestGroupByCourtStableTieBreak(t *testing.T) {
	first := Entry{Kind: KindAppointment, CourtName: "Court A", StartTime: at(9, 0), EndTime: at(10, 0), Status: "requested"}
	second := Entry{Kind: KindAppointment, CourtName: "Court A", StartTime: at(9, 0), EndTime: at(9, 30), Status: "confirmed"}

	groups := GroupByCourt([]Entry{first, second})

	require.Equal(t, first, groups["Court A"][0])
	require.Equal(t, second, groups["Court A"][1])
}

func TestGroupByCourtSkipsMalformedEntries(t *testing.T) {
	entries := []Entry{
		{Kind: KindAppointment, CourtName: "Court A", Status: "confirmed"}, // zero times
		{Kind: KindAppointment, CourtName: "Court A", StartTime: at(11, 0), EndTime: at(10, 0)},
		{Kind: KindAppointment, CourtName: "Court A", StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
	}

	groups := GroupByCourt(entries)

	require.Len(t, groups["Court A"], 1)
}

func TestGroupByCourtIdempotent(t *testing.T) {
	entries := []Entry{
		{Kind: KindAppointment, CourtName: "Court B", StartTime: at(11, 0), EndTime: at(12, 0), Status: "confirmed"},
		{Kind: KindAppointment, CourtName: "Court A", StartTime: at(9, 0), EndTime: at(10, 0), Status: "requested"},
		{Kind: KindBlock, CourtName: "Court A", StartTime: at(14, 0), EndTime: at(15, 0)},
	}

	require.Equal(t, GroupByCourt(entries), GroupByCourt(entries))
}

func TestClassifySlot(t *testing.T) {
	tests := []struct {
		name      string
		candidate time.Time
		entries   []Entry
		want      State
	}{
		{
			name:      "no coverage is available",
			candidate: at(8, 0),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
			},
			want: StateAvailable,
		},
		{
			name:      "requested appointment",
			candidate: at(9, 30),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "requested"},
			},
			want: StateRequested,
		},
		{
			name:      "confirmed wins over requested",
			candidate: at(9, 30),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "requested"},
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
			},
			want: StateConfirmed,
		},
		{
			name:      "block wins over confirmed",
			candidate: at(9, 30),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
				{Kind: KindBlock, StartTime: at(9, 0), EndTime: at(10, 0)},
			},
			want: StateBlocked,
		},
		{
			name:      "cancelled appointment is ignored",
			candidate: at(9, 30),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "cancelled"},
			},
			want: StateAvailable,
		},
		{
			name:      "interval end is exclusive",
			candidate: at(10, 0),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
			},
			want: StateAvailable,
		},
		{
			name:      "interval start is inclusive",
			candidate: at(9, 0),
			entries: []Entry{
				{Kind: KindAppointment, StartTime: at(9, 0), EndTime: at(10, 0), Status: "confirmed"},
			},
			want: StateConfirmed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ClassifySlot(tt.candidate, tt.entries))
		})
	}
}

func TestBuildDaySlots(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC) // a Monday
	w := &schedule.WeeklySchedule{
		Days:   []schedule.Day{schedule.Mon},
		Open1:  "09:00",
		Close1: "12:00",
	}

	slots := BuildDaySlots(day, w, time.Hour, []Entry{
		{Kind: KindAppointment, StartTime: at2(day, 10, 0), EndTime: at2(day, 11, 0), Status: "confirmed"},
	})

	require.Len(t, slots, 3)
	require.Equal(t, StateAvailable, slots[0].State)
	require.Equal(t, StateConfirmed, slots[1].State)
	require.Equal(t, StateAvailable, slots[2].State)
}

func TestBuildDaySlotsOutsideSchedule(t *testing.T) {
	day := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC) // a Sunday
	w := &schedule.WeeklySchedule{
		Days:   []schedule.Day{schedule.Mon},
		Open1:  "09:00",
		Close1: "12:00",
	}

	require.Empty(t, BuildDaySlots(day, w, time.Hour, nil))
	require.Empty(t, BuildDaySlots(day, nil, time.Hour, nil))
}

func TestBuildDaySlotsSplitShift(t *testing.T) {
	day := time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)
	w := &schedule.WeeklySchedule{
		Days:   []schedule.Day{schedule.Mon},
		Open1:  "09:00",
		Close1: "11:00",
		Open2:  "16:00",
		Close2: "18:00",
	}

	slots := BuildDaySlots(day, w, time.Hour, nil)

	require.Len(t, slots, 4)
	require.Equal(t, at2(day, 9, 0), slots[0].StartTime)
	require.Equal(t, at2(day, 16, 0), slots[2].StartTime)
}

func TestNextSlots(t *testing.T) {
	now := time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC)

	slots := NextSlots(now, time.Time{}, 30*time.Minute, 3)
	require.Len(t, slots, 3)
	require.Equal(t, now.Add(time.Hour), slots[0].StartTime)
	require.Equal(t, now.Add(time.Hour+30*time.Minute), slots[1].StartTime)

	// Base pushed past the last active appointment.
	lastEnd := now.Add(3 * time.Hour)
	slots = NextSlots(now, lastEnd, 30*time.Minute, 3)
	require.Equal(t, lastEnd, slots[0].StartTime)

	// Duration floor of 15 minutes.
	slots = NextSlots(now, time.Time{}, time.Minute, 2)
	require.Equal(t, 15*time.Minute, slots[1].StartTime.Sub(slots[0].StartTime))
}

func at2(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

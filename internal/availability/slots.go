package availability

import (
	"time"

	"github.com/nilahq/scheduling-backend/internal/schedule"
)

// Slot is a discrete candidate start time with its classified state.
type Slot struct {
	StartTime time.Time
	Label     string
	State     State
}

const slotLabelLayout = "02/01/2006 15:04"

// BuildDaySlots generates the candidate slot grid for one court on one day from the
// venue's decoded opening hours, stepping by the service duration, and classifies
// each candidate against the court's entries. A nil schedule or a day outside the
// schedule yields no slots.
func BuildDaySlots(day time.Time, w *schedule.WeeklySchedule, duration time.Duration, entries []Entry) []Slot {
	if w == nil || duration <= 0 {
		return nil
	}
	if !w.Includes(schedule.DayFromWeekday(int(day.Weekday()))) {
		return nil
	}

	var slots []Slot
	slots = appendRangeSlots(slots, day, w.Open1, w.Close1, duration, entries)
	if w.HasSplitShift() {
		slots = appendRangeSlots(slots, day, w.Open2, w.Close2, duration, entries)
	}
	return slots
}

func appendRangeSlots(slots []Slot, day time.Time, open, close string, duration time.Duration, entries []Entry) []Slot {
	start, ok := atTimeOfDay(day, open)
	if !ok {
		return slots
	}
	end, ok := atTimeOfDay(day, close)
	if !ok {
		return slots
	}

	for t := start; !t.Add(duration).After(end); t = t.Add(duration) {
		slots = append(slots, Slot{
			StartTime: t,
			Label:     t.Format(slotLabelLayout),
			State:     ClassifySlot(t, entries),
		})
	}
	return slots
}

// atTimeOfDay anchors an "HH:MM" clock string onto the given calendar day.
func atTimeOfDay(day time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), parsed.Hour(), parsed.Minute(), 0, 0, day.Location()), true
}

// NextSlots proposes count upcoming start times for a service: the base is one hour
// from now, pushed past the end of the last active appointment, then stepped by the
// service duration (minimum 15 minutes).
func NextSlots(now time.Time, lastActiveEnd time.Time, duration time.Duration, count int) []Slot {
	if duration < 15*time.Minute {
		duration = 15 * time.Minute
	}

	base := now.Add(time.Hour)
	if lastActiveEnd.After(base) {
		base = lastActiveEnd
	}

	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		start := base.Add(time.Duration(i) * duration)
		slots = append(slots, Slot{
			StartTime: start,
			Label:     start.Format(slotLabelLayout),
			State:     StateAvailable,
		})
	}
	return slots
}
